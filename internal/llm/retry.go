package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// Retryable reports whether another attempt may succeed after err.
// Only cancellation and deadline errors are final; everything a provider
// returns (rate limits, outages, empty or malformed content, truncation)
// is worth another try.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	var unavail *ErrProviderUnavailable
	if errors.As(err, &unavail) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// Backoff computes the wait after the given 0-based attempt failed:
// InitialWait * Multiplier^attempt, capped at MaxWait. Rate limits get the
// same schedule as any other failure.
func Backoff(cfg RetryConfig, attempt int) time.Duration {
	wait := float64(cfg.InitialWait) * math.Pow(cfg.Multiplier, float64(attempt))
	if cfg.MaxWait > 0 && wait > float64(cfg.MaxWait) {
		wait = float64(cfg.MaxWait)
	}

	if cfg.Jitter > 0 {
		wait += wait * cfg.Jitter * (2*rand.Float64() - 1)
	}
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
