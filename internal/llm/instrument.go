package llm

import (
	"context"
	"errors"
	"time"
)

// Recorder receives one observation per completion call. The telemetry
// package implements it with Prometheus collectors.
type Recorder interface {
	ObserveCompletion(model, outcome string, latency time.Duration, usage Usage)
}

// Outcome labels passed to Recorder.
const (
	OutcomeOK          = "ok"
	OutcomeRateLimited = "rate_limited"
	OutcomeUnavailable = "unavailable"
	OutcomeInvalid     = "invalid"
	OutcomeTruncated   = "truncated"
	OutcomeCanceled    = "canceled"
	OutcomeError       = "error"
)

// InstrumentedProvider reports latency, outcome and token usage of every
// call to a Recorder.
type InstrumentedProvider struct {
	inner    Provider
	recorder Recorder
}

// WithInstrumentation wraps p so each call is observed by r.
func WithInstrumentation(p Provider, r Recorder) Provider {
	return &InstrumentedProvider{inner: p, recorder: r}
}

func (i *InstrumentedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := i.inner.Generate(ctx, req)

	var usage Usage
	if resp != nil {
		usage = resp.Usage
	}
	i.recorder.ObserveCompletion(i.inner.ModelID(), Outcome(err), time.Since(start), usage)
	return resp, err
}

func (i *InstrumentedProvider) ModelID() string {
	return i.inner.ModelID()
}

// Outcome classifies err into one of the Outcome labels.
func Outcome(err error) string {
	var (
		rl      *ErrRateLimit
		unavail *ErrProviderUnavailable
		invalid *ErrInvalidResponse
		trunc   *ErrMaxTokensExceeded
	)
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &rl):
		return OutcomeRateLimited
	case errors.As(err, &invalid):
		return OutcomeInvalid
	case errors.As(err, &trunc):
		return OutcomeTruncated
	case errors.As(err, &unavail):
		return OutcomeUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}

// TimeoutProvider bounds every call with a deadline.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps p so each call gets its own deadline. A non-positive
// timeout returns p unchanged.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: timeout}
}

// Generate reports an expired per-call deadline as ErrProviderUnavailable
// so it stays retryable; only the caller's own cancellation is final.
func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	resp, err := t.inner.Generate(callCtx, req)
	if err != nil && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		return nil, &ErrProviderUnavailable{Err: err}
	}
	return resp, err
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
