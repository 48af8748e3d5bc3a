package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff_Doubles(t *testing.T) {
	cfg := DefaultRetryConfig()
	want := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
	for attempt, w := range want {
		assert.Equal(t, w, Backoff(cfg, attempt), "attempt %d", attempt)
	}
}

func TestBackoff_CappedAtMaxWait(t *testing.T) {
	cfg := RetryConfig{InitialWait: time.Second, MaxWait: 3 * time.Second, Multiplier: 2}
	assert.Equal(t, 3*time.Second, Backoff(cfg, 5))
}

func TestBackoff_JitterStaysInRange(t *testing.T) {
	cfg := RetryConfig{InitialWait: time.Second, MaxWait: time.Minute, Multiplier: 2, Jitter: 0.2}
	for range 50 {
		d := Backoff(cfg, 1)
		assert.GreaterOrEqual(t, d, 1600*time.Millisecond)
		assert.LessOrEqual(t, d, 2400*time.Millisecond)
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("wrap: %w", context.DeadlineExceeded), false},
		{"per-call timeout", &ErrProviderUnavailable{Err: context.DeadlineExceeded}, true},
		{"rate limit", &ErrRateLimit{}, true},
		{"unavailable", &ErrProviderUnavailable{}, true},
		{"invalid", &ErrInvalidResponse{Err: ErrEmptyContent}, true},
		{"truncated", &ErrMaxTokensExceeded{}, true},
		{"plain", errors.New("network"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Retryable(tt.err))
		})
	}
}

func TestSleep_ReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSleep_Waits(t *testing.T) {
	start := time.Now()
	assert.NoError(t, Sleep(context.Background(), 10*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}
