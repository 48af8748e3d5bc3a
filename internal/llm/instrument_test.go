package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	model   string
	outcome string
	usage   Usage
}

type fakeRecorder struct {
	observed []observation
}

func (f *fakeRecorder) ObserveCompletion(model, outcome string, _ time.Duration, usage Usage) {
	f.observed = append(f.observed, observation{model: model, outcome: outcome, usage: usage})
}

// slowProvider blocks until its context is done.
type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, OutcomeOK},
		{&ErrRateLimit{}, OutcomeRateLimited},
		{fmt.Errorf("wrapped: %w", &ErrInvalidResponse{Err: ErrEmptyContent}), OutcomeInvalid},
		{&ErrMaxTokensExceeded{}, OutcomeTruncated},
		{&ErrProviderUnavailable{Err: context.DeadlineExceeded}, OutcomeUnavailable},
		{context.Canceled, OutcomeCanceled},
		{errors.New("other"), OutcomeError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Outcome(tt.err), "Outcome(%v)", tt.err)
	}
}

func TestInstrumentedProvider_Observes(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`), Usage: Usage{InputTokens: 3, OutputTokens: 4, TotalTokens: 7}},
		MockResponse{Err: &ErrRateLimit{}},
	)
	rec := &fakeRecorder{}
	p := WithInstrumentation(mock, rec)

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	_, err = p.Generate(context.Background(), Request{})
	require.Error(t, err)

	require.Len(t, rec.observed, 2)
	assert.Equal(t, observation{model: "mock", outcome: OutcomeOK, usage: Usage{InputTokens: 3, OutputTokens: 4, TotalTokens: 7}}, rec.observed[0])
	assert.Equal(t, OutcomeRateLimited, rec.observed[1].outcome)
	assert.Equal(t, "mock", p.ModelID())
}

func TestTimeoutProvider_ExpiredCallIsRetryable(t *testing.T) {
	p := WithTimeout(slowProvider{}, 10*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	require.True(t, errors.As(err, &unavail), "got %T (%v)", err, err)
	assert.True(t, Retryable(err))
}

func TestTimeoutProvider_CallerCancelIsFinal(t *testing.T) {
	p := WithTimeout(slowProvider{}, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, Retryable(err))
}

func TestWithTimeout_ZeroIsPassthrough(t *testing.T) {
	mock := NewMockProvider()
	assert.Same(t, mock, WithTimeout(mock, 0))
}

func TestNewProvider_WrapsConfiguredProvider(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	p, err := NewProvider(context.Background(), Config{Provider: ProviderGroq, GroqAPIKey: "gsk-test"}, logger, &fakeRecorder{})
	require.NoError(t, err)
	assert.Equal(t, "llama3-70b-8192", p.ModelID())

	p, err = NewProvider(context.Background(), Config{Provider: ProviderMock}, logger, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	_, err = NewProvider(context.Background(), Config{Provider: ProviderOpenAI}, logger, nil)
	assert.Error(t, err)
}
