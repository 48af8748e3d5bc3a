package llm

import (
	"context"
	"log/slog"
	"time"
)

type purposeKey struct{}

// WithPurpose labels the calls made with ctx, e.g. "quiz-gen".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return "unknown"
}

// LoggingProvider is a decorator that logs every completion call.
type LoggingProvider struct {
	inner  Provider
	logger *slog.Logger
}

// WithLogging wraps a Provider with structured call logging. A nil logger
// uses slog.Default at call time.
func WithLogging(p Provider, logger *slog.Logger) Provider {
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	logger := l.logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []any{
		slog.String("purpose", PurposeFrom(ctx)),
		slog.String("model", l.inner.ModelID()),
		slog.Int64("latency_ms", latency.Milliseconds()),
	}
	if resp != nil {
		attrs = append(attrs,
			slog.Int("input_tokens", resp.Usage.InputTokens),
			slog.Int("output_tokens", resp.Usage.OutputTokens),
		)
		if cost := LookupCost(resp.Model); cost != nil {
			attrs = append(attrs, slog.Float64("cost_usd", cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens)))
		}
	}

	if err != nil {
		logger.WarnContext(ctx, "completion request failed", append(attrs, slog.Any("err", err))...)
	} else {
		logger.DebugContext(ctx, "completion request", attrs...)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
