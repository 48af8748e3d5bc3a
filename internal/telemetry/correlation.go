package telemetry

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type corrKey struct{}

// NewCorrelationID returns a fresh random id for a tick or command run.
func NewCorrelationID() string {
	return uuid.NewString()
}

// WithCorrelation returns a context carrying the correlation id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey{}, id)
}

// GetCorrelation returns the correlation id or an empty string.
func GetCorrelation(ctx context.Context) string {
	if s, ok := ctx.Value(corrKey{}).(string); ok {
		return s
	}
	return ""
}

// LoggerFrom returns base annotated with the context's correlation id,
// if there is one.
func LoggerFrom(ctx context.Context, base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}
	if id := GetCorrelation(ctx); id != "" {
		return base.With(slog.String("tick", id))
	}
	return base
}
