package quizgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/abhisek/dsaquiz/internal/llm"
	"github.com/abhisek/dsaquiz/internal/telemetry"
)

const tracerName = "dsaquiz/quizgen"

// LLMGenerator implements Generator on top of an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	if cfg.Sleep == nil {
		cfg.Sleep = llm.Sleep
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Retry.MaxAttempts < 1 {
		cfg.Retry.MaxAttempts = 1
	}
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate runs up to Retry.MaxAttempts completion attempts, waiting
// Backoff between them, and falls back to Fallback() when none succeeds.
// Cancelling ctx stops the loop and yields the fallback.
func (g *LLMGenerator) Generate(ctx context.Context, previous string) Result {
	ctx = llm.WithPurpose(ctx, "quiz-gen")
	ctx, span := telemetry.StartSpan(ctx, tracerName, "quizgen.generate")
	defer span.End()

	logger := g.config.Logger
	maxAttempts := g.config.Retry.MaxAttempts

	var lastErr error
	attempts := 0
	for attempt := range maxAttempts {
		attempts++
		q, err := g.attempt(ctx, previous)
		if err == nil {
			span.SetAttributes(
				attribute.Int("quiz.attempts", attempts),
				attribute.Bool("quiz.fallback", false),
			)
			telemetry.SetSpanSuccess(span)
			return Result{Quiz: *q, Attempts: attempts}
		}

		lastErr = err
		logger.Warn("quiz generation attempt failed",
			"attempt", attempts,
			"max_attempts", maxAttempts,
			"error", err,
		)

		if !retryable(err) || attempt == maxAttempts-1 {
			break
		}
		if err := g.config.Sleep(ctx, llm.Backoff(g.config.Retry, attempt)); err != nil {
			lastErr = err
			break
		}
	}

	logger.Error("quiz generation failed, using fallback question",
		"attempts", attempts,
		"error", lastErr,
	)
	span.SetAttributes(
		attribute.Int("quiz.attempts", attempts),
		attribute.Bool("quiz.fallback", true),
	)
	telemetry.RecordError(span, lastErr)
	return Result{Quiz: Fallback(), Fallback: true, Attempts: attempts, Err: lastErr}
}

func (g *LLMGenerator) attempt(ctx context.Context, previous string) (*Quiz, error) {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userPrompt},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	q, err := decodeQuiz(resp.Content)
	if err != nil {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("decode quiz: %w", err),
		}
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(&q, previous); verr != nil {
			return nil, verr
		}
	}

	return &q, nil
}

func retryable(err error) bool {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Retryable
	}
	return llm.Retryable(err)
}
