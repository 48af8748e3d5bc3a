package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/dsaquiz/internal/config"
	"github.com/abhisek/dsaquiz/internal/llm"
	"github.com/abhisek/dsaquiz/internal/quizgen"
	"github.com/abhisek/dsaquiz/internal/telemetry"
)

// newGenerator builds the provider chain and the quiz generator. metrics
// may be nil.
func newGenerator(ctx context.Context, cfg *config.Generation, logger *slog.Logger, metrics *telemetry.Metrics) (*quizgen.LLMGenerator, error) {
	var recorder llm.Recorder
	if metrics != nil {
		recorder = metrics
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, logger, recorder)
	if err != nil {
		return nil, fmt.Errorf("LLM provider: %w", err)
	}

	qcfg := quizgen.DefaultConfig()
	qcfg.MaxTokens = cfg.Quiz.MaxTokens
	qcfg.Temperature = cfg.Quiz.Temperature
	qcfg.Retry.MaxAttempts = cfg.Quiz.MaxAttempts
	qcfg.Logger = logger.With(slog.String("component", "quizgen"))

	logger.Info("quiz generator ready",
		slog.String("provider", cfg.LLM.Provider),
		slog.String("model", provider.ModelID()),
		slog.Int("max_attempts", qcfg.Retry.MaxAttempts),
	)
	return quizgen.New(provider, qcfg), nil
}
