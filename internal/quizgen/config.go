package quizgen

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/dsaquiz/internal/llm"
)

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated quiz. The first failure stops the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the completion.
	MaxTokens int

	// Temperature controls sampling randomness.
	Temperature float64

	// Retry sets the attempt budget and the backoff between attempts.
	Retry llm.RetryConfig

	// Sleep waits between attempts. Nil uses llm.Sleep; tests replace it
	// to observe the backoff schedule.
	Sleep func(ctx context.Context, d time.Duration) error

	// Logger receives per-attempt failures. Nil uses slog.Default.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with the standard validator chain,
// three attempts and the 1s/2s backoff.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DuplicateValidator{},
		},
		MaxTokens:   250,
		Temperature: 0.8,
		Retry:       llm.DefaultRetryConfig(),
	}
}
