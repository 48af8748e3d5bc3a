package quizgen

import "context"

// Generator produces quiz questions.
type Generator interface {
	// Generate returns a quiz that differs from previous. It never fails:
	// when every attempt is rejected the fallback quiz is returned.
	Generate(ctx context.Context, previous string) Result
}
