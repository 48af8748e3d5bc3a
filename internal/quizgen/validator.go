package quizgen

import (
	"errors"
	"fmt"
)

// ErrDuplicate is wrapped by the ValidationError returned when the model
// repeats the previous question.
var ErrDuplicate = errors.New("repeated question")

// Validator checks a generated quiz before it is accepted.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in errors and logs.
	Name() string

	// Validate returns nil if q passes. previous is the question text of
	// the last quiz posted, empty if there is none.
	Validate(q *Quiz, previous string) *ValidationError
}

// ValidationError describes why a quiz failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
	Err       error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }
