package quizgen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// StructuralValidator enforces the shape Telegram quiz polls accept.
// Lengths are counted in characters, not bytes.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Quiz, _ string) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf(format, args...),
			Retryable: true,
		}
	}

	if strings.TrimSpace(q.Question) == "" {
		return fail("question is empty")
	}
	if n := utf8.RuneCountInString(q.Question); n > MaxQuestionLen {
		return fail("question has %d characters, limit is %d", n, MaxQuestionLen)
	}
	if len(q.Options) != NumOptions {
		return fail("expected %d options, got %d", NumOptions, len(q.Options))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fail("option %d is empty", i)
		}
		if n := utf8.RuneCountInString(opt); n > MaxOptionLen {
			return fail("option %d has %d characters, limit is %d", i, n, MaxOptionLen)
		}
	}
	if q.CorrectOptionID < 0 || q.CorrectOptionID >= NumOptions {
		return fail("correct_option_id %d out of range [0,%d]", q.CorrectOptionID, NumOptions-1)
	}
	if n := utf8.RuneCountInString(q.Explanation); n > MaxExplanationLen {
		return fail("explanation has %d characters, limit is %d", n, MaxExplanationLen)
	}
	if n := strings.Count(q.Explanation, "\n"); n > MaxExplanationLineFeeds {
		return fail("explanation has %d line feeds, limit is %d", n, MaxExplanationLineFeeds)
	}
	return nil
}

// DuplicateValidator rejects a quiz whose question text equals the
// previous one. The comparison is exact.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(q *Quiz, previous string) *ValidationError {
	if previous != "" && q.Question == previous {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question repeats the previous quiz",
			Retryable: true,
			Err:       ErrDuplicate,
		}
	}
	return nil
}
