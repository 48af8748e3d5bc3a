package quizgen

import (
	"errors"
	"strings"
	"testing"
)

func goodQuiz() Quiz {
	return Quiz{
		Question:        "Which traversal yields sorted order in a BST?",
		Options:         []string{"Preorder", "Inorder", "Postorder", "Level order"},
		CorrectOptionID: 1,
		Explanation:     "Inorder visits left subtree, node, right subtree.",
	}
}

func TestStructuralValidator(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *Quiz)
		ok     bool
	}{
		{"valid", func(q *Quiz) {}, true},
		{"empty question", func(q *Quiz) { q.Question = "  " }, false},
		{"question at limit", func(q *Quiz) { q.Question = strings.Repeat("q", MaxQuestionLen) }, true},
		{"question too long", func(q *Quiz) { q.Question = strings.Repeat("q", MaxQuestionLen+1) }, false},
		{"three options", func(q *Quiz) { q.Options = q.Options[:3] }, false},
		{"five options", func(q *Quiz) { q.Options = append(q.Options, "Extra") }, false},
		{"empty option", func(q *Quiz) { q.Options[2] = "" }, false},
		{"option at limit", func(q *Quiz) { q.Options[0] = strings.Repeat("o", MaxOptionLen) }, true},
		{"option too long", func(q *Quiz) { q.Options[0] = strings.Repeat("o", 150) }, false},
		{"multibyte option at limit", func(q *Quiz) { q.Options[0] = strings.Repeat("²", MaxOptionLen) }, true},
		{"negative index", func(q *Quiz) { q.CorrectOptionID = -1 }, false},
		{"index 7", func(q *Quiz) { q.CorrectOptionID = 7 }, false},
		{"index 3", func(q *Quiz) { q.CorrectOptionID = 3 }, true},
		{"empty explanation", func(q *Quiz) { q.Explanation = "" }, true},
		{"explanation too long", func(q *Quiz) { q.Explanation = strings.Repeat("e", MaxExplanationLen+1) }, false},
		{"explanation with two line feeds", func(q *Quiz) { q.Explanation = "Inorder:\nleft, node,\nright." }, true},
		{"explanation with three line feeds", func(q *Quiz) { q.Explanation = "Inorder:\nleft\nnode\nright" }, false},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := goodQuiz()
			tt.mutate(&q)
			verr := v.Validate(&q, "")
			if tt.ok && verr != nil {
				t.Fatalf("expected valid, got %v", verr)
			}
			if !tt.ok {
				if verr == nil {
					t.Fatal("expected validation error")
				}
				if !verr.Retryable {
					t.Error("structural failures should be retryable")
				}
				if verr.Validator != "structural" {
					t.Errorf("unexpected validator name %q", verr.Validator)
				}
			}
		})
	}
}

func TestDuplicateValidator(t *testing.T) {
	v := &DuplicateValidator{}
	q := goodQuiz()

	if verr := v.Validate(&q, ""); verr != nil {
		t.Fatalf("no previous question should pass, got %v", verr)
	}
	if verr := v.Validate(&q, "Something else?"); verr != nil {
		t.Fatalf("different question should pass, got %v", verr)
	}

	verr := v.Validate(&q, q.Question)
	if verr == nil {
		t.Fatal("expected duplicate to be rejected")
	}
	if !verr.Retryable {
		t.Error("duplicates should be retryable")
	}
	if !errors.Is(verr, ErrDuplicate) {
		t.Error("expected error to wrap ErrDuplicate")
	}
}

func TestFallback_PassesValidators(t *testing.T) {
	q := Fallback()
	for _, v := range DefaultConfig().Validators {
		if verr := v.Validate(&q, ""); verr != nil {
			t.Fatalf("fallback rejected by %s: %v", v.Name(), verr)
		}
	}
	if q.CorrectOptionID != 0 || q.Options[0] != "Binary Heap" {
		t.Fatalf("unexpected fallback: %+v", q)
	}
}
