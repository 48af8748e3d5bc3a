package quizgen

import (
	"encoding/json"
	"fmt"
	"math"
)

// Limits imposed by Telegram quiz polls.
const (
	NumOptions        = 4
	MaxQuestionLen    = 300
	MaxOptionLen      = 100
	MaxExplanationLen = 200

	// MaxExplanationLineFeeds is the number of line feeds Telegram
	// accepts in a quiz explanation.
	MaxExplanationLineFeeds = 2
)

// Quiz is one multiple-choice question ready to be posted as a quiz poll.
type Quiz struct {
	// Question is the poll question text.
	Question string `json:"question"`

	// Options holds exactly NumOptions answer choices in display order.
	Options []string `json:"options"`

	// CorrectOptionID is the 0-based index of the correct option.
	CorrectOptionID int `json:"correct_option_id"`

	// Explanation is shown to users after they answer.
	Explanation string `json:"explanation"`
}

// Source labels where a quiz came from.
type Source string

const (
	SourceLLM      Source = "llm"
	SourceFallback Source = "fallback"
)

// Result is the outcome of one Generate call. Quiz is always usable.
type Result struct {
	Quiz Quiz

	// Fallback is true when every attempt failed and Quiz is the fixed
	// fallback question.
	Fallback bool

	// Attempts is the number of completion calls made.
	Attempts int

	// Err is the error of the last failed attempt. It is nil when an
	// attempt succeeded.
	Err error
}

// Source reports whether the quiz came from the model or the fallback.
func (r Result) Source() Source {
	if r.Fallback {
		return SourceFallback
	}
	return SourceLLM
}

// Fallback returns the fixed question used when generation fails.
// Each call returns a fresh copy.
func Fallback() Quiz {
	return Quiz{
		Question:        "What data structure is most efficient for implementing a priority queue?",
		Options:         []string{"Binary Heap", "Linked List", "Array", "Stack"},
		CorrectOptionID: 0,
		Explanation:     "Binary Heaps provide O(log n) insertion and extraction of the minimum/maximum element, making them ideal for priority queues.",
	}
}

// decodeQuiz parses a model response into a Quiz. JSON Schema counts 2.0
// as an integer, so correct_option_id is read as a number and accepted
// when it is integral.
func decodeQuiz(raw json.RawMessage) (Quiz, error) {
	var wire struct {
		Question        string      `json:"question"`
		Options         []string    `json:"options"`
		CorrectOptionID json.Number `json:"correct_option_id"`
		Explanation     string      `json:"explanation"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Quiz{}, err
	}

	id, err := wire.CorrectOptionID.Float64()
	if err != nil {
		return Quiz{}, fmt.Errorf("correct_option_id %q: %w", wire.CorrectOptionID, err)
	}
	if id != math.Trunc(id) || math.Abs(id) > math.MaxInt32 {
		return Quiz{}, fmt.Errorf("correct_option_id %s is not an integer index", wire.CorrectOptionID)
	}

	return Quiz{
		Question:        wire.Question,
		Options:         wire.Options,
		CorrectOptionID: int(id),
		Explanation:     wire.Explanation,
	}, nil
}
