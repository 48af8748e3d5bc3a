package quizgen

import "github.com/abhisek/dsaquiz/internal/llm"

// QuizSchema defines the JSON schema for quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "dsa-quiz",
	Description: "A single multiple-choice question about data structures and algorithms",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"minLength":   1,
				"maxLength":   MaxQuestionLen,
				"description": "The quiz question",
			},
			"options": map[string]any{
				"type":     "array",
				"minItems": NumOptions,
				"maxItems": NumOptions,
				"items": map[string]any{
					"type":      "string",
					"minLength": 1,
					"maxLength": MaxOptionLen,
				},
				"description": "Exactly 4 distinct answer options",
			},
			"correct_option_id": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     NumOptions - 1,
				"description": "0-based index of the correct option",
			},
			"explanation": map[string]any{
				"type":        "string",
				"maxLength":   MaxExplanationLen,
				"description": "Brief explanation of the correct answer",
			},
		},
		"required":             []any{"question", "options", "correct_option_id", "explanation"},
		"additionalProperties": false,
	},
}
