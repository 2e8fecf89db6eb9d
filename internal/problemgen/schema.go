package problemgen

import "github.com/abhisek/mathquest/internal/llm"

// ProblemSchema defines the JSON schema for LLM problem generation responses.
var ProblemSchema = &llm.Schema{
	Name:        "quiz-problem",
	Description: "A single multiple-choice math problem with four options",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question shown to the player, in plain ASCII text",
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"minItems":    4,
				"maxItems":    4,
				"description": "Exactly 4 answer options, one of which is correct",
			},
			"correctOptionIndex": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     3,
				"description": "Zero-based index of the correct option",
			},
			"topic": map[string]any{
				"type":        "string",
				"description": "The curriculum topic the problem covers",
			},
			"difficultyRating": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     10,
				"description": "Self-assessed difficulty from 1 (easy) to 10 (hard)",
			},
		},
		"required":             []any{"question", "options", "correctOptionIndex", "topic", "difficultyRating"},
		"additionalProperties": false,
	},
}
