package problemgen

import (
	"fmt"
	"strconv"

	"github.com/abhisek/mathquest/internal/progress"
)

// FallbackTopic is the topic of problems produced by Fallback.
const FallbackTopic = "Fallback Arithmetic"

// Fallback returns a deterministic problem for level, used when generation
// fails. The correct option is always at index 1.
func Fallback(level int) progress.Problem {
	n := level*12 + 5
	return progress.Problem{
		Question: fmt.Sprintf("Calculate %d * 12 + 5", level),
		Options: []string{
			strconv.Itoa(n - 1),
			strconv.Itoa(n),
			strconv.Itoa(n + 1),
			strconv.Itoa(n + 5),
		},
		CorrectOptionIndex: 1,
		Topic:              FallbackTopic,
		DifficultyRating:   1,
	}
}

// FallbackExplanation is the neutral feedback used when Explain fails.
func FallbackExplanation(correct bool) string {
	if correct {
		return "Correct!"
	}
	return "Incorrect."
}
