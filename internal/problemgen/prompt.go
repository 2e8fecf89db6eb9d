package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathquest/internal/progress"
)

const systemPrompt = `You are a quiz master for a space-themed math game. Players advance through levels 1 to 10, each with its own topic.

Rules:
- Generate a single, unique multiple-choice math problem for the given level and topic.
- Use plain ASCII text for all math. No LaTeX. Use / for fractions, * for multiplication, ^ for powers.
- The question must be clear, self-contained, and solvable without a calculator at the given level.
- Provide exactly 4 options where exactly one is correct. Distractors should reflect common mistakes, not random values.
- No two options may be the same.
- correctOptionIndex is the zero-based position of the correct option.
- Rate difficulty from 1 to 10 relative to the whole curriculum.
- Do not repeat any question from the "already asked" list.`

const explainSystemPrompt = `You are an encouraging math coach in a space-themed quiz game. Reply with exactly one short sentence of plain text. No markdown.`

// buildUserMessage constructs the problem request from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Level: %d\n", input.Level)
	fmt.Fprintf(&b, "Topic: %s\n", progress.LevelTopic(input.Level))

	b.WriteString("\nAlready asked in this session:\n")
	b.WriteString(buildDedup(input.PriorQuestions, cfg.MaxPriorQuestions))

	return b.String()
}

// buildExplainMessage constructs the feedback request for an answered problem.
func buildExplainMessage(input ExplainInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question: %s\n", input.Problem.Question)
	fmt.Fprintf(&b, "Correct answer: %s\n", input.Problem.CorrectOption())
	fmt.Fprintf(&b, "Player answered: %s\n\n", input.ChosenOption)

	if input.Correct {
		b.WriteString("The player was right. Congratulate them and add a fun math fact related to the problem.")
	} else {
		b.WriteString("The player was wrong. Explain the mistake simply and show how to reach the correct answer.")
	}
	return b.String()
}
