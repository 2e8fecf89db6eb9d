package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathquest/internal/progress"
)

// buildDedup numbers the most recent limit prior questions for the prompt,
// or returns "None" when there are none. limit <= 0 keeps all of them.
func buildDedup(prior []string, limit int) string {
	if len(prior) == 0 {
		return "None"
	}
	if limit > 0 {
		prior = prior[max(len(prior)-limit, 0):]
	}

	lines := make([]string, len(prior))
	for i, q := range prior {
		lines[i] = fmt.Sprintf("%d. %s", i+1, q)
	}
	return strings.Join(lines, "\n")
}

func questionKey(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

// isRepeat compares questions ignoring case and whitespace runs.
func isRepeat(question string, prior []string) bool {
	key := questionKey(question)
	for _, p := range prior {
		if questionKey(p) == key {
			return true
		}
	}
	return false
}

// DedupValidator rejects a question already asked this session.
type DedupValidator struct{}

func (v *DedupValidator) Name() string { return "dedup" }

func (v *DedupValidator) Validate(p *progress.Problem, input GenerateInput) *ValidationError {
	if !isRepeat(p.Question, input.PriorQuestions) {
		return nil
	}
	return &ValidationError{
		Validator: v.Name(),
		Message:   "question was already asked in this session",
		Retryable: true,
	}
}
