package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathquest/internal/progress"
)

// OptionCount is the number of options every problem carries.
const OptionCount = 4

// StructuralValidator checks that required fields are present, within
// length limits, and in range.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *progress.Problem, _ GenerateInput) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	if strings.TrimSpace(p.Question) == "" {
		return fail("question is empty")
	}
	if len(p.Question) > 500 {
		return fail("question exceeds 500 characters")
	}
	if len(p.Options) != OptionCount {
		return fail(fmt.Sprintf("expected %d options, got %d", OptionCount, len(p.Options)))
	}
	for i, opt := range p.Options {
		if strings.TrimSpace(opt) == "" {
			return fail(fmt.Sprintf("option %d is empty", i))
		}
		if len(opt) > 100 {
			return fail(fmt.Sprintf("option %d exceeds 100 characters", i))
		}
	}
	if p.CorrectOptionIndex < 0 || p.CorrectOptionIndex >= OptionCount {
		return fail(fmt.Sprintf("correctOptionIndex %d out of range", p.CorrectOptionIndex))
	}
	if p.DifficultyRating < 1 || p.DifficultyRating > 10 {
		return fail("difficultyRating must be between 1 and 10")
	}
	return nil
}

// DistinctOptionsValidator rejects problems whose options repeat after
// case and whitespace folding.
type DistinctOptionsValidator struct{}

func (v *DistinctOptionsValidator) Name() string { return "distinct-options" }

func (v *DistinctOptionsValidator) Validate(p *progress.Problem, _ GenerateInput) *ValidationError {
	seen := make(map[string]int, len(p.Options))
	for i, opt := range p.Options {
		key := strings.ToLower(strings.Join(strings.Fields(opt), " "))
		if j, ok := seen[key]; ok {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("options %d and %d are both %q", j, i, opt),
				Retryable: true,
			}
		}
		seen[key] = i
	}
	return nil
}
