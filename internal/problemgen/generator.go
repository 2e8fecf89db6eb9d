package problemgen

import (
	"context"

	"github.com/abhisek/mathquest/internal/progress"
)

// Generator produces quiz problems and answer feedback using an LLM provider.
type Generator interface {
	// Generate produces a single multiple-choice problem for the given input.
	// All configured validators are run before returning.
	Generate(ctx context.Context, input GenerateInput) (*progress.Problem, error)

	// Explain returns one sentence of feedback for an answered problem.
	Explain(ctx context.Context, input ExplainInput) (string, error)
}
