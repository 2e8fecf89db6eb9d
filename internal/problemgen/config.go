package problemgen

// Config tunes LLMGenerator requests and post-processing.
type Config struct {
	// Validators run in order on every parsed problem. The first
	// rejection is returned as the Generate error.
	Validators []Validator

	MaxTokens        int // problem response budget
	ExplainMaxTokens int // feedback sentence budget

	Temperature float64

	// MaxPriorQuestions caps how many already-asked questions are
	// listed in the prompt, newest kept. Zero lists them all.
	MaxPriorQuestions int
}

// DefaultValidators is the standard chain: shape, distinct options,
// arithmetic, then repeats within the session.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&DistinctOptionsValidator{},
		&MathCheckValidator{},
		&DedupValidator{},
	}
}

func DefaultConfig() Config {
	return Config{
		Validators:        DefaultValidators(),
		MaxTokens:         512,
		ExplainMaxTokens:  128,
		Temperature:       0.7,
		MaxPriorQuestions: 8,
	}
}
