package problemgen

import (
	"fmt"

	"github.com/abhisek/mathquest/internal/progress"
)

// Validator inspects one generated problem. Implementations must not keep
// state between calls.
type Validator interface {
	Name() string
	Validate(p *progress.Problem, input GenerateInput) *ValidationError
}

// ValidationError is a problem rejection. Retryable is set when asking the
// model again could plausibly produce an acceptable problem.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// runValidators returns the first rejection from vs, or nil.
func runValidators(vs []Validator, p *progress.Problem, input GenerateInput) *ValidationError {
	for _, v := range vs {
		if verr := v.Validate(p, input); verr != nil {
			return verr
		}
	}
	return nil
}
