package problemgen

import "github.com/abhisek/mathquest/internal/progress"

// GenerateInput holds all context needed to generate a problem.
type GenerateInput struct {
	// Level is the player's current level (1-10). It selects the
	// curriculum topic via progress.LevelTopic.
	Level int

	// PriorQuestions contains the Question text of problems already asked
	// in this session. Used for deduplication in the prompt.
	PriorQuestions []string

	// SessionID tags the LLM request with the game session, if set.
	SessionID string
}

// ExplainInput holds the answered problem and the player's choice.
type ExplainInput struct {
	Problem progress.Problem

	// ChosenOption is the text of the option the player picked.
	ChosenOption string

	// Correct reports whether the choice was the correct option.
	Correct bool

	SessionID string
}
