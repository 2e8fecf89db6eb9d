package game

import "github.com/abhisek/mathquest/internal/progress"

// Banner texts.
const (
	OfflineBanner     = "Failed to connect to the progress store. Using offline mode."
	GeneratorBanner   = "AI communications down. Serving a practice problem instead."
	NoGeneratorBanner = "No AI provider configured. Serving practice problems."
)

// Intents, sent by the UI.

// StartMissionMsg leaves the menu and starts playing.
type StartMissionMsg struct{}

// ToggleDashboardMsg switches between the current screen and the dashboard.
type ToggleDashboardMsg struct{}

// BackToMenuMsg returns to the menu.
type BackToMenuMsg struct{}

// MoveCursorMsg moves the option cursor by Delta, wrapping around.
type MoveCursorMsg struct {
	Delta int
}

// AnswerMsg answers the current problem with option Index.
type AnswerMsg struct {
	Index int
}

// NextProblemMsg requests the next problem after feedback.
type NextProblemMsg struct{}

// DismissBannerMsg hides the advisory banner.
type DismissBannerMsg struct{}

// Results, produced by the controller's commands.

// ProgressLoadedMsg carries the stored progress fetched at startup.
type ProgressLoadedMsg struct {
	Progress *progress.Progress
	Err      error
}

// ProblemReadyMsg carries a generated problem for Round.
type ProblemReadyMsg struct {
	Round   int
	Problem *progress.Problem
	Err     error
}

// ExplanationMsg carries the feedback sentence for Round.
type ExplanationMsg struct {
	Round int
	Text  string
	Err   error
}

// SaveResultMsg carries the result of save number Seq.
type SaveResultMsg struct {
	Seq      uint64
	Progress *progress.Progress
	Err      error
}

// AnswerLoggedMsg reports the answer event append.
type AnswerLoggedMsg struct {
	Err error
}
