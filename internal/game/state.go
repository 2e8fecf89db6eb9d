// Package game is the MathQuest session controller. It owns the player's
// in-memory progress and drives problem generation, answer evaluation,
// feedback, and persistence as Bubble Tea commands.
package game

import (
	"time"

	"github.com/abhisek/mathquest/internal/progress"
)

// Screen is the visible phase of the game.
type Screen int

const (
	ScreenLoading   Screen = iota // Fetching the stored progress
	ScreenMenu                    // Level, XP, badges, start prompt
	ScreenPlaying                 // Question, options, feedback
	ScreenDashboard               // Stats and badge catalog
)

func (s Screen) String() string {
	switch s {
	case ScreenLoading:
		return "loading"
	case ScreenMenu:
		return "menu"
	case ScreenPlaying:
		return "playing"
	case ScreenDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// SyncStatus is the state of the persistence task.
type SyncStatus int

const (
	SyncIdle    SyncStatus = iota // Nothing saved this session
	SyncPending                   // A save is in flight
	SyncSaved                     // The last save succeeded
	SyncFailed                    // The last save failed; progress is unsaved
)

func (s SyncStatus) String() string {
	switch s {
	case SyncIdle:
		return "idle"
	case SyncPending:
		return "saving"
	case SyncSaved:
		return "saved"
	case SyncFailed:
		return "unsaved"
	default:
		return "unknown"
	}
}

// Sync tracks the persistence task. At most one save is in flight; answers
// recorded meanwhile set Dirty and are saved when it completes.
type Sync struct {
	Status  SyncStatus
	Err     error     // Set when Status is SyncFailed
	Seq     uint64    // Sequence number of the latest issued save
	SavedAt time.Time // Completion time of the last successful save
	Dirty   bool      // Progress changed after the in-flight save was issued

	// Temporary is set with SyncFailed when the store reported a transient
	// failure; the next save may succeed.
	Temporary bool
}

// Feedback describes the outcome of the answered problem.
type Feedback struct {
	ChosenIndex  int
	Correct      bool
	PointsEarned int
	NewBadges    []progress.BadgeID
	LeveledUp    bool

	// Explanation is the one-sentence feedback. Empty while Explaining.
	Explanation string
	Explaining  bool
}

// State is the complete UI state. It is a value: Controller.Update returns
// a new State for every message.
type State struct {
	Screen Screen

	// Progress is the session's source of truth. Persistence mirrors it.
	Progress progress.Progress

	// Problem is the current question; nil before the first request.
	Problem *progress.Problem

	// Fallback reports that Problem is the built-in fallback problem.
	Fallback bool

	// Generating is true while a problem request is in flight.
	Generating bool

	// Round numbers problem requests. Late results for earlier rounds are
	// dropped.
	Round int

	// Cursor is the highlighted option.
	Cursor int

	// Feedback is set once the current problem is answered.
	Feedback *Feedback

	// Banner is a dismissible advisory message. Empty when hidden.
	Banner string

	// Offline is set when the stored progress could not be fetched.
	Offline bool

	Sync Sync

	// SessionID identifies this run in the answer event log.
	SessionID string

	// Asked lists the questions served this session, oldest first.
	Asked []string

	SessionAnswered int
	SessionCorrect  int
}

// Answered reports whether the current problem has been answered.
func (s State) Answered() bool {
	return s.Feedback != nil
}

// CanAnswer reports whether an option may be chosen now.
// Unsaved reports whether progress changed since the last successful save.
func (s State) Unsaved() bool {
	return s.Sync.Dirty || s.Sync.Status == SyncPending || s.Sync.Status == SyncFailed
}

func (s State) CanAnswer() bool {
	return s.Screen == ScreenPlaying && s.Problem != nil && !s.Generating && s.Feedback == nil
}

// SessionAccuracy returns the fraction of this session's answers that were
// correct.
func (s State) SessionAccuracy() float64 {
	if s.SessionAnswered == 0 {
		return 0
	}
	return float64(s.SessionCorrect) / float64(s.SessionAnswered)
}
