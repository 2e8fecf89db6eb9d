package game

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/progress"
	"github.com/abhisek/mathquest/internal/store"
)

// DefaultTimeout bounds each store and generator call.
const DefaultTimeout = 30 * time.Second

// AnswerLogger records answered problems. store.EventRepo satisfies it.
type AnswerLogger interface {
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
}

// Controller applies messages to State and issues the I/O commands. It holds
// no game state itself.
type Controller struct {
	repo    store.ProgressRepo
	gen     problemgen.Generator
	answers AnswerLogger
	logger  *zap.Logger
	timeout time.Duration
	now     func() time.Time

	// saveMu serializes writes to repo. Once flushed is set, saves still
	// queued in the event loop are dropped.
	saveMu  sync.Mutex
	flushed bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithAnswerLogger records every answer in the event log.
func WithAnswerLogger(l AnswerLogger) Option {
	return func(c *Controller) { c.answers = l }
}

// WithLogger sets the logger. Default: no-op.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithTimeout bounds each store and generator call.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithClock overrides the clock used for Sync.SavedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates a Controller. A nil gen serves fallback problems only.
func New(repo store.ProgressRepo, gen problemgen.Generator, opts ...Option) *Controller {
	c := &Controller{
		repo:    repo,
		gen:     gen,
		logger:  zap.NewNop(),
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init returns the loading state and the command that fetches progress.
func (c *Controller) Init() (State, tea.Cmd) {
	s := State{
		Screen:    ScreenLoading,
		Progress:  progress.Initial(),
		SessionID: uuid.NewString(),
	}
	if c.gen == nil {
		s.Banner = NoGeneratorBanner
	}
	return s, c.fetchProgress()
}

// Update applies msg to s.
func (c *Controller) Update(s State, msg tea.Msg) (State, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressLoadedMsg:
		return c.handleLoaded(s, msg)
	case ProblemReadyMsg:
		return c.handleProblem(s, msg)
	case ExplanationMsg:
		return c.handleExplanation(s, msg)
	case SaveResultMsg:
		return c.handleSaveResult(s, msg)
	case AnswerLoggedMsg:
		if msg.Err != nil {
			c.logger.Warn("failed to log answer event", zap.Error(msg.Err))
		}
		return s, nil

	case StartMissionMsg:
		if s.Screen == ScreenLoading {
			return s, nil
		}
		s.Screen = ScreenPlaying
		return c.ensureProblem(s)
	case ToggleDashboardMsg:
		switch s.Screen {
		case ScreenDashboard:
			s.Screen = ScreenPlaying
			return c.ensureProblem(s)
		case ScreenMenu, ScreenPlaying:
			s.Screen = ScreenDashboard
		}
		return s, nil
	case BackToMenuMsg:
		if s.Screen != ScreenLoading {
			s.Screen = ScreenMenu
		}
		return s, nil
	case MoveCursorMsg:
		if !s.CanAnswer() || len(s.Problem.Options) == 0 {
			return s, nil
		}
		n := len(s.Problem.Options)
		s.Cursor = ((s.Cursor+msg.Delta)%n + n) % n
		return s, nil
	case AnswerMsg:
		return c.answer(s, msg.Index)
	case NextProblemMsg:
		if s.Screen != ScreenPlaying || !s.Answered() {
			return s, nil
		}
		return c.requestProblem(s)
	case DismissBannerMsg:
		s.Banner = ""
		return s, nil
	}
	return s, nil
}

func (c *Controller) handleLoaded(s State, msg ProgressLoadedMsg) (State, tea.Cmd) {
	s.Screen = ScreenMenu
	if msg.Err != nil || msg.Progress == nil {
		c.logger.Warn("failed to fetch progress, playing offline", zap.Error(msg.Err))
		s.Progress = progress.Initial()
		s.Offline = true
		s.Banner = OfflineBanner
		return s, nil
	}
	s.Progress = msg.Progress.Clone()
	if err := progress.Check(s.Progress); err != nil {
		c.logger.Warn("stored progress record is malformed",
			zap.String("id", s.Progress.ID), zap.Error(err))
	}
	c.logger.Info("progress loaded",
		zap.String("id", s.Progress.ID),
		zap.Int("level", s.Progress.Level),
		zap.Int("total_score", s.Progress.TotalScore),
	)
	return s, nil
}

// ensureProblem requests a problem unless one is showing or in flight.
func (c *Controller) ensureProblem(s State) (State, tea.Cmd) {
	if s.Generating || (s.Problem != nil && !s.Answered()) {
		return s, nil
	}
	return c.requestProblem(s)
}

func (c *Controller) requestProblem(s State) (State, tea.Cmd) {
	s.Round++
	s.Generating = true
	s.Problem = nil
	s.Fallback = false
	s.Feedback = nil
	s.Cursor = 0
	return s, c.generateProblem(s.SessionID, s.Round, s.Progress.Level, slices.Clone(s.Asked))
}

func (c *Controller) handleProblem(s State, msg ProblemReadyMsg) (State, tea.Cmd) {
	if msg.Round != s.Round || !s.Generating {
		return s, nil
	}
	s.Generating = false

	if msg.Err != nil || msg.Problem == nil {
		var valErr *problemgen.ValidationError
		switch {
		case errors.As(msg.Err, &valErr):
			c.logger.Warn("generated problems rejected, using fallback",
				zap.Int("level", s.Progress.Level), zap.Error(msg.Err))
		case msg.Err != nil:
			c.logger.Warn("problem generation failed, using fallback",
				zap.Int("level", s.Progress.Level), zap.Error(msg.Err))
			s.Banner = GeneratorBanner
		}
		p := problemgen.Fallback(s.Progress.Level)
		s.Problem = &p
		s.Fallback = true
	} else {
		p := *msg.Problem
		p.Options = slices.Clone(p.Options)
		s.Problem = &p
	}

	s.Asked = append(slices.Clone(s.Asked), s.Problem.Question)
	return s, nil
}

func (c *Controller) answer(s State, index int) (State, tea.Cmd) {
	if !s.CanAnswer() || index < 0 || index >= len(s.Problem.Options) {
		return s, nil
	}

	level := s.Progress.Level
	out := progress.Evaluate(s.Progress, *s.Problem, index)
	s.Progress = out.Progress
	s.Cursor = index
	s.SessionAnswered++
	if out.Correct {
		s.SessionCorrect++
	}
	s.Feedback = &Feedback{
		ChosenIndex:  index,
		Correct:      out.Correct,
		PointsEarned: out.PointsEarned,
		NewBadges:    out.NewBadges,
		LeveledUp:    out.LeveledUp,
		Explaining:   true,
	}

	c.logger.Info("answer",
		zap.Int("level", level),
		zap.Bool("correct", out.Correct),
		zap.Int("points", out.PointsEarned),
		zap.Int("total_score", s.Progress.TotalScore),
		zap.Int("streak", s.Progress.Streak),
	)

	cmds := []tea.Cmd{
		c.explain(s.SessionID, s.Round, *s.Problem, index, out.Correct),
		c.logAnswer(s.SessionID, level, s.Fallback, *s.Problem, index, out),
	}
	s, save := c.save(s)
	cmds = append(cmds, save)
	return s, tea.Batch(cmds...)
}

func (c *Controller) handleExplanation(s State, msg ExplanationMsg) (State, tea.Cmd) {
	if msg.Round != s.Round || s.Feedback == nil {
		return s, nil
	}
	fb := *s.Feedback
	fb.Explaining = false
	if msg.Err != nil || msg.Text == "" {
		if msg.Err != nil {
			c.logger.Warn("explanation failed", zap.Error(msg.Err))
		}
		fb.Explanation = problemgen.FallbackExplanation(fb.Correct)
	} else {
		fb.Explanation = msg.Text
	}
	s.Feedback = &fb
	return s, nil
}

// save issues a save of s.Progress, or marks the state dirty when one is
// already in flight.
func (c *Controller) save(s State) (State, tea.Cmd) {
	if s.Sync.Status == SyncPending {
		s.Sync.Dirty = true
		return s, nil
	}
	s.Sync.Seq++
	s.Sync.Status = SyncPending
	s.Sync.Err = nil
	s.Sync.Dirty = false
	return s, c.saveProgress(s.Sync.Seq, s.Progress.Clone())
}

func (c *Controller) handleSaveResult(s State, msg SaveResultMsg) (State, tea.Cmd) {
	if msg.Seq != s.Sync.Seq {
		c.logger.Debug("ignoring stale save result", zap.Uint64("seq", msg.Seq), zap.Uint64("latest", s.Sync.Seq))
		return s, nil
	}

	if msg.Err != nil {
		c.logger.Warn("failed to save progress", zap.Uint64("seq", msg.Seq), zap.Error(msg.Err))
		s.Sync.Status = SyncFailed
		s.Sync.Err = msg.Err
		s.Sync.Temporary = isTemporary(msg.Err)
	} else {
		s.Sync.Status = SyncSaved
		s.Sync.Err = nil
		s.Sync.Temporary = false
		s.Sync.SavedAt = c.now()
		s.Offline = false
		// Saving without an ID creates a fresh record; adopt its ID and
		// push the local progress into it.
		if s.Progress.ID == "" && msg.Progress != nil && msg.Progress.ID != "" {
			s.Progress.ID = msg.Progress.ID
			s.Sync.Dirty = true
		}
	}

	if s.Sync.Dirty {
		s.Sync.Status = SyncIdle
		return c.save(s)
	}
	return s, nil
}

// isTemporary reports whether err, or an error it wraps, says retrying may
// help. remote.StatusError does for 429 and 5xx responses.
func isTemporary(err error) bool {
	var t interface{ Temporary() bool }
	return errors.As(err, &t) && t.Temporary()
}

// Flush synchronously writes s.Progress when it has unsaved changes. It is
// the last write: saves issued earlier but not yet run are dropped.
func (c *Controller) Flush(ctx context.Context, s State) error {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()
	c.flushed = true

	if !s.Unsaved() {
		return nil
	}
	p := s.Progress.Clone()
	saved, err := c.repo.Update(ctx, p)
	if err == nil && p.ID == "" && saved != nil && saved.ID != "" {
		p.ID = saved.ID
		_, err = c.repo.Update(ctx, p)
	}
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	c.logger.Info("progress flushed",
		zap.String("id", p.ID),
		zap.Int("problems_solved", p.ProblemsSolved),
	)
	return nil
}
