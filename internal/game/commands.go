package game

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/progress"
	"github.com/abhisek/mathquest/internal/store"
)

func (c *Controller) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}

func (c *Controller) fetchProgress() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := c.opContext()
		defer cancel()
		p, err := c.repo.Fetch(ctx)
		return ProgressLoadedMsg{Progress: p, Err: err}
	}
}

// maxGenerateAttempts bounds regeneration after retryable validator
// rejections.
const maxGenerateAttempts = 3

func (c *Controller) generateProblem(sessionID string, round, level int, asked []string) tea.Cmd {
	return func() tea.Msg {
		if c.gen == nil {
			return ProblemReadyMsg{Round: round}
		}
		ctx, cancel := c.opContext()
		defer cancel()

		input := problemgen.GenerateInput{
			Level:          level,
			PriorQuestions: asked,
			SessionID:      sessionID,
		}
		var p *progress.Problem
		var err error
		for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
			p, err = c.gen.Generate(ctx, input)
			var valErr *problemgen.ValidationError
			if err == nil || !errors.As(err, &valErr) || !valErr.Retryable {
				break
			}
			c.logger.Debug("generated problem rejected, regenerating",
				zap.Int("attempt", attempt), zap.String("validator", valErr.Validator))
		}
		return ProblemReadyMsg{Round: round, Problem: p, Err: err}
	}
}

func (c *Controller) explain(sessionID string, round int, p progress.Problem, index int, correct bool) tea.Cmd {
	return func() tea.Msg {
		if c.gen == nil {
			return ExplanationMsg{Round: round, Text: problemgen.FallbackExplanation(correct)}
		}
		ctx, cancel := c.opContext()
		defer cancel()
		text, err := c.gen.Explain(ctx, problemgen.ExplainInput{
			Problem:      p,
			ChosenOption: p.Option(index),
			Correct:      correct,
			SessionID:    sessionID,
		})
		return ExplanationMsg{Round: round, Text: text, Err: err}
	}
}

// errFlushed is reported for saves that run after Flush.
var errFlushed = errors.New("controller already flushed")

func (c *Controller) saveProgress(seq uint64, p progress.Progress) tea.Cmd {
	return func() tea.Msg {
		c.saveMu.Lock()
		defer c.saveMu.Unlock()
		if c.flushed {
			return SaveResultMsg{Seq: seq, Err: errFlushed}
		}
		ctx, cancel := c.opContext()
		defer cancel()
		saved, err := c.repo.Update(ctx, p)
		return SaveResultMsg{Seq: seq, Progress: saved, Err: err}
	}
}

func (c *Controller) logAnswer(sessionID string, level int, fallback bool, p progress.Problem, index int, out progress.Outcome) tea.Cmd {
	if c.answers == nil {
		return nil
	}
	data := store.AnswerEventData{
		SessionID:      sessionID,
		Level:          level,
		Topic:          p.Topic,
		Question:       p.Question,
		ChosenOption:   p.Option(index),
		CorrectOption:  p.CorrectOption(),
		Correct:        out.Correct,
		PointsEarned:   out.PointsEarned,
		BadgesUnlocked: out.NewBadges,
		Fallback:       fallback,
	}
	return func() tea.Msg {
		ctx, cancel := c.opContext()
		defer cancel()
		return AnswerLoggedMsg{Err: c.answers.AppendAnswerEvent(ctx, data)}
	}
}
