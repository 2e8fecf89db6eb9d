// Package progress implements the scoring, streak, badge and level rules
// applied to a player's record after each answered question.
package progress

import "fmt"

// Outcome describes a single answer transition.
type Outcome struct {
	// Progress is the record after the answer.
	Progress Progress

	Correct      bool
	PointsEarned int

	// NewBadges lists badges unlocked by this answer, in unlock order.
	NewBadges []BadgeID

	LeveledUp bool
}

// ApplyAnswer returns the record that results from answering problem with
// option chosenIndex. It is pure: p is not modified.
func ApplyAnswer(p Progress, problem Problem, chosenIndex int) Progress {
	return Evaluate(p, problem, chosenIndex).Progress
}

// Evaluate is ApplyAnswer with a report of what changed.
//
// Badge thresholds are exact-equality checks against the counters after
// they are incremented, and the level-up check runs last because it reads
// the updated correct-answer count.
func Evaluate(p Progress, problem Problem, chosenIndex int) Outcome {
	next := p.Clone()
	out := Outcome{Correct: chosenIndex == problem.CorrectOptionIndex}

	next.ProblemsSolved++

	if !out.Correct {
		next.Streak = 0
		out.Progress = next
		return out
	}

	next.CorrectAnswers++
	next.Streak++

	out.PointsEarned = 10*next.Level + 2*next.Streak
	next.TotalScore += out.PointsEarned

	if next.Streak > next.BestStreak {
		next.BestStreak = next.Streak
	}

	unlock := func(id BadgeID) {
		if next.HasBadge(id) {
			return
		}
		next.Badges = append(next.Badges, id)
		out.NewBadges = append(out.NewBadges, id)
	}

	if next.ProblemsSolved == 5 {
		unlock(BadgeNoviceCounter)
	}
	if next.Streak == 5 {
		unlock(BadgeStreakMaster)
	}
	if next.CorrectAnswers == 50 {
		unlock(BadgeMathWizard)
	}

	if next.CorrectAnswers%LevelUpEvery == 0 && next.Level < MaxLevel {
		next.Level++
		out.LeveledUp = true
		unlock(BadgeLevelUp)
	}

	out.Progress = next
	return out
}

// Check returns an error describing the first invariant p violates.
func Check(p Progress) error {
	switch {
	case p.Level < 1 || p.Level > MaxLevel:
		return fmt.Errorf("level %d outside 1..%d", p.Level, MaxLevel)
	case p.TotalScore < 0:
		return fmt.Errorf("negative total_score %d", p.TotalScore)
	case p.CorrectAnswers < 0:
		return fmt.Errorf("negative correct_answers %d", p.CorrectAnswers)
	case p.CorrectAnswers > p.ProblemsSolved:
		return fmt.Errorf("correct_answers %d exceeds problems_solved %d", p.CorrectAnswers, p.ProblemsSolved)
	case p.Streak < 0:
		return fmt.Errorf("negative streak %d", p.Streak)
	case p.Streak > p.BestStreak:
		return fmt.Errorf("streak %d exceeds best_streak %d", p.Streak, p.BestStreak)
	}

	seen := make(map[BadgeID]bool, len(p.Badges))
	for _, b := range p.Badges {
		if seen[b] {
			return fmt.Errorf("duplicate badge %q", b)
		}
		seen[b] = true
	}
	return nil
}
