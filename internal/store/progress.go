package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/mathquest/internal/progress"
)

// progressRepo implements ProgressRepo on the progress_records table.
type progressRepo struct {
	drv *entsql.Driver
}

var progressColumns = []string{
	"id", "level", "total_score", "problems_solved", "correct_answers",
	"badges", "streak", "best_streak",
}

func (r *progressRepo) Fetch(ctx context.Context) (*progress.Progress, error) {
	q, args := entsql.Dialect(dialect.SQLite).
		Select(progressColumns...).
		From(entsql.Table(progressTable)).
		OrderBy(entsql.Asc("created_at"), entsql.Asc("id")).
		Limit(1).
		Query()

	records, err := r.query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("fetch progress: %w", err)
	}
	if len(records) > 0 {
		return &records[0], nil
	}
	return r.Create(ctx)
}

func (r *progressRepo) Create(ctx context.Context) (*progress.Progress, error) {
	p := progress.Initial()
	p.ID = uuid.NewString()

	badges, err := json.Marshal(p.Badges)
	if err != nil {
		return nil, fmt.Errorf("marshal badges: %w", err)
	}

	now := time.Now().UTC()
	q, args := entsql.Dialect(dialect.SQLite).
		Insert(progressTable).
		Columns(slices.Concat(progressColumns, []string{"created_at", "updated_at"})...).
		Values(p.ID, p.Level, p.TotalScore, p.ProblemsSolved, p.CorrectAnswers,
			string(badges), p.Streak, p.BestStreak, now, now).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return nil, fmt.Errorf("create progress: %w", err)
	}
	return &p, nil
}

func (r *progressRepo) Update(ctx context.Context, p progress.Progress) (*progress.Progress, error) {
	if p.ID == "" {
		return r.Create(ctx)
	}

	out := p.Clone()
	badges, err := json.Marshal(out.Badges)
	if err != nil {
		return nil, fmt.Errorf("marshal badges: %w", err)
	}

	q, args := entsql.Dialect(dialect.SQLite).
		Update(progressTable).
		Set("level", out.Level).
		Set("total_score", out.TotalScore).
		Set("problems_solved", out.ProblemsSolved).
		Set("correct_answers", out.CorrectAnswers).
		Set("badges", string(badges)).
		Set("streak", out.Streak).
		Set("best_streak", out.BestStreak).
		Set("updated_at", time.Now().UTC()).
		Where(entsql.EQ("id", out.ID)).
		Query()

	var res entsql.Result
	if err := r.drv.Exec(ctx, q, args, &res); err != nil {
		return nil, fmt.Errorf("update progress %s: %w", out.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update progress %s: %w", out.ID, err)
	}
	if n == 0 {
		return nil, &NotFoundError{Kind: "progress", ID: out.ID}
	}
	return &out, nil
}

func (r *progressRepo) query(ctx context.Context, q string, args []any) ([]progress.Progress, error) {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []progress.Progress
	for rows.Next() {
		var (
			p      progress.Progress
			badges string
		)
		if err := rows.Scan(&p.ID, &p.Level, &p.TotalScore, &p.ProblemsSolved,
			&p.CorrectAnswers, &badges, &p.Streak, &p.BestStreak); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(badges), &p.Badges); err != nil {
			return nil, fmt.Errorf("decode badges of %s: %w", p.ID, err)
		}
		if p.Badges == nil {
			p.Badges = []progress.BadgeID{}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// NotFoundError indicates that a record addressed by ID does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
