package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathquest/internal/progress"
)

var answerEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "level", "topic", "question",
	"chosen_option", "correct_option", "correct", "points_earned",
	"badges_unlocked", "fallback",
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	badges := data.BadgesUnlocked
	if badges == nil {
		badges = []progress.BadgeID{}
	}
	badgesJSON, err := json.Marshal(badges)
	if err != nil {
		return fmt.Errorf("marshal badges: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := entsql.Dialect(dialect.SQLite).
		Insert(answerEventTable).
		Columns(answerEventColumns[1:]...).
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Level, data.Topic,
			data.Question, data.ChosenOption, data.CorrectOption, data.Correct,
			data.PointsEarned, string(badgesJSON), data.Fallback).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(answerEventColumns...).
		From(entsql.Table(answerEventTable))
	applyQueryOpts(sel, opts)
	q, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEvent
	for rows.Next() {
		var (
			e      AnswerEvent
			badges string
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &e.Level,
			&e.Topic, &e.Question, &e.ChosenOption, &e.CorrectOption, &e.Correct,
			&e.PointsEarned, &badges, &e.Fallback); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		if err := json.Unmarshal([]byte(badges), &e.BadgesUnlocked); err != nil {
			return nil, fmt.Errorf("decode badges of answer %d: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
