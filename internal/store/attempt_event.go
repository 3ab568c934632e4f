package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type attemptRepo struct {
	drv *entsql.Driver
}

func (r *attemptRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *attemptRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	b := r.builder()
	query, args := b.Insert(AttemptEventsTable.Name).
		Columns(
			"timestamp", "session_id", "operation",
			"operand_a", "operand_b", "expected_answer",
			"learner_answer", "correct", "time_ms",
		).
		Values(
			time.Now().UTC(), data.SessionID, data.Operation,
			data.OperandA, data.OperandB, data.ExpectedAnswer,
			data.LearnerAnswer, data.Correct, data.TimeMs,
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *attemptRepo) OperationTallies(ctx context.Context, sessionID string) ([]OperationTally, error) {
	t := entsql.Table(AttemptEventsTable.Name)
	b := r.builder()
	query, args := b.Select(
		t.C("operation"),
		entsql.As(entsql.Count("*"), "attempted"),
		entsql.As(entsql.Sum(t.C("correct")), "correct_count"),
		entsql.As(entsql.Avg(t.C("time_ms")), "avg_time_ms"),
	).
		From(t).
		Where(entsql.EQ(t.C("session_id"), sessionID)).
		GroupBy(t.C("operation")).
		OrderBy(t.C("operation")).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query tallies: %w", err)
	}
	defer rows.Close()

	var tallies []OperationTally
	for rows.Next() {
		var tally OperationTally
		if err := rows.Scan(&tally.Operation, &tally.Attempted, &tally.Correct, &tally.AvgTimeMs); err != nil {
			return nil, fmt.Errorf("scan tally: %w", err)
		}
		tallies = append(tallies, tally)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tallies: %w", err)
	}
	return tallies, nil
}

func (r *attemptRepo) RecentAttempts(ctx context.Context, sessionID string, limit int) ([]AttemptEvent, error) {
	t := entsql.Table(AttemptEventsTable.Name)
	b := r.builder()
	sel := b.Select(
		t.C("id"), t.C("timestamp"), t.C("session_id"), t.C("operation"),
		t.C("operand_a"), t.C("operand_b"), t.C("expected_answer"),
		t.C("learner_answer"), t.C("correct"), t.C("time_ms"),
	).
		From(t).
		Where(entsql.EQ(t.C("session_id"), sessionID)).
		OrderBy(entsql.Desc(t.C("id")))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var events []AttemptEvent
	for rows.Next() {
		var e AttemptEvent
		if err := rows.Scan(
			&e.ID, &e.Timestamp, &e.SessionID, &e.Operation,
			&e.OperandA, &e.OperandB, &e.ExpectedAnswer,
			&e.LearnerAnswer, &e.Correct, &e.TimeMs,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return events, nil
}
