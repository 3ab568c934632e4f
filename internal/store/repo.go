package store

import (
	"context"
	"time"
)

// AttemptEventData captures one judged answer.
type AttemptEventData struct {
	SessionID      string
	Operation      string // problemgen.Operation.Key()
	OperandA       int
	OperandB       int
	ExpectedAnswer int
	LearnerAnswer  string // raw input, possibly empty or non-numeric
	Correct        bool
	TimeMs         int64
}

// AttemptEvent is a stored attempt.
type AttemptEvent struct {
	ID        int
	Timestamp time.Time
	AttemptEventData
}

// OperationTally aggregates a session's attempts for one operation.
type OperationTally struct {
	Operation string
	Attempted int
	Correct   int
	AvgTimeMs float64
}

// AttemptRepo provides append and query access to the attempt journal.
type AttemptRepo interface {
	// AppendAttempt records one submission.
	AppendAttempt(ctx context.Context, data AttemptEventData) error

	// OperationTallies groups a session's attempts by operation,
	// ordered by operation key.
	OperationTallies(ctx context.Context, sessionID string) ([]OperationTally, error)

	// RecentAttempts returns up to limit of a session's latest attempts,
	// newest first. limit <= 0 means no limit.
	RecentAttempts(ctx context.Context, sessionID string, limit int) ([]AttemptEvent, error)
}
