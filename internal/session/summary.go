package session

import (
	"sort"
	"time"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

// OperationResult is the per-operation slice of a session's attempts.
type OperationResult struct {
	Operation       problemgen.Operation
	Score           Score
	AvgResponseTime time.Duration
}

// SessionSummary holds the data displayed on the summary screen.
type SessionSummary struct {
	Duration    time.Duration
	Score       Score
	Accuracy    float64
	ByOperation []OperationResult
}

// BuildSummary combines the session score with a per-operation breakdown.
// Results are ordered as problemgen.Operations; operations never drilled
// are omitted.
func BuildSummary(score Score, elapsed time.Duration, byOp []OperationResult) *SessionSummary {
	results := make([]OperationResult, 0, len(byOp))
	for _, r := range byOp {
		if r.Score.Attempted == 0 {
			continue
		}
		results = append(results, r)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Operation < results[j].Operation
	})

	return &SessionSummary{
		Duration:    elapsed,
		Score:       score,
		Accuracy:    score.Accuracy(),
		ByOperation: results,
	}
}
