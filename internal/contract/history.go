package contract

import (
	"context"
	"time"

	"github.com/costwatch/costwatch/schema"
)

// RunRecorder persists detection runs so they can be inspected and
// exported later. Implementations live behind this interface so the
// engine never links a database driver directly.
type RunRecorder interface {
	// BeginRun registers a detection run and returns its identifier.
	BeginRun(ctx context.Context, startedAt time.Time, evaluation time.Time) (int64, error)

	// RecordFindings stores the findings produced by a run.
	RecordFindings(ctx context.Context, runID int64, findings []schema.Finding) error

	// FinishRun marks a run as complete with its summary counters.
	FinishRun(ctx context.Context, runID int64, summary schema.Summary, duration time.Duration) error
}
