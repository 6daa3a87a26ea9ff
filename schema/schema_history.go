package schema

import "time"

// RunRecord is one detection run as stored in the run history.
type RunRecord struct {
	RunID          int64      `json:"run_id"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at"`
	EvaluationDate time.Time  `json:"evaluation_date"`
	DurationMs     int64      `json:"duration_ms"`
	TotalFindings  int        `json:"total_findings"`
	ImpactedGroups int        `json:"impacted_groups"`
	MaxAbsPctDelta float64    `json:"max_abs_pct_delta"`
}

// FindingRecord is one finding as stored in the run history. Enum fields
// are stored as their string labels so the rows are readable with plain SQL.
type FindingRecord struct {
	RunID       int64     `json:"run_id"`
	Group       string    `json:"group"`
	Date        time.Time `json:"date"`
	Baseline    float64   `json:"baseline"`
	Current     float64   `json:"current"`
	Delta       float64   `json:"delta"`
	DeltaPct    *float64  `json:"delta_pct"`
	Kind        string    `json:"kind"`
	Severity    string    `json:"severity"`
	Confidence  float64   `json:"confidence"`
	Explanation string    `json:"explanation"`
}

// HistoryStatus summarizes the state of the run history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int64            `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}
