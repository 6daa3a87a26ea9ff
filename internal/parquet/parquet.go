// Package parquet exports run history data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/costwatch/costwatch/schema"
)

// DetectionRun represents a single detection run with metadata.
// This struct maps to the costwatch_runs database table.
type DetectionRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartedAt is when the run began
	StartedAt time.Time `parquet:"started_at,snappy"`

	// FinishedAt is when the run completed (nullable)
	FinishedAt *time.Time `parquet:"finished_at,optional,snappy"`

	// EvaluationDate is the calendar day that was evaluated
	EvaluationDate time.Time `parquet:"evaluation_date,snappy"`

	// DurationMs is the duration of the run in milliseconds
	DurationMs int64 `parquet:"duration_ms,snappy"`

	// TotalFindings is the number of findings produced by the run
	TotalFindings int32 `parquet:"total_findings,snappy"`

	// ImpactedGroups is the number of distinct groups with findings
	ImpactedGroups int32 `parquet:"impacted_groups,snappy"`

	// MaxAbsPctDelta is the largest absolute percentage deviation seen
	MaxAbsPctDelta float64 `parquet:"max_abs_pct_delta,snappy"`
}

// FindingRow represents one finding belonging to a detection run.
// This struct maps to the costwatch_findings database table.
type FindingRow struct {
	// RunID references the parent run
	RunID int64 `parquet:"run_id,snappy"`

	// Group is the tracked dimension the finding belongs to
	Group string `parquet:"group,snappy"`

	// Date is the evaluation date of the finding
	Date time.Time `parquet:"date,snappy"`

	// Baseline is the expected daily value
	Baseline float64 `parquet:"baseline,snappy"`

	// Current is the observed value on the evaluation date
	Current float64 `parquet:"current,snappy"`

	// Delta is Current minus Baseline
	Delta float64 `parquet:"delta,snappy"`

	// DeltaPct is the relative change (nullable when the baseline is zero)
	DeltaPct *float64 `parquet:"delta_pct,optional,snappy"`

	// Kind is the change classification label
	Kind string `parquet:"kind,snappy"`

	// Severity is the severity label
	Severity string `parquet:"severity,snappy"`

	// Confidence is the scaled z-score confidence in [0, 1]
	Confidence float64 `parquet:"confidence,snappy"`

	// Explanation is the human-readable rationale
	Explanation string `parquet:"explanation,snappy"`
}

// WriteRunsParquet writes a slice of DetectionRun structs to a Parquet file.
func WriteRunsParquet(data []DetectionRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the DetectionRun struct tags
	writer := parquet.NewGenericWriter[DetectionRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteFindingsParquet writes a slice of FindingRow structs to a Parquet file.
func WriteFindingsParquet(data []FindingRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the FindingRow struct tags
	writer := parquet.NewGenericWriter[FindingRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ConvertRunRecords converts schema.RunRecord rows for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []DetectionRun {
	result := make([]DetectionRun, len(records))
	for i, record := range records {
		result[i] = DetectionRun{
			RunID:          record.RunID,
			StartedAt:      record.StartedAt,
			FinishedAt:     record.FinishedAt,
			EvaluationDate: record.EvaluationDate,
			DurationMs:     record.DurationMs,
			TotalFindings:  int32(record.TotalFindings),
			ImpactedGroups: int32(record.ImpactedGroups),
			MaxAbsPctDelta: record.MaxAbsPctDelta,
		}
	}
	return result
}

// ConvertFindingRecords converts schema.FindingRecord rows for Parquet export.
func ConvertFindingRecords(records []schema.FindingRecord) []FindingRow {
	result := make([]FindingRow, len(records))
	for i, record := range records {
		result[i] = FindingRow{
			RunID:       record.RunID,
			Group:       record.Group,
			Date:        record.Date,
			Baseline:    record.Baseline,
			Current:     record.Current,
			Delta:       record.Delta,
			DeltaPct:    record.DeltaPct,
			Kind:        record.Kind,
			Severity:    record.Severity,
			Confidence:  record.Confidence,
			Explanation: record.Explanation,
		}
	}
	return result
}
