package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	costschema "github.com/costwatch/costwatch/schema"
)

func TestDetectionRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	schema := parquet.SchemaOf(new(DetectionRun))
	require.NotNil(t, schema)

	expectedColumns := []string{
		"run_id",
		"started_at",
		"finished_at",
		"evaluation_date",
		"duration_ms",
		"total_findings",
		"impacted_groups",
		"max_abs_pct_delta",
	}
	for _, colName := range expectedColumns {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestFindingRowStructTags(t *testing.T) {
	schema := parquet.SchemaOf(new(FindingRow))
	require.NotNil(t, schema)

	expectedColumns := []string{
		"run_id",
		"group",
		"date",
		"baseline",
		"current",
		"delta",
		"delta_pct",
		"kind",
		"severity",
		"confidence",
		"explanation",
	}
	for _, colName := range expectedColumns {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")

	finished := time.Now().UTC()
	data := []DetectionRun{
		{
			RunID:          1,
			StartedAt:      finished.Add(-2 * time.Second),
			FinishedAt:     &finished,
			EvaluationDate: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
			DurationMs:     2000,
			TotalFindings:  3,
			ImpactedGroups: 2,
			MaxAbsPctDelta: 0.8,
		},
	}
	require.NoError(t, WriteRunsParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestConvertFindingRecords(t *testing.T) {
	pct := 0.5
	records := []costschema.FindingRecord{
		{
			RunID:      7,
			Group:      "s3",
			Date:       time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
			Baseline:   200,
			Current:    300,
			Delta:      100,
			DeltaPct:   &pct,
			Kind:       "spike",
			Severity:   "HIGH",
			Confidence: 0.9,
		},
	}

	rows := ConvertFindingRecords(records)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(7), rows[0].RunID)
	assert.Equal(t, "s3", rows[0].Group)
	require.NotNil(t, rows[0].DeltaPct)
	assert.Equal(t, 0.5, *rows[0].DeltaPct)

	outputPath := filepath.Join(t.TempDir(), "findings.parquet")
	require.NoError(t, WriteFindingsParquet(rows, outputPath))
	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
