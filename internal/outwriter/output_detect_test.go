package outwriter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

func sampleResult() *schema.DetectionResult {
	pctA := 0.80
	pctB := -0.45
	return &schema.DetectionResult{
		EvaluationDate: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Findings: []schema.Finding{
			{
				Group:       "ec2",
				Date:        time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
				Baseline:    100,
				Current:     180,
				Delta:       80,
				DeltaPct:    &pctA,
				Kind:        schema.SpikeKind,
				Severity:    schema.SeverityHigh,
				Confidence:  0.9,
				Explanation: "Abrupt cost increase vs recent behavior",
			},
			{
				Group:       "s3",
				Date:        time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
				Baseline:    200,
				Current:     110,
				Delta:       -90,
				DeltaPct:    &pctB,
				Kind:        schema.DriftKind,
				Severity:    schema.SeverityMedium,
				Confidence:  0.6,
				Explanation: "Sustained movement from baseline",
			},
		},
		Summary: schema.Summary{TotalFindings: 2, ImpactedGroups: 2, MaxAbsPctDelta: 0.80},
	}
}

func TestWriteDetectionTable(t *testing.T) {
	cfg := &contract.Config{Precision: 2, Workers: 4, Width: 120}
	fmtFloat, pctFmt := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeDetectionTable(sampleResult(), cfg, fmtFloat, pctFmt, time.Second, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ec2")
	assert.Contains(t, out, "spike")
	assert.Contains(t, out, "+80.0%")
	assert.Contains(t, out, "Findings: 2 across 2 groups")
}

func TestWriteDetectionTableEmpty(t *testing.T) {
	cfg := &contract.Config{Precision: 2, Workers: 4, Width: 120}
	fmtFloat, pctFmt := createFormatters(cfg.Precision)
	result := &schema.DetectionResult{
		EvaluationDate: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	err := writeDetectionTable(result, cfg, fmtFloat, pctFmt, time.Second, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "No material cost changes on 2026-08-15")
}

func TestWriteDetectionCSV(t *testing.T) {
	fmtFloat, _ := createFormatters(2)

	var buf bytes.Buffer
	err := writeDetectionCSV(&buf, sampleResult(), fmtFloat)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 rows
	assert.Contains(t, lines[0], "delta_pct")

	// Export order is (date, group) ascending, so ec2 comes first.
	assert.True(t, strings.HasPrefix(lines[1], "2026-08-15,ec2"))
	assert.Contains(t, lines[1], "HIGH")
}

func TestExportViewJSON(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, exportView(sampleResult()))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	findings, ok := decoded["findings"].([]any)
	require.True(t, ok)
	require.Len(t, findings, 2)

	first := findings[0].(map[string]any)
	assert.Equal(t, "ec2", first["group"])
	assert.Equal(t, "HIGH", first["severity"])
}

func TestGetMaxTableGroupWidth(t *testing.T) {
	assert.Equal(t, 40, getMaxTableGroupWidth(&contract.Config{Width: 300}))
	assert.Equal(t, 12, getMaxTableGroupWidth(&contract.Config{Width: 40}))
	assert.Equal(t, 28, getMaxTableGroupWidth(&contract.Config{Width: 100}))
}
