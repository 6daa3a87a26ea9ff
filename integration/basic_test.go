//go:build basic

// Package integration contains integration tests for costwatch.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCostwatch runs the binary and returns stdout plus the exit code.
func runCostwatch(t *testing.T, workDir string, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(getCostwatchBinary(), args...)
	cmd.Dir = workDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		require.True(t, ok, "command failed to start: %v\nstderr: %s", err, stderr.String())
		code = exitErr.ExitCode()
	}
	return stdout.String(), code
}

// TestDetectSpikeExitCode verifies a spiking service yields findings and exit code 1.
func TestDetectSpikeExitCode(t *testing.T) {
	dataDir := writeExportFixture(t, true)

	stdout, code := runCostwatch(t, dataDir, "detect", ".", "--color", "no")

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "ec2")
	assert.Contains(t, stdout, "spike")
	assert.NotContains(t, stdout, "s3") // flat service never reported
}

// TestDetectQuietExitCode verifies a flat export yields no findings and exit code 0.
func TestDetectQuietExitCode(t *testing.T) {
	dataDir := writeExportFixture(t, false)

	stdout, code := runCostwatch(t, dataDir, "detect", ".", "--color", "no")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "No material cost changes")
}

// TestDetectBadInputExitCode verifies a missing export fails with exit code 3.
func TestDetectBadInputExitCode(t *testing.T) {
	_, code := runCostwatch(t, t.TempDir(), "detect", ".")
	assert.Equal(t, 3, code)
}

// TestDetectJSONOutput verifies the machine-readable contract of detect.
func TestDetectJSONOutput(t *testing.T) {
	dataDir := writeExportFixture(t, true)
	outFile := filepath.Join(t.TempDir(), "findings.json")

	_, code := runCostwatch(t, dataDir, "detect", ".", "--output", "json", "--output-file", outFile)
	assert.Equal(t, 1, code)

	raw, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var result struct {
		Findings []struct {
			Group    string   `json:"group"`
			Kind     string   `json:"kind"`
			DeltaPct *float64 `json:"delta_pct"`
		} `json:"findings"`
		Summary struct {
			TotalFindings int `json:"total_findings"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(raw, &result))
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "ec2", result.Findings[0].Group)
	assert.Equal(t, "spike", result.Findings[0].Kind)
	require.NotNil(t, result.Findings[0].DeltaPct)
	assert.InDelta(t, 2.2, *result.Findings[0].DeltaPct, 0.01)
	assert.Equal(t, 1, result.Summary.TotalFindings)
}

// TestTrendsAndReport smoke-tests the remaining analysis modes.
func TestTrendsAndReport(t *testing.T) {
	dataDir := writeExportFixture(t, true)

	stdout, code := runCostwatch(t, dataDir, "trends", ".")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "increasing")

	stdout, code = runCostwatch(t, dataDir, "report", ".")
	assert.Equal(t, 0, code)
	assert.Contains(t, strings.ToLower(stdout), "spend")
}

// TestSQLiteHistoryRoundTrip records a run to SQLite and reads it back.
func TestSQLiteHistoryRoundTrip(t *testing.T) {
	dataDir := writeExportFixture(t, true)

	_, code := runCostwatch(t, dataDir, "detect", ".", "--history-backend", "sqlite")
	assert.Equal(t, 1, code)

	stdout, code := runCostwatch(t, dataDir, "history", "status", "--history-backend", "sqlite")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "sqlite")

	_, code = runCostwatch(t, dataDir, "history", "clear", "--history-backend", "sqlite")
	assert.Equal(t, 0, code)
}
