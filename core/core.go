// Package core has core logic for baselines, scoring and classification.
package core

import (
	"context"
	"errors"
	"time"

	"github.com/costwatch/costwatch/core/stats"
	"github.com/costwatch/costwatch/internal/alert"
	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/internal/ingest"
	"github.com/costwatch/costwatch/internal/outwriter"
	"github.com/costwatch/costwatch/schema"
)

// ExecutorFunc defines the function signature for executing different analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteDetect runs the full detection pipeline and prints results to stdout.
// It serves as the main entry point for the 'detect' mode. The result is
// returned so callers can derive an exit status from it.
func ExecuteDetect(ctx context.Context, cfg *contract.Config, recorder contract.RunRecorder) (*schema.DetectionResult, error) {
	start := time.Now()
	result, err := GetDetectionResults(ctx, cfg)
	if err != nil {
		return nil, err
	}
	duration := time.Since(start)

	if recorder != nil {
		if err := recordRun(ctx, recorder, start, result, duration); err != nil {
			contract.LogWarn("run not recorded to history", err)
		}
	}
	if len(result.Findings) > 0 {
		if err := alert.Dispatch(ctx, result, cfg); err != nil {
			contract.LogWarn("alert delivery failed", err)
		}
	}
	if err := outwriter.PrintDetection(result, cfg, duration); err != nil {
		return nil, err
	}
	return result, nil
}

// ExecuteTrends runs the trend analysis over aggregate daily totals and
// prints results to stdout. It serves as the main entry point for the
// 'trends' mode.
func ExecuteTrends(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	trends, err := GetTrendResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintTrends(trends, cfg, time.Since(start))
}

// ExecuteReport runs the rolling scan of the aggregate daily series and
// combines it with trend analysis into a single report. It serves as the
// main entry point for the 'report' mode.
func ExecuteReport(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := GetReportResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintReport(report, cfg, time.Since(start))
}

// GetDetectionResults loads the configured data directory and runs the
// detection engine without printing anything. MCP handlers use this to
// get structured results.
func GetDetectionResults(ctx context.Context, cfg *contract.Config) (*schema.DetectionResult, error) {
	data, err := ingest.LoadDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return Detect(ctx, data.Observations, cfg)
}

// GetTrendResults loads the configured data directory and runs the trend
// analysis without printing anything.
func GetTrendResults(ctx context.Context, cfg *contract.Config) (*schema.TrendAnalysis, error) {
	data, err := ingest.LoadDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return AnalyzeTrends(data.Totals)
}

// GetReportResults loads the configured data directory and builds the
// combined report without printing anything.
func GetReportResults(ctx context.Context, cfg *contract.Config) (*schema.ReportResult, error) {
	data, err := ingest.LoadDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return buildReport(data.Totals, cfg), nil
}

// buildReport assembles the anomaly scan, trend analysis and spend totals
// for the report mode. Trend analysis is optional when the series is too
// short; the scan and totals still render.
func buildReport(totals []schema.DailyPoint, cfg *contract.Config) *schema.ReportResult {
	values := make([]float64, len(totals))
	var totalCost float64
	for i, p := range totals {
		values[i] = p.Value
		totalCost += p.Value
	}

	var avgDaily float64
	if len(values) > 0 {
		avgDaily = stats.Mean(values)
	}

	trends, err := AnalyzeTrends(totals)
	if err != nil && !errors.Is(err, schema.ErrInsufficientHistory) {
		contract.LogWarn("trend analysis skipped", err)
	}

	return &schema.ReportResult{
		GeneratedAt:  time.Now().UTC(),
		TotalCost:    totalCost,
		AvgDaily:     avgDaily,
		DaysAnalyzed: len(totals),
		Anomalies:    ScanDailySeries(totals, cfg),
		Trends:       trends,
	}
}

// recordRun persists one detection run through the recorder.
func recordRun(ctx context.Context, recorder contract.RunRecorder, startedAt time.Time, result *schema.DetectionResult, duration time.Duration) error {
	runID, err := recorder.BeginRun(ctx, startedAt, result.EvaluationDate)
	if err != nil {
		return err
	}
	if err := recorder.RecordFindings(ctx, runID, result.Findings); err != nil {
		return err
	}
	return recorder.FinishRun(ctx, runID, result.Summary, duration)
}
