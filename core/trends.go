package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/costwatch/costwatch/core/stats"
	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

// Trend analysis constraints.
const (
	minTrendDays   = 7 // below this there is nothing to compare
	minScanSamples = 7 // rolling scan needs this many points before scoring

	highVolatility   = 0.5
	mediumVolatility = 0.2
)

// AnalyzeTrends compares the last week of daily totals against the first
// week of the series and measures overall volatility.
func AnalyzeTrends(series []schema.DailyPoint) (*schema.TrendAnalysis, error) {
	if len(series) < minTrendDays {
		return nil, fmt.Errorf("trend analysis requires at least %d days: %w", minTrendDays, schema.ErrInsufficientHistory)
	}

	points := sortSeries(series)
	values := make([]float64, len(points))
	var total float64
	for i, p := range points {
		values[i] = p.Value
		total += p.Value
	}

	recentAvg := stats.Mean(values[len(values)-minTrendDays:])
	previousAvg := recentAvg
	if len(values) >= 2*minTrendDays {
		previousAvg = stats.Mean(values[:minTrendDays])
	}

	direction := "decreasing"
	if recentAvg > previousAvg {
		direction = "increasing"
	}

	volatility := stats.Volatility(values)
	level := "low"
	switch {
	case volatility > highVolatility:
		level = "high"
	case volatility > mediumVolatility:
		level = "medium"
	}

	quality := "limited"
	if total > 0 {
		quality = "good"
	}

	return &schema.TrendAnalysis{
		Direction:        direction,
		MagnitudePct:     math.Abs(recentAvg-previousAvg) / math.Max(previousAvg, 0.01) * 100,
		RecentAvgDaily:   recentAvg,
		PreviousAvgDaily: previousAvg,
		Volatility:       volatility,
		VolatilityLevel:  level,
		DaysAnalyzed:     len(points),
		DataQuality:      quality,
	}, nil
}

// ScanDailySeries flags days whose total deviates from a rolling window
// mean, using the standalone z-score severity table. The rolling window
// includes the day under test, mirroring a rolling-mean smoother rather
// than the leave-one-out baseline of the main engine.
func ScanDailySeries(series []schema.DailyPoint, cfg *contract.Config) []schema.DailyAnomaly {
	if len(series) < cfg.WindowDays {
		return nil
	}

	points := sortSeries(series)
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}

	var anomalies []schema.DailyAnomaly
	for i, p := range points {
		lo := i - cfg.WindowDays + 1
		if lo < 0 {
			lo = 0
		}
		window := values[lo : i+1]
		if len(window) < minScanSamples {
			continue
		}

		expected := stats.Mean(window)
		if expected == 0 {
			continue // no baseline to deviate from
		}

		std, ok := stats.StdDev(window)
		var z float64
		if ok && std > 0 {
			z = math.Abs(p.Value-expected) / std
		}
		pct := math.Abs(p.Value-expected) / expected

		if z < cfg.ZThreshold || pct < cfg.PctThreshold {
			continue
		}

		kind := schema.SpikeKind
		sign := "+"
		if p.Value < expected {
			kind = schema.DropKind
			sign = "-"
		}
		anomalies = append(anomalies, schema.DailyAnomaly{
			Date:         p.Date,
			Actual:       p.Value,
			Expected:     expected,
			DeviationPct: pct,
			ZScore:       z,
			Kind:         kind,
			Severity:     SeverityFromZ(z, pct),
			Confidence:   confidenceFromZ(z),
			Description: fmt.Sprintf("Daily total $%.2f vs expected $%.2f (%s%.1f%%)",
				p.Value, expected, sign, pct*100),
		})
	}
	return anomalies
}

// sortSeries returns a date-ascending copy of the series.
func sortSeries(series []schema.DailyPoint) []schema.DailyPoint {
	points := make([]schema.DailyPoint, len(series))
	copy(points, series)
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}
