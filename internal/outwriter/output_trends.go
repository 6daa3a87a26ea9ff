package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

// PrintTrends outputs a trend analysis, dispatching based on the output format configured.
func PrintTrends(trends *schema.TrendAnalysis, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, trends)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, trends)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendsCSV(w, trends, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendsText(w, trends, fmtFloat, duration)
		}, "Wrote trends")
	}
}

// writeTrendsText renders the trend analysis as a short human-readable block.
func writeTrendsText(w io.Writer, trends *schema.TrendAnalysis, fmtFloat func(float64) string, duration time.Duration) error {
	lines := []string{
		fmt.Sprintf("Trend: %s %.1f%% over %d days (%s data)",
			trends.Direction, trends.MagnitudePct, trends.DaysAnalyzed, trends.DataQuality),
		fmt.Sprintf("Recent avg daily:   $%s", fmtFloat(trends.RecentAvgDaily)),
		fmt.Sprintf("Previous avg daily: $%s", fmtFloat(trends.PreviousAvgDaily)),
		fmt.Sprintf("Volatility: %.2f (%s)", trends.Volatility, trends.VolatilityLevel),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Analysis completed in %v\n", duration)
	return err
}

// writeTrendsCSV writes the trend analysis as a single CSV record.
func writeTrendsCSV(w io.Writer, trends *schema.TrendAnalysis, fmtFloat func(float64) string) error {
	header := []string{"direction", "magnitude_pct", "recent_avg_daily", "previous_avg_daily", "volatility", "volatility_level", "days_analyzed", "data_quality"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		return csvWriter.Write([]string{
			trends.Direction,
			fmt.Sprintf("%.1f", trends.MagnitudePct),
			fmtFloat(trends.RecentAvgDaily),
			fmtFloat(trends.PreviousAvgDaily),
			fmt.Sprintf("%.4f", trends.Volatility),
			trends.VolatilityLevel,
			strconv.Itoa(trends.DaysAnalyzed),
			trends.DataQuality,
		})
	})
}
