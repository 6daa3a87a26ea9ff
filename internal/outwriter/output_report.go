package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

// PrintReport outputs a full report, dispatching based on the output format configured.
func PrintReport(report *schema.ReportResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, report)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(w, report, cfg, fmtFloat, duration)
		}, "Wrote report")
	}
}

// writeReportText renders the spend summary, anomaly table and trend block.
func writeReportText(w io.Writer, report *schema.ReportResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "Spend: $%s total over %d days (avg $%s/day)\n",
		fmtFloat(report.TotalCost), report.DaysAnalyzed, fmtFloat(report.AvgDaily)); err != nil {
		return err
	}

	if len(report.Anomalies) == 0 {
		if _, err := fmt.Fprintln(w, "No anomalous days detected"); err != nil {
			return err
		}
	} else {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Date", "Actual", "Expected", "Deviation", "Z", "Kind", "Severity"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, a := range report.Anomalies {
			data = append(data, []string{
				a.Date.Format(contract.DateFormat),
				fmtFloat(a.Actual),
				fmtFloat(a.Expected),
				fmt.Sprintf("%.1f%%", a.DeviationPct*100),
				fmt.Sprintf("%.2f", a.ZScore),
				string(a.Kind),
				contract.GetColorLabel(a.Severity),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if report.Trends != nil {
		if _, err := fmt.Fprintf(w, "Trend: %s %.1f%% (volatility %s)\n",
			report.Trends.Direction, report.Trends.MagnitudePct, report.Trends.VolatilityLevel); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Report completed in %v\n", duration)
	return err
}

// writeReportCSV writes the anomaly list in CSV format.
func writeReportCSV(w io.Writer, report *schema.ReportResult, fmtFloat func(float64) string) error {
	header := []string{"date", "actual", "expected", "deviation_pct", "z_score", "kind", "severity", "confidence", "description"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, a := range report.Anomalies {
			rec := []string{
				a.Date.Format(contract.DateFormat),
				fmtFloat(a.Actual),
				fmtFloat(a.Expected),
				fmt.Sprintf("%.4f", a.DeviationPct),
				fmt.Sprintf("%.2f", a.ZScore),
				string(a.Kind),
				a.Severity.String(),
				fmt.Sprintf("%.2f", a.Confidence),
				a.Description,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
