package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

// PrintDetection outputs a detection result, dispatching based on the output format configured.
func PrintDetection(result *schema.DetectionResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, pctFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, exportView(result))
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, exportView(result))
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDetectionCSV(w, result, fmtFloat)
		}, "Wrote CSV")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDetectionTable(result, cfg, fmtFloat, pctFmt, duration, w)
		}, "Wrote table")
	}
}

// exportView re-sorts findings into the deterministic export order.
func exportView(result *schema.DetectionResult) *schema.DetectionResult {
	return &schema.DetectionResult{
		EvaluationDate: result.EvaluationDate,
		Findings:       schema.SortFindingsForExport(result.Findings),
		Summary:        result.Summary,
	}
}

// writeDetectionTable generates and writes the human-readable table.
func writeDetectionTable(result *schema.DetectionResult, cfg *contract.Config, fmtFloat func(float64) string, pctFmt func(float64) string, duration time.Duration, writer io.Writer) error {
	if len(result.Findings) == 0 {
		if _, err := fmt.Fprintf(writer, "No material cost changes on %s\n", result.EvaluationDate.Format(contract.DateFormat)); err != nil {
			return err
		}
		return writeDetectionFooter(result, cfg, duration, writer)
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Group", "Kind", "Baseline", "Current", "Delta", "Delta %", "Severity", "Conf"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	groupWidth := getMaxTableGroupWidth(cfg)
	var data [][]string
	for i, f := range result.Findings {
		pct := "n/a"
		if f.DeltaPct != nil {
			pct = pctFmt(*f.DeltaPct)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(f.Group, groupWidth),
			string(f.Kind),
			fmtFloat(f.Baseline),
			fmtFloat(f.Current),
			fmtFloat(f.Delta),
			pct,
			contract.GetColorLabel(f.Severity),
			fmt.Sprintf("%.0f%%", f.Confidence*100),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	return writeDetectionFooter(result, cfg, duration, writer)
}

// writeDetectionFooter prints the summary counters under every table.
func writeDetectionFooter(result *schema.DetectionResult, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	s := result.Summary
	if _, err := fmt.Fprintf(writer, "Findings: %d across %d groups (max delta %.1f%%)\n",
		s.TotalFindings, s.ImpactedGroups, s.MaxAbsPctDelta*100); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Detection completed in %v with %d workers\n", duration, cfg.Workers)
	return err
}

// writeDetectionCSV writes findings in CSV format, in export order.
func writeDetectionCSV(w io.Writer, result *schema.DetectionResult, fmtFloat func(float64) string) error {
	header := []string{"date", "group", "kind", "baseline", "current", "delta", "delta_pct", "severity", "confidence", "explanation"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, f := range schema.SortFindingsForExport(result.Findings) {
			pct := ""
			if f.DeltaPct != nil {
				pct = fmt.Sprintf("%.4f", *f.DeltaPct)
			}
			rec := []string{
				f.Date.Format(contract.DateFormat),
				f.Group,
				string(f.Kind),
				fmtFloat(f.Baseline),
				fmtFloat(f.Current),
				fmtFloat(f.Delta),
				pct,
				f.Severity.String(),
				fmt.Sprintf("%.2f", f.Confidence),
				f.Explanation,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
