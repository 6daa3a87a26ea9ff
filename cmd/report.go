package cmd

import (
	"github.com/costwatch/costwatch/core"
	"github.com/costwatch/costwatch/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd produces the combined spend report.
var reportCmd = &cobra.Command{
	Use:   "report [data-dir]",
	Short: "Produce a combined spend report with anomalous days and trend",
	Long: `Scan the aggregate daily series with a rolling-window detector and combine
the flagged days with spend totals and trend analysis into one report.

Unlike 'detect', which examines only the latest day per service, the report
walks the whole series and flags any day whose total deviates from its rolling
window. Sensitivity presets apply to the rolling scan as well.

Examples:
  # Full report for the current directory's export
  costwatch report

  # Lower the noise for a monthly review
  costwatch report ./exports --sensitivity low --output yaml --output-file report.yaml`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run report", err)
		}
	},
}
