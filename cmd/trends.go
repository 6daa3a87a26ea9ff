package cmd

import (
	"github.com/costwatch/costwatch/core"
	"github.com/costwatch/costwatch/internal/contract"
	"github.com/spf13/cobra"
)

// trendsCmd analyzes the direction of aggregate daily spend.
var trendsCmd = &cobra.Command{
	Use:   "trends [data-dir]",
	Short: "Summarize the direction and volatility of aggregate daily spend",
	Long: `Compare the most recent week of total daily spend against the start of the
series and measure overall volatility.

Reports:
- Direction (increasing or decreasing) and its magnitude in percent
- Recent vs previous average daily spend
- Volatility (coefficient of variation) with a low/medium/high label

Requires at least seven days of data.

Examples:
  # Trend summary for the current directory's export
  costwatch trends

  # Machine-readable output for dashboards
  costwatch trends ./exports --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTrends(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run trend analysis", err)
		}
	},
}
