package cmd

import (
	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/internal/outwriter"
	"github.com/spf13/cobra"
)

// presetsCmd displays the detection thresholds in effect.
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Display sensitivity gates and policy bands in effect",
	Long: `Show the sensitivity presets and the classifier/escalation policy the
detector would apply, including any overrides from the config file.

No data analysis is performed - this is purely informational.

Use this to:
- Understand what each sensitivity preset requires
- Explain severity escalation to your team
- Validate policy overrides in .costwatch.yaml

Examples:
  # Show the default gates and bands
  costwatch presets

  # View with overrides from a config file
  costwatch presets --config .costwatch.yaml`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.PrintPresets(cfg); err != nil {
			contract.LogFatal("Cannot display presets", err)
		}
	},
}
