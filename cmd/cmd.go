// Package cmd defines the command-line interface for costwatch.
package cmd

import (
	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(testSlackCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("window", "w", contract.DefaultWindowDays, "Lookback window in days (exclusive of the evaluation date)")
	rootCmd.PersistentFlags().StringP("sensitivity", "s", string(schema.MediumSensitivity), "Detection preset: low or medium or high")
	rootCmd.PersistentFlags().Float64("z-threshold", 0, "Explicit z-score gate (overrides the sensitivity preset)")
	rootCmd.PersistentFlags().Float64("pct-threshold", 0, "Explicit percentage gate as a fraction (overrides the sensitivity preset)")
	rootCmd.PersistentFlags().Float64("min-abs-delta", contract.DefaultMinAbsDelta, "Absolute dollar floor below which changes are ignored")
	rootCmd.PersistentFlags().Float64("min-pct-delta", contract.DefaultMinPctDelta, "Percentage floor (fraction) applied at assembly, except for new/drop findings")
	rootCmd.PersistentFlags().Bool("weekday", false, "Compare against the same weekday instead of all recent days")
	rootCmd.PersistentFlags().Int("weekday-samples", contract.DefaultWeekdaySamples, "Distinct matching weekdays required before weekday mode engages")
	rootCmd.PersistentFlags().String("std-scope", string(schema.AutoStdScope), "Reference set for the z-score std: auto or window")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of findings to display")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json or yaml")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("alert", string(schema.ConsoleAlert), "Comma-separated alert channels: console or slack")
	rootCmd.PersistentFlags().String("slack-webhook", "", "Slack incoming-webhook URL (prefer COSTWATCH_SLACK_WEBHOOK)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql history backends")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
