package cmd

import (
	"os"

	"github.com/costwatch/costwatch/core"
	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/internal/runstore"
	"github.com/costwatch/costwatch/schema"
	"github.com/spf13/cobra"
)

// Exit codes for the detect command, chosen so CI pipelines can gate on
// severity without parsing output.
const (
	exitOK       = 0
	exitFindings = 1
	exitCritical = 2
	exitFailure  = 3
)

// detectCmd runs the anomaly detection engine over a cost export.
var detectCmd = &cobra.Command{
	Use:   "detect [data-dir]",
	Short: "Flag services whose latest daily spend deviates from their baseline",
	Long: `Compare each service's spend on the most recent day of the export against
its own trailing history and report the material changes.

The engine builds a per-service baseline over the lookback window, scores the
latest day against it (z-score plus percentage deviation), classifies each
material change (new, drop, spike, drift) and escalates severity based on the
configured policy bands.

Exit codes (for CI/CD gating):
  0 - no material findings
  1 - findings reported
  2 - at least one CRITICAL finding
  3 - the run itself failed (bad input, bad config)

Examples:
  # Scan the current directory's services.csv with defaults
  costwatch detect

  # High sensitivity over a 28-day window, JSON to a file
  costwatch detect ./exports --sensitivity high --window 28 --output json --output-file findings.json

  # Weekday-aware baseline for strongly weekly-seasonal spend
  costwatch detect ./exports --weekday

  # Record runs to SQLite and alert a Slack channel
  COSTWATCH_SLACK_WEBHOOK=https://hooks.slack.com/... \
    costwatch detect ./exports --history-backend sqlite --alert console,slack`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		var recorder contract.RunRecorder
		var store *runstore.Store
		if cfg.HistoryBackend != schema.NoneBackend {
			var err error
			store, err = runstore.NewStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
			if err != nil {
				contract.LogWarn("run history disabled", err)
			} else {
				recorder = store
			}
		}

		result, err := core.ExecuteDetect(rootCtx, cfg, recorder)
		closeStore(store)
		if err != nil {
			contract.LogWarn("Cannot run detection", err)
			exitDetect(exitFailure)
		}
		switch {
		case result.HasCritical():
			exitDetect(exitCritical)
		case len(result.Findings) > 0:
			exitDetect(exitFindings)
		}
		exitDetect(exitOK)
	},
}

// exitDetect flushes profiling before exiting, since os.Exit skips defers.
func exitDetect(code int) {
	if err := stopProfiling(); err != nil {
		contract.LogWarn("profiling stop failed", err)
	}
	os.Exit(code)
}

// closeStore closes the history store if one was opened. os.Exit skips
// deferred calls, so the detect command closes explicitly.
func closeStore(store *runstore.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		contract.LogWarn("history store close failed", err)
	}
}
