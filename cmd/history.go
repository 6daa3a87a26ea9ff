package cmd

import (
	"fmt"

	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/internal/runstore"
	"github.com/costwatch/costwatch/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// histStore is the run-history store opened by historySetup.
var histStore *runstore.Store

// historySetup loads minimal configuration needed for history operations.
// This avoids data-directory validation and full config processing for
// simple store maintenance.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	if backend == "" {
		backend = schema.NoneBackend
	}
	connStr := viper.GetString("history-db-connect")

	if err := contract.ValidateHistoryConnection(backend, connStr); err != nil {
		return err
	}

	store, err := runstore.NewStore(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}

	histStore = store
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration for migrate operations.
// It deliberately does NOT open the store or create tables, so migrations
// can run against a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	if backend == "" {
		backend = schema.NoneBackend
	}
	connStr := viper.GetString("history-db-connect")

	if err := contract.ValidateHistoryConnection(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyCmd focused on run-history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the detection run history store",
	Long: `Manage the store that records each detection run and its findings.

When a history backend is configured, every 'costwatch detect' run appends a
run row plus one row per finding, giving you an audit trail of what the
detector flagged and when.

Supported backends: SQLite (default file store), MySQL, PostgreSQL, or None

Subcommands:
  status  - Show run counts and connection info
  clear   - Remove all recorded runs and findings
  export  - Export runs and findings to Parquet files
  migrate - Apply store schema migrations

Examples:
  # Check history status
  costwatch history status --history-backend sqlite

  # Clear history after a data-source change
  costwatch history clear --history-backend sqlite`,
}

// historyStatusCmd shows history store status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run-history statistics and connection details",
	Long: `Show detailed information about the detection run history store.

Displays:
- Backend type and connection status
- Total number of recorded runs
- Last and oldest run timestamps
- Table sizes

Examples:
  # Check history status
  costwatch history status --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := histStore.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		runstore.PrintHistoryStatus(status)
	},
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs and findings",
	Long: `Delete all recorded detection runs and findings from the configured backend.

Use this when:
- The underlying cost export source changed
- History may be stale after large configuration changes
- Resetting a shared database between environments

Examples:
  # Clear the SQLite history store
  costwatch history clear --history-backend sqlite

  # Clear a MySQL store (set the connection string via env variable)
  COSTWATCH_HISTORY_BACKEND=mysql COSTWATCH_HISTORY_DB_CONNECT="..." costwatch history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := histStore.Clear(); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyExportCmd exports history to Parquet.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs and findings to Parquet files",
	Long: `Export the full run history to snappy-compressed Parquet files for
analysis in DuckDB, Spark, pandas or similar tools.

Writes two files next to the configured output path:
  <output-file>.runs.parquet     - one row per detection run
  <output-file>.findings.parquet - one row per finding

Examples:
  # Export SQLite history for offline analysis
  costwatch history export --history-backend sqlite --output-file costwatch-history`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := histStore.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd applies store schema migrations.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply run-history schema migrations",
	Long: `Apply versioned schema migrations to the run history store.

Migrations are embedded in the binary and applied in order. Use
--target-version to migrate to a specific version, or leave it at -1 for
the latest.

Examples:
  # Migrate to the latest schema
  costwatch history migrate --history-backend sqlite

  # Roll back everything
  costwatch history migrate --history-backend sqlite --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return historyMigrateSetup()
	},
	Run: func(_ *cobra.Command, _ []string) {
		target := viper.GetInt("target-version")
		if err := runstore.Migrate(cfg.HistoryBackend, cfg.HistoryDBConnect, target); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
