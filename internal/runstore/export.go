package runstore

import (
	"errors"
	"fmt"

	"github.com/costwatch/costwatch/internal/parquet"
)

// ExecuteHistoryExport exports run history data to Parquet files.
func (s *Store) ExecuteHistoryExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export")
	}

	status, err := s.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total finding records: %d\n", status.TableSizes[findingsTable])

	runs, err := s.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	findings, err := s.GetAllFindings()
	if err != nil {
		return fmt.Errorf("failed to retrieve findings: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(runs), runsFile)

	findingsFile := outputFile + ".findings.parquet"
	if err := parquet.WriteFindingsParquet(parquet.ConvertFindingRecords(findings), findingsFile); err != nil {
		return fmt.Errorf("failed to write findings: %w", err)
	}
	fmt.Printf("Exported %d finding records to: %s\n", len(findings), findingsFile)

	return nil
}
