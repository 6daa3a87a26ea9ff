package runstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

// GetStatus returns status information about the run history store.
func (s *Store) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}

	if s.backend == schema.NoneBackend || s.db == nil {
		return status, nil
	}

	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(runsTable, s.backend))
	if err := s.db.QueryRow(runsQuery).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}
	status.TableSizes[runsTable] = status.TotalRuns

	var totalFindings int64
	findingsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(findingsTable, s.backend))
	if err := s.db.QueryRow(findingsQuery).Scan(&totalFindings); err != nil {
		return status, fmt.Errorf("failed to get total findings: %w", err)
	}
	status.TableSizes[findingsTable] = totalFindings

	if status.TotalRuns > 0 {
		lastRunQuery := fmt.Sprintf("SELECT run_id, started_at FROM %s ORDER BY run_id DESC LIMIT 1", quoteTableName(runsTable, s.backend))
		lastID, lastTime, err := s.scanRunStamp(s.db.QueryRow(lastRunQuery))
		if err != nil {
			return status, fmt.Errorf("failed to get last run: %w", err)
		}
		status.LastRunID = lastID
		status.LastRunTime = lastTime

		oldestRunQuery := fmt.Sprintf("SELECT run_id, started_at FROM %s ORDER BY run_id ASC LIMIT 1", quoteTableName(runsTable, s.backend))
		_, oldestTime, err := s.scanRunStamp(s.db.QueryRow(oldestRunQuery))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run: %w", err)
		}
		status.OldestRunTime = oldestTime
	}

	return status, nil
}

// scanRunStamp reads (run_id, started_at), handling the per-backend time encoding.
func (s *Store) scanRunStamp(row *sql.Row) (int64, time.Time, error) {
	var runID int64
	switch s.backend {
	case schema.SQLiteBackend:
		var stampStr string
		if err := row.Scan(&runID, &stampStr); err != nil {
			return 0, time.Time{}, err
		}
		stamp, err := time.Parse(time.RFC3339Nano, stampStr)
		if err != nil {
			return 0, time.Time{}, fmt.Errorf("failed to parse started_at: %w", err)
		}
		return runID, stamp, nil
	default: // MySQL and PostgreSQL store native datetimes
		var stamp time.Time
		if err := row.Scan(&runID, &stamp); err != nil {
			return 0, time.Time{}, err
		}
		return runID, stamp, nil
	}
}

// GetAllRuns retrieves all run rows, oldest first.
func (s *Store) GetAllRuns() ([]schema.RunRecord, error) {
	// Skip for NoneBackend
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, started_at, finished_at, evaluation_date, duration_ms,
		total_findings, impacted_groups, max_abs_pct_delta
		FROM %s ORDER BY run_id`, quoteTableName(runsTable, s.backend))

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		var durationMs sql.NullInt64
		var totalFindings, impactedGroups sql.NullInt64
		var maxPct sql.NullFloat64

		switch s.backend {
		case schema.SQLiteBackend:
			var startedStr, evalStr string
			var finishedStr *string
			if err := rows.Scan(&record.RunID, &startedStr, &finishedStr, &evalStr,
				&durationMs, &totalFindings, &impactedGroups, &maxPct); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
			if record.StartedAt, err = time.Parse(time.RFC3339Nano, startedStr); err != nil {
				return nil, fmt.Errorf("failed to parse started_at: %w", err)
			}
			if finishedStr != nil {
				finished, err := time.Parse(time.RFC3339Nano, *finishedStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse finished_at: %w", err)
				}
				record.FinishedAt = &finished
			}
			if record.EvaluationDate, err = time.Parse(contract.DateFormat, evalStr); err != nil {
				return nil, fmt.Errorf("failed to parse evaluation_date: %w", err)
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.StartedAt, &record.FinishedAt, &record.EvaluationDate,
				&durationMs, &totalFindings, &impactedGroups, &maxPct); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
		}

		record.DurationMs = durationMs.Int64
		record.TotalFindings = int(totalFindings.Int64)
		record.ImpactedGroups = int(impactedGroups.Int64)
		record.MaxAbsPctDelta = maxPct.Float64
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllFindings retrieves all finding rows ordered by (run, group).
func (s *Store) GetAllFindings() ([]schema.FindingRecord, error) {
	// Skip for NoneBackend
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, group_name, eval_date, baseline, current_value, delta,
		delta_pct, kind, severity, confidence, explanation
		FROM %s ORDER BY run_id, group_name`, quoteTableName(findingsTable, s.backend))

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query findings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.FindingRecord
	for rows.Next() {
		var record schema.FindingRecord
		var deltaPct sql.NullFloat64
		var explanation sql.NullString

		switch s.backend {
		case schema.SQLiteBackend:
			var dateStr string
			if err := rows.Scan(&record.RunID, &record.Group, &dateStr, &record.Baseline, &record.Current,
				&record.Delta, &deltaPct, &record.Kind, &record.Severity, &record.Confidence, &explanation); err != nil {
				return nil, fmt.Errorf("failed to scan finding: %w", err)
			}
			if record.Date, err = time.Parse(contract.DateFormat, dateStr); err != nil {
				return nil, fmt.Errorf("failed to parse eval_date: %w", err)
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.Group, &record.Date, &record.Baseline, &record.Current,
				&record.Delta, &deltaPct, &record.Kind, &record.Severity, &record.Confidence, &explanation); err != nil {
				return nil, fmt.Errorf("failed to scan finding: %w", err)
			}
		}

		if deltaPct.Valid {
			pct := deltaPct.Float64
			record.DeltaPct = &pct
		}
		record.Explanation = explanation.String
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating findings: %w", err)
	}
	return results, nil
}

// Clear removes all run history rows.
func (s *Store) Clear() error {
	// Skip for NoneBackend
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}

	for _, table := range []string{findingsTable, runsTable} {
		query := fmt.Sprintf("DELETE FROM %s", quoteTableName(table, s.backend))
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}
