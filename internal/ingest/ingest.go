// Package ingest loads cost exports from disk into engine observations.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/costwatch/costwatch/schema"
)

// Well-known file names inside a data directory.
const (
	ServicesFileName = "services.csv"
	OverviewFileName = "overview.csv"
)

// dateLayout is the expected date format in cost exports.
const dateLayout = "2006-01-02"

// valueColumns are accepted per-service cost column names, in preference order.
var valueColumns = []string{"cost", "unblended_cost", "amount"}

// Dataset is the parsed contents of a cost export directory.
type Dataset struct {
	Observations []schema.Observation // per-service daily costs
	Totals       []schema.DailyPoint  // aggregate daily spend
}

// LoadDir reads a cost export directory. The per-service file is
// required; the overview file is optional and when absent the daily
// totals are derived by summing the per-service observations.
func LoadDir(dir string) (*Dataset, error) {
	observations, err := LoadServices(filepath.Join(dir, ServicesFileName))
	if err != nil {
		return nil, err
	}

	overviewPath := filepath.Join(dir, OverviewFileName)
	var totals []schema.DailyPoint
	if _, statErr := os.Stat(overviewPath); statErr == nil {
		totals, err = LoadOverview(overviewPath)
		if err != nil {
			return nil, err
		}
	} else {
		totals = DeriveTotals(observations)
	}

	return &Dataset{Observations: observations, Totals: totals}, nil
}

// LoadServices parses a per-service cost export. Each row carries a
// date, a service name and a cost value.
func LoadServices(path string) ([]schema.Observation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &schema.SchemaError{File: filepath.Base(path), Detail: err.Error()}
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, &schema.SchemaError{File: filepath.Base(path), Detail: "missing header row"}
	}

	dateIdx, err := columnIndex(header, path, "date")
	if err != nil {
		return nil, err
	}
	serviceIdx, err := columnIndex(header, path, "service")
	if err != nil {
		return nil, err
	}
	valueIdx := -1
	for _, name := range valueColumns {
		if idx := findColumn(header, name); idx >= 0 {
			valueIdx = idx
			break
		}
	}
	if valueIdx < 0 {
		return nil, &schema.SchemaError{
			File:   filepath.Base(path),
			Detail: fmt.Sprintf("missing cost column (one of %s)", strings.Join(valueColumns, ", ")),
		}
	}

	var observations []schema.Observation
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &schema.SchemaError{File: filepath.Base(path), Detail: fmt.Sprintf("line %d: %v", line, err)}
		}

		date, err := parseDate(record[dateIdx], path, line)
		if err != nil {
			return nil, err
		}
		service := strings.TrimSpace(record[serviceIdx])
		if service == "" {
			return nil, &schema.SchemaError{File: filepath.Base(path), Detail: fmt.Sprintf("line %d: empty service name", line)}
		}
		value, err := parseValue(record[valueIdx], path, line)
		if err != nil {
			return nil, err
		}
		observations = append(observations, schema.Observation{Date: date, Group: service, Value: value})
	}
	return observations, nil
}

// LoadOverview parses an aggregate daily spend export with date and
// total_cost columns.
func LoadOverview(path string) ([]schema.DailyPoint, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &schema.SchemaError{File: filepath.Base(path), Detail: err.Error()}
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, &schema.SchemaError{File: filepath.Base(path), Detail: "missing header row"}
	}
	dateIdx, err := columnIndex(header, path, "date")
	if err != nil {
		return nil, err
	}
	totalIdx, err := columnIndex(header, path, "total_cost")
	if err != nil {
		return nil, err
	}

	var totals []schema.DailyPoint
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &schema.SchemaError{File: filepath.Base(path), Detail: fmt.Sprintf("line %d: %v", line, err)}
		}
		date, err := parseDate(record[dateIdx], path, line)
		if err != nil {
			return nil, err
		}
		value, err := parseValue(record[totalIdx], path, line)
		if err != nil {
			return nil, err
		}
		totals = append(totals, schema.DailyPoint{Date: date, Value: value})
	}
	return totals, nil
}

// DeriveTotals sums per-service observations into one point per day,
// sorted by date ascending.
func DeriveTotals(observations []schema.Observation) []schema.DailyPoint {
	byDay := make(map[time.Time]float64)
	for _, obs := range observations {
		byDay[obs.Date] += obs.Value
	}
	totals := make([]schema.DailyPoint, 0, len(byDay))
	for day, value := range byDay {
		totals = append(totals, schema.DailyPoint{Date: day, Value: value})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Date.Before(totals[j].Date) })
	return totals
}

// columnIndex locates a required header column, case-insensitively.
func columnIndex(header []string, path, name string) (int, error) {
	if idx := findColumn(header, name); idx >= 0 {
		return idx, nil
	}
	return -1, &schema.SchemaError{File: filepath.Base(path), Detail: fmt.Sprintf("missing %s column", name)}
}

func findColumn(header []string, name string) int {
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i
		}
	}
	return -1
}

// parseDate normalizes a date cell to UTC midnight.
func parseDate(cell, path string, line int) (time.Time, error) {
	date, err := time.Parse(dateLayout, strings.TrimSpace(cell))
	if err != nil {
		return time.Time{}, &schema.SchemaError{
			File:   filepath.Base(path),
			Detail: fmt.Sprintf("line %d: bad date %q (want YYYY-MM-DD)", line, cell),
		}
	}
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC), nil
}

func parseValue(cell, path string, line int) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, &schema.SchemaError{
			File:   filepath.Base(path),
			Detail: fmt.Sprintf("line %d: bad cost value %q", line, cell),
		}
	}
	return value, nil
}
