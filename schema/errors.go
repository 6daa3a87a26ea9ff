package schema

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for errors.Is checks across package boundaries.
var (
	// ErrInsufficientHistory signals that the reference window was empty
	// after filtering. It is user-actionable ("need more history"), not a
	// generic failure.
	ErrInsufficientHistory = errors.New("insufficient history")

	// ErrBadSchema signals malformed input at the loading boundary.
	ErrBadSchema = errors.New("bad input schema")

	// ErrInvalidConfig signals configuration rejected before the pipeline runs.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// InsufficientHistoryError reports an empty reference window for a run.
type InsufficientHistoryError struct {
	WindowDays int
	Evaluation time.Time
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient history: no observations in the %d-day window before %s",
		e.WindowDays, e.Evaluation.Format("2006-01-02"))
}

// Unwrap makes errors.Is(err, ErrInsufficientHistory) work.
func (e *InsufficientHistoryError) Unwrap() error { return ErrInsufficientHistory }

// SchemaError reports missing columns, unparseable values or null keys in
// input data. It is raised only at the ingest boundary; the statistical
// core assumes well-typed input.
type SchemaError struct {
	File   string
	Detail string
}

func (e *SchemaError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("bad input schema: %s", e.Detail)
	}
	return fmt.Sprintf("bad input schema in %s: %s", e.File, e.Detail)
}

// Unwrap makes errors.Is(err, ErrBadSchema) work.
func (e *SchemaError) Unwrap() error { return ErrBadSchema }

// ConfigError reports an invalid threshold or window configuration.
type ConfigError struct {
	Field  string
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Detail)
}

// Unwrap makes errors.Is(err, ErrInvalidConfig) work.
func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }
