package schema

import "fmt"

// Custom string types for type safety.
type (
	// ChangeKind categorizes the nature of a detected cost change.
	ChangeKind string

	// BaselineMode indicates which reference subset produced a baseline.
	BaselineMode string

	// StdScope selects which reference subset feeds the standard deviation
	// used for z-scoring.
	StdScope string

	// OutputMode represents the format of the output.
	OutputMode string

	// Sensitivity is a named detection-threshold preset.
	Sensitivity string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string

	// AlertChannel represents a delivery channel for finding alerts.
	AlertChannel string
)

// All change kinds supported.
const (
	NewKind   ChangeKind = "new"   // material spend with no prior baseline
	DropKind  ChangeKind = "drop"  // known spend disappeared entirely
	SpikeKind ChangeKind = "spike" // abrupt jump relative to recent behavior
	DriftKind ChangeKind = "drift" // gradual sustained movement from baseline
)

// All baseline modes supported.
const (
	WindowMode  BaselineMode = "window"  // full lookback window
	WeekdayMode BaselineMode = "weekday" // weekday-matched subset of the window
)

// All std scopes supported.
const (
	AutoStdScope   StdScope = "auto"   // follow the baseline mode (default)
	WindowStdScope StdScope = "window" // always the full lookback window
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
	YAMLOut OutputMode = "yaml"
)

// All sensitivity presets supported.
const (
	LowSensitivity    Sensitivity = "low"
	MediumSensitivity Sensitivity = "medium" // default
	HighSensitivity   Sensitivity = "high"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// All alert channels supported.
const (
	ConsoleAlert AlertChannel = "console" // default
	SlackAlert   AlertChannel = "slack"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
	YAMLOut: {},
}

// ValidSensitivities lists all valid sensitivity presets.
var ValidSensitivities = map[Sensitivity]struct{}{
	LowSensitivity:    {},
	MediumSensitivity: {},
	HighSensitivity:   {},
}

// ValidStdScopes lists all valid std scopes.
var ValidStdScopes = map[StdScope]struct{}{
	AutoStdScope:   {},
	WindowStdScope: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Severity ranks how material a finding is. The zero value is SeverityLow;
// values are totally ordered and must only be compared ordinally, never by
// their textual labels.
type Severity int

// All severities, in ascending order of materiality.
const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// severityLabels maps each severity to its canonical label.
var severityLabels = [...]string{"LOW", "MEDIUM", "HIGH", "CRITICAL"}

// String returns the canonical uppercase label for the severity.
func (s Severity) String() string {
	if s < SeverityLow || s > SeverityCritical {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityLabels[s]
}

// MarshalText implements encoding.TextMarshaler so severities render as
// labels in JSON and YAML exports.
func (s Severity) MarshalText() ([]byte, error) {
	if s < SeverityLow || s > SeverityCritical {
		return nil, fmt.Errorf("unknown severity: %d", int(s))
	}
	return []byte(severityLabels[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity converts a label back into a Severity.
func ParseSeverity(label string) (Severity, error) {
	for i, l := range severityLabels {
		if l == label {
			return Severity(i), nil
		}
	}
	return SeverityLow, fmt.Errorf("unknown severity label: %q", label)
}

// MaxSeverity returns the greater of two severities by ordinal comparison.
func MaxSeverity(a, b Severity) Severity {
	if a >= b {
		return a
	}
	return b
}
