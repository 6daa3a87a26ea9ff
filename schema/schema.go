// Package schema has models, enums and errors shared by all parts of costwatch.
package schema

import (
	"sort"
	"time"
)

// Observation is one cost measurement for one group on one calendar day.
// Dates are normalized to UTC midnight by the loader. Multiple rows per
// (group, day) are legal; the engine collapses them to a daily total.
type Observation struct {
	Date  time.Time // calendar day, UTC midnight
	Group string    // tracked dimension, e.g. a billing service name
	Value float64   // observed cost for that day
}

// DailyPoint is one point of the aggregate daily-total series.
type DailyPoint struct {
	Date  time.Time
	Value float64
}

// Baseline holds the expected daily value per group over a reference window.
// It is built fresh each run and never mutated after construction.
// Invariant: ReferenceStart <= ReferenceEnd < the evaluation date.
type Baseline struct {
	ReferenceStart time.Time
	ReferenceEnd   time.Time
	Mode           BaselineMode
	Expected       map[string]float64 // group -> expected daily value
}

// DeviationCandidate is the ephemeral output of the deviation scorer for one
// group on the evaluation date. HasPct is false when the baseline is zero,
// in which case DeltaPct is meaningless. ZScore is +Inf when the reference
// standard deviation is zero or undefined and the delta is nonzero.
type DeviationCandidate struct {
	Group    string
	Baseline float64
	Current  float64
	Delta    float64
	DeltaPct float64
	HasPct   bool
	ZScore   float64
}

// Finding is one reported material change for one group on one evaluation
// date. It is immutable once assembled.
type Finding struct {
	Group       string     `json:"group" yaml:"group"`
	Date        time.Time  `json:"date" yaml:"date"`
	Baseline    float64    `json:"baseline" yaml:"baseline"`
	Current     float64    `json:"current" yaml:"current"`
	Delta       float64    `json:"delta" yaml:"delta"`
	DeltaPct    *float64   `json:"delta_pct" yaml:"delta_pct"` // nil when baseline is zero
	Kind        ChangeKind `json:"kind" yaml:"kind"`
	Severity    Severity   `json:"severity" yaml:"severity"`
	Confidence  float64    `json:"confidence" yaml:"confidence"`
	Explanation string     `json:"explanation" yaml:"explanation"`
}

// AbsDeltaPct returns |DeltaPct|, or 0 when the percentage is undefined.
func (f Finding) AbsDeltaPct() float64 {
	if f.DeltaPct == nil {
		return 0
	}
	if *f.DeltaPct < 0 {
		return -*f.DeltaPct
	}
	return *f.DeltaPct
}

// Summary accompanies every finding list.
type Summary struct {
	TotalFindings  int     `json:"total_findings" yaml:"total_findings"`
	ImpactedGroups int     `json:"impacted_groups" yaml:"impacted_groups"`
	MaxAbsPctDelta float64 `json:"max_abs_pct_delta" yaml:"max_abs_pct_delta"` // 0 when the list is empty
}

// DetectionResult is the terminal artifact of one engine run. Findings are
// in presentation order (most material first); machine-readable exports
// re-sort by (date, group) ascending.
type DetectionResult struct {
	EvaluationDate time.Time `json:"evaluation_date" yaml:"evaluation_date"`
	Baseline       Baseline  `json:"-" yaml:"-"`
	Findings       []Finding `json:"findings" yaml:"findings"`
	Summary        Summary   `json:"summary" yaml:"summary"`
}

// SortFindingsForExport returns a copy ordered by (date, group) ascending,
// the deterministic order for machine-readable exports.
func SortFindingsForExport(findings []Finding) []Finding {
	out := make([]Finding, len(findings))
	copy(out, findings)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Group < out[j].Group
	})
	return out
}

// HasCritical reports whether any finding reached CRITICAL severity.
func (r *DetectionResult) HasCritical() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
