package core

import (
	"sort"
	"time"

	"github.com/costwatch/costwatch/core/stats"
	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

// dayValue is one group's total for one reference day.
type dayValue struct {
	day   time.Time
	value float64
}

// referenceSet holds per-group daily totals over one reference subset.
type referenceSet struct {
	days    []time.Time           // sorted distinct days present in the subset
	byGroup map[string][]dayValue // day-ascending totals per group
}

// empty reports whether the subset contains no reference days.
func (s *referenceSet) empty() bool { return len(s.days) == 0 }

// values returns the day-ordered totals for a group.
func (s *referenceSet) values(group string) []float64 {
	dvs := s.byGroup[group]
	out := make([]float64, len(dvs))
	for i, dv := range dvs {
		out[i] = dv.value
	}
	return out
}

// trailing returns up to the last n daily totals for a group.
func (s *referenceSet) trailing(group string, n int) []float64 {
	vals := s.values(group)
	if len(vals) > n {
		vals = vals[len(vals)-n:]
	}
	return vals
}

// reference bundles the full-window subset and the weekday-matched subset so
// later stages can pick the scope they need.
type reference struct {
	window  referenceSet
	weekday referenceSet
	mode    schema.BaselineMode
}

// selected returns the subset the baseline was built from.
func (r *reference) selected() *referenceSet {
	if r.mode == schema.WeekdayMode {
		return &r.weekday
	}
	return &r.window
}

// stdSet returns the subset feeding the standard deviation for z-scoring.
// The auto scope follows the baseline mode; the window scope always uses
// the full lookback window.
func (r *reference) stdSet(scope schema.StdScope) *referenceSet {
	if scope == schema.WindowStdScope {
		return &r.window
	}
	return r.selected()
}

// buildBaseline derives the expected daily value per group from the
// reference window before evalDate. The window covers
// (evalDate - WindowDays, evalDate), both bounds exclusive: the evaluation
// day itself never feeds its own baseline. With the weekday preference on,
// the window narrows to days matching evalDate's weekday when at least
// WeekdaySamples distinct such days exist; otherwise it falls back to the
// full window.
func buildBaseline(obs []schema.Observation, evalDate time.Time, cfg *contract.Config) (*schema.Baseline, *reference, error) {
	windowStart := evalDate.AddDate(0, 0, -cfg.WindowDays)

	window := aggregateDaily(obs, func(o schema.Observation) bool {
		return o.Date.After(windowStart) && o.Date.Before(evalDate)
	})
	if window.empty() {
		return nil, nil, &schema.InsufficientHistoryError{WindowDays: cfg.WindowDays, Evaluation: evalDate}
	}

	weekday := aggregateDaily(obs, func(o schema.Observation) bool {
		return o.Date.After(windowStart) && o.Date.Before(evalDate) && o.Date.Weekday() == evalDate.Weekday()
	})

	ref := &reference{window: window, weekday: weekday, mode: schema.WindowMode}
	// The weekday gate counts distinct calendar days, not rows: one busy day
	// with many rows is still a single sample.
	if cfg.Weekday && len(weekday.days) >= cfg.WeekdaySamples {
		ref.mode = schema.WeekdayMode
	}

	selected := ref.selected()
	expected := make(map[string]float64, len(selected.byGroup))
	for group := range selected.byGroup {
		expected[group] = stats.Mean(selected.values(group))
	}

	return &schema.Baseline{
		ReferenceStart: selected.days[0],
		ReferenceEnd:   selected.days[len(selected.days)-1],
		Mode:           ref.mode,
		Expected:       expected,
	}, ref, nil
}

// aggregateDaily collapses observations matching keep into per-group daily
// totals, ordered by day.
func aggregateDaily(obs []schema.Observation, keep func(schema.Observation) bool) referenceSet {
	totals := make(map[string]map[time.Time]float64)
	daySet := make(map[time.Time]struct{})
	for _, o := range obs {
		if !keep(o) {
			continue
		}
		if totals[o.Group] == nil {
			totals[o.Group] = make(map[time.Time]float64)
		}
		totals[o.Group][o.Date] += o.Value
		daySet[o.Date] = struct{}{}
	}

	days := make([]time.Time, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	byGroup := make(map[string][]dayValue, len(totals))
	for group, perDay := range totals {
		dvs := make([]dayValue, 0, len(perDay))
		for d, v := range perDay {
			dvs = append(dvs, dayValue{day: d, value: v})
		}
		sort.Slice(dvs, func(i, j int) bool { return dvs[i].day.Before(dvs[j].day) })
		byGroup[group] = dvs
	}

	return referenceSet{days: days, byGroup: byGroup}
}

// dayTotals sums each group's observations on a single day.
func dayTotals(obs []schema.Observation, day time.Time) map[string]float64 {
	totals := make(map[string]float64)
	for _, o := range obs {
		if o.Date.Equal(day) {
			totals[o.Group] += o.Value
		}
	}
	return totals
}
