package core

import (
	"math"

	"github.com/costwatch/costwatch/core/stats"
	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

// scoreGroup compares one group's evaluation-day total against its baseline
// and produces a deviation candidate, or ok=false when the group is not
// worth considering. The gates, in order:
//
//  1. both baseline and current zero: true absence of activity, not a signal;
//  2. |delta| below the absolute floor: immaterial regardless of percentage
//     (a delta exactly at the floor passes);
//  3. the sensitivity (z, pct) gate — skipped for appeared/disappeared spend
//     so the classifier's new/drop rules always see those candidates.
func scoreGroup(group string, baseline, current float64, ref *reference, cfg *contract.Config) (schema.DeviationCandidate, bool) {
	if baseline == 0 && current == 0 {
		return schema.DeviationCandidate{}, false
	}

	delta := current - baseline
	if math.Abs(delta) < cfg.MinAbsDelta {
		return schema.DeviationCandidate{}, false
	}

	cand := schema.DeviationCandidate{
		Group:    group,
		Baseline: baseline,
		Current:  current,
		Delta:    delta,
	}
	if baseline > 0 {
		cand.HasPct = true
		cand.DeltaPct = delta / baseline
	}

	std, ok := stats.StdDev(ref.stdSet(cfg.StdScope).values(group))
	cand.ZScore = stats.AbsZScore(current, baseline, std, ok)

	if baseline == 0 || current == 0 {
		return cand, true
	}
	if cand.ZScore >= cfg.ZThreshold && math.Abs(cand.DeltaPct) >= cfg.PctThreshold {
		return cand, true
	}
	return schema.DeviationCandidate{}, false
}
