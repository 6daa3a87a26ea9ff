package core

import (
	"fmt"
	"math"

	"github.com/costwatch/costwatch/core/stats"
	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

// classification is the classifier's verdict for one candidate.
type classification struct {
	kind        schema.ChangeKind
	severity    schema.Severity // base severity; the policy may escalate it
	confidence  float64
	explanation string
}

// classifyChange categorizes how a group's cost changed relative to its
// baseline. This intentionally favors interpretability over precision.
//
// The rules form a priority list; the first match wins:
//
//  1. no baseline, material spend     -> new
//  2. baseline existed, spend is zero -> drop
//  3. no trailing history             -> no classification
//  4. immaterial delta                -> no classification
//  5. abrupt relative to recent       -> spike
//  6. otherwise                       -> drift
func classifyChange(baseline float64, recent []float64, current float64, minAbsDelta float64, pol contract.Policy) (classification, bool) {
	if baseline == 0 && current >= minAbsDelta {
		return classification{
			kind:       schema.NewKind,
			severity:   schema.SeverityMedium,
			confidence: 0.9,
			explanation: "Group shows material spend with no prior baseline, " +
				"indicating newly introduced or previously unused usage.",
		}, true
	}

	if baseline > 0 && current == 0 {
		return classification{
			kind:       schema.DropKind,
			severity:   schema.SeverityHigh,
			confidence: 0.9,
			explanation: "Spend dropped to zero relative to its historical baseline, " +
				"suggesting decommissioning, outage, or workload removal.",
		}, true
	}

	// Without trailing history there is no way to reason about trend shape.
	if len(recent) == 0 {
		return classification{}, false
	}

	delta := current - baseline
	if math.Abs(delta) < minAbsDelta {
		return classification{}, false
	}

	// A spike is abrupt relative to *recent* stability, not the older
	// baseline: a value already trending up is drift, not a spike.
	avgRecent := stats.Mean(recent)
	if math.Abs(current-avgRecent) > pol.SpikeRatio*math.Abs(avgRecent-baseline) {
		severity := schema.SeverityMedium
		if math.Abs(delta) >= pol.SpikeHighAbs {
			severity = schema.SeverityHigh
		}
		return classification{
			kind:       schema.SpikeKind,
			severity:   severity,
			confidence: 0.7,
			explanation: fmt.Sprintf("Cost changed abruptly relative to the recent average of $%.2f, "+
				"suggesting a short-lived spike rather than sustained growth.", avgRecent),
		}, true
	}

	return classification{
		kind:       schema.DriftKind,
		severity:   schema.SeverityMedium,
		confidence: 0.6,
		explanation: "Cost has moved gradually relative to its baseline, " +
			"indicating a sustained change rather than a transient anomaly.",
	}, true
}
