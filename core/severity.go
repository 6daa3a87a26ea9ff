package core

import (
	"math"

	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

// escalateSeverity applies the escalation bands to a candidate's base
// severity. Escalation only: the result is never lower than the base.
// Comparisons are ordinal over the closed Severity enum; the old
// string-label maximum ordered HIGH < LOW < MEDIUM lexically and is gone.
func escalateSeverity(base schema.Severity, cand schema.DeviationCandidate, pol contract.Policy) schema.Severity {
	absDelta := math.Abs(cand.Delta)
	absPct := math.Abs(cand.DeltaPct)

	switch {
	case (cand.HasPct && absPct >= pol.HighPct) || absDelta >= pol.HighAbs:
		return schema.MaxSeverity(base, schema.SeverityHigh)
	case (cand.HasPct && absPct >= pol.MediumPct) || absDelta >= pol.MediumAbs:
		return schema.MaxSeverity(base, schema.SeverityMedium)
	case !cand.HasPct && absDelta >= pol.NoPctHighAbs:
		return schema.MaxSeverity(base, schema.SeverityHigh)
	}
	return base
}

// SeverityFromZ maps a standardized deviation and an absolute percentage
// deviation (as a fraction, 1.0 = 100%) to a severity tier. This is the
// standalone table used by the rolling daily scan, independent of the
// classifier path.
func SeverityFromZ(z, absPct float64) schema.Severity {
	switch {
	case z >= 3.0 || absPct >= 1.0:
		return schema.SeverityCritical
	case z >= 2.5 || absPct >= 0.75:
		return schema.SeverityHigh
	case z >= 2.0 || absPct >= 0.5:
		return schema.SeverityMedium
	default:
		return schema.SeverityLow
	}
}

// confidenceFromZ normalizes a z-score into a [0,1] confidence.
func confidenceFromZ(z float64) float64 {
	return math.Min(z/3.0, 1.0)
}
