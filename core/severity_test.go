package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

func candidate(baseline, current float64) schema.DeviationCandidate {
	cand := schema.DeviationCandidate{
		Baseline: baseline,
		Current:  current,
		Delta:    current - baseline,
	}
	if baseline > 0 {
		cand.HasPct = true
		cand.DeltaPct = cand.Delta / baseline
	}
	return cand
}

func TestEscalateSeverityBands(t *testing.T) {
	pol := contract.DefaultPolicy()
	tests := []struct {
		name string
		base schema.Severity
		cand schema.DeviationCandidate
		want schema.Severity
	}{
		{"high pct band", schema.SeverityMedium, candidate(100, 160), schema.SeverityHigh},       // 60% >= 50%
		{"high abs band", schema.SeverityMedium, candidate(1000, 1120), schema.SeverityHigh},     // $120 >= $100
		{"medium pct band", schema.SeverityLow, candidate(100, 135), schema.SeverityMedium},      // 35% >= 30%
		{"medium abs band", schema.SeverityLow, candidate(1000, 1060), schema.SeverityMedium},    // $60 >= $50
		{"below all bands", schema.SeverityMedium, candidate(1000, 1020), schema.SeverityMedium}, // 2%, $20
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, escalateSeverity(tc.base, tc.cand, pol))
		})
	}
}

func TestEscalateSeverityNoPctRule(t *testing.T) {
	// Raise the absolute bands so only the undefined-percentage rule can
	// fire for a $250 delta.
	pol := contract.DefaultPolicy()
	pol.HighAbs = 1000
	pol.MediumAbs = 500

	got := escalateSeverity(schema.SeverityMedium, candidate(0, 250), pol)
	assert.Equal(t, schema.SeverityHigh, got) // $250 >= $200, pct undefined

	got = escalateSeverity(schema.SeverityMedium, candidate(0, 150), pol)
	assert.Equal(t, schema.SeverityMedium, got)
}

func TestEscalateSeverityNeverLowers(t *testing.T) {
	pol := contract.DefaultPolicy()

	// A CRITICAL base stays CRITICAL even when the bands would say MEDIUM.
	got := escalateSeverity(schema.SeverityCritical, candidate(1000, 1060), pol)
	assert.Equal(t, schema.SeverityCritical, got)

	// A HIGH base never drops to the MEDIUM band.
	got = escalateSeverity(schema.SeverityHigh, candidate(100, 135), pol)
	assert.Equal(t, schema.SeverityHigh, got)
}

func TestSeverityFromZ(t *testing.T) {
	tests := []struct {
		name   string
		z      float64
		absPct float64
		want   schema.Severity
	}{
		{"critical by z", 3.0, 0.1, schema.SeverityCritical},
		{"critical by pct", 1.0, 1.0, schema.SeverityCritical},
		{"high by z", 2.5, 0.1, schema.SeverityHigh},
		{"high by pct", 1.0, 0.75, schema.SeverityHigh},
		{"medium by z", 2.0, 0.1, schema.SeverityMedium},
		{"medium by pct", 1.0, 0.5, schema.SeverityMedium},
		{"low otherwise", 1.9, 0.49, schema.SeverityLow},
		{"infinite z", math.Inf(1), 0, schema.SeverityCritical},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SeverityFromZ(tc.z, tc.absPct))
		})
	}
}

func TestConfidenceFromZ(t *testing.T) {
	assert.InDelta(t, 0.5, confidenceFromZ(1.5), 1e-9)
	assert.Equal(t, 1.0, confidenceFromZ(3.0))
	assert.Equal(t, 1.0, confidenceFromZ(50))
	assert.Equal(t, 1.0, confidenceFromZ(math.Inf(1)))
	assert.Equal(t, 0.0, confidenceFromZ(0))
}
