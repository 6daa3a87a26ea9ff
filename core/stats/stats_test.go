package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMean covers the empty and typical cases.
func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"single", []float64{10}, 10},
		{"flat", []float64{10, 10, 10}, 10},
		{"mixed", []float64{1, 2, 3, 4}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Mean(tt.values), 1e-9)
		})
	}
}

// TestStdDev verifies the sample (n-1) deviation and the undefined cases.
func TestStdDev(t *testing.T) {
	std, ok := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.True(t, ok)
	assert.InDelta(t, 2.138, std, 0.001)

	std, ok = StdDev([]float64{10, 10, 10})
	assert.True(t, ok)
	assert.Zero(t, std)

	_, ok = StdDev([]float64{42})
	assert.False(t, ok)

	_, ok = StdDev(nil)
	assert.False(t, ok)
}

// TestAbsZScore verifies the explicit +Inf rule for zero/undefined deviation.
func TestAbsZScore(t *testing.T) {
	assert.InDelta(t, 2.0, AbsZScore(120, 100, 10, true), 1e-9)
	assert.InDelta(t, 2.0, AbsZScore(80, 100, 10, true), 1e-9)

	// Zero std with a nonzero delta must resolve to +Inf, not be dropped.
	assert.True(t, math.IsInf(AbsZScore(120, 100, 0, true), 1))
	assert.True(t, math.IsInf(AbsZScore(120, 100, 0, false), 1))

	// Zero delta is never anomalous whatever the std.
	assert.Zero(t, AbsZScore(100, 100, 0, false))
	assert.Zero(t, AbsZScore(100, 100, 5, true))
}

// TestVolatility verifies the coefficient of variation.
func TestVolatility(t *testing.T) {
	assert.Zero(t, Volatility([]float64{10}))
	assert.Zero(t, Volatility([]float64{10, 10, 10, 10}))
	assert.Greater(t, Volatility([]float64{10, 50, 10, 50}), 0.4)
}
