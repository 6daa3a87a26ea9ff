package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

func TestClassifyNew(t *testing.T) {
	cls, ok := classifyChange(0, nil, 300, contract.DefaultMinAbsDelta, contract.DefaultPolicy())
	require.True(t, ok)
	assert.Equal(t, schema.NewKind, cls.kind)
	assert.Equal(t, schema.SeverityMedium, cls.severity)
	assert.Equal(t, 0.9, cls.confidence)
}

func TestClassifyNewBelowFloor(t *testing.T) {
	_, ok := classifyChange(0, nil, 5, contract.DefaultMinAbsDelta, contract.DefaultPolicy())
	assert.False(t, ok)
}

func TestClassifyDrop(t *testing.T) {
	recent := []float64{100, 100, 100}
	cls, ok := classifyChange(100, recent, 0, contract.DefaultMinAbsDelta, contract.DefaultPolicy())
	require.True(t, ok)
	assert.Equal(t, schema.DropKind, cls.kind)
	assert.Equal(t, schema.SeverityHigh, cls.severity)
}

func TestClassifyNoTrailingHistory(t *testing.T) {
	_, ok := classifyChange(100, nil, 180, contract.DefaultMinAbsDelta, contract.DefaultPolicy())
	assert.False(t, ok)
}

func TestClassifyImmaterialDelta(t *testing.T) {
	recent := []float64{100, 100}
	_, ok := classifyChange(100, recent, 104, contract.DefaultMinAbsDelta, contract.DefaultPolicy())
	assert.False(t, ok)
}

func TestClassifySpike(t *testing.T) {
	// Recent behavior is flat around the baseline, so a jump to 180 is
	// abrupt rather than the continuation of a trend.
	recent := []float64{101, 103, 102, 101, 103, 102, 102}
	cls, ok := classifyChange(100, recent, 180, contract.DefaultMinAbsDelta, contract.DefaultPolicy())
	require.True(t, ok)
	assert.Equal(t, schema.SpikeKind, cls.kind)
	assert.Equal(t, schema.SeverityMedium, cls.severity) // |delta| 80 < 100
	assert.Equal(t, 0.7, cls.confidence)
}

func TestClassifySpikeHighOnLargeDelta(t *testing.T) {
	recent := []float64{100, 100, 100}
	cls, ok := classifyChange(100, recent, 250, contract.DefaultMinAbsDelta, contract.DefaultPolicy())
	require.True(t, ok)
	assert.Equal(t, schema.SpikeKind, cls.kind)
	assert.Equal(t, schema.SeverityHigh, cls.severity) // |delta| 150 >= 100
}

func TestClassifyDrift(t *testing.T) {
	// A steady ramp: recent average is already well above the baseline,
	// and the current value sits close to that recent level.
	recent := []float64{140, 145, 150, 155, 160, 165, 170}
	cls, ok := classifyChange(130, recent, 165, contract.DefaultMinAbsDelta, contract.DefaultPolicy())
	require.True(t, ok)
	assert.Equal(t, schema.DriftKind, cls.kind)
	assert.Equal(t, schema.SeverityMedium, cls.severity)
	assert.Equal(t, 0.6, cls.confidence)
}

func TestClassifySpikeRatioOverride(t *testing.T) {
	pol := contract.DefaultPolicy()
	recent := []float64{140, 145, 150, 155, 160, 165, 170} // avg 155

	// With the default 1.5 ratio this shape is drift; a tighter ratio
	// reclassifies it as a spike.
	pol.SpikeRatio = 0.2
	cls, ok := classifyChange(130, recent, 165, contract.DefaultMinAbsDelta, pol)
	require.True(t, ok)
	assert.Equal(t, schema.SpikeKind, cls.kind)
}
