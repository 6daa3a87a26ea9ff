package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costwatch/costwatch/internal/contract"
	"github.com/costwatch/costwatch/schema"
)

// day returns a UTC midnight timestamp for a YYYY-MM-DD literal.
func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

// obs is shorthand for one observation row.
func obs(date time.Time, group string, value float64) schema.Observation {
	return schema.Observation{Date: date, Group: group, Value: value}
}

// testConfig returns a validated-shape config with the default gates.
func testConfig() *contract.Config {
	return &contract.Config{
		WindowDays:     contract.DefaultWindowDays,
		Sensitivity:    schema.MediumSensitivity,
		ZThreshold:     2.0,
		PctThreshold:   0.30,
		MinAbsDelta:    contract.DefaultMinAbsDelta,
		MinPctDelta:    contract.DefaultMinPctDelta,
		WeekdaySamples: contract.DefaultWeekdaySamples,
		StdScope:       schema.AutoStdScope,
		Policy:         contract.DefaultPolicy(),
		Workers:        4,
		ResultLimit:    contract.DefaultResultLimit,
		Precision:      2,
	}
}

// steadyHistory emits one observation per day for the n days before eval.
func steadyHistory(t *testing.T, eval time.Time, n int, group string, value float64) []schema.Observation {
	t.Helper()
	rows := make([]schema.Observation, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, obs(eval.AddDate(0, 0, -i), group, value))
	}
	return rows
}

func TestBuildBaselineWindowBounds(t *testing.T) {
	eval := day(t, "2026-08-15")
	cfg := testConfig()

	rows := steadyHistory(t, eval, 13, "ec2", 100)
	// Both of these must be excluded: the evaluation day itself and the
	// day exactly WindowDays before it.
	rows = append(rows,
		obs(eval, "ec2", 9999),
		obs(eval.AddDate(0, 0, -cfg.WindowDays), "ec2", 9999),
	)

	baseline, ref, err := buildBaseline(rows, eval, cfg)
	require.NoError(t, err)

	assert.Equal(t, schema.WindowMode, baseline.Mode)
	assert.Equal(t, 100.0, baseline.Expected["ec2"])
	assert.Equal(t, eval.AddDate(0, 0, -13), baseline.ReferenceStart)
	assert.Equal(t, eval.AddDate(0, 0, -1), baseline.ReferenceEnd)
	assert.Len(t, ref.window.days, 13)
}

func TestBuildBaselineCollapsesDailyRows(t *testing.T) {
	eval := day(t, "2026-08-15")
	prev := eval.AddDate(0, 0, -1)

	// Multiple rows per (group, day) sum into one daily total.
	rows := []schema.Observation{
		obs(prev, "s3", 30),
		obs(prev, "s3", 20),
		obs(prev.AddDate(0, 0, -1), "s3", 100),
	}

	baseline, _, err := buildBaseline(rows, eval, testConfig())
	require.NoError(t, err)
	assert.Equal(t, 75.0, baseline.Expected["s3"]) // mean of 50 and 100
}

func TestBuildBaselineInsufficientHistory(t *testing.T) {
	eval := day(t, "2026-08-15")

	// Only the evaluation day itself carries data.
	rows := []schema.Observation{obs(eval, "ec2", 100)}

	_, _, err := buildBaseline(rows, eval, testConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrInsufficientHistory))

	var histErr *schema.InsufficientHistoryError
	require.ErrorAs(t, err, &histErr)
	assert.Equal(t, contract.DefaultWindowDays, histErr.WindowDays)
}

func TestBuildBaselineWeekdayMode(t *testing.T) {
	eval := day(t, "2026-08-15") // a Saturday
	cfg := testConfig()
	cfg.Weekday = true
	cfg.WindowDays = 28

	var rows []schema.Observation
	for i := 1; i <= 27; i++ {
		d := eval.AddDate(0, 0, -i)
		value := 200.0
		if d.Weekday() == eval.Weekday() {
			value = 100.0
		}
		rows = append(rows, obs(d, "ec2", value))
	}

	baseline, ref, err := buildBaseline(rows, eval, cfg)
	require.NoError(t, err)

	// Offsets 7, 14, 21 match, satisfying the default sample gate of 3.
	assert.Equal(t, schema.WeekdayMode, baseline.Mode)
	assert.Equal(t, 100.0, baseline.Expected["ec2"])
	assert.Len(t, ref.weekday.days, 3)
}

func TestBuildBaselineWeekdayFallback(t *testing.T) {
	eval := day(t, "2026-08-15")
	cfg := testConfig()
	cfg.Weekday = true // 14-day window holds a single matching weekday

	rows := steadyHistory(t, eval, 13, "ec2", 100)

	baseline, _, err := buildBaseline(rows, eval, cfg)
	require.NoError(t, err)
	assert.Equal(t, schema.WindowMode, baseline.Mode)
}

func TestBuildBaselineWeekdayGateCountsDaysNotRows(t *testing.T) {
	eval := day(t, "2026-08-15")
	cfg := testConfig()
	cfg.Weekday = true
	cfg.WindowDays = 14

	// Many rows on the one matching day must still count as one sample.
	match := eval.AddDate(0, 0, -7)
	rows := steadyHistory(t, eval, 13, "ec2", 100)
	for range 5 {
		rows = append(rows, obs(match, "ec2", 10))
	}

	baseline, ref, err := buildBaseline(rows, eval, cfg)
	require.NoError(t, err)
	assert.Equal(t, schema.WindowMode, baseline.Mode)
	assert.Len(t, ref.weekday.days, 1)
}

func TestReferenceStdSetScopes(t *testing.T) {
	eval := day(t, "2026-08-15")
	cfg := testConfig()
	cfg.Weekday = true
	cfg.WindowDays = 28

	var rows []schema.Observation
	for i := 1; i <= 27; i++ {
		rows = append(rows, obs(eval.AddDate(0, 0, -i), "ec2", float64(100+i)))
	}

	_, ref, err := buildBaseline(rows, eval, cfg)
	require.NoError(t, err)
	require.Equal(t, schema.WeekdayMode, ref.mode)

	// Auto scope follows the baseline mode; window scope always widens.
	assert.Len(t, ref.stdSet(schema.AutoStdScope).values("ec2"), 3)
	assert.Len(t, ref.stdSet(schema.WindowStdScope).values("ec2"), 27)
}
