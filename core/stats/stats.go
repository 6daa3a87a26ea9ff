// Package stats has scalar statistics kernels used by the detection engine.
package stats

import "math"

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the sample standard deviation (n-1 denominator) of values.
// The boolean is false when fewer than two samples exist, in which case the
// deviation is undefined.
func StdDev(values []float64) (float64, bool) {
	n := len(values)
	if n < 2 {
		return 0, false
	}
	mean := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1)), true
}

// AbsZScore standardizes |value - mean| against std. When std is zero or
// undefined (ok=false) the score is +Inf for any nonzero deviation and 0
// otherwise, so sparse-history cases resolve deterministically instead of
// being dropped.
func AbsZScore(value, mean, std float64, ok bool) float64 {
	delta := math.Abs(value - mean)
	if !ok || std == 0 {
		if delta == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return delta / std
}

// Volatility returns the coefficient of variation (std/mean) of values,
// guarding against a zero mean.
func Volatility(values []float64) float64 {
	std, ok := StdDev(values)
	if !ok {
		return 0
	}
	return std / math.Max(Mean(values), 0.01)
}
