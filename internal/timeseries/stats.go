package timeseries

import (
	"math"
	"sort"
)

func isNaN(v float64) bool { return math.IsNaN(v) }

// nanMean averages the valid values, NaN when there are none
func nanMean(values []float64) float64 {
	sum := 0.0
	count := 0
	for _, v := range values {
		if !isNaN(v) {
			sum += v
			count++
		}
	}
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}

// nanStd is the sample standard deviation (ddof=1) of the valid values,
// NaN when fewer than two are valid
func nanStd(values []float64) float64 {
	mean := nanMean(values)
	if isNaN(mean) {
		return math.NaN()
	}
	sum := 0.0
	count := 0
	for _, v := range values {
		if !isNaN(v) {
			d := v - mean
			sum += d * d
			count++
		}
	}
	if count < 2 {
		return math.NaN()
	}
	return math.Sqrt(sum / float64(count-1))
}

// nanQuantile computes the level-th quantile (level in [0, 1]) of the
// valid values using linear interpolation between order statistics at
// rank h = (n-1)*level, matching numpy's default percentile method so
// that historical reference outputs reproduce exactly. NaN when no valid
// values exist.
func nanQuantile(values []float64, level float64) float64 {
	var valid []float64
	for _, v := range values {
		if !isNaN(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		return math.NaN()
	}
	sort.Float64s(valid)
	if len(valid) == 1 {
		return valid[0]
	}
	h := float64(len(valid)-1) * level
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return valid[lo]
	}
	return valid[lo] + (h-float64(lo))*(valid[hi]-valid[lo])
}
