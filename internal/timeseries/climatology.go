package timeseries

import (
	"math"
	"strconv"
)

// DefaultQuantiles returns the quantile levels reported by the standard
// climatology products
func DefaultQuantiles() []float64 {
	return []float64{0.25, 0.5, 0.75}
}

// MeanAndStandardDeviation computes climatological means and sample
// standard deviations by day of year over the given reference years.
//
// Each value is keyed by day of year starting Jan 1, so day 366 combines
// Dec 31 of leap years with Jan 1 of the year following each non-leap
// year (no Jan 1 beyond the last climatology year contributes; the
// window simply has no data there unless the input does). The mean needs
// at least one contributing year; the standard deviation (ddof=1) needs
// at least two, and is NaN otherwise.
//
// The result is a stack indexed 1..366 with columns "<name>_mean" and
// "<name>_std".
func MeanAndStandardDeviation(s *Series, years YearRange) (*Stack, error) {
	clim, err := StackedClimatology(s, years)
	if err != nil {
		return nil, err
	}

	means := make([]float64, clim.Len())
	stds := make([]float64, clim.Len())
	for i := 0; i < clim.Len(); i++ {
		row := clim.Row(i)
		means[i] = nanMean(row)
		stds[i] = nanStd(row)
	}

	out := NewStack(clim.index)
	if err := out.AddColumn(s.Name()+"_mean", means); err != nil {
		return nil, err
	}
	if err := out.AddColumn(s.Name()+"_std", stds); err != nil {
		return nil, err
	}
	return out, nil
}

// Quantiles computes per-day-of-year quantiles over the reference years,
// one column per requested level, using linear interpolation between
// order statistics. Rows where no year contributed any data, which,
// given the leap-day asymmetry, regularly includes day 366, are dropped
// from the result rather than reported as NaN.
func Quantiles(s *Series, years YearRange, levels []float64) (*Stack, error) {
	if len(levels) == 0 {
		levels = DefaultQuantiles()
	}
	for _, level := range levels {
		if level < 0 || level > 1 || math.IsNaN(level) {
			return nil, invalidArg("levels", "quantile level %v outside [0, 1]", level)
		}
	}

	clim, err := StackedClimatology(s, years)
	if err != nil {
		return nil, err
	}

	columns := make([][]float64, len(levels))
	for c := range columns {
		columns[c] = make([]float64, clim.Len())
	}
	var keep []int
	for i := 0; i < clim.Len(); i++ {
		row := clim.Row(i)
		any := false
		for c, level := range levels {
			v := nanQuantile(row, level)
			columns[c][i] = v
			if !isNaN(v) {
				any = true
			}
		}
		if any {
			keep = append(keep, i)
		}
	}

	index := make([]int, len(keep))
	for i, r := range keep {
		index[i] = clim.index[r]
	}
	out := NewStack(index)
	for c, level := range levels {
		values := make([]float64, len(keep))
		for i, r := range keep {
			values[i] = columns[c][r]
		}
		if err := out.AddColumn(quantileColumnName(level), values); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// quantileColumnName labels a quantile column by its level, e.g. "0.25"
func quantileColumnName(level float64) string {
	return strconv.FormatFloat(level, 'g', -1, 64)
}

// NormalStatistics is the report-facing wrapper around
// MeanAndStandardDeviation: it optionally smooths the day-of-year
// statistics with a wrapped n-day average (min valid 1, original missing
// slots preserved) so the smoothing carries across the year boundary.
func NormalStatistics(s *Series, years YearRange, smoothDays int) (*Stack, error) {
	stats, err := MeanAndStandardDeviation(s, years)
	if err != nil {
		return nil, err
	}
	if smoothDays > 0 {
		return NDayAverageStack(stats, smoothDays, 1, true, true)
	}
	return stats, nil
}

// QuantileStatistics is the report-facing wrapper around Quantiles with
// the same optional wrapped smoothing. Unlike NormalStatistics it does
// not preserve missing slots: all-missing days were already dropped.
func QuantileStatistics(s *Series, years YearRange, levels []float64, smoothDays int) (*Stack, error) {
	stats, err := Quantiles(s, years, levels)
	if err != nil {
		return nil, err
	}
	if smoothDays > 0 {
		return NDayAverageStack(stats, smoothDays, 1, false, true)
	}
	return stats, nil
}
