package timeseries

import (
	"math"
	"time"
)

// Defaults for the 5-day smoothing applied to daily series before
// monthly rates of change are derived.
const (
	DefaultNDayAverage  = 5
	DefaultMinValidDays = 2
)

// Km2ToMi2 converts square kilometers to square miles
const Km2ToMi2 = 0.386102

// MonthlyMeans holds a per-calendar-month climatological mean, for the
// months that had any data in the reference window
type MonthlyMeans struct {
	months []time.Month
	means  map[time.Month]float64
}

// Months returns the months present, ascending
func (m *MonthlyMeans) Months() []time.Month {
	return append([]time.Month(nil), m.months...)
}

// Mean returns the climatological mean for the month, and whether the
// month had any data at all
func (m *MonthlyMeans) Mean(month time.Month) (float64, bool) {
	v, ok := m.means[month]
	return v, ok
}

// ClimatologyMeans groups the entries of a monthly (or daily) series that
// fall within the reference years by calendar month and averages each
// group, skipping missing values
func ClimatologyMeans(s *Series, years YearRange) (*MonthlyMeans, error) {
	if !years.Valid() {
		return nil, invalidArg("years", "invalid year range %d-%d", years.Start, years.End)
	}
	grouped := map[time.Month][]float64{}
	for i := 0; i < s.Len(); i++ {
		d := s.DateAt(i)
		if !years.Contains(d.Year) {
			continue
		}
		grouped[d.Month] = append(grouped[d.Month], s.ValueAt(i))
	}

	out := &MonthlyMeans{means: map[time.Month]float64{}}
	for month := time.January; month <= time.December; month++ {
		values, ok := grouped[month]
		if !ok {
			continue
		}
		out.months = append(out.months, month)
		out.means[month] = nanMean(values)
	}
	return out, nil
}

// MonthlyAnomaly subtracts each entry's calendar-month climatological
// mean from the entry. Entries in months with no climatology data come
// back NaN.
func MonthlyAnomaly(s *Series, years YearRange) (*Series, error) {
	means, err := ClimatologyMeans(s, years)
	if err != nil {
		return nil, err
	}
	values := make([]float64, s.Len())
	for i := 0; i < s.Len(); i++ {
		mean, ok := means.Mean(s.DateAt(i).Month)
		if !ok {
			values[i] = math.NaN()
			continue
		}
		values[i] = s.ValueAt(i) - mean
	}
	return s.withValues(values), nil
}

// MonthlyPercentAnomaly expresses the monthly anomaly as a percentage of
// the month's climatological mean: 100 * (value - mean) / mean
func MonthlyPercentAnomaly(s *Series, years YearRange) (*Series, error) {
	anomaly, err := MonthlyAnomaly(s, years)
	if err != nil {
		return nil, err
	}
	means, err := ClimatologyMeans(s, years)
	if err != nil {
		return nil, err
	}
	values := make([]float64, s.Len())
	for i := 0; i < s.Len(); i++ {
		mean, ok := means.Mean(s.DateAt(i).Month)
		if !ok {
			values[i] = math.NaN()
			continue
		}
		values[i] = 100 * anomaly.ValueAt(i) / mean
	}
	return s.withValues(values), nil
}

// Trend fits a degree-1 least-squares line of value against integer year
// and evaluates it at every index position. Missing values are excluded
// from the fit but still receive a trendline value. With fewer than two
// valid points the fit is undefined and every value is NaN.
func Trend(s *Series) *Series {
	var sx, sy, sxx, sxy float64
	count := 0
	for i := 0; i < s.Len(); i++ {
		v := s.ValueAt(i)
		if isNaN(v) {
			continue
		}
		x := float64(s.DateAt(i).Year)
		sx += x
		sy += v
		sxx += x * x
		sxy += x * v
		count++
	}

	values := make([]float64, s.Len())
	n := float64(count)
	denom := n*sxx - sx*sx
	if count < 2 || denom == 0 {
		for i := range values {
			values[i] = math.NaN()
		}
		return s.withValues(values)
	}

	slope := (n*sxy - sx*sy) / denom
	intercept := (sy - slope*sx) / n
	for i := 0; i < s.Len(); i++ {
		values[i] = slope*float64(s.DateAt(i).Year) + intercept
	}
	return s.withValues(values)
}

// RateOfChange holds one month's representative values and derived
// change statistics. The representative value is the month's last 5-day
// averaged extent, valid only when every day of the month had a numeric
// smoothed value.
type RateOfChange struct {
	Year  int
	Month time.Month

	// LastDay is the day-of-month of the month's final daily row
	LastDay int

	// Extent and InterpolatedExtent are the month's last daily values in
	// millions of km²
	Extent             float64
	InterpolatedExtent float64

	// FiveDayAverage is the month's last 5-day averaged extent, NaN for
	// incomplete months
	FiveDayAverage float64

	ChangeMkm2PerMonth float64
	ChangeKm2PerDay    float64
	ChangeMi2PerMonth  float64
	ChangeMi2PerDay    float64
}

// RatesOfChange is a (year, month)-indexed table of monthly change
// statistics, ascending
type RatesOfChange struct {
	rows []RateOfChange
}

// Rows returns a copy of the table rows
func (r *RatesOfChange) Rows() []RateOfChange {
	return append([]RateOfChange(nil), r.rows...)
}

// MonthlyRatesOfChange derives month-over-month extent change from a
// daily total-extent series (km²). The series is scaled to millions of
// km², gap-filled across single missing days, and smoothed with the
// standard 5-day average; each month's representative value is its last
// smoothed value. A month counts only when every day up to its last row
// had a numeric smoothed value; otherwise its smoothed value and change
// are set to missing. Rows dated on or after cutoff are excluded so a
// partially elapsed current month never contributes.
func MonthlyRatesOfChange(extent *Series, cutoff Date) (*RatesOfChange, error) {
	var dates []Date
	var raw []float64
	for i := 0; i < extent.Len(); i++ {
		if extent.DateAt(i).Before(cutoff) {
			dates = append(dates, extent.DateAt(i))
			raw = append(raw, extent.ValueAt(i))
		}
	}
	trimmed, err := NewSeries(extent.Name(), dates, raw)
	if err != nil {
		return nil, err
	}

	scaled := Scale(trimmed, 1e6, 3)
	interpolated := InterpolateSeries(scaled, InterpolateUpTo(1))
	fiveDay, err := NDayAverageSeries(interpolated, DefaultNDayAverage, DefaultMinValidDays, false, false)
	if err != nil {
		return nil, err
	}

	out := &RatesOfChange{}
	complete := []bool{}
	start := 0
	for start < len(dates) {
		end := start
		for end+1 < len(dates) &&
			dates[end+1].Year == dates[start].Year && dates[end+1].Month == dates[start].Month {
			end++
		}

		valid := 0
		for i := start; i <= end; i++ {
			if !isNaN(interpolated.ValueAt(i)) {
				valid++
			}
		}
		lastDay := dates[end].Day

		out.rows = append(out.rows, RateOfChange{
			Year:               dates[end].Year,
			Month:              dates[end].Month,
			LastDay:            lastDay,
			Extent:             scaled.ValueAt(end),
			InterpolatedExtent: interpolated.ValueAt(end),
			FiveDayAverage:     fiveDay.ValueAt(end),
		})
		complete = append(complete, valid == lastDay)
		start = end + 1
	}

	// month-over-month differences are taken before masking, so a
	// complete month following an incomplete one still differences
	// against the incomplete month's raw smoothed value
	for i := range out.rows {
		if i == 0 {
			out.rows[i].ChangeMkm2PerMonth = math.NaN()
		} else {
			out.rows[i].ChangeMkm2PerMonth = out.rows[i].FiveDayAverage - out.rows[i-1].FiveDayAverage
		}
	}
	for i := range out.rows {
		if !complete[i] {
			out.rows[i].FiveDayAverage = math.NaN()
			out.rows[i].ChangeMkm2PerMonth = math.NaN()
		}
		row := &out.rows[i]
		row.ChangeKm2PerDay = row.ChangeMkm2PerMonth / float64(row.LastDay) * 1e6
		row.ChangeMi2PerMonth = row.ChangeMkm2PerMonth * Km2ToMi2 * 1e6
		row.ChangeMi2PerDay = row.ChangeKm2PerDay * Km2ToMi2
	}
	return out, nil
}

// AverageRateOfChange is the climatological per-month average of the
// monthly change statistics
type AverageRateOfChange struct {
	Month time.Month

	LastDay            float64
	Extent             float64
	InterpolatedExtent float64
	FiveDayAverage     float64
	ChangeMkm2PerMonth float64
	ChangeKm2PerDay    float64
	ChangeMi2PerMonth  float64
	ChangeMi2PerDay    float64
}

// ClimatologyAverageRatesOfChange restricts the monthly rates of change
// to the reference years and averages every statistic by calendar month,
// skipping missing values
func ClimatologyAverageRatesOfChange(extent *Series, cutoff Date, years YearRange) ([]AverageRateOfChange, error) {
	if !years.Valid() {
		return nil, invalidArg("years", "invalid year range %d-%d", years.Start, years.End)
	}
	rates, err := MonthlyRatesOfChange(extent, cutoff)
	if err != nil {
		return nil, err
	}

	grouped := map[time.Month][]RateOfChange{}
	for _, row := range rates.rows {
		if years.Contains(row.Year) {
			grouped[row.Month] = append(grouped[row.Month], row)
		}
	}

	var out []AverageRateOfChange
	for month := time.January; month <= time.December; month++ {
		rows, ok := grouped[month]
		if !ok {
			continue
		}
		pick := func(get func(RateOfChange) float64) float64 {
			values := make([]float64, len(rows))
			for i, r := range rows {
				values[i] = get(r)
			}
			return nanMean(values)
		}
		out = append(out, AverageRateOfChange{
			Month:              month,
			LastDay:            pick(func(r RateOfChange) float64 { return float64(r.LastDay) }),
			Extent:             pick(func(r RateOfChange) float64 { return r.Extent }),
			InterpolatedExtent: pick(func(r RateOfChange) float64 { return r.InterpolatedExtent }),
			FiveDayAverage:     pick(func(r RateOfChange) float64 { return r.FiveDayAverage }),
			ChangeMkm2PerMonth: pick(func(r RateOfChange) float64 { return r.ChangeMkm2PerMonth }),
			ChangeKm2PerDay:    pick(func(r RateOfChange) float64 { return r.ChangeKm2PerDay }),
			ChangeMi2PerMonth:  pick(func(r RateOfChange) float64 { return r.ChangeMi2PerMonth }),
			ChangeMi2PerDay:    pick(func(r RateOfChange) float64 { return r.ChangeMi2PerDay }),
		})
	}
	return out, nil
}
