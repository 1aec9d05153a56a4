package timeseries

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanAndStandardDeviation(t *testing.T) {
	// Jan 5 observed in three consecutive years
	s := seriesOf(t, "total_extent_km2",
		map[string]float64{
			"2001-01-05": 1,
			"2002-01-05": 2,
			"2003-01-05": 3,
			"2001-03-10": 7, // only one contributing year
		},
		[]string{"2001-01-05", "2001-03-10", "2002-01-05", "2003-01-05"})

	stats, err := MeanAndStandardDeviation(s, YearRange{Start: 2001, End: 2003})
	require.NoError(t, err)
	require.Equal(t, []string{"total_extent_km2_mean", "total_extent_km2_std"}, stats.Columns())
	require.Equal(t, ClimatologyDays, stats.Len())

	means, err := stats.Column("total_extent_km2_mean")
	require.NoError(t, err)
	stds, err := stats.Column("total_extent_km2_std")
	require.NoError(t, err)

	// Jan 5 is day of year 5, stored at row 4
	assert.InDelta(t, 2.0, means[4], 1e-12)
	assert.InDelta(t, 1.0, stds[4], 1e-12) // sample std of {1,2,3}

	// Mar 10 2001 is day of year 69: one value gives a mean but no
	// sample standard deviation
	assert.InDelta(t, 7.0, means[68], 1e-12)
	assert.True(t, math.IsNaN(stds[68]))

	// days nobody observed are NaN in both columns
	assert.True(t, math.IsNaN(means[200]))
	assert.True(t, math.IsNaN(stds[200]))
}

func TestQuantilesLeapDayExample(t *testing.T) {
	// the canonical Feb 28 / Feb 29 / Mar 1 example: day of year 60 is
	// Mar 1 in non-leap years and Feb 29 in the leap year
	s := seriesOf(t, "test",
		map[string]float64{
			"1979-02-28": 16,
			"1979-03-01": 15,
			"1980-02-28": 13,
			"1980-02-29": 14,
			"1980-03-01": 15,
			"1981-02-28": 15,
			"1981-03-01": 16,
		},
		[]string{"1979-02-28", "1979-03-01", "1980-02-28", "1980-02-29",
			"1980-03-01", "1981-02-28", "1981-03-01"})

	qs, err := Quantiles(s, YearRange{Start: 1979, End: 1981}, []float64{0, 0.5, 1})
	require.NoError(t, err)

	// every all-missing day of year is dropped
	require.Equal(t, []int{59, 60, 61}, qs.Index())
	require.Equal(t, []string{"0", "0.5", "1"}, qs.Columns())

	lo, err := qs.Column("0")
	require.NoError(t, err)
	med, err := qs.Column("0.5")
	require.NoError(t, err)
	hi, err := qs.Column("1")
	require.NoError(t, err)

	assert.Equal(t, []float64{13, 14, 15}, lo)
	assert.Equal(t, []float64{15, 15, 15}, med)
	assert.Equal(t, []float64{16, 16, 15}, hi)
}

func TestQuantilesRoundTrip(t *testing.T) {
	// five years of known integer values on Jan 10
	points := map[string]float64{
		"2001-01-10": 5,
		"2002-01-10": 1,
		"2003-01-10": 4,
		"2004-01-10": 2,
		"2005-01-10": 3,
	}
	order := []string{"2001-01-10", "2002-01-10", "2003-01-10", "2004-01-10", "2005-01-10"}
	s := seriesOf(t, "extent", points, order)

	qs, err := Quantiles(s, YearRange{Start: 2001, End: 2005}, []float64{0, 0.5, 1})
	require.NoError(t, err)
	require.Equal(t, []int{10}, qs.Index())

	lo, _ := qs.Column("0")
	med, _ := qs.Column("0.5")
	hi, _ := qs.Column("1")
	assert.Equal(t, 1.0, lo[0])
	assert.Equal(t, 3.0, med[0]) // exact median for an odd count
	assert.Equal(t, 5.0, hi[0])
}

func TestQuantilesLinearInterpolation(t *testing.T) {
	points := map[string]float64{
		"2001-01-10": 10,
		"2002-01-10": 20,
		"2003-01-10": 30,
		"2004-01-10": 40,
	}
	order := []string{"2001-01-10", "2002-01-10", "2003-01-10", "2004-01-10"}
	s := seriesOf(t, "extent", points, order)

	qs, err := Quantiles(s, YearRange{Start: 2001, End: 2004}, []float64{0.25, 0.5})
	require.NoError(t, err)

	q25, _ := qs.Column("0.25")
	q50, _ := qs.Column("0.5")
	// rank h = (4-1)*0.25 = 0.75 between 10 and 20
	assert.InDelta(t, 17.5, q25[0], 1e-12)
	assert.InDelta(t, 25.0, q50[0], 1e-12)
}

func TestQuantilesLevelValidation(t *testing.T) {
	s := seriesOf(t, "extent", map[string]float64{"2001-01-01": 1}, []string{"2001-01-01"})
	_, err := Quantiles(s, YearRange{Start: 2001, End: 2001}, []float64{1.5})
	var invalid *InvalidArgumentError
	require.ErrorAs(t, err, &invalid)
}

func TestNormalStatisticsSmoothingPreservesMissing(t *testing.T) {
	s := seriesOf(t, "extent",
		map[string]float64{
			"2001-01-05": 4,
			"2002-01-05": 4,
		},
		[]string{"2001-01-05", "2002-01-05"})

	smoothed, err := NormalStatistics(s, YearRange{Start: 2001, End: 2002}, 5)
	require.NoError(t, err)

	means, err := smoothed.Column("extent_mean")
	require.NoError(t, err)

	// day 5 had data; its smoothed mean is still 4 since neighbors are
	// missing and were preserved as NaN rather than averaged over
	assert.InDelta(t, 4.0, means[4], 1e-12)
	// a day that was missing stays missing under preserve-NaN smoothing
	assert.True(t, math.IsNaN(means[5]))
}

func TestQuantileStatisticsSmoothingWraps(t *testing.T) {
	// values on every day of 2000 make a dense stack; constant input
	// must stay constant under wrapped smoothing
	dates := dateRange(NewDate(2000, 1, 1), ClimatologyDays)
	values := make([]float64, len(dates))
	for i := range values {
		values[i] = 2.5
	}
	s, err := NewSeries("extent", dates, values)
	require.NoError(t, err)

	qs, err := QuantileStatistics(s, YearRange{Start: 2000, End: 2000}, []float64{0.5}, 5)
	require.NoError(t, err)
	med, err := qs.Column("0.5")
	require.NoError(t, err)
	require.Equal(t, ClimatologyDays, len(med))
	assert.InDelta(t, 2.5, med[0], 1e-12)
	assert.InDelta(t, 2.5, med[len(med)-1], 1e-12)
}
