// Package timeseries computes sea ice extent and area statistics from
// the daily and monthly data stores: gap filling, n-day averaging,
// day-of-year alignment across years, climatological means, standard
// deviations and quantiles, monthly anomalies, trends, and monthly rates
// of change.
//
// # Data model
//
// Series and Frame are date-indexed; Stack is the integer-indexed
// day-of-year × year table the climatology statistics consume. All three
// are read-only after construction: every operation returns a new value,
// so the package holds no state and is safe to call from concurrent
// report generators.
//
// # Missing data
//
// Missing values are math.NaN() throughout. Dates omitted from a series
// behave exactly like explicitly missing values once the series is
// reindexed onto a complete date range. Insufficient data propagates as
// NaN rather than errors; only malformed arguments (an unrecognized
// hemisphere code, both or neither of end/periods given to the aligner)
// produce an InvalidArgumentError.
//
// # Day of year 366
//
// Stacked climatologies anchor every year column at Jan 1 and reindex
// 366 consecutive days, so row 366 holds Dec 31 for leap years and Jan 1
// of the following year for non-leap years. Wrapped n-day averaging
// exists because day 1 and day 366 are adjacent in reality.
package timeseries
