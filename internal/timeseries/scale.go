package timeseries

import "math"

// Scale divides every value in the series by divisor and rounds to the
// given number of decimal places, e.g. divisor 1e6 with precision 3 to
// express km² as millions of km². Ties round to even so the published
// values match the historical reference files. Missing values stay
// missing.
func Scale(s *Series, divisor float64, precision int) *Series {
	pow := math.Pow(10, float64(precision))
	values := make([]float64, s.Len())
	for i := 0; i < s.Len(); i++ {
		v := s.ValueAt(i)
		if isNaN(v) {
			values[i] = v
			continue
		}
		values[i] = math.RoundToEven(v/divisor*pow) / pow
	}
	return s.withValues(values)
}

// Divide divides every value in the series by divisor without rounding,
// for statistics that must run at full precision and round only when
// formatted for output
func Divide(s *Series, divisor float64) *Series {
	values := make([]float64, s.Len())
	for i := 0; i < s.Len(); i++ {
		values[i] = s.ValueAt(i) / divisor
	}
	return s.withValues(values)
}
