package timeseries

import "math"

// NDayAverage replaces every non-metadata column of the frame with its
// n-day rolling mean. Window positions with fewer than minValid valid
// samples yield NaN. With preserveNaN set, positions that were missing in
// the input stay missing in the output, so the shape of missingness
// remains visible downstream. With wrapped set, the series is treated as
// periodic: the window for the leading rows borrows values from the tail.
// Wrapped mode exists for climatology smoothing (day of year 1 and 366
// are adjacent in reality) and must not be used for forward-looking daily
// reporting.
func NDayAverage(f *Frame, window, minValid int, preserveNaN, wrapped bool) (*Frame, error) {
	if window <= 0 {
		return nil, invalidArg("window", "must be positive, got %d", window)
	}
	if minValid > window {
		return nil, invalidArg("minValid", "must not exceed window %d, got %d", window, minValid)
	}
	out := f.Copy()
	for name, values := range out.data {
		if IsMetadataColumn(name) {
			continue
		}
		out.data[name] = rollingMean(values, window, minValid, preserveNaN, wrapped)
	}
	return out, nil
}

// NDayAverageSeries computes the rolling mean of one series
func NDayAverageSeries(s *Series, window, minValid int, preserveNaN, wrapped bool) (*Series, error) {
	if window <= 0 {
		return nil, invalidArg("window", "must be positive, got %d", window)
	}
	if minValid > window {
		return nil, invalidArg("minValid", "must not exceed window %d, got %d", window, minValid)
	}
	return s.withValues(rollingMean(s.values, window, minValid, preserveNaN, wrapped)), nil
}

// NDayAverageStack smooths every column of an integer-indexed stack, used
// to post-process day-of-year statistics across the year boundary
func NDayAverageStack(st *Stack, window, minValid int, preserveNaN, wrapped bool) (*Stack, error) {
	if window <= 0 {
		return nil, invalidArg("window", "must be positive, got %d", window)
	}
	if minValid > window {
		return nil, invalidArg("minValid", "must not exceed window %d, got %d", window, minValid)
	}
	out := NewStack(st.index)
	for _, name := range st.order {
		out.cols[name] = rollingMean(st.cols[name], window, minValid, preserveNaN, wrapped)
		out.order = append(out.order, name)
	}
	return out, nil
}

// rollingMean is the trailing-window kernel. Position i averages the
// window ending at i (at most `window` values; fewer near the start), and
// yields NaN when fewer than minValid of them are valid. In wrapped mode
// the last `window` values are conceptually prepended first, so early
// positions see the tail of the series.
func rollingMean(values []float64, window, minValid int, preserveNaN, wrapped bool) []float64 {
	n := len(values)
	work := values
	offset := 0
	if wrapped && n > 0 {
		prepend := window
		if prepend > n {
			prepend = n
		}
		work = make([]float64, 0, n+prepend)
		work = append(work, values[n-prepend:]...)
		work = append(work, values...)
		offset = prepend
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		pos := i + offset
		start := pos - window + 1
		if start < 0 {
			start = 0
		}
		sum := 0.0
		count := 0
		for j := start; j <= pos; j++ {
			if !isNaN(work[j]) {
				sum += work[j]
				count++
			}
		}
		if count >= minValid && count > 0 {
			out[i] = sum / float64(count)
		} else {
			out[i] = math.NaN()
		}
	}

	if preserveNaN {
		for i, v := range values {
			if isNaN(v) {
				out[i] = math.NaN()
			}
		}
	}
	return out
}
