package timeseries

import (
	"sort"
	"strings"
)

// InterpolationLimit bounds gap filling. The zero value disables
// interpolation entirely; InterpolateUpTo(n) fills gaps of at most n
// consecutive missing values; InterpolateUnlimited fills gaps of any
// length. Interpolation never extrapolates past the first or last valid
// value.
type InterpolationLimit struct {
	n         int
	unlimited bool
}

// InterpolateUpTo fills gaps of at most n consecutive missing values.
// n <= 0 disables interpolation.
func InterpolateUpTo(n int) InterpolationLimit {
	if n <= 0 {
		return InterpolationLimit{}
	}
	return InterpolationLimit{n: n}
}

// InterpolateUnlimited fills gaps regardless of length
func InterpolateUnlimited() InterpolationLimit {
	return InterpolationLimit{unlimited: true}
}

// Enabled reports whether any interpolation will happen
func (l InterpolationLimit) Enabled() bool {
	return l.unlimited || l.n > 0
}

func (l InterpolationLimit) allows(gap int) bool {
	return l.unlimited || gap <= l.n
}

// Interpolate linearly fills bounded gaps in the chosen numeric columns
// and returns a frame of just those columns. When no columns are named,
// every data column except the metadata set is interpolated, in sorted
// name order. A run of missing values longer than the limit is left
// entirely unfilled, and leading/trailing runs are never filled.
func Interpolate(f *Frame, limit InterpolationLimit, columns ...string) (*Frame, error) {
	if len(columns) == 0 {
		for _, name := range f.DataColumns() {
			if !IsMetadataColumn(name) {
				columns = append(columns, name)
			}
		}
		sort.Strings(columns)
	}

	out := NewFrame(f.dates)
	for _, name := range columns {
		values, ok := f.data[name]
		if !ok {
			return nil, invalidArg("columns", "no such data column %q", name)
		}
		filled := interpolateValues(values, limit)
		out.data[name] = filled
		out.order = append(out.order, name)
	}
	return out, nil
}

// InterpolateSeries fills bounded gaps in a single series
func InterpolateSeries(s *Series, limit InterpolationLimit) *Series {
	return s.withValues(interpolateValues(s.values, limit))
}

// interpolateValues fills NaN runs bounded on both sides by valid values,
// when the run length is within the limit. Position j of a run from
// anchor a (value va) to anchor b (value vb) gets the linear ramp value.
func interpolateValues(values []float64, limit InterpolationLimit) []float64 {
	out := append([]float64(nil), values...)
	if !limit.Enabled() {
		return out
	}

	prev := -1 // index of last valid value seen
	for i := 0; i <= len(out); i++ {
		if i < len(out) && isNaN(out[i]) {
			continue
		}
		if i == len(out) {
			// trailing run, never filled
			break
		}
		if prev >= 0 && i-prev > 1 {
			gap := i - prev - 1
			if limit.allows(gap) {
				step := (out[i] - out[prev]) / float64(i-prev)
				for j := prev + 1; j < i; j++ {
					out[j] = out[prev] + step*float64(j-prev)
				}
			}
		}
		prev = i
	}
	return out
}

// DropMissingColumns returns the frame without any column whose name
// contains "missing". Once interpolation has run, the exact missing-area
// counts no longer mean anything, so they are removed from results.
func DropMissingColumns(f *Frame) *Frame {
	var keep []string
	for _, name := range f.order {
		if strings.Contains(name, "missing") {
			continue
		}
		keep = append(keep, name)
	}
	out, _ := FilterColumns(f, keep)
	if len(keep) == 0 {
		out = NewFrame(f.dates)
	}
	return out
}
