package timeseries

import "math"

// FilterFailedQA returns a copy of the frame with every data column set
// to NaN, and the filename cleared, on rows whose QA flag is set. Frames
// without a QA column pass through unchanged. This runs before any
// interpolation so that failed rows look exactly like missing data.
func FilterFailedQA(f *Frame) *Frame {
	out := f.Copy()
	if out.qa == nil {
		return out
	}
	for i, failed := range out.qa {
		if !failed {
			continue
		}
		for _, values := range out.data {
			values[i] = math.NaN()
		}
		if filenames, ok := out.meta[ColFilename]; ok {
			filenames[i] = ""
		}
	}
	return out
}

// FilterHemisphere returns the rows whose hemisphere column matches the
// given code. Passing an unrecognized hemisphere is an error, never a
// silent no-op.
func FilterHemisphere(f *Frame, hemisphere Hemisphere) (*Frame, error) {
	if !hemisphere.Valid() {
		return nil, invalidArg("hemisphere", "must provide a valid hemisphere for filtering, got %q", string(hemisphere))
	}
	codes, err := f.MetaColumn(ColHemisphere)
	if err != nil {
		return nil, err
	}
	var keep []int
	for i, code := range codes {
		if code == string(hemisphere) {
			keep = append(keep, i)
		}
	}
	return f.selectRows(keep), nil
}

// FilterBefore returns the frame excluding rows dated before the given
// date. A nil date is a no-op.
func FilterBefore(f *Frame, date *Date) *Frame {
	if date == nil {
		return f.Copy()
	}
	var keep []int
	for i := 0; i < f.Len(); i++ {
		if !f.dates[i].Before(*date) {
			keep = append(keep, i)
		}
	}
	return f.selectRows(keep)
}

// FilterAfter returns the frame excluding rows dated after the given
// date. A nil date is a no-op.
func FilterAfter(f *Frame, date *Date) *Frame {
	if date == nil {
		return f.Copy()
	}
	var keep []int
	for i := 0; i < f.Len(); i++ {
		if !f.dates[i].After(*date) {
			keep = append(keep, i)
		}
	}
	return f.selectRows(keep)
}

// FilterColumns returns a frame holding only the named columns, in the
// requested order. An empty column list returns the whole frame.
func FilterColumns(f *Frame, columns []string) (*Frame, error) {
	if len(columns) == 0 {
		return f.Copy(), nil
	}
	out := NewFrame(f.dates)
	for _, name := range columns {
		if values, ok := f.data[name]; ok {
			out.data[name] = append([]float64(nil), values...)
			out.order = append(out.order, name)
		} else if values, ok := f.meta[name]; ok {
			out.meta[name] = append([]string(nil), values...)
			out.order = append(out.order, name)
		} else if name == ColFailedQA && f.qa != nil {
			out.qa = append([]bool(nil), f.qa...)
			out.order = append(out.order, name)
		} else {
			return nil, invalidArg("columns", "no such column %q", name)
		}
	}
	return out, nil
}

// FilterMonth returns the rows falling in the given calendar month
func FilterMonth(f *Frame, month int) *Frame {
	var keep []int
	for i := 0; i < f.Len(); i++ {
		if int(f.dates[i].Month) == month {
			keep = append(keep, i)
		}
	}
	return f.selectRows(keep)
}
