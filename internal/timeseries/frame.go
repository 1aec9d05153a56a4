package timeseries

import (
	"math"
	"sort"
)

// Canonical column names shared with the data store.
const (
	ColTotalExtent   = "total_extent_km2"
	ColTotalArea     = "total_area_km2"
	ColMissing       = "missing_km2"
	ColHemisphere    = "hemisphere"
	ColFilename      = "filename"
	ColSourceDataset = "source_dataset"
	ColFailedQA      = "failed_qa"
)

// MetadataColumns returns the column names that must never be treated as
// numeric data: they are excluded by default from interpolation and
// rolling averages.
func MetadataColumns() []string {
	return []string{ColHemisphere, ColFilename, ColSourceDataset, ColFailedQA}
}

// DailyDefaultColumns returns the default column selection for the daily
// data store.
func DailyDefaultColumns() []string {
	return []string{ColTotalExtent, ColTotalArea, ColMissing,
		ColHemisphere, ColFilename, ColSourceDataset, ColFailedQA}
}

// MonthlyDefaultColumns returns the default column selection for the
// monthly data store, which carries no QA flag.
func MonthlyDefaultColumns() []string {
	return []string{ColTotalExtent, ColTotalArea, ColMissing,
		ColHemisphere, ColFilename, ColSourceDataset}
}

// IsMetadataColumn reports whether name is one of the reserved metadata
// columns.
func IsMetadataColumn(name string) bool {
	switch name {
	case ColHemisphere, ColFilename, ColSourceDataset, ColFailedQA:
		return true
	}
	return false
}

// Series is a named, date-indexed column of float64 values, ascending by
// date. Missing values are math.NaN(). Series are read-only after
// construction: every operation returns a new Series.
type Series struct {
	name   string
	dates  []Date
	values []float64
}

// NewSeries builds a Series from parallel date/value slices. The dates
// must already be ascending; the slices are copied.
func NewSeries(name string, dates []Date, values []float64) (*Series, error) {
	if len(dates) != len(values) {
		return nil, invalidArg("values", "length %d does not match %d dates", len(values), len(dates))
	}
	s := &Series{
		name:   name,
		dates:  append([]Date(nil), dates...),
		values: append([]float64(nil), values...),
	}
	return s, nil
}

// Name returns the series name, used to label derived statistic columns
func (s *Series) Name() string { return s.name }

// Len returns the number of points
func (s *Series) Len() int { return len(s.dates) }

// DateAt returns the date of point i
func (s *Series) DateAt(i int) Date { return s.dates[i] }

// ValueAt returns the value of point i
func (s *Series) ValueAt(i int) float64 { return s.values[i] }

// Dates returns a copy of the date index
func (s *Series) Dates() []Date { return append([]Date(nil), s.dates...) }

// Values returns a copy of the values
func (s *Series) Values() []float64 { return append([]float64(nil), s.values...) }

// At returns the value on the given date, or (NaN, false) when the date
// is not present. Lookup is a binary search over the ascending index.
func (s *Series) At(d Date) (float64, bool) {
	i := sort.Search(len(s.dates), func(i int) bool {
		return !s.dates[i].Before(d)
	})
	if i < len(s.dates) && s.dates[i].Equal(d) {
		return s.values[i], true
	}
	return math.NaN(), false
}

// Rename returns a copy of the series under a new name
func (s *Series) Rename(name string) *Series {
	return &Series{name: name, dates: s.dates, values: append([]float64(nil), s.values...)}
}

// Reindex returns a new Series over exactly the given dates, with NaN for
// any date absent from the input. This is how omitted dates and
// explicitly-missing values become indistinguishable downstream.
func (s *Series) Reindex(dates []Date) *Series {
	values := make([]float64, len(dates))
	for i, d := range dates {
		if v, ok := s.At(d); ok {
			values[i] = v
		} else {
			values[i] = math.NaN()
		}
	}
	return &Series{name: s.name, dates: append([]Date(nil), dates...), values: values}
}

// withValues returns a copy of the series carrying the given values
func (s *Series) withValues(values []float64) *Series {
	return &Series{name: s.name, dates: s.dates, values: values}
}

// Frame is an ordered collection of named columns over one shared date
// index. Numeric data columns hold float64 with NaN for missing; metadata
// columns (hemisphere, filename, source dataset) hold strings; the QA
// flag column holds bools. Dates are ascending but may repeat while both
// hemispheres are present; (date, hemisphere) pairs are unique.
type Frame struct {
	dates []Date
	order []string
	data  map[string][]float64
	meta  map[string][]string
	qa    []bool
}

// NewFrame creates an empty frame over the given date index
func NewFrame(dates []Date) *Frame {
	return &Frame{
		dates: append([]Date(nil), dates...),
		data:  map[string][]float64{},
		meta:  map[string][]string{},
	}
}

// Len returns the number of rows
func (f *Frame) Len() int { return len(f.dates) }

// Dates returns a copy of the date index
func (f *Frame) Dates() []Date { return append([]Date(nil), f.dates...) }

// DateAt returns the date of row i
func (f *Frame) DateAt(i int) Date { return f.dates[i] }

// Columns returns all column names in insertion order
func (f *Frame) Columns() []string { return append([]string(nil), f.order...) }

// DataColumns returns the numeric column names in insertion order
func (f *Frame) DataColumns() []string {
	var names []string
	for _, name := range f.order {
		if _, ok := f.data[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// HasColumn reports whether the frame has a column of any kind with the
// given name
func (f *Frame) HasColumn(name string) bool {
	if _, ok := f.data[name]; ok {
		return true
	}
	if _, ok := f.meta[name]; ok {
		return true
	}
	return name == ColFailedQA && f.qa != nil
}

// AddColumn attaches a numeric column. Values must match the row count.
func (f *Frame) AddColumn(name string, values []float64) error {
	if len(values) != len(f.dates) {
		return invalidArg(name, "column length %d does not match %d rows", len(values), len(f.dates))
	}
	if f.HasColumn(name) {
		return invalidArg(name, "column already exists")
	}
	f.data[name] = append([]float64(nil), values...)
	f.order = append(f.order, name)
	return nil
}

// AddMetaColumn attaches a string metadata column
func (f *Frame) AddMetaColumn(name string, values []string) error {
	if len(values) != len(f.dates) {
		return invalidArg(name, "column length %d does not match %d rows", len(values), len(f.dates))
	}
	if f.HasColumn(name) {
		return invalidArg(name, "column already exists")
	}
	f.meta[name] = append([]string(nil), values...)
	f.order = append(f.order, name)
	return nil
}

// SetFailedQA attaches the QA-failure flag column
func (f *Frame) SetFailedQA(flags []bool) error {
	if len(flags) != len(f.dates) {
		return invalidArg(ColFailedQA, "column length %d does not match %d rows", len(flags), len(f.dates))
	}
	if f.qa != nil {
		return invalidArg(ColFailedQA, "column already exists")
	}
	f.qa = append([]bool(nil), flags...)
	f.order = append(f.order, ColFailedQA)
	return nil
}

// Column returns the named numeric column as a Series sharing the frame's
// date index
func (f *Frame) Column(name string) (*Series, error) {
	values, ok := f.data[name]
	if !ok {
		return nil, invalidArg(name, "no such data column")
	}
	return &Series{name: name, dates: f.dates, values: append([]float64(nil), values...)}, nil
}

// MetaColumn returns a copy of the named metadata column
func (f *Frame) MetaColumn(name string) ([]string, error) {
	values, ok := f.meta[name]
	if !ok {
		return nil, invalidArg(name, "no such metadata column")
	}
	return append([]string(nil), values...), nil
}

// FailedQA returns a copy of the QA flag column, or nil when absent
func (f *Frame) FailedQA() []bool {
	if f.qa == nil {
		return nil
	}
	return append([]bool(nil), f.qa...)
}

// Copy returns a deep copy of the frame
func (f *Frame) Copy() *Frame {
	out := NewFrame(f.dates)
	for _, name := range f.order {
		if values, ok := f.data[name]; ok {
			out.data[name] = append([]float64(nil), values...)
			out.order = append(out.order, name)
		} else if values, ok := f.meta[name]; ok {
			out.meta[name] = append([]string(nil), values...)
			out.order = append(out.order, name)
		} else if name == ColFailedQA {
			out.qa = append([]bool(nil), f.qa...)
			out.order = append(out.order, name)
		}
	}
	return out
}

// selectRows builds a new frame keeping only the given row indices, in order
func (f *Frame) selectRows(keep []int) *Frame {
	dates := make([]Date, len(keep))
	for i, r := range keep {
		dates[i] = f.dates[r]
	}
	out := NewFrame(dates)
	for _, name := range f.order {
		if values, ok := f.data[name]; ok {
			col := make([]float64, len(keep))
			for i, r := range keep {
				col[i] = values[r]
			}
			out.data[name] = col
			out.order = append(out.order, name)
		} else if values, ok := f.meta[name]; ok {
			col := make([]string, len(keep))
			for i, r := range keep {
				col[i] = values[r]
			}
			out.meta[name] = col
			out.order = append(out.order, name)
		} else if name == ColFailedQA {
			col := make([]bool, len(keep))
			for i, r := range keep {
				col[i] = f.qa[r]
			}
			out.qa = col
			out.order = append(out.order, name)
		}
	}
	return out
}

// Stack is an integer-indexed table with one float64 column per aligned
// year (or per derived statistic). It is the day-of-year × year artifact
// consumed by the climatology statistics, deliberately a distinct type
// from the date-indexed Frame.
type Stack struct {
	index []int
	order []string
	cols  map[string][]float64
}

// NewStack creates an empty stack over the given integer index
func NewStack(index []int) *Stack {
	return &Stack{
		index: append([]int(nil), index...),
		cols:  map[string][]float64{},
	}
}

// Len returns the number of rows
func (st *Stack) Len() int { return len(st.index) }

// Index returns a copy of the integer row index
func (st *Stack) Index() []int { return append([]int(nil), st.index...) }

// IndexAt returns the index label of row i
func (st *Stack) IndexAt(i int) int { return st.index[i] }

// Columns returns the column names in insertion order
func (st *Stack) Columns() []string { return append([]string(nil), st.order...) }

// AddColumn attaches a column to the stack
func (st *Stack) AddColumn(name string, values []float64) error {
	if len(values) != len(st.index) {
		return invalidArg(name, "column length %d does not match %d rows", len(values), len(st.index))
	}
	if _, ok := st.cols[name]; ok {
		return invalidArg(name, "column already exists")
	}
	st.cols[name] = append([]float64(nil), values...)
	st.order = append(st.order, name)
	return nil
}

// Column returns a copy of the named column's values
func (st *Stack) Column(name string) ([]float64, error) {
	values, ok := st.cols[name]
	if !ok {
		return nil, invalidArg(name, "no such column")
	}
	return append([]float64(nil), values...), nil
}

// Row returns the values of row i across all columns, in column order
func (st *Stack) Row(i int) []float64 {
	row := make([]float64, len(st.order))
	for c, name := range st.order {
		row[c] = st.cols[name][i]
	}
	return row
}

// At returns the value at row i of the named column
func (st *Stack) At(i int, name string) (float64, error) {
	values, ok := st.cols[name]
	if !ok {
		return math.NaN(), invalidArg(name, "no such column")
	}
	return values[i], nil
}

// relabel returns a copy of the stack under a new integer index
func (st *Stack) relabel(index []int) *Stack {
	out := NewStack(index)
	for _, name := range st.order {
		out.cols[name] = append([]float64(nil), st.cols[name]...)
		out.order = append(out.order, name)
	}
	return out
}
