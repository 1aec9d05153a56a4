package timeseries

import (
	"errors"
	"math"
	"testing"
	"time"
)

// dailyFrame builds a two-hemisphere daily frame with extent values and
// QA flags, dates repeating once per hemisphere
func dailyFrame(t *testing.T) *Frame {
	t.Helper()
	dates := []Date{
		NewDate(2020, time.March, 1), NewDate(2020, time.March, 1),
		NewDate(2020, time.March, 2), NewDate(2020, time.March, 2),
		NewDate(2020, time.March, 3), NewDate(2020, time.March, 3),
	}
	f := NewFrame(dates)
	if err := f.AddColumn(ColTotalExtent, []float64{10, 20, 11, 21, 12, 22}); err != nil {
		t.Fatal(err)
	}
	if err := f.AddColumn(ColMissing, []float64{0, 0, 5, 0, 0, 0}); err != nil {
		t.Fatal(err)
	}
	if err := f.AddMetaColumn(ColHemisphere, []string{"N", "S", "N", "S", "N", "S"}); err != nil {
		t.Fatal(err)
	}
	if err := f.AddMetaColumn(ColFilename, []string{"a", "b", "c", "d", "e", "f"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetFailedQA([]bool{false, false, true, false, false, false}); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestFilterFailedQA(t *testing.T) {
	f := FilterFailedQA(dailyFrame(t))

	extent, err := f.Column(ColTotalExtent)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(extent.ValueAt(2)) {
		t.Errorf("flagged row extent = %v, want NaN", extent.ValueAt(2))
	}
	missing, err := f.Column(ColMissing)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(missing.ValueAt(2)) {
		t.Errorf("flagged row missing = %v, want NaN", missing.ValueAt(2))
	}
	filenames, err := f.MetaColumn(ColFilename)
	if err != nil {
		t.Fatal(err)
	}
	if filenames[2] != "" {
		t.Errorf("flagged row filename = %q, want cleared", filenames[2])
	}

	// unflagged rows are untouched
	if got := extent.ValueAt(3); got != 21 {
		t.Errorf("unflagged row extent = %v, want 21", got)
	}
	if filenames[0] != "a" {
		t.Errorf("unflagged row filename = %q, want %q", filenames[0], "a")
	}
}

func TestFilterFailedQAWithoutFlagColumn(t *testing.T) {
	dates := []Date{NewDate(2020, time.March, 1)}
	f := NewFrame(dates)
	if err := f.AddColumn(ColTotalExtent, []float64{10}); err != nil {
		t.Fatal(err)
	}

	out := FilterFailedQA(f)
	extent, err := out.Column(ColTotalExtent)
	if err != nil {
		t.Fatal(err)
	}
	if got := extent.ValueAt(0); got != 10 {
		t.Errorf("extent = %v, want 10", got)
	}
}

func TestFilterHemisphere(t *testing.T) {
	north, err := FilterHemisphere(dailyFrame(t), NorthernHemisphere)
	if err != nil {
		t.Fatal(err)
	}
	if north.Len() != 3 {
		t.Fatalf("northern rows = %d, want 3", north.Len())
	}
	extent, err := north.Column(ColTotalExtent)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []float64{10, 11, 12} {
		if got := extent.ValueAt(i); got != want {
			t.Errorf("row %d extent = %v, want %v", i, got, want)
		}
	}
	flags := north.FailedQA()
	if len(flags) != 3 || !flags[1] {
		t.Errorf("QA flags = %v, want flag on row 1", flags)
	}
}

func TestFilterHemisphereRejectsUnknownCode(t *testing.T) {
	_, err := FilterHemisphere(dailyFrame(t), Hemisphere("X"))
	var argErr *InvalidArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("err = %v, want *InvalidArgumentError", err)
	}
	if argErr.Arg != "hemisphere" {
		t.Errorf("Arg = %q, want %q", argErr.Arg, "hemisphere")
	}
}

func TestFilterDateBounds(t *testing.T) {
	f := dailyFrame(t)

	from := NewDate(2020, time.March, 2)
	until := NewDate(2020, time.March, 2)

	bounded := FilterAfter(FilterBefore(f, &from), &until)
	if bounded.Len() != 2 {
		t.Fatalf("bounded rows = %d, want 2", bounded.Len())
	}
	for i := 0; i < bounded.Len(); i++ {
		if !bounded.DateAt(i).Equal(from) {
			t.Errorf("row %d date = %v, want %v", i, bounded.DateAt(i), from)
		}
	}

	// nil bounds keep everything
	if got := FilterBefore(f, nil).Len(); got != f.Len() {
		t.Errorf("nil lower bound rows = %d, want %d", got, f.Len())
	}
	if got := FilterAfter(f, nil).Len(); got != f.Len() {
		t.Errorf("nil upper bound rows = %d, want %d", got, f.Len())
	}
}

func TestFilterColumns(t *testing.T) {
	f := dailyFrame(t)

	subset, err := FilterColumns(f, []string{ColTotalExtent, ColHemisphere})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{ColTotalExtent, ColHemisphere}
	got := subset.Columns()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("columns = %v, want %v", got, want)
	}
	if subset.HasColumn(ColFilename) {
		t.Error("filename column should have been dropped")
	}

	// an empty selection means the whole frame
	all, err := FilterColumns(f, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all.Columns()) != len(f.Columns()) {
		t.Errorf("columns = %v, want all of %v", all.Columns(), f.Columns())
	}

	// the QA flag can be selected by name
	withQA, err := FilterColumns(f, []string{ColTotalExtent, ColFailedQA})
	if err != nil {
		t.Fatal(err)
	}
	if withQA.FailedQA() == nil {
		t.Error("failed_qa column should have been kept")
	}

	if _, err := FilterColumns(f, []string{"no_such_column"}); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestFilterMonth(t *testing.T) {
	dates := []Date{
		NewDate(2020, time.January, 15),
		NewDate(2020, time.February, 15),
		NewDate(2021, time.February, 15),
	}
	f := NewFrame(dates)
	if err := f.AddColumn(ColTotalExtent, []float64{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	feb := FilterMonth(f, 2)
	if feb.Len() != 2 {
		t.Fatalf("february rows = %d, want 2", feb.Len())
	}
	extent, err := feb.Column(ColTotalExtent)
	if err != nil {
		t.Fatal(err)
	}
	if extent.ValueAt(0) != 2 || extent.ValueAt(1) != 3 {
		t.Errorf("february extents = [%v %v], want [2 3]", extent.ValueAt(0), extent.ValueAt(1))
	}
}
