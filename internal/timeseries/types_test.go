package timeseries

import (
	"errors"
	"testing"
	"time"
)

func TestParseHemisphere(t *testing.T) {
	tests := []struct {
		input   string
		want    Hemisphere
		wantErr bool
	}{
		{input: "N", want: NorthernHemisphere},
		{input: "S", want: SouthernHemisphere},
		{input: "n", wantErr: true},
		{input: "north", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseHemisphere(tt.input)
		if tt.wantErr {
			var argErr *InvalidArgumentError
			if !errors.As(err, &argErr) {
				t.Errorf("ParseHemisphere(%q) err = %v, want *InvalidArgumentError", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHemisphere(%q) err = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHemisphere(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestHemisphereLongName(t *testing.T) {
	if got := NorthernHemisphere.LongName(); got != "north" {
		t.Errorf("LongName() = %q, want %q", got, "north")
	}
	if got := SouthernHemisphere.LongName(); got != "south" {
		t.Errorf("LongName() = %q, want %q", got, "south")
	}
}

func TestYearRange(t *testing.T) {
	r := YearRange{Start: 1981, End: 2010}
	if !r.Valid() {
		t.Fatal("1981-2010 should be valid")
	}
	years := r.Years()
	if len(years) != 30 || years[0] != 1981 || years[29] != 2010 {
		t.Errorf("Years() = %d entries [%d..%d], want 30 [1981..2010]",
			len(years), years[0], years[len(years)-1])
	}
	if !r.Contains(1981) || !r.Contains(2010) || r.Contains(2011) {
		t.Error("Contains() disagrees with inclusive bounds")
	}
	if got := r.Label(); got != "1981-2010" {
		t.Errorf("Label() = %q, want %q", got, "1981-2010")
	}

	if (YearRange{Start: 2010, End: 1981}).Valid() {
		t.Error("reversed range should be invalid")
	}
	if (YearRange{}).Valid() {
		t.Error("zero range should be invalid")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2020-02-29")
	if err != nil {
		t.Fatal(err)
	}
	if !d.Equal(NewDate(2020, time.February, 29)) {
		t.Errorf("ParseDate = %v", d)
	}
	if got := d.String(); got != "2020-02-29" {
		t.Errorf("String() = %q", got)
	}

	for _, bad := range []string{"2021-02-29", "02/29/2020", "2020-13-01", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2019, time.December, 31)
	if got := d.AddDays(1); !got.Equal(NewDate(2020, time.January, 1)) {
		t.Errorf("AddDays(1) = %v", got)
	}
	if got := d.AddDays(-31); !got.Equal(NewDate(2019, time.November, 30)) {
		t.Errorf("AddDays(-31) = %v", got)
	}

	if got := NewDate(2020, time.February, 29).DayOfYear(); got != 60 {
		t.Errorf("leap Feb 29 DayOfYear = %d, want 60", got)
	}
	if got := NewDate(2021, time.March, 1).DayOfYear(); got != 60 {
		t.Errorf("non-leap Mar 1 DayOfYear = %d, want 60", got)
	}

	if got := DaysBetween(NewDate(2020, time.January, 1), NewDate(2020, time.December, 31)); got != 366 {
		t.Errorf("leap year span = %d, want 366", got)
	}
	if got := DaysBetween(NewDate(2020, time.March, 2), NewDate(2020, time.March, 1)); got != 0 {
		t.Errorf("reversed span = %d, want 0", got)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2020, time.February, 29},
		{2021, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2021, time.April, 30},
		{2021, time.December, 31},
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}
