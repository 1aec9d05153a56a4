package timeseries

import (
	"fmt"
	"time"
)

// Hemisphere identifies which polar hemisphere a row of statistics
// belongs to. The data store carries both hemispheres in one file, so
// every per-hemisphere computation must filter on this first.
type Hemisphere string

const (
	// NorthernHemisphere selects Arctic sea ice statistics
	NorthernHemisphere Hemisphere = "N"
	// SouthernHemisphere selects Antarctic sea ice statistics
	SouthernHemisphere Hemisphere = "S"
)

// Valid reports whether the hemisphere is one of the recognized codes
func (h Hemisphere) Valid() bool {
	return h == NorthernHemisphere || h == SouthernHemisphere
}

// String returns the single-letter hemisphere code
func (h Hemisphere) String() string {
	return string(h)
}

// LongName returns the lowercase hemisphere name used in output paths
func (h Hemisphere) LongName() string {
	switch h {
	case NorthernHemisphere:
		return "north"
	case SouthernHemisphere:
		return "south"
	default:
		return "unknown"
	}
}

// ParseHemisphere converts a hemisphere code string to a Hemisphere,
// returning an InvalidArgumentError for anything outside the closed set
func ParseHemisphere(s string) (Hemisphere, error) {
	h := Hemisphere(s)
	if !h.Valid() {
		return "", &InvalidArgumentError{Arg: "hemisphere", Reason: fmt.Sprintf("unrecognized code %q", s)}
	}
	return h, nil
}

// YearRange is an inclusive range of years defining a climatological
// reference window, e.g. the default 1981-2010 baseline.
type YearRange struct {
	Start int
	End   int
}

// Valid reports whether the range is non-empty and ordered
func (r YearRange) Valid() bool {
	return r.Start > 0 && r.End >= r.Start
}

// Years returns every year in the range, ascending
func (r YearRange) Years() []int {
	if !r.Valid() {
		return nil
	}
	years := make([]int, 0, r.End-r.Start+1)
	for y := r.Start; y <= r.End; y++ {
		years = append(years, y)
	}
	return years
}

// Contains reports whether the year falls within the range
func (r YearRange) Contains(year int) bool {
	return year >= r.Start && year <= r.End
}

// Label returns the "start-end" form used in column names and file names
func (r YearRange) Label() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Date is a calendar date with no time-of-day or timezone component.
// All series in the data store are indexed by Date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its components
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates a time.Time to its calendar date
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns the date at midnight UTC
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// AddDays returns the date n calendar days later (or earlier for negative n)
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// ShiftYears moves the date by whole calendar years, preserving month and
// day. Feb 29 shifted into a non-leap year clamps to Feb 28 rather than
// normalizing into March, so aligned windows keep their month/day anchor.
func (d Date) ShiftYears(n int) Date {
	year := d.Year + n
	day := d.Day
	if d.Month == time.February && d.Day == 29 && !IsLeapYear(year) {
		day = 28
	}
	return Date{Year: year, Month: d.Month, Day: day}
}

// Before reports whether d is earlier than other
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is later than other
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// Equal reports whether the two dates are the same calendar day
func (d Date) Equal(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

// DayOfYear returns the 1-based ordinal of the date within its own year,
// so Feb 29 is day 60 and day 366 exists only in leap years
func (d Date) DayOfYear() int {
	return d.Time().YearDay()
}

// DaysBetween returns the number of days from a to b, inclusive of both.
// Returns 0 when b is before a.
func DaysBetween(a, b Date) int {
	if b.Before(a) {
		return 0
	}
	return int(b.Time().Sub(a.Time())/(24*time.Hour)) + 1
}

// IsLeapYear reports whether the year has a Feb 29
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month of the given year
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// InvalidArgumentError signals a malformed or missing parameter. These are
// programming/usage errors surfaced immediately to the caller and never
// retried; insufficient data is represented as NaN, not as an error.
type InvalidArgumentError struct {
	Arg    string
	Reason string
}

// Error implements the error interface
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Arg, e.Reason)
}

func invalidArg(arg, format string, args ...interface{}) error {
	return &InvalidArgumentError{Arg: arg, Reason: fmt.Sprintf(format, args...)}
}
