package timeseries

import "strconv"

// ClimatologyDays is the fixed window length of a stacked climatology:
// one row per possible day of year. Day 366 exists only in leap years;
// in non-leap columns its slot is filled from Jan 1 of the following
// year by the reindexing below.
const ClimatologyDays = 366

// AlignByYears gathers a daily series into calendar-aligned year columns.
// The window is anchored at start and is either `periods` days long or
// runs through end inclusive; exactly one of the two must be given. For
// each requested year the anchor is shifted by whole calendar years
// (month and day preserved) and the series is reindexed onto the shifted
// window, producing NaN wherever a date is absent, including dates that
// do not exist, such as Feb 29 outside leap years. The resulting stack
// has a 0-based row index where row r is the anchor plus r days, and one
// column per year named after the span of years it covers. An empty year
// list defaults to the anchor's own year.
func AlignByYears(s *Series, start Date, end *Date, periods int, years []int) (*Stack, error) {
	if end == nil && periods <= 0 {
		return nil, invalidArg("periods", "exactly one of end or periods must be given")
	}
	if end != nil && periods > 0 {
		return nil, invalidArg("end", "exactly one of end or periods must be given")
	}
	if end != nil {
		if end.Before(start) {
			return nil, invalidArg("end", "%s is before start %s", end, start)
		}
		periods = DaysBetween(start, *end)
	}

	if len(years) == 0 {
		years = []int{start.Year}
	}

	index := make([]int, periods)
	for i := range index {
		index[i] = i
	}
	stack := NewStack(index)

	for _, year := range years {
		shiftStart := start.ShiftYears(year - start.Year)
		dates := dateRange(shiftStart, periods)
		column := s.Reindex(dates)
		if err := stack.AddColumn(spanName(dates), column.values); err != nil {
			return nil, err
		}
	}
	return stack, nil
}

// StackedClimatology aligns a daily series into a 366-day × year stack
// anchored at Jan 1 of the range's first year, with the row index
// relabeled as day of year (1..366)
func StackedClimatology(s *Series, years YearRange) (*Stack, error) {
	if !years.Valid() {
		return nil, invalidArg("years", "invalid year range %d-%d", years.Start, years.End)
	}
	stack, err := AlignByYears(s, NewDate(years.Start, 1, 1), nil, ClimatologyDays, years.Years())
	if err != nil {
		return nil, err
	}
	doy := make([]int, stack.Len())
	for i := range doy {
		doy[i] = i + 1
	}
	return stack.relabel(doy), nil
}

// dateRange returns periods consecutive days starting at start
func dateRange(start Date, periods int) []Date {
	dates := make([]Date, periods)
	t := start.Time()
	for i := 0; i < periods; i++ {
		dates[i] = DateOf(t.AddDate(0, 0, i))
	}
	return dates
}

// spanName labels a column after the years its window covers: a 4-digit
// year when the window stays within one year, "first-last" otherwise
func spanName(dates []Date) string {
	first := dates[0].Year
	last := dates[len(dates)-1].Year
	if first == last {
		return strconv.Itoa(first)
	}
	return strconv.Itoa(first) + "-" + strconv.Itoa(last)
}
