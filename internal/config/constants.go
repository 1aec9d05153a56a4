package config

import (
	"fmt"
	"sort"
	"time"

	"siicli/internal/timeseries"
)

// Season is three consecutive calendar months, in order. Winter wraps
// the year boundary: December, January, February.
type Season [3]time.Month

// Months returns the season's months as a slice
func (s Season) Months() []time.Month {
	return []time.Month{s[0], s[1], s[2]}
}

// Contains reports whether the month falls in the season
func (s Season) Contains(month time.Month) bool {
	return month == s[0] || month == s[1] || month == s[2]
}

// DefaultSeasons returns the meteorological season definitions used by
// the standard reports
func DefaultSeasons() map[string]Season {
	return map[string]Season{
		"spring": {time.March, time.April, time.May},
		"summer": {time.June, time.July, time.August},
		"autumn": {time.September, time.October, time.November},
		"winter": {time.December, time.January, time.February},
	}
}

// ValidateSeasons checks that every season holds exactly three
// consecutive months, allowing the December to January wrap
func ValidateSeasons(seasons map[string]Season) error {
	names := make([]string, 0, len(seasons))
	for name := range seasons {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		months := seasons[name]
		for i := 0; i < len(months)-1; i++ {
			next := months[i] + 1
			if months[i] == time.December {
				next = time.January
			}
			if months[i+1] != next {
				return fmt.Errorf("season %q has nonconsecutive months: %v", name, months.Months())
			}
		}
	}
	return nil
}

// Constants holds the resolved, immutable statistical parameters shared
// by every report. Built once from the climatology configuration and
// passed by value from then on.
type Constants struct {
	ClimatologyYears timeseries.YearRange
	NDayAverage      int
	MinValidDays     int
	Quantiles        []float64
	Seasons          map[string]Season
}

// NewConstants resolves the climatology configuration into Constants,
// validating the season definitions
func NewConstants(cfg ClimatologyConfig) (Constants, error) {
	seasons := DefaultSeasons()
	if err := ValidateSeasons(seasons); err != nil {
		return Constants{}, err
	}

	quantiles := cfg.Quantiles
	if len(quantiles) == 0 {
		quantiles = timeseries.DefaultQuantiles()
	}

	return Constants{
		ClimatologyYears: timeseries.YearRange{Start: cfg.StartYear, End: cfg.EndYear},
		NDayAverage:      cfg.NDayAverage,
		MinValidDays:     cfg.MinValidDays,
		Quantiles:        append([]float64(nil), quantiles...),
		Seasons:          seasons,
	}, nil
}
