package timeseries

// DailyStore supplies the raw daily statistics frame, both hemispheres
// interleaved. Implemented by the CSV data store; tests supply fakes.
type DailyStore interface {
	Daily() (*Frame, error)
}

// MonthlyStore supplies the raw monthly statistics frame
type MonthlyStore interface {
	Monthly() (*Frame, error)
}

// DailyOptions selects and normalizes daily data before statistics run.
// The zero value of Columns selects the standard daily column set; an
// explicit empty slice would fail column validation, so use nil.
type DailyOptions struct {
	Hemisphere Hemisphere

	// StartDate and EndDate bound the returned rows inclusively; nil
	// means unbounded. Bounds are applied after interpolation and
	// smoothing so window edges see the neighboring data.
	StartDate *Date
	EndDate   *Date

	// Columns subsets the store columns; nil selects the daily defaults
	Columns []string

	// Interpolate bounds gap filling; the zero value disables it.
	// Interpolation replaces the frame with just its numeric columns and
	// drops the missing-count columns, whose exact values stop meaning
	// anything once gaps are filled in.
	Interpolate InterpolationLimit

	// NDayAverage smooths each numeric column with a trailing rolling
	// mean of this width when positive; MinValid is the minimum number
	// of valid samples a window needs, and PreserveNaN keeps originally
	// missing positions missing in the smoothed output.
	NDayAverage int
	MinValid    int
	PreserveNaN bool

	// KeepFailedQA skips the QA masking step; by default rows flagged
	// failed-QA have their values treated as missing
	KeepFailedQA bool
}

// DefaultDailyOptions returns the options used by the standard reports:
// default columns, QA filtering on, no interpolation or smoothing, and
// the conventional minimum of 2 valid days per smoothing window.
func DefaultDailyOptions(hemisphere Hemisphere) DailyOptions {
	return DailyOptions{
		Hemisphere: hemisphere,
		MinValid:   DefaultMinValidDays,
	}
}

// Daily loads the daily frame and runs the normalization pipeline: QA
// masking, hemisphere filtering, column selection, bounded gap filling,
// n-day smoothing, then date bounds.
func Daily(store DailyStore, opts DailyOptions) (*Frame, error) {
	f, err := store.Daily()
	if err != nil {
		return nil, err
	}

	if !opts.KeepFailedQA {
		f = FilterFailedQA(f)
	}

	f, err = FilterHemisphere(f, opts.Hemisphere)
	if err != nil {
		return nil, err
	}

	columns := opts.Columns
	if columns == nil {
		columns = DailyDefaultColumns()
	}
	f, err = FilterColumns(f, columns)
	if err != nil {
		return nil, err
	}

	if opts.Interpolate.Enabled() {
		f, err = Interpolate(f, opts.Interpolate)
		if err != nil {
			return nil, err
		}
		f = DropMissingColumns(f)
	}

	if opts.NDayAverage > 0 {
		f, err = NDayAverage(f, opts.NDayAverage, opts.MinValid, opts.PreserveNaN, false)
		if err != nil {
			return nil, err
		}
	}

	f = FilterBefore(f, opts.StartDate)
	f = FilterAfter(f, opts.EndDate)
	return f, nil
}

// MonthlyOptions selects monthly data. Month, when 1-12, restricts the
// result to a single calendar month across all years.
type MonthlyOptions struct {
	Hemisphere Hemisphere
	StartDate  *Date
	EndDate    *Date
	Columns    []string
	Month      int
}

// Monthly loads the monthly frame and applies hemisphere, column, date
// and month filtering
func Monthly(store MonthlyStore, opts MonthlyOptions) (*Frame, error) {
	f, err := store.Monthly()
	if err != nil {
		return nil, err
	}

	f, err = FilterHemisphere(f, opts.Hemisphere)
	if err != nil {
		return nil, err
	}

	columns := opts.Columns
	if columns == nil {
		columns = MonthlyDefaultColumns()
	}
	f, err = FilterColumns(f, columns)
	if err != nil {
		return nil, err
	}

	f = FilterBefore(f, opts.StartDate)
	f = FilterAfter(f, opts.EndDate)

	if opts.Month != 0 {
		if opts.Month < 1 || opts.Month > 12 {
			return nil, invalidArg("month", "must be 1-12, got %d", opts.Month)
		}
		f = FilterMonth(f, opts.Month)
	}
	return f, nil
}
