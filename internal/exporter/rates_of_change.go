package exporter

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"siicli/internal/timeseries"
)

// changeStatistic describes one published change column: its workbook
// title, sheet name suffix, output precision (negative digits round to
// tens and hundreds) and accessors into the rate tables
type changeStatistic struct {
	title       string
	sheetSuffix string
	digits      int
	value       func(timeseries.RateOfChange) float64
	climValue   func(timeseries.AverageRateOfChange) float64
}

func changeStatistics() []changeStatistic {
	return []changeStatistic{
		{
			title:       "Ice change in Mkm^2 per month",
			sheetSuffix: "Ice-Change-Mkm^2-per-Month",
			digits:      3,
			value:       func(r timeseries.RateOfChange) float64 { return r.ChangeMkm2PerMonth },
			climValue:   func(r timeseries.AverageRateOfChange) float64 { return r.ChangeMkm2PerMonth },
		},
		{
			title:       "Ice change in km^2 per day",
			sheetSuffix: "Ice-Change-km^2-per-Day",
			digits:      -2,
			value:       func(r timeseries.RateOfChange) float64 { return r.ChangeKm2PerDay },
			climValue:   func(r timeseries.AverageRateOfChange) float64 { return r.ChangeKm2PerDay },
		},
		{
			title:       "Ice change in mi^2 per month",
			sheetSuffix: "Ice-Change-mi^2-per-Month",
			digits:      -3,
			value:       func(r timeseries.RateOfChange) float64 { return r.ChangeMi2PerMonth },
			climValue:   func(r timeseries.AverageRateOfChange) float64 { return r.ChangeMi2PerMonth },
		},
		{
			title:       "Ice change in mi^2 per day",
			sheetSuffix: "Ice-Change-mi^2-per-Day",
			digits:      -2,
			value:       func(r timeseries.RateOfChange) float64 { return r.ChangeMi2PerDay },
			climValue:   func(r timeseries.AverageRateOfChange) float64 { return r.ChangeMi2PerDay },
		},
	}
}

// HemisphereRates bundles one hemisphere's monthly rates of change with
// its climatological averages for export
type HemisphereRates struct {
	Hemisphere  timeseries.Hemisphere
	Rates       *timeseries.RatesOfChange
	Climatology []timeseries.AverageRateOfChange

	// Years labels the climatology row, e.g. 1981-2010
	Years timeseries.YearRange
}

// RatesOfChangeExporter writes the rates-of-change workbook: one sheet
// per hemisphere and change statistic, years down, months across, the
// climatological average row at the bottom, and cells colored by sign
type RatesOfChangeExporter struct {
	logger *slog.Logger
}

// NewRatesOfChangeExporter creates a new rates-of-change exporter
func NewRatesOfChangeExporter(logger *slog.Logger) *RatesOfChangeExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &RatesOfChangeExporter{logger: logger}
}

// Filename returns the published workbook filename
func (e *RatesOfChangeExporter) Filename() string {
	return fmt.Sprintf("Sea_Ice_Index_Rates_of_Change_G02135_%s.xlsx", VersionString)
}

// Export writes the workbook under outputDir
func (e *RatesOfChangeExporter) Export(outputDir string, hemispheres []HemisphereRates) error {
	book := excelize.NewFile()
	defer book.Close()

	first := true
	for _, hemi := range hemispheres {
		for _, stat := range changeStatistics() {
			sheet := fmt.Sprintf("%sH-%s", hemi.Hemisphere.String(), stat.sheetSuffix)
			if first {
				if err := book.SetSheetName(book.GetSheetName(0), sheet); err != nil {
					return fmt.Errorf("failed to name sheet %s: %w", sheet, err)
				}
				first = false
			} else if _, err := book.NewSheet(sheet); err != nil {
				return fmt.Errorf("failed to add sheet %s: %w", sheet, err)
			}
			if err := e.writeSheet(book, sheet, hemi, stat); err != nil {
				return fmt.Errorf("failed to write sheet %s: %w", sheet, err)
			}
		}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(outputDir, e.Filename())
	if err := book.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	e.logger.Info("wrote rates-of-change workbook", slog.String("path", path))
	return nil
}

func (e *RatesOfChangeExporter) writeSheet(book *excelize.File, sheet string, hemi HemisphereRates, stat changeStatistic) error {
	if err := book.SetCellValue(sheet, "A1",
		fmt.Sprintf("%s from 5-day averaged daily values", stat.title)); err != nil {
		return err
	}

	numFmt := "0.000"
	numStyle, err := book.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return err
	}

	for month := time.January; month <= time.December; month++ {
		cell, err := excelize.CoordinatesToCellName(int(month)+1, 2)
		if err != nil {
			return err
		}
		if err := book.SetCellValue(sheet, cell, month.String()); err != nil {
			return err
		}
	}

	grid := map[int]*[12]float64{}
	var years []int
	for _, row := range hemi.Rates.Rows() {
		months, ok := grid[row.Year]
		if !ok {
			months = &[12]float64{}
			for m := range months {
				months[m] = math.NaN()
			}
			grid[row.Year] = months
			years = append(years, row.Year)
		}
		months[int(row.Month)-1] = stat.value(row)
	}

	for r, year := range years {
		rowIdx := r + 3
		yearCell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		if err := book.SetCellValue(sheet, yearCell, year); err != nil {
			return err
		}
		for m := 0; m < 12; m++ {
			if err := e.writeValue(book, sheet, m+2, rowIdx, grid[year][m], stat.digits, numStyle); err != nil {
				return err
			}
		}
	}

	// climatological averages, one blank row below the grid
	climRow := len(years) + 4
	labelCell, err := excelize.CoordinatesToCellName(1, climRow)
	if err != nil {
		return err
	}
	if err := book.SetCellValue(sheet, labelCell, hemi.Years.Label()); err != nil {
		return err
	}
	for _, avg := range hemi.Climatology {
		if err := e.writeValue(book, sheet, int(avg.Month)+1, climRow, stat.climValue(avg), stat.digits, numStyle); err != nil {
			return err
		}
	}

	return e.addSignFormatting(book, sheet)
}

func (e *RatesOfChangeExporter) writeValue(book *excelize.File, sheet string, col, row int, v float64, digits, style int) error {
	if math.IsNaN(v) {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := book.SetCellValue(sheet, cell, roundTo(v, digits)); err != nil {
		return err
	}
	return book.SetCellStyle(sheet, cell, cell, style)
}

// addSignFormatting colors increases blue and decreases red
func (e *RatesOfChangeExporter) addSignFormatting(book *excelize.File, sheet string) error {
	blue, err := book.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"CEC7FF"}, Pattern: 1},
		Font: &excelize.Font{Color: "06009C"},
	})
	if err != nil {
		return err
	}
	red, err := book.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
		Font: &excelize.Font{Color: "9C0006"},
	})
	if err != nil {
		return err
	}

	return book.SetConditionalFormat(sheet, "B3:ZZ369", []excelize.ConditionalFormatOptions{
		{Type: "cell", Criteria: ">", Value: "0", Format: &blue},
		{Type: "cell", Criteria: "<", Value: "0", Format: &red},
	})
}
