package exporter

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"siicli/internal/timeseries"
)

// annualColumn is column O: twelve month columns, one blank spacer,
// then the annual average
const annualColumn = 15

// MonthlyByYearExporter writes the monthly-by-year workbook: one sheet
// per hemisphere and variable, years down, months across, with a
// day-weighted annual average highlighted when months are missing
type MonthlyByYearExporter struct {
	logger *slog.Logger
}

// NewMonthlyByYearExporter creates a new monthly-by-year exporter
func NewMonthlyByYearExporter(logger *slog.Logger) *MonthlyByYearExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &MonthlyByYearExporter{logger: logger}
}

// Filename returns the published workbook filename
func (e *MonthlyByYearExporter) Filename() string {
	return fmt.Sprintf("Sea_Ice_Index_Monthly_Data_by_Year_G02135_%s.xlsx", VersionString)
}

// Export writes the workbook under outputDir from the two hemispheres'
// monthly frames
func (e *MonthlyByYearExporter) Export(outputDir string, north, south *timeseries.Frame) error {
	book := excelize.NewFile()
	defer book.Close()

	variables := []struct {
		column string
		label  string
	}{
		{timeseries.ColTotalExtent, "Extent"},
		{timeseries.ColTotalArea, "Area"},
	}

	hemispheres := []struct {
		id    string
		frame *timeseries.Frame
	}{
		{"NH", north},
		{"SH", south},
	}

	first := true
	for _, hemi := range hemispheres {
		for _, variable := range variables {
			sheet := fmt.Sprintf("%s-%s", hemi.id, variable.label)
			if first {
				if err := book.SetSheetName(book.GetSheetName(0), sheet); err != nil {
					return fmt.Errorf("failed to name sheet %s: %w", sheet, err)
				}
				first = false
			} else if _, err := book.NewSheet(sheet); err != nil {
				return fmt.Errorf("failed to add sheet %s: %w", sheet, err)
			}
			if err := e.writeSheet(book, sheet, hemi.frame, variable.column); err != nil {
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

	e.logger.Info("wrote monthly-by-year workbook", slog.String("path", path))
	return nil
}

func (e *MonthlyByYearExporter) writeSheet(book *excelize.File, sheet string, f *timeseries.Frame, column string) error {
	series, err := f.Column(column)
	if err != nil {
		return err
	}
	series = timeseries.Scale(series, 1e6, 3)

	grid := map[int]*[12]float64{}
	var years []int
	for i := 0; i < series.Len(); i++ {
		d := series.DateAt(i)
		row, ok := grid[d.Year]
		if !ok {
			row = &[12]float64{}
			for m := range row {
				row[m] = math.NaN()
			}
			grid[d.Year] = row
			years = append(years, d.Year)
		}
		row[int(d.Month)-1] = series.ValueAt(i)
	}
	sort.Ints(years)

	numFmt := "0.000"
	numStyle, err := book.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return err
	}
	redStyle, err := book.NewStyle(&excelize.Style{
		CustomNumFmt: &numFmt,
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
		Font:         &excelize.Font{Color: "9C0006"},
	})
	if err != nil {
		return err
	}

	for month := time.January; month <= time.December; month++ {
		cell, err := excelize.CoordinatesToCellName(int(month)+1, 1)
		if err != nil {
			return err
		}
		if err := book.SetCellValue(sheet, cell, month.String()); err != nil {
			return err
		}
	}
	annualHeader, err := excelize.CoordinatesToCellName(annualColumn, 1)
	if err != nil {
		return err
	}
	if err := book.SetCellValue(sheet, annualHeader, "Annual"); err != nil {
		return err
	}

	for r, year := range years {
		rowIdx := r + 2
		yearCell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		if err := book.SetCellValue(sheet, yearCell, year); err != nil {
			return err
		}

		missingMonths := 0
		for m := 0; m < 12; m++ {
			v := grid[year][m]
			if math.IsNaN(v) {
				missingMonths++
				continue
			}
			cell, err := excelize.CoordinatesToCellName(m+2, rowIdx)
			if err != nil {
				return err
			}
			if err := book.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
			if err := book.SetCellStyle(sheet, cell, cell, numStyle); err != nil {
				return err
			}
		}

		annual := weightedAnnualMean(year, grid[year])
		if math.IsNaN(annual) {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(annualColumn, rowIdx)
		if err != nil {
			return err
		}
		if err := book.SetCellValue(sheet, cell, roundTo(annual, 3)); err != nil {
			return err
		}
		style := numStyle
		if missingMonths > 0 {
			style = redStyle
		}
		if err := book.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

// weightedAnnualMean averages the year's monthly values weighted by the
// number of days in each month, skipping missing months
func weightedAnnualMean(year int, months *[12]float64) float64 {
	var weighted, weights float64
	for m := 0; m < 12; m++ {
		v := months[m]
		if math.IsNaN(v) {
			continue
		}
		w := float64(timeseries.DaysInMonth(year, time.Month(m+1)))
		weighted += w * v
		weights += w
	}
	if weights == 0 {
		return math.NaN()
	}
	return weighted / weights
}
