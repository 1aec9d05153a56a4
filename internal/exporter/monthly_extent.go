package exporter

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"siicli/internal/timeseries"
)

// missingValue marks missing data in the published monthly extent CSVs
const missingValue = "-9999"

// Column widths of the published monthly extent CSVs
const (
	moWidth       = 3
	dataTypeWidth = 13
	regionWidth   = 7
	extentWidth   = 7
	areaWidth     = 7
)

// dataTypeNames maps source dataset identifiers to their published
// data-type labels; unknown sources publish as missing
var dataTypeNames = map[string]string{
	"nsidc-0051": "Goddard",
	"nsidc-0081": "NRTSI-G",
}

// MonthlyExtentExporter writes the per-month extent CSVs for one
// hemisphere, one file per calendar month with one row per year
type MonthlyExtentExporter struct {
	csvWriter *CSVWriter
}

// NewMonthlyExtentExporter creates a new monthly extent exporter
func NewMonthlyExtentExporter(csvWriter *CSVWriter) *MonthlyExtentExporter {
	return &MonthlyExtentExporter{csvWriter: csvWriter}
}

// Filename returns the published report filename for one hemisphere and
// month, e.g. N_09_extent_v3.0.csv
func (e *MonthlyExtentExporter) Filename(hemisphere timeseries.Hemisphere, month time.Month) string {
	return fmt.Sprintf("%s_%02d_extent_%s.csv", hemisphere.String(), int(month), VersionString)
}

// Export writes the hemisphere's monthly frame as per-month CSVs under
// outputDir. Extent and area are scaled to millions of km² at two
// decimals; missing values publish as -9999. Months with no rows
// produce no file.
func (e *MonthlyExtentExporter) Export(f *timeseries.Frame, hemisphere timeseries.Hemisphere, outputDir string) error {
	extent, err := f.Column(timeseries.ColTotalExtent)
	if err != nil {
		return err
	}
	area, err := f.Column(timeseries.ColTotalArea)
	if err != nil {
		return err
	}
	sources, err := f.MetaColumn(timeseries.ColSourceDataset)
	if err != nil {
		return err
	}

	extent = timeseries.Scale(extent, 1e6, 2)
	area = timeseries.Scale(area, 1e6, 2)

	headers := []string{
		"year",
		padLeft("mo", moWidth),
		padLeft("data-type", dataTypeWidth),
		padLeft("region", regionWidth),
		padLeft("extent", extentWidth),
		padLeft("area", areaWidth),
	}

	for month := time.January; month <= time.December; month++ {
		var records [][]string
		for i := 0; i < f.Len(); i++ {
			d := f.DateAt(i)
			if d.Month != month {
				continue
			}
			records = append(records, []string{
				fmt.Sprintf("%d", d.Year),
				padLeft(fmt.Sprintf("%d", int(month)), moWidth),
				padLeft(dataTypeName(sources[i]), dataTypeWidth),
				padLeft(hemisphere.String(), regionWidth),
				padLeft(formatMonthlyValue(extent.ValueAt(i)), extentWidth),
				padLeft(formatMonthlyValue(area.ValueAt(i)), areaWidth),
			})
		}
		if len(records) == 0 {
			continue
		}

		path := filepath.Join(outputDir, e.Filename(hemisphere, month))
		if err := e.csvWriter.WriteAligned(path, WriteOptions{Headers: headers, Records: records}); err != nil {
			return err
		}
	}
	return nil
}

func dataTypeName(source string) string {
	if name, ok := dataTypeNames[source]; ok {
		return name
	}
	return missingValue
}

// formatMonthlyValue renders a scaled value at two decimals, missing as
// the -9999 sentinel
func formatMonthlyValue(v float64) string {
	if math.IsNaN(v) {
		return missingValue
	}
	return fmt.Sprintf("%.2f", v)
}
