package exporter

import (
	"fmt"
	"path/filepath"
	"strings"

	"siicli/internal/timeseries"
)

// Column widths of the published daily extent CSV
const (
	monthWidth = 6
	dayWidth   = 4
	valueWidth = 11
)

const sourceDescription = " Source data product web sites: http://nsidc.org/data/nsidc-0081.html and " +
	"http://nsidc.org/data/nsidc-0051.html"

// ftpPrefix replaces the internal archive mount in published filenames
const (
	archivePathPrefix = "/projects"
	ftpPathPrefix     = "ftp://sidads.colorado.edu/pub"
)

// DailyExtentExporter writes the daily extent CSV for one hemisphere
type DailyExtentExporter struct {
	csvWriter *CSVWriter
}

// NewDailyExtentExporter creates a new daily extent exporter
func NewDailyExtentExporter(csvWriter *CSVWriter) *DailyExtentExporter {
	return &DailyExtentExporter{csvWriter: csvWriter}
}

// Filename returns the published report filename for the hemisphere,
// e.g. N_seaice_extent_daily_v3.0.csv
func (e *DailyExtentExporter) Filename(hemisphere timeseries.Hemisphere) string {
	return fmt.Sprintf("%s_seaice_extent_daily_%s.csv", hemisphere.String(), VersionString)
}

// Export writes the hemisphere's daily frame as the published extent
// CSV under outputDir. Extent and missing are scaled to millions of
// km²; rows without a source file are dropped.
func (e *DailyExtentExporter) Export(f *timeseries.Frame, hemisphere timeseries.Hemisphere, outputDir string) error {
	extent, err := f.Column(timeseries.ColTotalExtent)
	if err != nil {
		return err
	}
	missing, err := f.Column(timeseries.ColMissing)
	if err != nil {
		return err
	}
	filenames, err := f.MetaColumn(timeseries.ColFilename)
	if err != nil {
		return err
	}

	extent = timeseries.Scale(extent, 1e6, 3)
	missing = timeseries.Scale(missing, 1e6, 3)

	records := [][]string{
		{"YYYY", "    MM", "  DD", " 10^6 sq km", " 10^6 sq km", sourceDescription},
	}
	for i := 0; i < f.Len(); i++ {
		if filenames[i] == "" {
			continue
		}
		d := f.DateAt(i)
		records = append(records, []string{
			fmt.Sprintf("%d", d.Year),
			zeroPad(int(d.Month), monthWidth),
			zeroPad(d.Day, dayWidth),
			formatFixed(extent.ValueAt(i), valueWidth),
			formatFixed(missing.ValueAt(i), valueWidth),
			" " + publishedFilename(filenames[i]),
		})
	}

	headers := []string{
		"Year",
		padLeft("Month", monthWidth),
		padLeft("Day", dayWidth),
		padLeft("Extent", valueWidth),
		padLeft("Missing", valueWidth),
		" Source Data",
	}

	path := filepath.Join(outputDir, e.Filename(hemisphere))
	return e.csvWriter.WriteAligned(path, WriteOptions{Headers: headers, Records: records})
}

// publishedFilename rewrites internal archive paths to their public
// FTP equivalents
func publishedFilename(name string) string {
	if strings.HasPrefix(name, archivePathPrefix) {
		return ftpPathPrefix + strings.TrimPrefix(name, archivePathPrefix)
	}
	return name
}
