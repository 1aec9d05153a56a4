package exporter

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"

	"siicli/internal/timeseries"
)

// climatologyMargin is the spacing inserted before every statistics
// column of the published climatology CSV
const climatologyMargin = "   "

// ClimatologyExporter writes the day-of-year climatology statistics CSV
// for one hemisphere
type ClimatologyExporter struct {
	csvWriter *CSVWriter
}

// NewClimatologyExporter creates a new climatology exporter
func NewClimatologyExporter(csvWriter *CSVWriter) *ClimatologyExporter {
	return &ClimatologyExporter{csvWriter: csvWriter}
}

// Filename returns the published report filename, e.g.
// N_seaice_extent_climatology_1981-2010_v3.0.csv
func (e *ClimatologyExporter) Filename(hemisphere timeseries.Hemisphere, years timeseries.YearRange) string {
	return fmt.Sprintf("%s_seaice_extent_climatology_%s_%s.csv",
		hemisphere.String(), years.Label(), VersionString)
}

// Export joins the normal statistics and quantile stacks on day of year
// and writes them as the published climatology CSV. The normal stack
// must carry "<name>_mean" and "<name>_std" columns for seriesName; the
// quantile stack one column per level.
func (e *ClimatologyExporter) Export(
	normal, quantiles *timeseries.Stack,
	seriesName string,
	levels []float64,
	years timeseries.YearRange,
	hemisphere timeseries.Hemisphere,
	outputDir string,
) error {
	means, err := normal.Column(seriesName + "_mean")
	if err != nil {
		return err
	}
	stds, err := normal.Column(seriesName + "_std")
	if err != nil {
		return err
	}

	// quantile rows may be sparse where a day was never observed
	quantileRow := map[int]int{}
	for i := 0; i < quantiles.Len(); i++ {
		quantileRow[quantiles.IndexAt(i)] = i
	}
	levelCols := make([][]float64, len(levels))
	for j, level := range levels {
		col, err := quantiles.Column(strconv.FormatFloat(level, 'g', -1, 64))
		if err != nil {
			return err
		}
		levelCols[j] = col
	}

	labels := []string{"Average Extent", "Std Deviation"}
	for _, level := range levels {
		labels = append(labels, climatologyMargin+formatLevel(level))
	}

	headers := []string{"DOY"}
	for _, label := range labels {
		headers = append(headers, climatologyMargin+label)
	}

	var records [][]string
	for i := 0; i < normal.Len(); i++ {
		doy := normal.IndexAt(i)
		record := []string{fmt.Sprintf("%03d", doy)}
		record = append(record,
			climatologyMargin+formatFixed(means[i], len(labels[0])),
			climatologyMargin+formatFixed(stds[i], len(labels[1])))
		for j := range levels {
			value := math.NaN()
			if row, ok := quantileRow[doy]; ok {
				value = levelCols[j][row]
			}
			record = append(record, climatologyMargin+formatFixed(value, len(labels[2+j])))
		}
		records = append(records, record)
	}

	path := filepath.Join(outputDir, e.Filename(hemisphere, years))
	return e.csvWriter.WriteAligned(path, WriteOptions{
		Preamble: fmt.Sprintf("std Years = %s\n", years.Label()),
		Headers:  headers,
		Records:  records,
	})
}
