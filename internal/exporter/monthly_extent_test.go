package exporter

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siicli/internal/timeseries"
)

func monthlyExtentFrame(t *testing.T) *timeseries.Frame {
	t.Helper()
	dates := []timeseries.Date{
		timeseries.NewDate(2019, time.February, 1),
		timeseries.NewDate(2019, time.September, 1),
		timeseries.NewDate(2020, time.February, 1),
	}
	f := timeseries.NewFrame(dates)
	require.NoError(t, f.AddColumn(timeseries.ColTotalExtent, []float64{14680000, 18240000, 14221400}))
	require.NoError(t, f.AddColumn(timeseries.ColTotalArea, []float64{math.NaN(), 15100000, 12000000}))
	require.NoError(t, f.AddMetaColumn(timeseries.ColSourceDataset, []string{
		"nsidc-0051",
		"",
		"nsidc-0081",
	}))
	return f
}

func TestMonthlyExtentExport(t *testing.T) {
	dir := t.TempDir()
	exporter := NewMonthlyExtentExporter(NewCSVWriter(nil))

	require.NoError(t, exporter.Export(monthlyExtentFrame(t), timeseries.NorthernHemisphere, dir))

	data, err := os.ReadFile(filepath.Join(dir, "N_02_extent_v3.0.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "year, mo,    data-type, region, extent,   area", lines[0])
	// missing area publishes as the -9999 sentinel
	assert.Equal(t, "2019,  2,      Goddard,      N,  14.68,  -9999", lines[1])
	assert.Equal(t, "2020,  2,      NRTSI-G,      N,  14.22,  12.00", lines[2])

	// September has one row; an unknown source dataset publishes as
	// missing
	data, err = os.ReadFile(filepath.Join(dir, "N_09_extent_v3.0.csv"))
	require.NoError(t, err)
	lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2019,  9,        -9999,      N,  18.24,  15.10", lines[1])

	// months with no rows produce no file
	assert.NoFileExists(t, filepath.Join(dir, "N_03_extent_v3.0.csv"))
}

func TestMonthlyExtentFilename(t *testing.T) {
	exporter := NewMonthlyExtentExporter(NewCSVWriter(nil))
	assert.Equal(t, "N_02_extent_v3.0.csv", exporter.Filename(timeseries.NorthernHemisphere, time.February))
	assert.Equal(t, "S_11_extent_v3.0.csv", exporter.Filename(timeseries.SouthernHemisphere, time.November))
}
