// Package datastore reads and writes the CSV-backed sea ice statistics
// stores. The daily store holds one row per (date, hemisphere) with the
// gridded totals and QA flag; the monthly store is the same shape
// without the QA flag, one row per (month, hemisphere).
package datastore

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"siicli/internal/timeseries"
)

// NotFoundError signals that a data store file does not exist. Batch
// tools treat this as "no data yet" and skip rather than abort.
type NotFoundError struct {
	Path string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("data store not found: %s", e.Path)
}

// Store provides access to the daily and monthly statistics stores
type Store struct {
	dailyPath   string
	monthlyPath string
	logger      *slog.Logger
}

// New creates a Store over the given CSV file paths
func New(dailyPath, monthlyPath string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dailyPath: dailyPath, monthlyPath: monthlyPath, logger: logger}
}

// Daily reads the daily store. Implements timeseries.DailyStore.
func (s *Store) Daily() (*timeseries.Frame, error) {
	return s.read(s.dailyPath, true)
}

// Monthly reads the monthly store. Implements timeseries.MonthlyStore.
func (s *Store) Monthly() (*timeseries.Frame, error) {
	return s.read(s.monthlyPath, false)
}

// BadDays returns the dates flagged failed-QA in the daily store for
// the given hemisphere
func (s *Store) BadDays(hemisphere timeseries.Hemisphere) ([]timeseries.Date, error) {
	if !hemisphere.Valid() {
		return nil, &timeseries.InvalidArgumentError{Arg: "hemisphere",
			Reason: fmt.Sprintf("unrecognized code %q", string(hemisphere))}
	}
	f, err := s.Daily()
	if err != nil {
		return nil, err
	}
	codes, err := f.MetaColumn(timeseries.ColHemisphere)
	if err != nil {
		return nil, err
	}
	flags := f.FailedQA()

	var bad []timeseries.Date
	for i, failed := range flags {
		if failed && codes[i] == string(hemisphere) {
			bad = append(bad, f.DateAt(i))
		}
	}
	return bad, nil
}

func (s *Store) read(path string, daily bool) (*timeseries.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to open data store: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read data store %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("data store %s is empty", path)
	}

	header := records[0]
	col := map[string]int{}
	for i, name := range header {
		col[name] = i
	}
	required := []string{"date", timeseries.ColTotalExtent, timeseries.ColTotalArea,
		timeseries.ColMissing, timeseries.ColHemisphere}
	for _, name := range required {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("data store %s is missing column %q", path, name)
		}
	}

	rows := records[1:]
	dates := make([]timeseries.Date, len(rows))
	extent := make([]float64, len(rows))
	area := make([]float64, len(rows))
	missing := make([]float64, len(rows))
	hemis := make([]string, len(rows))
	filenames := make([]string, len(rows))
	sources := make([]string, len(rows))
	flags := make([]bool, len(rows))

	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("data store %s row %d has %d fields, want %d",
				path, i+2, len(row), len(header))
		}
		d, err := timeseries.ParseDate(row[col["date"]])
		if err != nil {
			return nil, fmt.Errorf("data store %s row %d: %w", path, i+2, err)
		}
		dates[i] = d

		if extent[i], err = parseValue(row[col[timeseries.ColTotalExtent]]); err != nil {
			return nil, fmt.Errorf("data store %s row %d extent: %w", path, i+2, err)
		}
		if area[i], err = parseValue(row[col[timeseries.ColTotalArea]]); err != nil {
			return nil, fmt.Errorf("data store %s row %d area: %w", path, i+2, err)
		}
		if missing[i], err = parseValue(row[col[timeseries.ColMissing]]); err != nil {
			return nil, fmt.Errorf("data store %s row %d missing: %w", path, i+2, err)
		}

		hemis[i] = row[col[timeseries.ColHemisphere]]
		if j, ok := col[timeseries.ColFilename]; ok {
			filenames[i] = row[j]
		}
		if j, ok := col[timeseries.ColSourceDataset]; ok {
			sources[i] = row[j]
		}
		if j, ok := col[timeseries.ColFailedQA]; ok && daily {
			if flags[i], err = parseFlag(row[j]); err != nil {
				return nil, fmt.Errorf("data store %s row %d failed_qa: %w", path, i+2, err)
			}
		}
	}

	// older stores are not always date-ordered, and the series lookups
	// assume an ascending index; the stable sort keeps the hemisphere
	// interleave within each date
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dates[order[a]].Before(dates[order[b]])
	})

	f := timeseries.NewFrame(reorder(dates, order))
	if err := f.AddColumn(timeseries.ColTotalExtent, reorder(extent, order)); err != nil {
		return nil, err
	}
	if err := f.AddColumn(timeseries.ColTotalArea, reorder(area, order)); err != nil {
		return nil, err
	}
	if err := f.AddColumn(timeseries.ColMissing, reorder(missing, order)); err != nil {
		return nil, err
	}
	if err := f.AddMetaColumn(timeseries.ColHemisphere, reorder(hemis, order)); err != nil {
		return nil, err
	}
	if err := f.AddMetaColumn(timeseries.ColFilename, reorder(filenames, order)); err != nil {
		return nil, err
	}
	if err := f.AddMetaColumn(timeseries.ColSourceDataset, reorder(sources, order)); err != nil {
		return nil, err
	}
	if daily {
		if err := f.SetFailedQA(reorder(flags, order)); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("read data store",
		slog.String("path", path),
		slog.Int("rows", f.Len()))
	return f, nil
}

// WriteDaily writes the frame back out as a daily store CSV, creating
// parent directories as needed. Missing values become empty cells.
func (s *Store) WriteDaily(f *timeseries.Frame) error {
	return s.write(s.dailyPath, f, true)
}

// WriteMonthly writes the frame as a monthly store CSV
func (s *Store) WriteMonthly(f *timeseries.Frame) error {
	return s.write(s.monthlyPath, f, false)
}

func (s *Store) write(path string, f *timeseries.Frame, daily bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data store directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create data store: %w", err)
	}
	defer file.Close()

	extent, err := f.Column(timeseries.ColTotalExtent)
	if err != nil {
		return err
	}
	area, err := f.Column(timeseries.ColTotalArea)
	if err != nil {
		return err
	}
	missing, err := f.Column(timeseries.ColMissing)
	if err != nil {
		return err
	}
	hemis, err := f.MetaColumn(timeseries.ColHemisphere)
	if err != nil {
		return err
	}
	filenames, err := f.MetaColumn(timeseries.ColFilename)
	if err != nil {
		return err
	}
	sources, err := f.MetaColumn(timeseries.ColSourceDataset)
	if err != nil {
		return err
	}
	flags := f.FailedQA()
	if daily && flags == nil {
		return fmt.Errorf("daily frame has no %s column", timeseries.ColFailedQA)
	}

	header := []string{"date", timeseries.ColTotalExtent, timeseries.ColTotalArea,
		timeseries.ColMissing, timeseries.ColHemisphere, timeseries.ColFilename,
		timeseries.ColSourceDataset}
	if daily {
		header = append(header, timeseries.ColFailedQA)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := 0; i < f.Len(); i++ {
		record := []string{
			f.DateAt(i).String(),
			formatValue(extent.ValueAt(i)),
			formatValue(area.ValueAt(i)),
			formatValue(missing.ValueAt(i)),
			hemis[i],
			filenames[i],
			sources[i],
		}
		if daily {
			record = append(record, strconv.FormatBool(flags[i]))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush data store: %w", err)
	}

	s.logger.Info("wrote data store",
		slog.String("path", path),
		slog.Int("rows", f.Len()))
	return nil
}

// reorder applies a row permutation to a column slice
func reorder[T any](values []T, order []int) []T {
	out := make([]T, len(values))
	for i, j := range order {
		out[i] = values[j]
	}
	return out
}

// parseValue converts a CSV cell to float64, treating empty cells as
// missing data
func parseValue(cell string) (float64, error) {
	if cell == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(cell, 64)
}

// parseFlag converts a QA cell to bool, treating empty cells as false.
// Accepts Go and Python boolean spellings since older stores were
// written by other tooling.
func parseFlag(cell string) (bool, error) {
	switch cell {
	case "", "false", "False", "0":
		return false, nil
	case "true", "True", "1":
		return true, nil
	}
	return false, fmt.Errorf("unrecognized boolean %q", cell)
}

// formatValue converts a float64 to its CSV form, NaN to an empty cell
func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
