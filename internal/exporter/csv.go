package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	// Preamble is written verbatim before the CSV content, for report
	// formats that carry a free-text header line
	Preamble string
	Headers  []string
	Records  [][]string
}

// WriteCSV writes data to a CSV file with the given options, creating
// parent directories as needed
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	w.logger.Info("writing CSV report",
		slog.String("path", filePath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.Preamble != "" {
		if _, err := file.WriteString(options.Preamble); err != nil {
			return fmt.Errorf("failed to write preamble: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// WriteAligned writes a CSV file joining fields verbatim. The published
// fixed-width reports pad fields with leading spaces, which
// encoding/csv would wrap in quotes.
func (w *CSVWriter) WriteAligned(filePath string, options WriteOptions) error {
	w.logger.Info("writing CSV report",
		slog.String("path", filePath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString(options.Preamble)
	if len(options.Headers) > 0 {
		b.WriteString(strings.Join(options.Headers, ","))
		b.WriteByte('\n')
	}
	for _, record := range options.Records {
		b.WriteString(strings.Join(record, ","))
		b.WriteByte('\n')
	}

	if err := os.WriteFile(filePath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
