package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"siicli/internal/config"
	"siicli/internal/datastore"
	"siicli/internal/exporter"
	"siicli/internal/infrastructure"
	"siicli/internal/timeseries"
)

func main() {
	dataStore := flag.String("datastore", "", "path to the monthly statistics csv (defaults to the configured data store)")
	out := flag.String("out", "", "output directory for the monthly-by-year workbook (defaults to the configured output directory)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	paths, err := config.ResolvePaths(cfg.Paths)
	if err != nil {
		slog.Error("Failed to resolve paths", "error", err)
		os.Exit(1)
	}
	if *dataStore != "" {
		paths.MonthlyCSV = *dataStore
	}
	if *out != "" {
		paths.OutputDir = *out
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg.Logging.FilePath = filepath.Join(paths.LogsDir, "monthly-by-year.log")
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting monthly-by-year report generation",
		slog.String("data_store", paths.MonthlyCSV),
		slog.String("output_dir", paths.OutputDir))

	store := datastore.New(paths.DailyCSV, paths.MonthlyCSV, logger)

	north, err := timeseries.Monthly(store, timeseries.MonthlyOptions{Hemisphere: timeseries.NorthernHemisphere})
	if err != nil {
		logger.Error("Failed to load northern monthly statistics", slog.String("error", err.Error()))
		os.Exit(1)
	}
	south, err := timeseries.Monthly(store, timeseries.MonthlyOptions{Hemisphere: timeseries.SouthernHemisphere})
	if err != nil {
		logger.Error("Failed to load southern monthly statistics", slog.String("error", err.Error()))
		os.Exit(1)
	}

	export := exporter.NewMonthlyByYearExporter(logger)
	if err := export.Export(paths.OutputDir, north, south); err != nil {
		logger.Error("Failed to write monthly-by-year workbook", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Wrote monthly-by-year workbook",
		slog.String("path", filepath.Join(paths.OutputDir, export.Filename())),
		slog.Int("north_rows", north.Len()),
		slog.Int("south_rows", south.Len()))
}
