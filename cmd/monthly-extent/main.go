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
	out := flag.String("out", "", "output directory for the published CSVs (defaults to the configured output directory)")
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

	cfg.Logging.FilePath = filepath.Join(paths.LogsDir, "monthly-extent.log")
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting monthly extent report generation",
		slog.String("data_store", paths.MonthlyCSV),
		slog.String("output_dir", paths.OutputDir))

	store := datastore.New(paths.DailyCSV, paths.MonthlyCSV, logger)
	export := exporter.NewMonthlyExtentExporter(exporter.NewCSVWriter(logger))

	hemispheres := []timeseries.Hemisphere{timeseries.NorthernHemisphere, timeseries.SouthernHemisphere}
	for _, hemisphere := range hemispheres {
		frame, err := timeseries.Monthly(store, timeseries.MonthlyOptions{Hemisphere: hemisphere})
		if err != nil {
			logger.Error("Failed to load monthly statistics",
				slog.String("hemisphere", hemisphere.String()),
				slog.String("error", err.Error()))
			os.Exit(1)
		}

		outputDir := paths.HemisphereOutputDir(hemisphere)
		if err := export.Export(frame, hemisphere, outputDir); err != nil {
			logger.Error("Failed to write monthly extent csvs",
				slog.String("hemisphere", hemisphere.String()),
				slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("Wrote monthly extent csvs",
			slog.String("hemisphere", hemisphere.String()),
			slog.String("output_dir", outputDir),
			slog.Int("rows", frame.Len()))
	}
}
