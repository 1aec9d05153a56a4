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
	dataStore := flag.String("datastore", "", "path to the daily statistics csv (defaults to the configured data store)")
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
		paths.DailyCSV = *dataStore
	}
	if *out != "" {
		paths.OutputDir = *out
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg.Logging.FilePath = filepath.Join(paths.LogsDir, "daily-extent.log")
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting daily extent report generation",
		slog.String("data_store", paths.DailyCSV),
		slog.String("output_dir", paths.OutputDir))

	store := datastore.New(paths.DailyCSV, paths.MonthlyCSV, logger)
	csvWriter := exporter.NewCSVWriter(logger)
	export := exporter.NewDailyExtentExporter(csvWriter)

	hemispheres := []timeseries.Hemisphere{timeseries.NorthernHemisphere, timeseries.SouthernHemisphere}
	for _, hemisphere := range hemispheres {
		frame, err := timeseries.Daily(store, timeseries.DefaultDailyOptions(hemisphere))
		if err != nil {
			logger.Error("Failed to load daily statistics",
				slog.String("hemisphere", hemisphere.String()),
				slog.String("error", err.Error()))
			os.Exit(1)
		}

		outputDir := paths.HemisphereOutputDir(hemisphere)
		if err := export.Export(frame, hemisphere, outputDir); err != nil {
			logger.Error("Failed to write daily extent csv",
				slog.String("hemisphere", hemisphere.String()),
				slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("Wrote daily extent csv",
			slog.String("hemisphere", hemisphere.String()),
			slog.String("path", filepath.Join(outputDir, export.Filename(hemisphere))),
			slog.Int("rows", frame.Len()))
	}
}
