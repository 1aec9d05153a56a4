package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"siicli/internal/config"
	"siicli/internal/datastore"
	"siicli/internal/exporter"
	"siicli/internal/infrastructure"
	"siicli/internal/timeseries"
)

func main() {
	dataStore := flag.String("datastore", "", "path to the daily statistics csv (defaults to the configured data store)")
	out := flag.String("out", "", "output directory for the rates-of-change workbook (defaults to the configured output directory)")
	cutoffFlag := flag.String("cutoff", "", "YYYY-MM-DD exclusive upper bound on contributing days (defaults to the first of the current month)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	constants, err := config.NewConstants(cfg.Climatology)
	if err != nil {
		slog.Error("Invalid climatology parameters", "error", err)
		os.Exit(1)
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

	cfg.Logging.FilePath = filepath.Join(paths.LogsDir, "rates-of-change.log")
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	// a partially elapsed month never contributes a rate of change
	now := time.Now()
	cutoff := timeseries.NewDate(now.Year(), now.Month(), 1)
	if *cutoffFlag != "" {
		cutoff, err = timeseries.ParseDate(*cutoffFlag)
		if err != nil {
			logger.Error("Invalid cutoff date", slog.String("cutoff", *cutoffFlag), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("Starting rates-of-change report generation",
		slog.String("data_store", paths.DailyCSV),
		slog.String("output_dir", paths.OutputDir),
		slog.String("cutoff", cutoff.String()),
		slog.String("climatology_years", constants.ClimatologyYears.Label()))

	store := datastore.New(paths.DailyCSV, paths.MonthlyCSV, logger)

	var hemispheres []exporter.HemisphereRates
	for _, hemisphere := range []timeseries.Hemisphere{timeseries.NorthernHemisphere, timeseries.SouthernHemisphere} {
		rates, err := hemisphereRates(store, hemisphere, cutoff, constants.ClimatologyYears)
		if err != nil {
			logger.Error("Failed to compute rates of change",
				slog.String("hemisphere", hemisphere.String()),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		hemispheres = append(hemispheres, rates)
	}

	export := exporter.NewRatesOfChangeExporter(logger)
	if err := export.Export(paths.OutputDir, hemispheres); err != nil {
		logger.Error("Failed to write rates-of-change workbook", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Wrote rates-of-change workbook",
		slog.String("path", filepath.Join(paths.OutputDir, export.Filename())))
}

func hemisphereRates(
	store *datastore.Store,
	hemisphere timeseries.Hemisphere,
	cutoff timeseries.Date,
	years timeseries.YearRange,
) (exporter.HemisphereRates, error) {
	frame, err := timeseries.Daily(store, timeseries.DefaultDailyOptions(hemisphere))
	if err != nil {
		return exporter.HemisphereRates{}, err
	}
	extent, err := frame.Column(timeseries.ColTotalExtent)
	if err != nil {
		return exporter.HemisphereRates{}, err
	}

	rates, err := timeseries.MonthlyRatesOfChange(extent, cutoff)
	if err != nil {
		return exporter.HemisphereRates{}, err
	}
	climatology, err := timeseries.ClimatologyAverageRatesOfChange(extent, cutoff, years)
	if err != nil {
		return exporter.HemisphereRates{}, err
	}

	return exporter.HemisphereRates{
		Hemisphere:  hemisphere,
		Rates:       rates,
		Climatology: climatology,
		Years:       years,
	}, nil
}
