package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"siicli/internal/config"
	"siicli/internal/datastore"
	"siicli/internal/exporter"
	"siicli/internal/infrastructure"
	"siicli/internal/timeseries"
)

// climatologyQuantiles are the levels published in the climatology CSVs
var climatologyQuantiles = []float64{0.10, 0.25, 0.50, 0.75, 0.90}

func main() {
	dataStore := flag.String("datastore", "", "path to the daily statistics csv (defaults to the configured data store)")
	out := flag.String("out", "", "output directory for the climatology CSVs (defaults to the configured output directory)")
	startYear := flag.Int("start-year", 0, "first climatology reference year (defaults to the configured window)")
	endYear := flag.Int("end-year", 0, "last climatology reference year (defaults to the configured window)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *startYear != 0 {
		cfg.Climatology.StartYear = *startYear
	}
	if *endYear != 0 {
		cfg.Climatology.EndYear = *endYear
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

	cfg.Logging.FilePath = filepath.Join(paths.LogsDir, "climatology.log")
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	years := constants.ClimatologyYears
	logger.Info("Starting climatology report generation",
		slog.String("data_store", paths.DailyCSV),
		slog.String("output_dir", paths.OutputDir),
		slog.String("years", years.Label()))

	store := datastore.New(paths.DailyCSV, paths.MonthlyCSV, logger)
	export := exporter.NewClimatologyExporter(exporter.NewCSVWriter(logger))

	var g errgroup.Group
	hemispheres := []timeseries.Hemisphere{timeseries.NorthernHemisphere, timeseries.SouthernHemisphere}
	for _, hemisphere := range hemispheres {
		hemisphere := hemisphere
		g.Go(func() error {
			return writeClimatology(store, export, hemisphere, years, paths.HemisphereOutputDir(hemisphere), logger)
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Climatology report generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// writeClimatology computes the day-of-year statistics for one
// hemisphere and writes the published CSV. The daily extent is loaded
// with one buffer day on each side so single-day gaps at the window
// edges still interpolate, plus one extra day when the last reference
// year is not a leap year so day of year 366 has data.
func writeClimatology(
	store *datastore.Store,
	export *exporter.ClimatologyExporter,
	hemisphere timeseries.Hemisphere,
	years timeseries.YearRange,
	outputDir string,
	logger *slog.Logger,
) error {
	start := timeseries.NewDate(years.Start, time.January, 1).AddDays(-1)
	end := timeseries.NewDate(years.End, time.December, 31).AddDays(1)
	if !timeseries.IsLeapYear(years.End) {
		end = end.AddDays(1)
	}

	opts := timeseries.DefaultDailyOptions(hemisphere)
	opts.StartDate = &start
	opts.EndDate = &end
	opts.Interpolate = timeseries.InterpolateUpTo(1)

	frame, err := timeseries.Daily(store, opts)
	if err != nil {
		return err
	}
	extent, err := frame.Column(timeseries.ColTotalExtent)
	if err != nil {
		return err
	}
	// statistics run on the unrounded scaled extents; rounding happens
	// only when the report is formatted
	extent = timeseries.Divide(extent, 1e6)

	normal, err := timeseries.NormalStatistics(extent, years, 0)
	if err != nil {
		return err
	}
	quantiles, err := timeseries.QuantileStatistics(extent, years, climatologyQuantiles, 0)
	if err != nil {
		return err
	}

	if err := export.Export(normal, quantiles, extent.Name(), climatologyQuantiles, years, hemisphere, outputDir); err != nil {
		return err
	}

	logger.Info("Wrote climatology csv",
		slog.String("hemisphere", hemisphere.String()),
		slog.String("path", filepath.Join(outputDir, export.Filename(hemisphere, years))))
	return nil
}
