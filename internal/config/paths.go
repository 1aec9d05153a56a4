package config

import (
	"fmt"
	"os"
	"path/filepath"

	"siicli/internal/timeseries"
)

// Paths contains the resolved file system locations used by the tools.
// This is the single source of truth for where data is read from and
// reports are written to.
type Paths struct {
	BaseDir      string
	DataStoreDir string
	DailyCSV     string
	MonthlyCSV   string
	OutputDir    string
	LogsDir      string
}

// ResolvePaths resolves the configured paths against the executable
// directory. Absolute configured paths are kept as given.
func ResolvePaths(cfg PathsConfig) (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}
	return resolvePathsFrom(filepath.Dir(exe), cfg), nil
}

func resolvePathsFrom(baseDir string, cfg PathsConfig) *Paths {
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}

	dataStoreDir := resolve(cfg.DataStoreDir)
	return &Paths{
		BaseDir:      baseDir,
		DataStoreDir: dataStoreDir,
		DailyCSV:     filepath.Join(dataStoreDir, cfg.DailyCSV),
		MonthlyCSV:   filepath.Join(dataStoreDir, cfg.MonthlyCSV),
		OutputDir:    resolve(cfg.OutputDir),
		LogsDir:      resolve(cfg.LogsDir),
	}
}

// HemisphereOutputDir returns the per-hemisphere report directory,
// e.g. output/north
func (p *Paths) HemisphereOutputDir(h timeseries.Hemisphere) string {
	return filepath.Join(p.OutputDir, h.LongName())
}

// EnsureDirectories creates the output and logs directories
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.OutputDir,
		p.HemisphereOutputDir(timeseries.NorthernHemisphere),
		p.HemisphereOutputDir(timeseries.SouthernHemisphere),
		p.LogsDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
