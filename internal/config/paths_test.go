package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siicli/internal/timeseries"
)

func TestResolvePathsFrom(t *testing.T) {
	base := filepath.Join("/opt", "siicli")
	paths := resolvePathsFrom(base, Default().Paths)

	assert.Equal(t, base, paths.BaseDir)
	assert.Equal(t, filepath.Join(base, "datastore"), paths.DataStoreDir)
	assert.Equal(t, filepath.Join(base, "datastore", "daily.csv"), paths.DailyCSV)
	assert.Equal(t, filepath.Join(base, "datastore", "monthly.csv"), paths.MonthlyCSV)
	assert.Equal(t, filepath.Join(base, "output"), paths.OutputDir)
	assert.Equal(t, filepath.Join(base, "logs"), paths.LogsDir)
}

func TestResolvePathsFromKeepsAbsolute(t *testing.T) {
	cfg := Default().Paths
	cfg.DataStoreDir = filepath.Join("/share", "seaice", "datastore")

	paths := resolvePathsFrom(filepath.Join("/opt", "siicli"), cfg)
	assert.Equal(t, cfg.DataStoreDir, paths.DataStoreDir)
	assert.Equal(t, filepath.Join(cfg.DataStoreDir, "daily.csv"), paths.DailyCSV)
}

func TestHemisphereOutputDir(t *testing.T) {
	paths := resolvePathsFrom("/opt/siicli", Default().Paths)

	north := paths.HemisphereOutputDir(timeseries.NorthernHemisphere)
	south := paths.HemisphereOutputDir(timeseries.SouthernHemisphere)
	assert.Equal(t, filepath.Join(paths.OutputDir, "north"), north)
	assert.Equal(t, filepath.Join(paths.OutputDir, "south"), south)
}

func TestEnsureDirectories(t *testing.T) {
	cfg := Default().Paths
	paths := resolvePathsFrom(t.TempDir(), cfg)

	require.NoError(t, paths.EnsureDirectories())
	assert.DirExists(t, paths.OutputDir)
	assert.DirExists(t, paths.HemisphereOutputDir(timeseries.NorthernHemisphere))
	assert.DirExists(t, paths.HemisphereOutputDir(timeseries.SouthernHemisphere))
	assert.DirExists(t, paths.LogsDir)
}
