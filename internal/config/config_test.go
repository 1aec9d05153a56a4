package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siicli/internal/timeseries"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.validate())

	assert.Equal(t, 1981, cfg.Climatology.StartYear)
	assert.Equal(t, 2010, cfg.Climatology.EndYear)
	assert.Equal(t, 5, cfg.Climatology.NDayAverage)
	assert.Equal(t, 2, cfg.Climatology.MinValidDays)
	assert.Equal(t, []float64{0.25, 0.5, 0.75}, cfg.Climatology.Quantiles)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad logging level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging level",
		},
		{
			name:    "bad logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format",
		},
		{
			name:    "reversed climatology years",
			mutate:  func(c *Config) { c.Climatology.StartYear = 2010; c.Climatology.EndYear = 1981 },
			wantErr: "invalid climatology years",
		},
		{
			name:    "zero smoothing window",
			mutate:  func(c *Config) { c.Climatology.NDayAverage = 0 },
			wantErr: "window must be positive",
		},
		{
			name:    "min valid exceeds window",
			mutate:  func(c *Config) { c.Climatology.MinValidDays = 6 },
			wantErr: "min valid days",
		},
		{
			name:    "quantile out of range",
			mutate:  func(c *Config) { c.Climatology.Quantiles = []float64{0.5, 1.5} },
			wantErr: "quantile level out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeConfigsEnvWins(t *testing.T) {
	fileCfg := *Default()
	fileCfg.Logging.Level = "debug"
	fileCfg.Climatology.StartYear = 1979
	fileCfg.Climatology.EndYear = 2000

	envCfg := Config{}
	envCfg.Logging.Level = "warn"

	merged := mergeConfigs(fileCfg, envCfg)
	assert.Equal(t, "warn", merged.Logging.Level, "env value wins")
	assert.Equal(t, "json", merged.Logging.Format, "unset env falls back to file")
	assert.Equal(t, 1979, merged.Climatology.StartYear)
	assert.Equal(t, 2000, merged.Climatology.EndYear)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
logging:
  level: debug
  format: text
climatology:
  start_year: 1979
  end_year: 1998
  quantiles: [0.1, 0.9]
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := loadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 1979, cfg.Climatology.StartYear)
	assert.Equal(t, 1998, cfg.Climatology.EndYear)
	assert.Equal(t, []float64{0.1, 0.9}, cfg.Climatology.Quantiles)
}

func TestLoadFromFileRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: ["), 0o644))

	_, err := loadFromFile(path)
	require.Error(t, err)
}

func TestNewConstants(t *testing.T) {
	consts, err := NewConstants(Default().Climatology)
	require.NoError(t, err)

	assert.Equal(t, timeseries.YearRange{Start: 1981, End: 2010}, consts.ClimatologyYears)
	assert.Equal(t, 5, consts.NDayAverage)
	assert.Equal(t, 2, consts.MinValidDays)
	assert.Equal(t, []float64{0.25, 0.5, 0.75}, consts.Quantiles)
	assert.Len(t, consts.Seasons, 4)
	assert.Equal(t, Season{time.December, time.January, time.February}, consts.Seasons["winter"])
}

func TestNewConstantsDefaultsQuantiles(t *testing.T) {
	cfg := Default().Climatology
	cfg.Quantiles = nil

	consts, err := NewConstants(cfg)
	require.NoError(t, err)
	assert.Equal(t, timeseries.DefaultQuantiles(), consts.Quantiles)
}

func TestValidateSeasons(t *testing.T) {
	require.NoError(t, ValidateSeasons(DefaultSeasons()))

	bad := map[string]Season{
		"gappy": {time.March, time.May, time.June},
	}
	err := ValidateSeasons(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonconsecutive")
}

func TestSeasonContains(t *testing.T) {
	winter := DefaultSeasons()["winter"]
	assert.True(t, winter.Contains(time.December))
	assert.True(t, winter.Contains(time.January))
	assert.False(t, winter.Contains(time.March))
}
