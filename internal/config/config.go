package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging     LoggingConfig     `yaml:"logging" envconfig:"LOGGING"`
	Paths       PathsConfig       `yaml:"paths" envconfig:"PATHS"`
	Climatology ClimatologyConfig `yaml:"climatology" envconfig:"CLIMATOLOGY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/siicli.log"`
}

// PathsConfig contains file system paths configuration. Relative paths
// are resolved against the executable directory.
type PathsConfig struct {
	DataStoreDir string `yaml:"datastore_dir" envconfig:"DATASTORE_DIR" default:"datastore"`
	DailyCSV     string `yaml:"daily_csv" envconfig:"DAILY_CSV" default:"daily.csv"`
	MonthlyCSV   string `yaml:"monthly_csv" envconfig:"MONTHLY_CSV" default:"monthly.csv"`
	OutputDir    string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"output"`
	LogsDir      string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// ClimatologyConfig contains the statistical parameters of the standard
// reports: the climatological reference window, the rolling-average
// smoothing, and the quantile levels.
type ClimatologyConfig struct {
	StartYear    int       `yaml:"start_year" envconfig:"START_YEAR" default:"1981"`
	EndYear      int       `yaml:"end_year" envconfig:"END_YEAR" default:"2010"`
	NDayAverage  int       `yaml:"nday_average" envconfig:"NDAY_AVERAGE" default:"5"`
	MinValidDays int       `yaml:"min_valid_days" envconfig:"MIN_VALID_DAYS" default:"2"`
	Quantiles    []float64 `yaml:"quantiles" envconfig:"QUANTILES" default:"0.25,0.5,0.75"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("SII", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Format == "" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}

	if envConfig.Paths.DataStoreDir == "" {
		envConfig.Paths.DataStoreDir = fileConfig.Paths.DataStoreDir
	}
	if envConfig.Paths.DailyCSV == "" {
		envConfig.Paths.DailyCSV = fileConfig.Paths.DailyCSV
	}
	if envConfig.Paths.MonthlyCSV == "" {
		envConfig.Paths.MonthlyCSV = fileConfig.Paths.MonthlyCSV
	}
	if envConfig.Paths.OutputDir == "" {
		envConfig.Paths.OutputDir = fileConfig.Paths.OutputDir
	}
	if envConfig.Paths.LogsDir == "" {
		envConfig.Paths.LogsDir = fileConfig.Paths.LogsDir
	}

	if envConfig.Climatology.StartYear == 0 {
		envConfig.Climatology.StartYear = fileConfig.Climatology.StartYear
	}
	if envConfig.Climatology.EndYear == 0 {
		envConfig.Climatology.EndYear = fileConfig.Climatology.EndYear
	}
	if envConfig.Climatology.NDayAverage == 0 {
		envConfig.Climatology.NDayAverage = fileConfig.Climatology.NDayAverage
	}
	if envConfig.Climatology.MinValidDays == 0 {
		envConfig.Climatology.MinValidDays = fileConfig.Climatology.MinValidDays
	}
	if len(envConfig.Climatology.Quantiles) == 0 {
		envConfig.Climatology.Quantiles = fileConfig.Climatology.Quantiles
	}

	return envConfig
}

// validate validates the configuration
func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %q", c.Logging.Level)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid logging format: %q", c.Logging.Format)
	}

	if c.Climatology.StartYear <= 0 || c.Climatology.EndYear < c.Climatology.StartYear {
		return fmt.Errorf("invalid climatology years: %d-%d",
			c.Climatology.StartYear, c.Climatology.EndYear)
	}

	if c.Climatology.NDayAverage <= 0 {
		return fmt.Errorf("n-day average window must be positive, got %d", c.Climatology.NDayAverage)
	}
	if c.Climatology.MinValidDays <= 0 || c.Climatology.MinValidDays > c.Climatology.NDayAverage {
		return fmt.Errorf("min valid days must be in 1-%d, got %d",
			c.Climatology.NDayAverage, c.Climatology.MinValidDays)
	}

	for _, q := range c.Climatology.Quantiles {
		if q < 0 || q > 1 {
			return fmt.Errorf("quantile level out of range: %v", q)
		}
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/siicli.log",
		},
		Paths: PathsConfig{
			DataStoreDir: "datastore",
			DailyCSV:     "daily.csv",
			MonthlyCSV:   "monthly.csv",
			OutputDir:    "output",
			LogsDir:      "logs",
		},
		Climatology: ClimatologyConfig{
			StartYear:    1981,
			EndYear:      2010,
			NDayAverage:  5,
			MinValidDays: 2,
			Quantiles:    []float64{0.25, 0.5, 0.75},
		},
	}
}
