// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/finance-ledger/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Supported persistence backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// EnvPrefix is prepended to every environment override, e.g. LEDGER_LOG_LEVEL
const EnvPrefix = "LEDGER"

// AppDirName is the per-user directory holding config.yaml and the default data
const AppDirName = ".finance-ledger"

// LogConfig selects logger verbosity and output format
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DataConfig locates the persisted book
type DataConfig struct {
	Directory     string `mapstructure:"directory" yaml:"directory"`
	Backend       string `mapstructure:"backend" yaml:"backend"`
	BackupEnabled bool   `mapstructure:"backup_enabled" yaml:"backup_enabled"`
}

// InsightsConfig tunes the derived views
type InsightsConfig struct {
	AlertThreshold float64 `mapstructure:"alert_threshold" yaml:"alert_threshold"`
	TrendMonths    int     `mapstructure:"trend_months" yaml:"trend_months"`
	TopCategories  int     `mapstructure:"top_categories" yaml:"top_categories"`
}

// ReportConfig sets the default output format of every command
type ReportConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig controls import and export files
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// Config represents the complete application configuration
type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Data     DataConfig     `mapstructure:"data" yaml:"data"`
	Insights InsightsConfig `mapstructure:"insights" yaml:"insights"`
	Report   ReportConfig   `mapstructure:"report" yaml:"report"`
	CSV      CSVConfig      `mapstructure:"csv" yaml:"csv"`
}

// Load builds the configuration from, in increasing precedence: defaults,
// a config file (configFile when set, otherwise config.yaml searched in
// $HOME/.finance-ledger, ./.finance-ledger and the working directory) and
// LEDGER_-prefixed environment variables.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join("$HOME", AppDirName))
		v.AddConfigPath(AppDirName)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// a broken file is reported but defaults and env vars still apply
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", "")
	v.SetDefault("data.backend", BackendFile)
	v.SetDefault("data.backup_enabled", true)

	v.SetDefault("insights.alert_threshold", 0.8)
	v.SetDefault("insights.trend_months", 6)
	v.SetDefault("insights.top_categories", 5)

	v.SetDefault("report.format", "text")

	v.SetDefault("csv.delimiter", ",")
}

// Validate checks the configuration again, e.g. after command-line overrides
func (c *Config) Validate() error {
	if err := validateConfig(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch config.Data.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("invalid data backend: %s (must be 'file', 'sqlite' or 'memory')", config.Data.Backend)
	}

	if config.Data.Directory != "" {
		if err := validation.IsValidDataDirectory(config.Data.Directory); err != nil {
			return fmt.Errorf("invalid data directory: %w", err)
		}
	}

	if config.Insights.AlertThreshold <= 0.0 || config.Insights.AlertThreshold > 1.0 {
		return fmt.Errorf("insights.alert_threshold must be in (0.0, 1.0], got: %f", config.Insights.AlertThreshold)
	}

	if config.Insights.TrendMonths < 1 || config.Insights.TrendMonths > 120 {
		return fmt.Errorf("insights.trend_months must be between 1 and 120, got: %d", config.Insights.TrendMonths)
	}

	if config.Insights.TopCategories < 1 {
		return fmt.Errorf("insights.top_categories must be at least 1, got: %d", config.Insights.TopCategories)
	}

	if err := validation.IsValidOutputFormat(config.Report.Format); err != nil {
		return fmt.Errorf("invalid report format: %w", err)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	return nil
}

// DataDirectory returns the configured data directory, falling back to
// $HOME/.finance-ledger when none is set.
func (c *Config) DataDirectory() (string, error) {
	if c.Data.Directory != "" {
		return c.Data.Directory, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, AppDirName), nil
}

// Delimiter returns the CSV delimiter as a rune
func (c *Config) Delimiter() rune {
	if c.CSV.Delimiter == "" {
		return ','
	}
	return []rune(c.CSV.Delimiter)[0]
}
