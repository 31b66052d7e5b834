// Package config provides configuration management for the journal
// application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Journal JournalConfig `mapstructure:"journal"`
	Sizing  SizingConfig  `mapstructure:"sizing"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
}

// JournalConfig holds journal storage configuration.
type JournalConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// SizingConfig holds the defaults for the position size calculator.
type SizingConfig struct {
	AccountBalance float64 `mapstructure:"account_balance"`
	RiskPercent    float64 `mapstructure:"risk_percent"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// UIConfig holds output-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
	TimeFormat   string `mapstructure:"time_format"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/tradejournal"
	}
	return filepath.Join(home, ".config", "tradejournal")
}

// Default returns the built-in configuration.
func Default() *Config {
	dir := DefaultConfigDir()
	return &Config{
		Journal: JournalConfig{
			DBPath: filepath.Join(dir, "journal.db"),
		},
		Sizing: SizingConfig{
			AccountBalance: 10000,
			RiskPercent:    1,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Console:    false,
			File:       true,
			FilePath:   filepath.Join(dir, "logs", "journal.log"),
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     30,
		},
		UI: UIConfig{
			ColorEnabled: true,
			DateFormat:   "2006-01-02",
			TimeFormat:   "15:04",
		},
	}
}

// Load loads configuration from the specified directory. If configDir is
// empty, the default config directory is used. A missing config file is not
// an error: a template is written and the defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := writeTemplate(configDir); err != nil {
				return nil, fmt.Errorf("writing config template: %w", err)
			}
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config.toml: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRADEJOURNAL_DB_PATH"); v != "" {
		cfg.Journal.DBPath = v
	}
	if v := os.Getenv("TRADEJOURNAL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TRADEJOURNAL_ACCOUNT_BALANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Sizing.AccountBalance = f
		}
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path must not be empty")
	}
	if c.Sizing.RiskPercent < 0 || c.Sizing.RiskPercent > 100 {
		return fmt.Errorf("sizing.risk_percent must be between 0 and 100, got %v", c.Sizing.RiskPercent)
	}
	if c.Sizing.AccountBalance < 0 {
		return fmt.Errorf("sizing.account_balance must not be negative, got %v", c.Sizing.AccountBalance)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q not recognized", c.Logging.Level)
	}
	return nil
}

const configTemplate = `# tradejournal configuration

[journal]
# db_path = "~/.config/tradejournal/journal.db"

[sizing]
account_balance = 10000.0
risk_percent = 1.0

[logging]
level = "info"
console = false
file = true
max_size = 50
max_backups = 5
max_age = 30

[ui]
color_enabled = true
date_format = "2006-01-02"
time_format = "15:04"
`

// writeTemplate writes a commented template config on first run.
func writeTemplate(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}
