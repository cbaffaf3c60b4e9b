package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Data struct {
		Dir string `yaml:"dir"`
	} `yaml:"data"`
	DataSource struct {
		Symbols  []string `yaml:"symbols"`
		Interval string   `yaml:"interval"`
	} `yaml:"data_source"`
	Schedule struct {
		UpdateCron string `yaml:"update_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	MACD struct {
		Field      string `yaml:"field"`
		FastSpan   int    `yaml:"fast_span"`
		SlowSpan   int    `yaml:"slow_span"`
		SignalSpan int    `yaml:"signal_span"`
	} `yaml:"macd"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("UPDATE_CRON"); v != "" {
		cfg.Schedule.UpdateCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if cfg.DataSource.Interval == "" {
		cfg.DataSource.Interval = "1d"
	}
	if cfg.Schedule.UpdateCron == "" {
		// Weekdays at 22:30, after the close.
		cfg.Schedule.UpdateCron = "0 30 22 * * 1-5"
	}
	if cfg.MACD.Field == "" {
		cfg.MACD.Field = "Close"
	}
	if cfg.MACD.FastSpan == 0 {
		cfg.MACD.FastSpan = 12
	}
	if cfg.MACD.SlowSpan == 0 {
		cfg.MACD.SlowSpan = 26
	}
	if cfg.MACD.SignalSpan == 0 {
		cfg.MACD.SignalSpan = 9
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.DataSource.Symbols) == 0 {
		return fmt.Errorf("data_source.symbols must list at least one symbol")
	}
	if c.MACD.FastSpan >= c.MACD.SlowSpan {
		return fmt.Errorf("macd.fast_span must be less than macd.slow_span")
	}
	return nil
}
