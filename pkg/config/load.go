// Package config handles configuration loading and validation
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/valutatrade-hub/valutatrade/pkg/errors"
)

// Default config file names to search for, in priority order.
// config.json is the legacy format written by earlier deployments and may
// contain comments, so it goes through a JSONC pass before decoding.
var defaultConfigFiles = []string{
	"config.yaml",
	"config.yml",
	"config.json",
}

// Load loads configuration from a specific file path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to read config file: %s", path), err)
	}

	var cfg Config
	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return nil, errors.ConfigError(fmt.Sprintf("failed to parse config file: %s", path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.ConfigError(fmt.Sprintf("failed to parse config file: %s", path), err)
		}
	}

	applyDefaults(&cfg)
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigError("config validation failed", err)
	}

	return &cfg, nil
}

// LoadDefault searches for a config file in the current directory and falls
// back to defaults when none is present.
func LoadDefault() (*Config, error) {
	for _, filename := range defaultConfigFiles {
		if _, err := os.Stat(filename); err == nil {
			return Load(filename)
		}
	}

	cfg := DefaultConfig()
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigError("config validation failed", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Trading.CommissionRate < 0 || c.Trading.CommissionRate >= 1 {
		return fmt.Errorf("trading.commission_rate must be in [0, 1), got %v", c.Trading.CommissionRate)
	}
	if c.Trading.MinTradeAmount <= 0 {
		return fmt.Errorf("trading.min_trade_amount must be positive, got %v", c.Trading.MinTradeAmount)
	}
	if c.API.RatesCacheDurationMinutes < 0 {
		return fmt.Errorf("api.rates_cache_duration_minutes must not be negative")
	}
	if c.Parser.UpdateIntervalSeconds < 1 {
		return fmt.Errorf("parser.update_interval_seconds must be at least 1")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug/info/warn/error, got %q", c.Logging.Level)
	}
	return nil
}
