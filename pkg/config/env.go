// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/valutatrade-hub/valutatrade/pkg/errors"
)

// envOverrides are environment-variable settings that take priority over
// file-based configuration. EXCHANGERATE_API_KEY is the one variable the
// rate parser reads for its fiat source; the rest are optional knobs.
type envOverrides struct {
	DataDir            string `env:"VALUTATRADE_DATA_DIR"`
	LogLevel           string `env:"VALUTATRADE_LOG_LEVEL"`
	LogDir             string `env:"VALUTATRADE_LOG_DIR"`
	CacheMinutes       int    `env:"VALUTATRADE_RATES_TTL_MINUTES"`
	ExchangeRateAPIKey string `env:"EXCHANGERATE_API_KEY"`
	Debug              bool   `env:"VALUTATRADE_DEBUG"`
}

func applyEnvOverrides(cfg *Config) error {
	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return errors.ConfigError("failed to parse environment overrides", err)
	}

	if ov.DataDir != "" {
		cfg.Database.Path = ov.DataDir
	}
	if ov.LogLevel != "" {
		cfg.Logging.Level = ov.LogLevel
	}
	if ov.LogDir != "" {
		cfg.Logging.Directory = ov.LogDir
	}
	if ov.CacheMinutes > 0 {
		cfg.API.RatesCacheDurationMinutes = ov.CacheMinutes
	}
	if ov.ExchangeRateAPIKey != "" {
		cfg.Parser.ExchangeRateAPIKey = ov.ExchangeRateAPIKey
	}
	if ov.Debug {
		cfg.App.Debug = true
	}

	return nil
}
