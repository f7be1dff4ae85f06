// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valutatrade-hub/valutatrade/pkg/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, "ValutaTrade Hub", cfg.App.Name)
	assert.Equal(t, "data", cfg.Database.Path)
	assert.Equal(t, "users.json", cfg.Database.UsersFile)
	assert.Equal(t, "USD", cfg.Trading.DefaultBaseCurrency)
	assert.Equal(t, 0.001, cfg.Trading.CommissionRate)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 300*time.Second, cfg.UpdateInterval())
	assert.Equal(t, "bitcoin", cfg.Parser.CryptoCurrencies["BTC"])
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	configContent := `
app:
  name: Test Hub
  debug: true

database:
  path: /tmp/vt-data

trading:
  commission_rate: 0.01
  min_trade_amount: 0.5

api:
  rates_cache_duration_minutes: 30

logging:
  level: debug
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	cfg, err := config.Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "Test Hub", cfg.App.Name)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, "/tmp/vt-data", cfg.Database.Path)
	assert.Equal(t, 0.01, cfg.Trading.CommissionRate)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL())

	// Unset fields fall back to defaults.
	assert.Equal(t, "users.json", cfg.Database.UsersFile)
	assert.Equal(t, "USD", cfg.Trading.DefaultBaseCurrency)
	assert.Equal(t, 3, cfg.API.MaxRetries)
}

// Legacy deployments wrote config.json, sometimes with comments. The loader
// must still accept it.
func TestLoadLegacyJSONWithComments(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	configContent := `{
  // base currency used when show-portfolio has no --base flag
  "trading": {
    "default_base_currency": "EUR",
    "commission_rate": 0.002,
    "min_trade_amount": 0.001
  },
  "logging": {"level": "warn"}
}`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	cfg, err := config.Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "EUR", cfg.Trading.DefaultBaseCurrency)
	assert.Equal(t, 0.002, cfg.Trading.CommissionRate)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VALUTATRADE_DATA_DIR", "/srv/valutatrade")
	t.Setenv("VALUTATRADE_LOG_LEVEL", "error")
	t.Setenv("EXCHANGERATE_API_KEY", "k-123")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("database:\n  path: data\n"), 0o644))

	cfg, err := config.Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "/srv/valutatrade", cfg.Database.Path)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "k-123", cfg.Parser.ExchangeRateAPIKey)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Trading.CommissionRate = 1.5
	assert.Error(t, cfg.Validate())

	cfg = config.DefaultConfig()
	cfg.Logging.Level = "loud"
	assert.Error(t, cfg.Validate())

	cfg = config.DefaultConfig()
	cfg.Trading.MinTradeAmount = -1
	assert.Error(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPaths(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, filepath.Join("data", "users.json"), cfg.UsersPath())
	assert.Equal(t, filepath.Join("data", "portfolios.json"), cfg.PortfoliosPath())
	assert.Equal(t, filepath.Join("data", "rates.json"), cfg.RatesPath())
	assert.Equal(t, filepath.Join("data", "session.json"), cfg.SessionPath())
}
