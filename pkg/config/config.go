// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package config provides configuration management for ValutaTrade Hub.
//
// Configuration Loading Order (later overrides earlier):
// 1. Defaults (hardcoded)
// 2. Config file: ./config.yaml (or legacy ./config.json)
// 3. Environment Variables: VALUTATRADE_*
package config

import (
	"path/filepath"
	"time"
)

// Config represents the complete application configuration.
type Config struct {
	App      AppConfig      `yaml:"app" json:"app"`
	Database DatabaseConfig `yaml:"database" json:"database"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
	Trading  TradingConfig  `yaml:"trading" json:"trading"`
	API      APIConfig      `yaml:"api" json:"api"`
	Parser   ParserConfig   `yaml:"parser" json:"parser"`
}

// AppConfig contains application identity settings.
type AppConfig struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
	Debug   bool   `yaml:"debug" json:"debug"`
}

// DatabaseConfig describes the JSON document store layout.
type DatabaseConfig struct {
	Path           string `yaml:"path" json:"path"`
	UsersFile      string `yaml:"users_file" json:"users_file"`
	PortfoliosFile string `yaml:"portfolios_file" json:"portfolios_file"`
	RatesFile      string `yaml:"rates_file" json:"rates_file"`
	SessionFile    string `yaml:"session_file" json:"session_file"`
	BackupEnabled  bool   `yaml:"backup_enabled" json:"backup_enabled"`
	BackupDir      string `yaml:"backup_dir" json:"backup_dir"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level"` // debug, info, warn, error
	Directory string `yaml:"directory" json:"directory"`
}

// TradingConfig contains trading rules.
type TradingConfig struct {
	DefaultBaseCurrency string  `yaml:"default_base_currency" json:"default_base_currency"`
	CommissionRate      float64 `yaml:"commission_rate" json:"commission_rate"`
	MinTradeAmount      float64 `yaml:"min_trade_amount" json:"min_trade_amount"`
}

// APIConfig contains settings for consuming cached rates.
type APIConfig struct {
	RatesCacheDurationMinutes int `yaml:"rates_cache_duration_minutes" json:"rates_cache_duration_minutes"`
	MaxRetries                int `yaml:"max_retries" json:"max_retries"`
	TimeoutSeconds            int `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// ParserConfig contains settings for the rate parser service.
type ParserConfig struct {
	UpdateIntervalSeconds int               `yaml:"update_interval_seconds" json:"update_interval_seconds"`
	RetryDelaySeconds     int               `yaml:"retry_delay_seconds" json:"retry_delay_seconds"`
	ExchangeRatesFile     string            `yaml:"exchange_rates_file" json:"exchange_rates_file"`
	HistoryLimit          int               `yaml:"history_limit" json:"history_limit"`
	BaseCurrency          string            `yaml:"base_currency" json:"base_currency"`
	FiatCurrencies        []string          `yaml:"fiat_currencies" json:"fiat_currencies"`
	CryptoCurrencies      map[string]string `yaml:"crypto_currencies" json:"crypto_currencies"` // ticker -> CoinGecko ID
	CoinGeckoURL          string            `yaml:"coingecko_url" json:"coingecko_url"`
	ExchangeRateURL       string            `yaml:"exchangerate_url" json:"exchangerate_url"` // {key} is replaced with the API key
	ExchangeRateAPIKey    string            `yaml:"-" json:"-"`                               // env only, never persisted
}

// CacheTTL returns the rates cache duration as a time.Duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.API.RatesCacheDurationMinutes) * time.Minute
}

// RequestTimeout returns the external API request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// UpdateInterval returns the scheduler update interval.
func (c *Config) UpdateInterval() time.Duration {
	return time.Duration(c.Parser.UpdateIntervalSeconds) * time.Second
}

// RetryDelay returns the delay between API retry attempts.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Parser.RetryDelaySeconds) * time.Second
}

// UsersPath returns the absolute-or-relative path of the users document.
func (c *Config) UsersPath() string {
	return filepath.Join(c.Database.Path, c.Database.UsersFile)
}

// PortfoliosPath returns the path of the portfolios document.
func (c *Config) PortfoliosPath() string {
	return filepath.Join(c.Database.Path, c.Database.PortfoliosFile)
}

// RatesPath returns the path of the rates cache document.
func (c *Config) RatesPath() string {
	return filepath.Join(c.Database.Path, c.Database.RatesFile)
}

// SessionPath returns the path of the persisted login session.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Database.Path, c.Database.SessionFile)
}

// HistoryPath returns the path of the exchange-rate history document.
func (c *Config) HistoryPath() string {
	return c.Parser.ExchangeRatesFile
}
