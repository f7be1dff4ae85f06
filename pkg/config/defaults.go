// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package config

import "path/filepath"

// DefaultConfig returns the default configuration.
// These values are used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "ValutaTrade Hub",
			Version: "1.0.0",
		},
		Database: DefaultDatabaseConfig(),
		Logging: LoggingConfig{
			Level:     "info",
			Directory: "logs",
		},
		Trading: DefaultTradingConfig(),
		API: APIConfig{
			RatesCacheDurationMinutes: 5,
			MaxRetries:                3,
			TimeoutSeconds:            10,
		},
		Parser: DefaultParserConfig(),
	}
}

// DefaultDatabaseConfig returns the default document store layout.
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Path:           "data",
		UsersFile:      "users.json",
		PortfoliosFile: "portfolios.json",
		RatesFile:      "rates.json",
		SessionFile:    "session.json",
		BackupEnabled:  true,
		BackupDir:      "backups",
	}
}

// DefaultTradingConfig returns the default trading rules.
func DefaultTradingConfig() TradingConfig {
	return TradingConfig{
		DefaultBaseCurrency: "USD",
		CommissionRate:      0.001, // 0.1%
		MinTradeAmount:      0.0001,
	}
}

// DefaultParserConfig returns the default parser-service settings.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		UpdateIntervalSeconds: 300,
		RetryDelaySeconds:     2,
		ExchangeRatesFile:     filepath.Join("data", "exchange_rates.json"),
		HistoryLimit:          100,
		BaseCurrency:          "USD",
		FiatCurrencies:        []string{"EUR", "GBP", "RUB", "JPY", "CHF"},
		CryptoCurrencies: map[string]string{
			"BTC": "bitcoin",
			"ETH": "ethereum",
			"LTC": "litecoin",
			"XRP": "ripple",
			"ADA": "cardano",
			"SOL": "solana",
			"DOT": "polkadot",
		},
		CoinGeckoURL:    "https://api.coingecko.com/api/v3/simple/price",
		ExchangeRateURL: "https://v6.exchangerate-api.com/v6/{key}/latest/USD",
	}
}

// applyDefaults fills in zero values on a loaded config so partial files work.
func applyDefaults(cfg *Config) {
	def := DefaultConfig()

	if cfg.App.Name == "" {
		cfg.App.Name = def.App.Name
	}
	if cfg.App.Version == "" {
		cfg.App.Version = def.App.Version
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = def.Database.Path
	}
	if cfg.Database.UsersFile == "" {
		cfg.Database.UsersFile = def.Database.UsersFile
	}
	if cfg.Database.PortfoliosFile == "" {
		cfg.Database.PortfoliosFile = def.Database.PortfoliosFile
	}
	if cfg.Database.RatesFile == "" {
		cfg.Database.RatesFile = def.Database.RatesFile
	}
	if cfg.Database.SessionFile == "" {
		cfg.Database.SessionFile = def.Database.SessionFile
	}
	if cfg.Database.BackupDir == "" {
		cfg.Database.BackupDir = def.Database.BackupDir
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.Directory == "" {
		cfg.Logging.Directory = def.Logging.Directory
	}

	if cfg.Trading.DefaultBaseCurrency == "" {
		cfg.Trading.DefaultBaseCurrency = def.Trading.DefaultBaseCurrency
	}
	if cfg.Trading.MinTradeAmount == 0 {
		cfg.Trading.MinTradeAmount = def.Trading.MinTradeAmount
	}

	if cfg.API.RatesCacheDurationMinutes == 0 {
		cfg.API.RatesCacheDurationMinutes = def.API.RatesCacheDurationMinutes
	}
	if cfg.API.MaxRetries == 0 {
		cfg.API.MaxRetries = def.API.MaxRetries
	}
	if cfg.API.TimeoutSeconds == 0 {
		cfg.API.TimeoutSeconds = def.API.TimeoutSeconds
	}

	if cfg.Parser.UpdateIntervalSeconds == 0 {
		cfg.Parser.UpdateIntervalSeconds = def.Parser.UpdateIntervalSeconds
	}
	if cfg.Parser.RetryDelaySeconds == 0 {
		cfg.Parser.RetryDelaySeconds = def.Parser.RetryDelaySeconds
	}
	if cfg.Parser.ExchangeRatesFile == "" {
		cfg.Parser.ExchangeRatesFile = def.Parser.ExchangeRatesFile
	}
	if cfg.Parser.HistoryLimit == 0 {
		cfg.Parser.HistoryLimit = def.Parser.HistoryLimit
	}
	if cfg.Parser.BaseCurrency == "" {
		cfg.Parser.BaseCurrency = def.Parser.BaseCurrency
	}
	if len(cfg.Parser.FiatCurrencies) == 0 {
		cfg.Parser.FiatCurrencies = def.Parser.FiatCurrencies
	}
	if len(cfg.Parser.CryptoCurrencies) == 0 {
		cfg.Parser.CryptoCurrencies = def.Parser.CryptoCurrencies
	}
	if cfg.Parser.CoinGeckoURL == "" {
		cfg.Parser.CoinGeckoURL = def.Parser.CoinGeckoURL
	}
	if cfg.Parser.ExchangeRateURL == "" {
		cfg.Parser.ExchangeRateURL = def.Parser.ExchangeRateURL
	}
}
