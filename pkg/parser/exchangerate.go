// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/valutatrade-hub/valutatrade/pkg/config"
	"github.com/valutatrade-hub/valutatrade/pkg/errors"
)

// mockAPIKey is the placeholder key that keeps the source in offline mode.
const mockAPIKey = "MOCK_KEY_FOR_NOW"

// fallbackRates are approximate USD-per-unit fiat rates used when the
// provider is unreachable, so the cache never goes completely dark.
var fallbackRates = map[string]float64{
	"EUR": 1.0870,
	"GBP": 1.2658,
	"RUB": 0.0105,
	"JPY": 0.0067,
	"CHF": 1.1364,
}

// ExchangeRate fetches fiat rates from ExchangeRate-API. Without an API key
// it serves static offline rates.
type ExchangeRate struct {
	url        string
	apiKey     string
	fiats      []string
	maxRetries int
	retryDelay time.Duration
	client     *http.Client
	log        zerolog.Logger
}

// NewExchangeRate builds an ExchangeRate-API source from the parser
// configuration.
func NewExchangeRate(cfg *config.Config, log zerolog.Logger) *ExchangeRate {
	return &ExchangeRate{
		url:        cfg.Parser.ExchangeRateURL,
		apiKey:     cfg.Parser.ExchangeRateAPIKey,
		fiats:      cfg.Parser.FiatCurrencies,
		maxRetries: cfg.API.MaxRetries,
		retryDelay: cfg.RetryDelay(),
		client:     &http.Client{Timeout: cfg.RequestTimeout()},
		log:        log,
	}
}

// Name implements Source.
func (e *ExchangeRate) Name() string { return "ExchangeRate-API" }

// Offline reports whether the source runs without a real API key.
func (e *ExchangeRate) Offline() bool {
	return e.apiKey == "" || e.apiKey == mockAPIKey
}

// Fetch implements Source. Offline mode and persistent provider failures
// both fall back to static rates so fiat pairs stay available.
func (e *ExchangeRate) Fetch(ctx context.Context) (map[string]Quote, error) {
	if e.Offline() {
		e.log.Debug().Msg("ExchangeRate-API key not set, serving offline rates")
		return e.staticQuotes("exchangerate-api (mock)"), nil
	}

	var lastErr error
	attempts := e.maxRetries
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		quotes, err := e.fetchOnce(ctx)
		if err == nil {
			return quotes, nil
		}
		lastErr = err
		e.log.Warn().Err(err).Int("attempt", attempt).Msg("ExchangeRate-API request failed")
		if attempt < attempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(e.retryDelay):
			}
		}
	}

	e.log.Error().Err(lastErr).Msg("ExchangeRate-API unreachable, serving fallback rates")
	return e.staticQuotes("exchangerate-api (fallback)"), nil
}

// exchangeRateResponse is the v6 latest-rates payload. Conversion rates are
// USD-per-unit inverted from the provider's unit-per-USD representation.
type exchangeRateResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

func (e *ExchangeRate) fetchOnce(ctx context.Context) (map[string]Quote, error) {
	url := strings.ReplaceAll(e.url, "{key}", e.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.APIRequest("failed to build ExchangeRate-API request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, errors.APIRequest("ExchangeRate-API request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.RateLimitExceeded("ExchangeRate-API")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.APIRequest(fmt.Sprintf("ExchangeRate-API returned status %d", resp.StatusCode), nil)
	}

	var payload exchangeRateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.APIRequest("failed to decode ExchangeRate-API response", err)
	}
	if payload.Result != "success" {
		return nil, errors.APIRequest(fmt.Sprintf("ExchangeRate-API error: %s", payload.ErrorType), nil)
	}

	// The provider reports units of currency per USD; invert so every quote
	// is USD per unit, matching the CUR_USD pair convention.
	now := time.Now()
	quotes := make(map[string]Quote, len(e.fiats))
	for _, code := range e.fiats {
		perUSD, ok := payload.ConversionRates[code]
		if !ok || perUSD <= 0 {
			e.log.Warn().Str("currency", code).Msg("ExchangeRate-API response missing rate")
			continue
		}
		quotes[code] = Quote{Rate: 1 / perUSD, UpdatedAt: now, Source: "exchangerate-api"}
	}
	if len(quotes) == 0 {
		return nil, errors.APIRequest("ExchangeRate-API response contained no usable rates", nil)
	}
	return quotes, nil
}

func (e *ExchangeRate) staticQuotes(source string) map[string]Quote {
	now := time.Now()
	quotes := make(map[string]Quote, len(e.fiats))
	for _, code := range e.fiats {
		rate, ok := fallbackRates[code]
		if !ok {
			continue
		}
		quotes[code] = Quote{Rate: rate, UpdatedAt: now, Source: source}
	}
	return quotes
}
