// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/valutatrade-hub/valutatrade/pkg/config"
	"github.com/valutatrade-hub/valutatrade/pkg/errors"
)

// CoinGecko fetches crypto rates from the CoinGecko simple-price API.
type CoinGecko struct {
	baseURL    string
	coins      map[string]string // ticker -> CoinGecko ID
	base       string
	maxRetries int
	retryDelay time.Duration
	client     *http.Client
	log        zerolog.Logger
}

// NewCoinGecko builds a CoinGecko source from the parser configuration.
func NewCoinGecko(cfg *config.Config, log zerolog.Logger) *CoinGecko {
	return &CoinGecko{
		baseURL:    cfg.Parser.CoinGeckoURL,
		coins:      cfg.Parser.CryptoCurrencies,
		base:       strings.ToLower(cfg.Parser.BaseCurrency),
		maxRetries: cfg.API.MaxRetries,
		retryDelay: cfg.RetryDelay(),
		client:     &http.Client{Timeout: cfg.RequestTimeout()},
		log:        log,
	}
}

// Name implements Source.
func (c *CoinGecko) Name() string { return "CoinGecko" }

// Fetch implements Source. Rate-limit responses abort immediately; other
// failures are retried up to the configured attempt count.
func (c *CoinGecko) Fetch(ctx context.Context) (map[string]Quote, error) {
	if len(c.coins) == 0 {
		return map[string]Quote{}, nil
	}

	var lastErr error
	attempts := c.maxRetries
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		quotes, err := c.fetchOnce(ctx)
		if err == nil {
			return quotes, nil
		}
		if errors.IsType(err, errors.ErrRateLimit) {
			return nil, err
		}
		lastErr = err
		c.log.Warn().Err(err).Int("attempt", attempt).Msg("CoinGecko request failed")
		if attempt < attempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
	}
	return nil, lastErr
}

func (c *CoinGecko) fetchOnce(ctx context.Context) (map[string]Quote, error) {
	ids := make([]string, 0, len(c.coins))
	byID := make(map[string]string, len(c.coins))
	for ticker, id := range c.coins {
		ids = append(ids, id)
		byID[id] = ticker
	}
	sort.Strings(ids)

	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", c.base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.APIRequest("failed to build CoinGecko request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.APIRequest("CoinGecko request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.RateLimitExceeded("CoinGecko")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.APIRequest(fmt.Sprintf("CoinGecko returned status %d", resp.StatusCode), nil)
	}

	var payload map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.APIRequest("failed to decode CoinGecko response", err)
	}

	now := time.Now()
	quotes := make(map[string]Quote, len(payload))
	for id, prices := range payload {
		ticker, ok := byID[id]
		if !ok {
			continue
		}
		rate, ok := prices[c.base]
		if !ok || rate <= 0 {
			c.log.Warn().Str("coin", id).Msg("CoinGecko response missing price")
			continue
		}
		quotes[ticker] = Quote{Rate: rate, UpdatedAt: now, Source: "coingecko", RawID: id}
	}
	if len(quotes) == 0 {
		return nil, errors.APIRequest("CoinGecko response contained no usable prices", nil)
	}
	return quotes, nil
}
