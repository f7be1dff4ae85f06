// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package parser fetches exchange rates from external providers and
// maintains the rates cache document and the per-currency rate history.
package parser

import (
	"context"
	"time"
)

// Quote is one fetched rate against the base currency.
type Quote struct {
	Rate      float64
	UpdatedAt time.Time
	Source    string
	RawID     string
}

// Source fetches quotes from one external provider. Fetch returns a map of
// currency code to quote; codes are uppercase tickers.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (map[string]Quote, error)
}
