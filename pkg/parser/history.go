// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package parser

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/valutatrade-hub/valutatrade/pkg/config"
	"github.com/valutatrade-hub/valutatrade/pkg/errors"
	"github.com/valutatrade-hub/valutatrade/pkg/storage"
)

// Record is one historical rate observation.
type Record struct {
	ID           string    `json:"id"`
	FromCurrency string    `json:"from_currency"`
	ToCurrency   string    `json:"to_currency"`
	Rate         float64   `json:"rate"`
	Timestamp    time.Time `json:"timestamp"`
	Source       string    `json:"source,omitempty"`
}

// History stores rate observations per currency, capped to a fixed number of
// newest records each.
type History struct {
	cfg   *config.Config
	store *storage.Store
	log   zerolog.Logger
	limit int
	data  map[string][]Record
}

// NewHistory loads the history document from disk.
func NewHistory(cfg *config.Config, store *storage.Store, log zerolog.Logger) (*History, error) {
	h := &History{
		cfg:   cfg,
		store: store,
		log:   log,
		limit: cfg.Parser.HistoryLimit,
		data:  make(map[string][]Record),
	}
	if _, err := store.Load(cfg.HistoryPath(), &h.data); err != nil {
		return nil, errors.StorageError("failed to load rate history", err)
	}
	if h.data == nil {
		h.data = make(map[string][]Record)
	}
	return h, nil
}

// Append records a batch of quotes against the base currency and persists
// the trimmed history.
func (h *History) Append(base string, quotes map[string]Quote) error {
	codes := make([]string, 0, len(quotes))
	for code := range quotes {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		q := quotes[code]
		rec := Record{
			ID:           uuid.NewString(),
			FromCurrency: code,
			ToCurrency:   base,
			Rate:         q.Rate,
			Timestamp:    q.UpdatedAt,
			Source:       q.Source,
		}
		records := append(h.data[code], rec)
		if h.limit > 0 && len(records) > h.limit {
			records = records[len(records)-h.limit:]
		}
		h.data[code] = records
	}

	if err := h.store.Save(h.cfg.HistoryPath(), h.data); err != nil {
		return errors.StorageError("failed to save rate history", err)
	}
	return nil
}

// Latest returns the newest record for a currency.
func (h *History) Latest(code string) (Record, bool) {
	records := h.data[code]
	if len(records) == 0 {
		return Record{}, false
	}
	return records[len(records)-1], true
}

// Records returns up to limit newest records for a currency, oldest first.
// A non-positive limit returns everything.
func (h *History) Records(code string, limit int) []Record {
	records := h.data[code]
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

// Currencies lists the currencies with recorded history.
func (h *History) Currencies() []string {
	codes := make([]string, 0, len(h.data))
	for code := range h.data {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
