// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package parser

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/valutatrade-hub/valutatrade/pkg/config"
	"github.com/valutatrade-hub/valutatrade/pkg/errors"
	"github.com/valutatrade-hub/valutatrade/pkg/rates"
	"github.com/valutatrade-hub/valutatrade/pkg/storage"
)

// Status reports the updater's last run.
type Status struct {
	LastRun    time.Time
	LastError  string
	PairsSaved int
	Sources    []string
}

// Updater fans out to all configured sources, merges their quotes and
// rewrites the rates cache document and the rate history.
type Updater struct {
	cfg     *config.Config
	store   *storage.Store
	history *History
	sources []Source
	log     zerolog.Logger

	mu     sync.Mutex
	status Status
}

// NewUpdater wires an updater over the given sources.
func NewUpdater(cfg *config.Config, store *storage.Store, history *History, sources []Source, log zerolog.Logger) *Updater {
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Name())
	}
	return &Updater{
		cfg:     cfg,
		store:   store,
		history: history,
		sources: sources,
		log:     log,
		status:  Status{Sources: names},
	}
}

// Run performs one full update cycle. Sources are queried concurrently; a
// cycle succeeds when at least one source delivers quotes.
func (u *Updater) Run(ctx context.Context) error {
	err := u.run(ctx)

	u.mu.Lock()
	u.status.LastRun = time.Now()
	if err != nil {
		u.status.LastError = err.Error()
	} else {
		u.status.LastError = ""
	}
	u.mu.Unlock()

	return err
}

func (u *Updater) run(ctx context.Context) error {
	u.log.Info().Int("sources", len(u.sources)).Msg("rate update started")
	started := time.Now()

	type result struct {
		name   string
		quotes map[string]Quote
		err    error
	}

	results := make(chan result, len(u.sources))
	var wg sync.WaitGroup
	for _, src := range u.sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			quotes, err := src.Fetch(ctx)
			results <- result{name: src.Name(), quotes: quotes, err: err}
		}(src)
	}
	wg.Wait()
	close(results)

	merged := make(map[string]Quote)
	var failed []string
	for res := range results {
		if res.err != nil {
			u.log.Error().Str("source", res.name).Err(res.err).Msg("source fetch failed")
			failed = append(failed, res.name)
			continue
		}
		u.log.Info().Str("source", res.name).Int("quotes", len(res.quotes)).Msg("source fetch completed")
		for code, q := range res.quotes {
			merged[code] = q
		}
	}

	if len(merged) == 0 {
		return errors.APIRequest("all rate sources failed", nil)
	}

	base := u.cfg.Parser.BaseCurrency
	now := time.Now()
	doc := rates.NewDocument()
	doc.Source = "parser-service"
	doc.LastRefresh = now.Format(time.RFC3339Nano)
	doc.Pairs[rates.PairKey(base, base)] = rates.Pair{
		Rate:      1.0,
		UpdatedAt: now.Format(time.RFC3339Nano),
		Source:    "internal",
	}
	for code, q := range merged {
		doc.Pairs[rates.PairKey(code, base)] = rates.Pair{
			Rate:      q.Rate,
			UpdatedAt: q.UpdatedAt.Format(time.RFC3339Nano),
			Source:    q.Source,
		}
	}

	if err := u.store.Save(u.cfg.RatesPath(), doc); err != nil {
		return errors.StorageError("failed to save rates document", err)
	}
	if err := u.history.Append(base, merged); err != nil {
		return err
	}

	u.mu.Lock()
	u.status.PairsSaved = len(doc.Pairs)
	u.mu.Unlock()

	u.log.Info().
		Int("pairs", len(doc.Pairs)).
		Strs("failed_sources", failed).
		Dur("elapsed", time.Since(started)).
		Msg("rate update completed")
	return nil
}

// Status returns the last run outcome.
func (u *Updater) Status() Status {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.status
}
