// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package parser

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Scheduler runs the updater on a fixed interval until the context is
// cancelled.
type Scheduler struct {
	updater  *Updater
	interval time.Duration
	log      zerolog.Logger
}

// NewScheduler builds a scheduler over an updater.
func NewScheduler(updater *Updater, interval time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{updater: updater, interval: interval, log: log}
}

// Run performs an immediate update, then ticks at the configured interval.
// Failed cycles are logged and the next tick retries; Run only returns when
// ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Info().Dur("interval", s.interval).Msg("parser service started")

	if err := s.updater.Run(ctx); err != nil {
		s.log.Error().Err(err).Msg("update cycle failed")
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("parser service stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := s.updater.Run(ctx); err != nil {
				s.log.Error().Err(err).Msg("update cycle failed")
			}
		}
	}
}
