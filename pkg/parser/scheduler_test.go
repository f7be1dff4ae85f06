package parser_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valutatrade-hub/valutatrade/pkg/parser"
	"github.com/valutatrade-hub/valutatrade/pkg/storage"
)

func TestSchedulerRunsImmediatelyAndTicks(t *testing.T) {
	cfg := testConfig(t)
	store := storage.New(cfg, zerolog.Nop())
	history, err := parser.NewHistory(cfg, store, zerolog.Nop())
	require.NoError(t, err)

	src := &stubSource{name: "stub", quotes: map[string]parser.Quote{
		"EUR": {Rate: 1.09, UpdatedAt: time.Now()},
	}}
	u := parser.NewUpdater(cfg, store, history, []parser.Source{src}, zerolog.Nop())
	s := parser.NewScheduler(u, 20*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 70*time.Millisecond)
	defer cancel()

	err = s.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	// One immediate run plus at least one tick.
	assert.GreaterOrEqual(t, src.calls, 2)
}

func TestSchedulerStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	store := storage.New(cfg, zerolog.Nop())
	history, err := parser.NewHistory(cfg, store, zerolog.Nop())
	require.NoError(t, err)

	src := &stubSource{name: "stub", quotes: map[string]parser.Quote{
		"EUR": {Rate: 1.09, UpdatedAt: time.Now()},
	}}
	u := parser.NewUpdater(cfg, store, history, []parser.Source{src}, zerolog.Nop())
	s := parser.NewScheduler(u, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
	assert.Equal(t, 1, src.calls)
}
