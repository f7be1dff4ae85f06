package parser_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valutatrade-hub/valutatrade/pkg/parser"
	"github.com/valutatrade-hub/valutatrade/pkg/storage"
)

func TestHistoryAppendAndLatest(t *testing.T) {
	cfg := testConfig(t)
	store := storage.New(cfg, zerolog.Nop())
	h, err := parser.NewHistory(cfg, store, zerolog.Nop())
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, h.Append("USD", map[string]parser.Quote{
		"BTC": {Rate: 59000, UpdatedAt: now, Source: "coingecko"},
		"EUR": {Rate: 1.09, UpdatedAt: now, Source: "exchangerate-api"},
	}))

	rec, ok := h.Latest("BTC")
	require.True(t, ok)
	assert.Equal(t, 59000.0, rec.Rate)
	assert.Equal(t, "BTC", rec.FromCurrency)
	assert.Equal(t, "USD", rec.ToCurrency)
	assert.NotEmpty(t, rec.ID)

	_, ok = h.Latest("LTC")
	assert.False(t, ok)

	assert.Equal(t, []string{"BTC", "EUR"}, h.Currencies())
}

func TestHistoryCapsRecords(t *testing.T) {
	cfg := testConfig(t)
	cfg.Parser.HistoryLimit = 5
	store := storage.New(cfg, zerolog.Nop())
	h, err := parser.NewHistory(cfg, store, zerolog.Nop())
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		require.NoError(t, h.Append("USD", map[string]parser.Quote{
			"BTC": {Rate: float64(50000 + i), UpdatedAt: time.Now()},
		}))
	}

	records := h.Records("BTC", 0)
	require.Len(t, records, 5)
	// Oldest entries were dropped, newest kept.
	assert.Equal(t, 50003.0, records[0].Rate)
	assert.Equal(t, 50007.0, records[4].Rate)
}

func TestHistoryRecordsLimit(t *testing.T) {
	cfg := testConfig(t)
	store := storage.New(cfg, zerolog.Nop())
	h, err := parser.NewHistory(cfg, store, zerolog.Nop())
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		require.NoError(t, h.Append("USD", map[string]parser.Quote{
			"EUR": {Rate: 1.0 + float64(i)/100, UpdatedAt: time.Now()},
		}))
	}

	records := h.Records("EUR", 2)
	require.Len(t, records, 2)
	assert.InDelta(t, 1.03, records[1].Rate, 1e-9)
}

func TestHistoryPersists(t *testing.T) {
	cfg := testConfig(t)
	store := storage.New(cfg, zerolog.Nop())

	h1, err := parser.NewHistory(cfg, store, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, h1.Append("USD", map[string]parser.Quote{
		"BTC": {Rate: 61000, UpdatedAt: time.Now(), Source: "coingecko"},
	}))

	h2, err := parser.NewHistory(cfg, store, zerolog.Nop())
	require.NoError(t, err)
	rec, ok := h2.Latest("BTC")
	require.True(t, ok)
	assert.Equal(t, 61000.0, rec.Rate)
}
