package parser_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valutatrade-hub/valutatrade/pkg/config"
	"github.com/valutatrade-hub/valutatrade/pkg/errors"
	"github.com/valutatrade-hub/valutatrade/pkg/parser"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	tmp := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(tmp, "data")
	cfg.Database.BackupDir = filepath.Join(tmp, "backups")
	cfg.Parser.ExchangeRatesFile = filepath.Join(tmp, "data", "exchange_rates.json")
	cfg.Parser.RetryDelaySeconds = 0
	return cfg
}

func TestCoinGeckoFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("ids"), "bitcoin")
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		fmt.Fprint(w, `{"bitcoin":{"usd":59337.21},"ethereum":{"usd":2630.5}}`)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Parser.CoinGeckoURL = srv.URL
	cfg.Parser.CryptoCurrencies = map[string]string{"BTC": "bitcoin", "ETH": "ethereum"}

	src := parser.NewCoinGecko(cfg, zerolog.Nop())
	quotes, err := src.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, quotes, 2)
	assert.Equal(t, 59337.21, quotes["BTC"].Rate)
	assert.Equal(t, "coingecko", quotes["BTC"].Source)
	assert.Equal(t, "bitcoin", quotes["BTC"].RawID)
}

func TestCoinGeckoRateLimitDoesNotRetry(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Parser.CoinGeckoURL = srv.URL

	src := parser.NewCoinGecko(cfg, zerolog.Nop())
	_, err := src.Fetch(context.Background())
	assert.True(t, errors.IsType(err, errors.ErrRateLimit))
	assert.Equal(t, 1, calls)
}

func TestCoinGeckoRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"bitcoin":{"usd":60000}}`)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Parser.CoinGeckoURL = srv.URL
	cfg.Parser.CryptoCurrencies = map[string]string{"BTC": "bitcoin"}

	src := parser.NewCoinGecko(cfg, zerolog.Nop())
	quotes, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 60000.0, quotes["BTC"].Rate)
}

func TestCoinGeckoExhaustsRetries(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Parser.CoinGeckoURL = srv.URL

	src := parser.NewCoinGecko(cfg, zerolog.Nop())
	_, err := src.Fetch(context.Background())
	assert.True(t, errors.IsType(err, errors.ErrAPI))
	assert.Equal(t, cfg.API.MaxRetries, calls)
}

func TestCoinGeckoIgnoresUnknownCoins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"bitcoin":{"usd":60000},"dogecoin":{"usd":0.1}}`)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Parser.CoinGeckoURL = srv.URL
	cfg.Parser.CryptoCurrencies = map[string]string{"BTC": "bitcoin"}

	src := parser.NewCoinGecko(cfg, zerolog.Nop())
	quotes, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, quotes, 1)
}
