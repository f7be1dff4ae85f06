package parser_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valutatrade-hub/valutatrade/pkg/parser"
)

func TestExchangeRateOfflineMode(t *testing.T) {
	cfg := testConfig(t)
	cfg.Parser.ExchangeRateAPIKey = ""

	src := parser.NewExchangeRate(cfg, zerolog.Nop())
	assert.True(t, src.Offline())

	quotes, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, quotes)
	assert.Equal(t, "exchangerate-api (mock)", quotes["EUR"].Source)
	assert.Greater(t, quotes["EUR"].Rate, 1.0, "EUR is worth more than a dollar")
	assert.Less(t, quotes["JPY"].Rate, 1.0)
}

func TestExchangeRatePlaceholderKeyIsOffline(t *testing.T) {
	cfg := testConfig(t)
	cfg.Parser.ExchangeRateAPIKey = "MOCK_KEY_FOR_NOW"

	src := parser.NewExchangeRate(cfg, zerolog.Nop())
	assert.True(t, src.Offline())
}

func TestExchangeRateFetchInvertsRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "real-key")
		fmt.Fprint(w, `{"result":"success","conversion_rates":{"USD":1,"EUR":0.92,"GBP":0.79,"RUB":95.0,"JPY":150.0,"CHF":0.88}}`)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Parser.ExchangeRateURL = srv.URL + "/v6/{key}/latest/USD"
	cfg.Parser.ExchangeRateAPIKey = "real-key"

	src := parser.NewExchangeRate(cfg, zerolog.Nop())
	assert.False(t, src.Offline())

	quotes, err := src.Fetch(context.Background())
	require.NoError(t, err)

	// 0.92 EUR per USD means one EUR is 1/0.92 USD.
	assert.InDelta(t, 1/0.92, quotes["EUR"].Rate, 1e-9)
	assert.InDelta(t, 1/95.0, quotes["RUB"].Rate, 1e-9)
	assert.Equal(t, "exchangerate-api", quotes["EUR"].Source)
}

func TestExchangeRateProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":"error","error-type":"invalid-key"}`)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Parser.ExchangeRateURL = srv.URL + "/v6/{key}/latest/USD"
	cfg.Parser.ExchangeRateAPIKey = "bad-key"

	src := parser.NewExchangeRate(cfg, zerolog.Nop())
	quotes, err := src.Fetch(context.Background())

	// Persistent failures degrade to fallback rates instead of erroring.
	require.NoError(t, err)
	require.NotEmpty(t, quotes)
	assert.Equal(t, "exchangerate-api (fallback)", quotes["EUR"].Source)
}

func TestExchangeRateUnreachableFallsBack(t *testing.T) {
	cfg := testConfig(t)
	cfg.Parser.ExchangeRateURL = "http://127.0.0.1:1/v6/{key}/latest/USD"
	cfg.Parser.ExchangeRateAPIKey = "real-key"
	cfg.API.MaxRetries = 1

	src := parser.NewExchangeRate(cfg, zerolog.Nop())
	quotes, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "exchangerate-api (fallback)", quotes["GBP"].Source)
}
