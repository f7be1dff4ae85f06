package output_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valutatrade-hub/valutatrade/pkg/output"
	"github.com/valutatrade-hub/valutatrade/pkg/portfolio"
	"github.com/valutatrade-hub/valutatrade/pkg/rates"
)

func TestAmount(t *testing.T) {
	assert.Equal(t, "0.0000", output.Amount(0))
	assert.Equal(t, "1234.5000", output.Amount(1234.5))
	assert.Equal(t, "0.00000150", output.Amount(0.0000015))
}

func TestPortfolioTable(t *testing.T) {
	s := &portfolio.Summary{
		Username:     "alice",
		BaseCurrency: "USD",
		Positions: []portfolio.Position{
			{CurrencyCode: "BTC", Balance: 0.5, Rate: 60000, Value: 30000, RateKnown: true},
			{CurrencyCode: "LTC", Balance: 2},
		},
		TotalValue: 30000,
	}

	var buf bytes.Buffer
	output.PortfolioTable(&buf, s)
	out := buf.String()

	assert.Contains(t, out, "Portfolio of alice (base: USD)")
	assert.Contains(t, out, "BTC")
	assert.Contains(t, out, "30000.0000")
	assert.Contains(t, out, "-", "positions without a rate show a dash")
	assert.Contains(t, out, "Total: 30000.0000 USD")
}

func TestRatesTable(t *testing.T) {
	doc := &rates.Document{
		Pairs: map[string]rates.Pair{
			"BTC_USD": {Rate: 59337.21, UpdatedAt: "2026-08-23T10:00:00Z", Source: "coingecko"},
			"EUR_USD": {Rate: 1.087, UpdatedAt: "2026-08-23T10:00:00Z"},
		},
		Source:      "parser-service",
		LastRefresh: "2026-08-23T10:00:00Z",
	}

	var buf bytes.Buffer
	output.RatesTable(&buf, doc)
	out := buf.String()

	assert.Contains(t, out, "BTC_USD")
	assert.Contains(t, out, "coingecko")
	assert.Contains(t, out, "parser-service", "pair without a source inherits the document source")
	assert.Contains(t, out, "Last refresh: 2026-08-23T10:00:00Z")
}
