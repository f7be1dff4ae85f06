package currency

import (
	"fmt"
	"sync"

	"github.com/valutatrade-hub/valutatrade/pkg/errors"
)

var (
	registryOnce sync.Once
	registryMu   sync.RWMutex
	registry     map[string]Currency
)

func initRegistry() {
	registry = make(map[string]Currency)

	mustFiat := func(name, code, country string) {
		c, err := NewFiat(name, code, country)
		if err != nil {
			panic(err)
		}
		registry[c.Code] = c
	}
	mustCrypto := func(name, code, algo string, mcap float64) {
		c, err := NewCrypto(name, code, algo, mcap)
		if err != nil {
			panic(err)
		}
		registry[c.Code] = c
	}

	mustFiat("US Dollar", "USD", "United States")
	mustFiat("Euro", "EUR", "Eurozone")
	mustFiat("Russian Ruble", "RUB", "Russia")
	mustFiat("British Pound", "GBP", "United Kingdom")
	mustFiat("Japanese Yen", "JPY", "Japan")
	mustFiat("Swiss Franc", "CHF", "Switzerland")

	mustCrypto("Bitcoin", "BTC", "SHA-256", 1.12e12)
	mustCrypto("Ethereum", "ETH", "Ethash", 4.5e11)
	mustCrypto("Litecoin", "LTC", "Scrypt", 6.5e9)
	mustCrypto("Ripple", "XRP", "XRP Ledger Consensus", 3.0e10)
	mustCrypto("Cardano", "ADA", "Ouroboros", 1.5e10)
	mustCrypto("Solana", "SOL", "Proof of History", 8.0e10)
	mustCrypto("Polkadot", "DOT", "NPoS", 1.0e10)
}

// Get returns the currency registered under code (case-insensitive).
func Get(code string) (Currency, error) {
	registryOnce.Do(initRegistry)

	normalized, err := NormalizeCode(code)
	if err != nil {
		return Currency{}, errors.CurrencyNotFound(code)
	}

	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := registry[normalized]
	if !ok {
		return Currency{}, errors.CurrencyNotFound(normalized)
	}
	return c, nil
}

// All returns a copy of the registry keyed by code.
func All() map[string]Currency {
	registryOnce.Do(initRegistry)

	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make(map[string]Currency, len(registry))
	for code, c := range registry {
		out[code] = c
	}
	return out
}

// Register adds a new currency. Registering an existing code is an error.
func Register(c Currency) error {
	registryOnce.Do(initRegistry)

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[c.Code]; exists {
		return errors.ValidationError(fmt.Sprintf("currency '%s' is already registered", c.Code))
	}
	registry[c.Code] = c
	return nil
}
