// Package currency defines the currencies ValutaTrade Hub can trade and the
// registry used to look them up by code.
package currency

import (
	"fmt"
	"strings"

	"github.com/valutatrade-hub/valutatrade/pkg/errors"
)

// Kind distinguishes fiat currencies from cryptocurrencies.
type Kind int

const (
	// KindFiat is a state-issued currency identified by its ISO code.
	KindFiat Kind = iota
	// KindCrypto is a cryptocurrency identified by its ticker.
	KindCrypto
)

// Currency describes a tradable currency. IssuingCountry is set for fiat
// currencies; Algorithm and MarketCap for cryptocurrencies.
type Currency struct {
	Name           string
	Code           string
	Kind           Kind
	IssuingCountry string
	Algorithm      string
	MarketCap      float64
}

// NewFiat creates a fiat currency after validating its fields.
func NewFiat(name, code, issuingCountry string) (Currency, error) {
	if err := validateName(name); err != nil {
		return Currency{}, err
	}
	normalized, err := NormalizeCode(code)
	if err != nil {
		return Currency{}, err
	}
	if strings.TrimSpace(issuingCountry) == "" {
		return Currency{}, errors.ValidationError("issuing country must not be empty")
	}
	return Currency{
		Name:           name,
		Code:           normalized,
		Kind:           KindFiat,
		IssuingCountry: strings.TrimSpace(issuingCountry),
	}, nil
}

// NewCrypto creates a cryptocurrency after validating its fields.
func NewCrypto(name, code, algorithm string, marketCap float64) (Currency, error) {
	if err := validateName(name); err != nil {
		return Currency{}, err
	}
	normalized, err := NormalizeCode(code)
	if err != nil {
		return Currency{}, err
	}
	if strings.TrimSpace(algorithm) == "" {
		return Currency{}, errors.ValidationError("algorithm must not be empty")
	}
	if marketCap < 0 {
		return Currency{}, errors.ValidationError("market cap must not be negative")
	}
	return Currency{
		Name:      name,
		Code:      normalized,
		Kind:      KindCrypto,
		Algorithm: strings.TrimSpace(algorithm),
		MarketCap: marketCap,
	}, nil
}

// DisplayInfo returns the formatted one-line description used by the CLI.
func (c Currency) DisplayInfo() string {
	if c.Kind == KindFiat {
		return fmt.Sprintf("[FIAT] %s — %s (Issuing: %s)", c.Code, c.Name, c.IssuingCountry)
	}
	mcap := fmt.Sprintf("%.2f", c.MarketCap)
	if c.MarketCap >= 1e6 {
		mcap = fmt.Sprintf("%.2e", c.MarketCap)
	}
	return fmt.Sprintf("[CRYPTO] %s — %s (Algo: %s, MCAP: %s)", c.Code, c.Name, c.Algorithm, mcap)
}

// String implements fmt.Stringer.
func (c Currency) String() string {
	return fmt.Sprintf("%s - %s", c.Code, c.Name)
}

// NormalizeCode uppercases and validates a currency code: 2-5 alphanumeric
// characters with no spaces.
func NormalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 2 || len(code) > 5 {
		return "", errors.ValidationError("currency code must be 2-5 characters")
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", errors.ValidationError("currency code must be alphanumeric")
		}
	}
	return code, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.ValidationError("currency name must not be empty")
	}
	return nil
}
