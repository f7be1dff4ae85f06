// Package errors provides typed errors for ValutaTrade Hub
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrConfig indicates a configuration error
	ErrConfig ErrorType = iota
	// ErrValidation indicates an input validation error
	ErrValidation
	// ErrCurrency indicates an unknown or invalid currency
	ErrCurrency
	// ErrFunds indicates insufficient funds for an operation
	ErrFunds
	// ErrAmount indicates an invalid trade amount
	ErrAmount
	// ErrAuth indicates a missing or invalid login session
	ErrAuth
	// ErrAPI indicates an external rate API error
	ErrAPI
	// ErrRateLimit indicates an external API rate limit was hit
	ErrRateLimit
	// ErrRate indicates a rate is unavailable in the cache
	ErrRate
	// ErrStorage indicates a data persistence error
	ErrStorage
)

// TradeError is the base error type for all valutatrade errors
type TradeError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error returns the error message
func (e *TradeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", errorTypeString(e.Type), e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", errorTypeString(e.Type), e.Message)
}

// Unwrap returns the underlying cause
func (e *TradeError) Unwrap() error {
	return e.Cause
}

// New creates a new TradeError
func New(errType ErrorType, message string, cause error) *TradeError {
	return &TradeError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context to the error
func (e *TradeError) WithContext(key string, value interface{}) *TradeError {
	e.Context[key] = value
	return e
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	var tradeErr *TradeError
	if err == nil {
		return false
	}
	if errors.As(err, &tradeErr) {
		return tradeErr.Type == errType
	}
	return false
}

// IsRetryable returns true if the error is transient and retryable
func IsRetryable(err error) bool {
	var tradeErr *TradeError
	if !errors.As(err, &tradeErr) {
		return false
	}

	switch tradeErr.Type {
	case ErrAPI, ErrRateLimit:
		return true
	default:
		return false
	}
}

func errorTypeString(et ErrorType) string {
	switch et {
	case ErrConfig:
		return "CONFIG"
	case ErrValidation:
		return "VALIDATION"
	case ErrCurrency:
		return "CURRENCY"
	case ErrFunds:
		return "FUNDS"
	case ErrAmount:
		return "AMOUNT"
	case ErrAuth:
		return "AUTH"
	case ErrAPI:
		return "API"
	case ErrRateLimit:
		return "RATE_LIMIT"
	case ErrRate:
		return "RATE"
	case ErrStorage:
		return "STORAGE"
	default:
		return "UNKNOWN"
	}
}

// Convenience functions for common errors

// ConfigError creates a configuration error
func ConfigError(message string, cause error) *TradeError {
	return New(ErrConfig, message, cause)
}

// ValidationError creates an input validation error
func ValidationError(message string) *TradeError {
	return New(ErrValidation, message, nil)
}

// CurrencyNotFound creates an unknown-currency error
func CurrencyNotFound(code string) *TradeError {
	return New(ErrCurrency, fmt.Sprintf("unknown currency '%s'", code), nil).
		WithContext("code", code)
}

// InsufficientFunds creates an insufficient-funds error carrying the
// available and required amounts for the named currency.
func InsufficientFunds(available, required float64, code string) *TradeError {
	msg := fmt.Sprintf("insufficient funds: available %.4f %s, required %.4f %s",
		available, code, required, code)
	return New(ErrFunds, msg, nil).
		WithContext("available", available).
		WithContext("required", required).
		WithContext("code", code)
}

// InvalidAmount creates an invalid-amount error
func InvalidAmount(message string) *TradeError {
	return New(ErrAmount, message, nil)
}

// NotAuthenticated creates a missing-session error
func NotAuthenticated() *TradeError {
	return New(ErrAuth, "not logged in: run 'login' first", nil)
}

// APIRequest creates an external API error
func APIRequest(reason string, cause error) *TradeError {
	return New(ErrAPI, fmt.Sprintf("external API request failed: %s", reason), cause)
}

// RateLimitExceeded creates a rate-limit error for the named source
func RateLimitExceeded(source string) *TradeError {
	return New(ErrRateLimit, fmt.Sprintf("rate limit exceeded for %s", source), nil).
		WithContext("source", source)
}

// RateUnavailable creates an error for a pair missing from the cache
func RateUnavailable(pair string) *TradeError {
	return New(ErrRate, fmt.Sprintf("rate %s is unavailable", pair), nil).
		WithContext("pair", pair)
}

// StorageError creates a persistence error
func StorageError(message string, cause error) *TradeError {
	return New(ErrStorage, message, cause)
}
