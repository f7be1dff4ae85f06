// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package portfolio holds per-user currency wallets and the trading
// operations over them.
package portfolio

import (
	"github.com/valutatrade-hub/valutatrade/pkg/currency"
	"github.com/valutatrade-hub/valutatrade/pkg/errors"
)

// Wallet is a single-currency balance inside a portfolio.
type Wallet struct {
	CurrencyCode string  `json:"currency_code"`
	Balance      float64 `json:"balance"`
}

// NewWallet creates a wallet for a registered currency code.
func NewWallet(code string, balance float64) (*Wallet, error) {
	cur, err := currency.Get(code)
	if err != nil {
		return nil, err
	}
	if balance < 0 {
		return nil, errors.InvalidAmount("initial balance cannot be negative")
	}
	return &Wallet{CurrencyCode: cur.Code, Balance: balance}, nil
}

// Deposit adds a positive amount to the balance.
func (w *Wallet) Deposit(amount float64) error {
	if amount <= 0 {
		return errors.InvalidAmount("deposit amount must be positive")
	}
	w.Balance += amount
	return nil
}

// Withdraw removes a positive amount, failing when the balance is short.
func (w *Wallet) Withdraw(amount float64) error {
	if amount <= 0 {
		return errors.InvalidAmount("withdrawal amount must be positive")
	}
	if amount > w.Balance {
		return errors.InsufficientFunds(w.Balance, amount, w.CurrencyCode)
	}
	w.Balance -= amount
	return nil
}

// Portfolio is the set of wallets owned by one user.
type Portfolio struct {
	UserID  int                `json:"user_id"`
	Wallets map[string]*Wallet `json:"wallets"`
}

// NewPortfolio creates an empty portfolio for a user.
func NewPortfolio(userID int) *Portfolio {
	return &Portfolio{
		UserID:  userID,
		Wallets: make(map[string]*Wallet),
	}
}

// AddCurrency ensures a wallet exists for the code and returns it.
func (p *Portfolio) AddCurrency(code string) (*Wallet, error) {
	cur, err := currency.Get(code)
	if err != nil {
		return nil, err
	}
	if w, ok := p.Wallets[cur.Code]; ok {
		return w, nil
	}
	w := &Wallet{CurrencyCode: cur.Code}
	p.Wallets[cur.Code] = w
	return w, nil
}

// Wallet returns the wallet for a code, or nil when the portfolio has none.
func (p *Portfolio) Wallet(code string) *Wallet {
	cur, err := currency.Get(code)
	if err != nil {
		return nil
	}
	return p.Wallets[cur.Code]
}

// RateFunc converts a currency code into its rate against a base currency.
type RateFunc func(code, base string) (float64, error)

// TotalValue sums all wallet balances converted into base. Wallets whose
// rate cannot be resolved are skipped and reported back to the caller.
func (p *Portfolio) TotalValue(base string, rate RateFunc) (float64, []string) {
	var total float64
	var skipped []string
	for code, w := range p.Wallets {
		if w.Balance == 0 {
			continue
		}
		r, err := rate(code, base)
		if err != nil {
			skipped = append(skipped, code)
			continue
		}
		total += w.Balance * r
	}
	return total, skipped
}
