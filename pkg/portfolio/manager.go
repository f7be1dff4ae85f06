// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package portfolio

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/valutatrade-hub/valutatrade/pkg/config"
	"github.com/valutatrade-hub/valutatrade/pkg/errors"
	"github.com/valutatrade-hub/valutatrade/pkg/rates"
	"github.com/valutatrade-hub/valutatrade/pkg/storage"
	"github.com/valutatrade-hub/valutatrade/pkg/user"
)

// TradeResult reports the outcome of a buy or sell.
type TradeResult struct {
	Action       string
	CurrencyCode string
	Amount       float64
	Rate         float64
	Commission   float64
	BaseCurrency string
	BaseDelta    float64
	NewBalance   float64
	BaseBalance  float64
}

// Position is one wallet row of a portfolio summary.
type Position struct {
	CurrencyCode string
	Balance      float64
	Rate         float64
	Value        float64
	RateKnown    bool
}

// Summary is a portfolio valued in a base currency.
type Summary struct {
	UserID       int
	Username     string
	BaseCurrency string
	Positions    []Position
	TotalValue   float64
}

// Manager owns the portfolio collection and runs trades for the logged-in
// user.
type Manager struct {
	cfg        *config.Config
	store      *storage.Store
	users      *user.Manager
	rates      *rates.Manager
	log        zerolog.Logger
	portfolios map[int]*Portfolio
}

// NewManager loads all portfolios from disk.
func NewManager(cfg *config.Config, store *storage.Store, users *user.Manager, rm *rates.Manager, log zerolog.Logger) (*Manager, error) {
	m := &Manager{
		cfg:        cfg,
		store:      store,
		users:      users,
		rates:      rm,
		log:        log,
		portfolios: make(map[int]*Portfolio),
	}

	var stored []*Portfolio
	found, err := store.Load(cfg.PortfoliosPath(), &stored)
	if err != nil {
		return nil, errors.StorageError("failed to load portfolios", err)
	}
	if found {
		for _, p := range stored {
			if p.Wallets == nil {
				p.Wallets = make(map[string]*Wallet)
			}
			m.portfolios[p.UserID] = p
		}
	}
	return m, nil
}

// CreateForUser ensures a portfolio exists for the user. Registration calls
// it right after creating the account.
func (m *Manager) CreateForUser(userID int) (*Portfolio, error) {
	if p, ok := m.portfolios[userID]; ok {
		return p, nil
	}
	p := NewPortfolio(userID)
	m.portfolios[userID] = p
	if err := m.save(); err != nil {
		delete(m.portfolios, userID)
		return nil, err
	}
	m.log.Info().Int("user_id", userID).Msg("portfolio created")
	return p, nil
}

// ForUser returns the portfolio of a user, or nil when there is none.
func (m *Manager) ForUser(userID int) *Portfolio {
	return m.portfolios[userID]
}

// Current returns the logged-in user's portfolio, creating it when the
// account predates portfolio storage.
func (m *Manager) Current() (*user.User, *Portfolio, error) {
	u := m.users.Current()
	if u == nil {
		return nil, nil, errors.NotAuthenticated()
	}
	p, ok := m.portfolios[u.ID]
	if !ok {
		var err error
		p, err = m.CreateForUser(u.ID)
		if err != nil {
			return nil, nil, err
		}
	}
	return u, p, nil
}

// Buy purchases amount units of a currency, paying from the base-currency
// wallet at the current rate plus commission.
func (m *Manager) Buy(ctx context.Context, code string, amount float64) (*TradeResult, error) {
	u, p, err := m.Current()
	if err != nil {
		return nil, err
	}
	if err := m.checkAmount(amount); err != nil {
		return nil, err
	}

	base := m.cfg.Trading.DefaultBaseCurrency
	rate, err := m.rates.GetRate(ctx, code, base)
	if err != nil {
		return nil, err
	}

	target, err := p.AddCurrency(rate.From)
	if err != nil {
		return nil, err
	}
	baseWallet, err := p.AddCurrency(base)
	if err != nil {
		return nil, err
	}

	cost := amount * rate.Value
	commission := cost * m.cfg.Trading.CommissionRate
	total := cost + commission

	targetBefore, baseBefore := target.Balance, baseWallet.Balance
	if err := baseWallet.Withdraw(total); err != nil {
		return nil, err
	}
	if err := target.Deposit(amount); err != nil {
		baseWallet.Balance = baseBefore
		return nil, err
	}
	if err := m.save(); err != nil {
		target.Balance, baseWallet.Balance = targetBefore, baseBefore
		return nil, err
	}

	m.log.Info().
		Str("action", "BUY").
		Int("user_id", u.ID).
		Str("currency", rate.From).
		Float64("amount", amount).
		Float64("rate", rate.Value).
		Float64("commission", commission).
		Msg("trade executed")

	return &TradeResult{
		Action:       "BUY",
		CurrencyCode: rate.From,
		Amount:       amount,
		Rate:         rate.Value,
		Commission:   commission,
		BaseCurrency: base,
		BaseDelta:    -total,
		NewBalance:   target.Balance,
		BaseBalance:  baseWallet.Balance,
	}, nil
}

// Sell disposes of amount units of a currency, crediting the base-currency
// wallet at the current rate minus commission.
func (m *Manager) Sell(ctx context.Context, code string, amount float64) (*TradeResult, error) {
	u, p, err := m.Current()
	if err != nil {
		return nil, err
	}
	if err := m.checkAmount(amount); err != nil {
		return nil, err
	}

	base := m.cfg.Trading.DefaultBaseCurrency
	rate, err := m.rates.GetRate(ctx, code, base)
	if err != nil {
		return nil, err
	}

	target := p.Wallet(rate.From)
	if target == nil {
		return nil, errors.InsufficientFunds(0, amount, rate.From)
	}
	baseWallet, err := p.AddCurrency(base)
	if err != nil {
		return nil, err
	}

	proceeds := amount * rate.Value
	commission := proceeds * m.cfg.Trading.CommissionRate
	credit := proceeds - commission

	targetBefore, baseBefore := target.Balance, baseWallet.Balance
	if err := target.Withdraw(amount); err != nil {
		return nil, err
	}
	if err := baseWallet.Deposit(credit); err != nil {
		target.Balance = targetBefore
		return nil, err
	}
	if err := m.save(); err != nil {
		target.Balance, baseWallet.Balance = targetBefore, baseBefore
		return nil, err
	}

	m.log.Info().
		Str("action", "SELL").
		Int("user_id", u.ID).
		Str("currency", rate.From).
		Float64("amount", amount).
		Float64("rate", rate.Value).
		Float64("commission", commission).
		Msg("trade executed")

	return &TradeResult{
		Action:       "SELL",
		CurrencyCode: rate.From,
		Amount:       amount,
		Rate:         rate.Value,
		Commission:   commission,
		BaseCurrency: base,
		BaseDelta:    credit,
		NewBalance:   target.Balance,
		BaseBalance:  baseWallet.Balance,
	}, nil
}

// Deposit credits the logged-in user's wallet directly, without a trade.
func (m *Manager) Deposit(code string, amount float64) (*Wallet, error) {
	_, p, err := m.Current()
	if err != nil {
		return nil, err
	}
	w, err := p.AddCurrency(code)
	if err != nil {
		return nil, err
	}
	before := w.Balance
	if err := w.Deposit(amount); err != nil {
		return nil, err
	}
	if err := m.save(); err != nil {
		w.Balance = before
		return nil, err
	}
	return w, nil
}

// Show values the logged-in user's portfolio in the given base currency.
// An empty base falls back to the configured default.
func (m *Manager) Show(ctx context.Context, base string) (*Summary, error) {
	u, p, err := m.Current()
	if err != nil {
		return nil, err
	}
	if base == "" {
		base = m.cfg.Trading.DefaultBaseCurrency
	}
	baseCur, err := m.rates.GetRate(ctx, base, base)
	if err != nil {
		return nil, err
	}
	base = baseCur.From

	s := &Summary{
		UserID:       u.ID,
		Username:     u.Username,
		BaseCurrency: base,
	}

	codes := make([]string, 0, len(p.Wallets))
	for code := range p.Wallets {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		w := p.Wallets[code]
		pos := Position{CurrencyCode: code, Balance: w.Balance}
		if rate, err := m.rates.GetRate(ctx, code, base); err == nil {
			pos.Rate = rate.Value
			pos.Value = w.Balance * rate.Value
			pos.RateKnown = true
			s.TotalValue += pos.Value
		} else {
			m.log.Warn().Str("currency", code).Err(err).Msg("no rate for position")
		}
		s.Positions = append(s.Positions, pos)
	}
	return s, nil
}

func (m *Manager) checkAmount(amount float64) error {
	if amount <= 0 {
		return errors.InvalidAmount("amount must be positive")
	}
	if amount < m.cfg.Trading.MinTradeAmount {
		return errors.InvalidAmount("amount is below the minimum trade size")
	}
	return nil
}

func (m *Manager) save() error {
	stored := make([]*Portfolio, 0, len(m.portfolios))
	ids := make([]int, 0, len(m.portfolios))
	for id := range m.portfolios {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		stored = append(stored, m.portfolios[id])
	}
	if err := m.store.Save(m.cfg.PortfoliosPath(), stored); err != nil {
		return errors.StorageError("failed to save portfolios", err)
	}
	return nil
}
