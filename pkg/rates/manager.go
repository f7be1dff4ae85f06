package rates

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/valutatrade-hub/valutatrade/pkg/config"
	"github.com/valutatrade-hub/valutatrade/pkg/currency"
	"github.com/valutatrade-hub/valutatrade/pkg/errors"
	"github.com/valutatrade-hub/valutatrade/pkg/storage"
)

// Rate is a resolved exchange rate.
type Rate struct {
	From      string
	To        string
	Value     float64
	UpdatedAt time.Time
	Source    string
}

// UpdateFunc refreshes the rates document on disk. The manager calls it when
// a lookup misses the TTL window; cmd wires it to the parser-service updater.
type UpdateFunc func(ctx context.Context) error

// CacheInfo describes the state of the rates document.
type CacheInfo struct {
	PairCount      int
	LastRefresh    time.Time
	HasRefresh     bool
	Fresh          bool
	TTL            time.Duration
	AvailablePairs []string
}

// Manager answers rate lookups against the cached pair document.
type Manager struct {
	cfg    *config.Config
	store  *storage.Store
	log    zerolog.Logger
	doc    *Document
	cache  *Cache
	ttl    time.Duration
	update UpdateFunc
}

// NewManager loads the rates document (converting legacy layouts) and
// prepares the in-memory cache.
func NewManager(cfg *config.Config, store *storage.Store, log zerolog.Logger) (*Manager, error) {
	m := &Manager{
		cfg:   cfg,
		store: store,
		log:   log,
		cache: NewCache(),
		ttl:   cfg.CacheTTL(),
	}
	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// SetUpdateFunc installs the refresh hook.
func (m *Manager) SetUpdateFunc(fn UpdateFunc) {
	m.update = fn
}

// Reload re-reads the rates document from disk and drops the memory cache.
func (m *Manager) Reload() error {
	var raw map[string]json.RawMessage
	found, err := m.store.Load(m.cfg.RatesPath(), &raw)
	if err != nil {
		return errors.StorageError("failed to load rates document", err)
	}
	if !found {
		m.doc = NewDocument()
		m.cache.Clear()
		return nil
	}

	if _, hasPairs := raw["pairs"]; hasPairs {
		var doc Document
		data, _ := json.Marshal(raw)
		if err := json.Unmarshal(data, &doc); err != nil {
			return errors.StorageError("failed to parse rates document", err)
		}
		if doc.Pairs == nil {
			doc.Pairs = make(map[string]Pair)
		}
		m.doc = &doc
	} else {
		// Legacy flat layout: upgrade it and persist the converted form.
		m.doc = convertLegacy(raw)
		if err := m.store.Save(m.cfg.RatesPath(), m.doc); err != nil {
			m.log.Warn().Err(err).Msg("failed to persist converted rates document")
		} else {
			m.log.Info().Int("pairs", len(m.doc.Pairs)).Msg("legacy rates document converted")
		}
	}

	m.cache.Clear()
	return nil
}

// GetRate resolves from→to. Both currencies must be registered. Rates are
// stored against the base currency (X_USD), so cross rates are triangulated
// through it. A stale document triggers the update hook once.
func (m *Manager) GetRate(ctx context.Context, from, to string) (Rate, error) {
	fromCur, err := currency.Get(from)
	if err != nil {
		return Rate{}, err
	}
	toCur, err := currency.Get(to)
	if err != nil {
		return Rate{}, err
	}
	from, to = fromCur.Code, toCur.Code

	if from == to {
		return Rate{From: from, To: to, Value: 1.0, UpdatedAt: time.Now(), Source: "identity"}, nil
	}

	key := PairKey(from, to)
	if r, ok := m.cache.Get(key); ok {
		return r, nil
	}

	r, err := m.resolve(from, to)
	if err == nil {
		m.cache.Set(key, r, m.ttl)
		return r, nil
	}
	if !errors.IsType(err, errors.ErrRate) {
		return Rate{}, err
	}

	// Pair missing or stale. If the whole document is fresh the pair simply
	// is not served by the upstream sources; updating again will not help.
	if m.documentFresh() {
		return Rate{}, errors.RateUnavailable(key)
	}

	if m.update == nil {
		return Rate{}, errors.APIRequest("rates are stale and no updater is configured", nil)
	}

	m.log.Info().Str("pair", key).Msg("rates cache stale, refreshing")
	if err := m.update(ctx); err != nil {
		return Rate{}, err
	}
	if err := m.Reload(); err != nil {
		return Rate{}, err
	}

	r, err = m.resolve(from, to)
	if err != nil {
		return Rate{}, errors.RateUnavailable(key)
	}
	m.cache.Set(key, r, m.ttl)
	return r, nil
}

// resolve looks the pair up in the document, triangulating through the base
// currency when there is no direct entry.
func (m *Manager) resolve(from, to string) (Rate, error) {
	if p, ok := m.freshPair(from, to); ok {
		updated, _ := parseTimestamp(p.UpdatedAt)
		return Rate{From: from, To: to, Value: p.Rate, UpdatedAt: updated, Source: p.Source}, nil
	}

	base := m.cfg.Parser.BaseCurrency
	if from != base && to != base {
		fromBase, okFrom := m.freshPair(from, base)
		toBase, okTo := m.freshPair(to, base)
		if okFrom && okTo && toBase.Rate != 0 {
			updated, _ := parseTimestamp(fromBase.UpdatedAt)
			if toUpdated, ok := parseTimestamp(toBase.UpdatedAt); ok && toUpdated.Before(updated) {
				updated = toUpdated
			}
			return Rate{
				From:      from,
				To:        to,
				Value:     fromBase.Rate / toBase.Rate,
				UpdatedAt: updated,
				Source:    fromBase.Source,
			}, nil
		}
	}

	// TO_base exists for base→X lookups as the inverse of X_base.
	if to != base && from == base {
		if p, ok := m.freshPair(to, base); ok && p.Rate != 0 {
			updated, _ := parseTimestamp(p.UpdatedAt)
			return Rate{From: from, To: to, Value: 1 / p.Rate, UpdatedAt: updated, Source: p.Source}, nil
		}
	}

	return Rate{}, errors.RateUnavailable(PairKey(from, to))
}

// freshPair returns the pair entry when present and within the TTL.
func (m *Manager) freshPair(from, to string) (Pair, bool) {
	p, ok := m.doc.Pairs[PairKey(from, to)]
	if !ok {
		return Pair{}, false
	}
	updated, ok := parseTimestamp(p.UpdatedAt)
	if !ok {
		m.log.Warn().Str("updated_at", p.UpdatedAt).Msg("unparseable rate timestamp")
		return Pair{}, false
	}
	if time.Since(updated) >= m.ttl {
		return Pair{}, false
	}
	return p, true
}

func (m *Manager) documentFresh() bool {
	t, ok := parseTimestamp(m.doc.LastRefresh)
	return ok && time.Since(t) < m.ttl
}

// Document returns the loaded pair document.
func (m *Manager) Document() *Document {
	return m.doc
}

// Info reports the cache state for the rates command.
func (m *Manager) Info() CacheInfo {
	info := CacheInfo{
		PairCount: len(m.doc.Pairs),
		TTL:       m.ttl,
	}
	for key := range m.doc.Pairs {
		info.AvailablePairs = append(info.AvailablePairs, key)
	}
	if t, ok := parseTimestamp(m.doc.LastRefresh); ok {
		info.LastRefresh = t
		info.HasRefresh = true
		info.Fresh = time.Since(t) < m.ttl
	}
	return info
}
