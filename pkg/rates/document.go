// Package rates serves exchange rates from the cached pair document with
// TTL-based freshness, falling back to a parser-service update when stale.
package rates

import (
	"encoding/json"
	"strings"
	"time"
)

// Pair is one entry of the rates cache document.
type Pair struct {
	Rate      float64 `json:"rate"`
	UpdatedAt string  `json:"updated_at"`
	Source    string  `json:"source,omitempty"`
}

// Document is the rates cache file layout. Keys of Pairs are "FROM_TO",
// e.g. "BTC_USD".
type Document struct {
	Pairs       map[string]Pair `json:"pairs"`
	Source      string          `json:"source,omitempty"`
	LastRefresh string          `json:"last_refresh,omitempty"`
}

// NewDocument returns an empty pair document.
func NewDocument() *Document {
	return &Document{Pairs: make(map[string]Pair)}
}

// PairKey builds the document key for a currency pair.
func PairKey(from, to string) string {
	return from + "_" + to
}

// convertLegacy upgrades the historical flat document layout, where pair
// keys lived at the top level next to "source" and "last_refresh", into the
// current Pairs form.
func convertLegacy(raw map[string]json.RawMessage) *Document {
	doc := NewDocument()

	if v, ok := raw["source"]; ok {
		_ = json.Unmarshal(v, &doc.Source)
	}
	if v, ok := raw["last_refresh"]; ok {
		_ = json.Unmarshal(v, &doc.LastRefresh)
	}

	for key, v := range raw {
		if key == "source" || key == "last_refresh" {
			continue
		}
		var p Pair
		if err := json.Unmarshal(v, &p); err != nil {
			continue
		}
		if p.Source == "" {
			p.Source = doc.Source
		}
		doc.Pairs[key] = p
	}

	return doc
}

// parseTimestamp accepts the timestamp shapes that have appeared in rates
// documents over time: RFC3339 with or without fractional seconds, and naive
// ISO timestamps with an optional trailing "Z".
func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}

	trimmed := strings.TrimSuffix(s, "Z")
	if i := strings.IndexByte(trimmed, '.'); i >= 0 {
		trimmed = trimmed[:i]
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", trimmed, time.Local); err == nil {
		return t, true
	}

	return time.Time{}, false
}
