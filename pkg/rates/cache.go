// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package rates

import (
	"sync"
	"time"
)

// entry is a cached rate with its expiry.
type entry struct {
	rate      Rate
	expiresAt time.Time
}

// Cache is an in-memory TTL cache for resolved rates, so repeated lookups in
// one process do not re-read and re-parse the rates document.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*entry
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		items: make(map[string]*entry),
	}
}

// Get retrieves a rate, reporting false when absent or expired.
func (c *Cache) Get(key string) (Rate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[key]
	if !ok || time.Now().After(e.expiresAt) {
		return Rate{}, false
	}
	return e.rate, true
}

// Set stores a rate with the given TTL.
func (c *Cache) Set(key string, rate Rate, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &entry{
		rate:      rate,
		expiresAt: time.Now().Add(ttl),
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entry)
}
