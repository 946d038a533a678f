// Package pricing resolves (cloud, sku, region) triples into price quotes
// through an ordered source cascade with TTL caching. The cache is the
// only mutable state shared across concurrent analysis requests.
package pricing

import (
	"sync"
	"time"

	"finopsguard/core/types"
)

type cacheEntry struct {
	quote     *types.PriceQuote
	expiresAt time.Time
}

// Cache is a concurrency-safe quote cache with per-entry TTL.
// Entries expire lazily on the next lookup past their deadline;
// Flush clears everything at once.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return newCacheWithClock(time.Now)
}

func newCacheWithClock(now func() time.Time) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		now:     now,
	}
}

// Get returns a live entry, deleting it if expired
func (c *Cache) Get(key string) (*types.PriceQuote, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.quote, true
}

// Set stores a quote with the given TTL.
// Last writer wins; entries are idempotent within their TTL window.
func (c *Cache) Set(key string, quote *types.PriceQuote, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		quote:     quote,
		expiresAt: c.now().Add(ttl),
	}
}

// Flush removes all entries
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

// Size returns the number of cached entries, expired or not
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
