package core

import (
	"sync"
	"time"
)

// Cache is a process-wide, key-addressed, TTL-based cache of computed response
// payloads. It is a pure optimization: entries are only ever a recomputation
// away, so callers must treat a miss (or any anomaly) as "compute it yourself".
//
// Expired entries are not evicted; they are treated as absent until overwritten
// or explicitly invalidated. The map is unbounded; the key space is a handful
// of resource families plus small parameterized sets (test IDs, user emails).
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry

	now func() time.Time // injectable for tests
}

type cacheEntry struct {
	payload  interface{}
	storedAt time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the payload stored for key and true if the entry exists and is
// still within its TTL.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.storedAt) >= c.ttl {
		return nil, false
	}
	return entry.payload, true
}

// Set stores payload for key, unconditionally replacing any prior entry.
func (c *Cache) Set(key string, payload interface{}) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{payload: payload, storedAt: c.now()}
	c.mu.Unlock()
}

// Invalidate removes the entry for key if present. The return value says
// whether anything was removed; it is informational only.
func (c *Cache) Invalidate(key string) bool {
	c.mu.Lock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	c.mu.Unlock()
	return ok
}

// Flush drops all entries.
func (c *Cache) Flush() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// SetClock replaces the cache's time source. Tests use this to expire entries
// without sleeping.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}
