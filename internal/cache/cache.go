// Package cache is an explicitly owned in-process cache for decoded
// listing records and owner lookups. Nothing here is ambient: the caller
// constructs it, injects it, and decides when entries die — either directly
// via Invalidate or by running the event-driven Invalidator.
package cache

import "sync"

type Cache struct {
	mu      sync.RWMutex
	entries map[string]any
}

func New() *Cache {
	return &Cache{entries: map[string]any{}}
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *Cache) Set(key string, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = val
}

func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]any{}
}

// ObjectKey names the cache entry for a stored listing record.
func ObjectKey(id string) string { return "object:" + id }
