// Package cache implements the bounded, explicitly owned derived-feature
// cache called for in spec §5 ("bounded caches (input-to-feature arrays)
// have a configured upper size; on overflow the cache is cleared
// wholesale") and spec §9 Design Notes ("module-level caches keyed by
// object identity/hash -> replace with explicitly owned bounded caches
// with deterministic eviction").
package cache

import "sync"

// BoundedCache stores derived float64 slices (e.g. complement-coded
// patterns) keyed by a caller-chosen string. It has no LRU or TTL policy:
// once Len reaches the configured max, the next Put clears the whole
// cache before inserting, per the spec's "clear-on-overflow" contract.
type BoundedCache struct {
	mu   sync.Mutex
	max  int
	data map[string][]float64
}

// New creates a cache bounded at max entries. max<=0 disables bounding
// (the cache never auto-clears).
func New(max int) *BoundedCache {
	return &BoundedCache{max: max, data: make(map[string][]float64)}
}

// Get returns the cached value for key, if present.
func (c *BoundedCache) Get(key string) ([]float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

// Put stores value under key, clearing the entire cache first if it is
// already at capacity and key is not already present.
func (c *BoundedCache) Put(key string, value []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.data[key]; !exists && c.max > 0 && len(c.data) >= c.max {
		c.data = make(map[string][]float64)
	}
	c.data[key] = value
}

// Len returns the current entry count.
func (c *BoundedCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Clear empties the cache.
func (c *BoundedCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]float64)
}
