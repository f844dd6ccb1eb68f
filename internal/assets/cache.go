package assets

import (
	"fmt"
	"sync"
)

// Cache keeps generated parts so a viewer can step back through earlier
// seeds without rebuilding. It owns its meshes: Set stores copies and Get
// hands out copies.
type Cache struct {
	data map[string][]Part
	keys []string
	max  int
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a cache holding at most max entries. The oldest entry
// is released when the cache is full. max <= 0 means unbounded.
func NewCache(max int) *Cache {
	return &Cache{
		data: make(map[string][]Part),
		max:  max,
	}
}

// SeedKey names the parts of asset drawn with seed.
func SeedKey(asset string, seed uint64) string {
	return fmt.Sprintf("%s#%d", asset, seed)
}

func cloneParts(parts []Part) []Part {
	out := make([]Part, len(parts))
	for i, p := range parts {
		out[i] = Part{Name: p.Name, Mesh: p.Mesh.Clone()}
	}
	return out
}

func releaseParts(parts []Part) {
	for _, p := range parts {
		p.Mesh.Release()
	}
}

// Get returns a copy of the cached parts.
func (c *Cache) Get(key string) ([]Part, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	parts, ok := c.data[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	return cloneParts(parts), true
}

// Set stores a copy of parts under key.
func (c *Cache) Set(key string, parts []Part) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.data[key]; ok {
		releaseParts(old)
	} else {
		c.keys = append(c.keys, key)
	}
	c.data[key] = cloneParts(parts)

	for c.max > 0 && len(c.keys) > c.max {
		oldest := c.keys[0]
		c.keys = c.keys[1:]
		releaseParts(c.data[oldest])
		delete(c.data, oldest)
	}
}

// Delete releases and removes the entry for key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	parts, ok := c.data[key]
	if !ok {
		return
	}
	releaseParts(parts)
	delete(c.data, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear releases every cached mesh.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, parts := range c.data {
		releaseParts(parts)
	}
	c.data = make(map[string][]Part)
	c.keys = nil
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
