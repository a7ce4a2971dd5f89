package recurrence

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	set  *Set
	errs []error
}

// Cache memoises lenient parses keyed by seed and text. Cached sets are
// immutable, so a Cache can be shared by concurrent queries.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
	parse   func(text, seed string) (*Set, []error)
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry), parse: Lenient}
}

// Get returns the set for text and the line errors found while parsing it.
func (c *Cache) Get(text, seed string) (*Set, []error) {
	key := seed + "\x00" + text

	if e, ok := c.lookup(key); ok {
		return e.set, e.errs
	}

	// Concurrent misses on one key share a single parse. The parse runs
	// unlocked so hits on other keys are never held up by it.
	v, _, _ := c.group.Do(key, func() (any, error) {
		if e, ok := c.lookup(key); ok {
			return e, nil
		}
		set, errs := c.parse(text, seed)
		e := cacheEntry{set: set, errs: errs}

		c.mu.Lock()
		defer c.mu.Unlock()
		if prev, ok := c.entries[key]; ok {
			return prev, nil
		}
		c.entries[key] = e
		return e, nil
	})
	e := v.(cacheEntry)
	return e.set, e.errs
}

func (c *Cache) lookup(key string) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
