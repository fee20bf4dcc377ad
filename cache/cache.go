// Package cache provides an in-memory cache whose entries expire after a
// fixed time to live.
package cache

import (
	"sync"
	"time"
)

type Stats struct {
	Total int
	Hits  int
}

type Cache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[V]
	stats   Stats

	// now is replaced in tests.
	now func() time.Time
}

type entry[V any] struct {
	value V
	exp   time.Time
}

// New returns a cache whose entries live for ttl after they are set.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{
		value: value,
		exp:   c.now().Add(c.ttl),
	}
}

// Get returns the value for key and whether it was present and unexpired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Total++

	var val V
	e, ok := c.entries[key]
	if !ok {
		return val, false
	}

	if c.now().Before(e.exp) {
		c.stats.Hits++
		return e.value, true
	}

	// Expired
	delete(c.entries, key)
	return val, false
}

func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Len returns the number of entries, including expired ones not yet swept.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stats
}

// Sweep removes all expired entries and returns how many were removed.
func (c *Cache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	toRemove := []string{}
	for k, e := range c.entries {
		if !now.Before(e.exp) {
			toRemove = append(toRemove, k)
		}
	}

	for _, k := range toRemove {
		delete(c.entries, k)
	}
	return len(toRemove)
}
