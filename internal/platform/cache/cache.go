// Package cache provides a bounded in-memory LRU cache.
package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// Cache defines the interface for a string-keyed cache.
type Cache[V any] interface {
	// Get retrieves a value and marks it recently used.
	Get(key string) (V, bool)

	// Set stores a value, evicting the least recently used entry when full.
	Set(key string, value V)

	// Len returns the current number of entries.
	Len() int
}

type entry[V any] struct {
	key   string
	value V
}

// LRU is a mutex-guarded least-recently-used cache. Safe for concurrent use.
type LRU[V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List // front = most recently used

	hits   atomic.Int64
	misses atomic.Int64
}

// Stats reports cache effectiveness.
type Stats struct {
	Len      int
	Capacity int
	Hits     int64
	Misses   int64
}

// NewLRU creates a cache holding at most capacity entries (default 256).
func NewLRU[V any](capacity int) *LRU[V] {
	if capacity <= 0 {
		capacity = 256
	}
	return &LRU[V]{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	c.order.MoveToFront(el)
	return el.Value.(*entry[V]).value, true
}

func (c *LRU[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry[V]).value = value
		c.order.MoveToFront(el)
		return
	}
	if c.order.Len() >= c.capacity {
		c.evictOldest()
	}
	c.items[key] = c.order.PushFront(&entry[V]{key: key, value: value})
}

func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns hit/miss counters and occupancy.
func (c *LRU[V]) Stats() Stats {
	return Stats{
		Len:      c.Len(),
		Capacity: c.capacity,
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
	}
}

// evictOldest must be called with c.mu held.
func (c *LRU[V]) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.items, el.Value.(*entry[V]).key)
}
