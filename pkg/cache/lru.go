package cache

import (
	"container/list"
	"fmt"
	"sync"
)

// EvictCallback is called when an entry is evicted from the cache.
// It receives the key and value of the evicted entry.
type EvictCallback[V any] func(key string, value V)

// lruEntry is the payload stored in each list element.
type lruEntry[V any] struct {
	key   string
	value V
}

// LRU is a thread-safe bounded cache with least-recently-used eviction.
// The zero value is not usable; construct with NewLRU.
type LRU[V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element // key -> list element
	order    *list.List               // front = most recently used
	stats    *Statistics
	evictFn  EvictCallback[V]
}

// NewLRU creates an LRU cache holding at most capacity entries.
func NewLRU[V any](capacity int, opts ...Option[V]) (*LRU[V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache: capacity must be positive, got %d", capacity)
	}

	c := &LRU[V]{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
		stats:    NewStatistics(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Option configures LRU behavior.
type Option[V any] func(*LRU[V])

// WithEvictionCallback sets a callback invoked for each evicted entry.
func WithEvictionCallback[V any](fn EvictCallback[V]) Option[V] {
	return func(c *LRU[V]) {
		c.evictFn = fn
	}
}

// Get retrieves a value by key and marks it as recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, exists := c.items[key]
	if !exists {
		var zero V
		c.stats.Miss()
		return zero, false
	}

	c.order.MoveToFront(element)
	c.stats.Hit()
	return element.Value.(*lruEntry[V]).value, true
}

// Set stores a value and marks it as recently used.
// Returns true if a new entry was created, false if an existing entry
// was updated.
func (c *LRU[V]) Set(key string, value V) bool {
	if key == "" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if element, exists := c.items[key]; exists {
		element.Value.(*lruEntry[V]).value = value
		c.order.MoveToFront(element)
		c.stats.Set()
		return false
	}

	element := c.order.PushFront(&lruEntry[V]{key: key, value: value})
	c.items[key] = element
	c.stats.Set()

	if len(c.items) > c.capacity {
		c.evictOldest()
	}
	return true
}

// Delete removes an entry by key. Returns true if the key existed.
func (c *LRU[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, exists := c.items[key]
	if !exists {
		return false
	}
	c.order.Remove(element)
	delete(c.items, key)
	c.stats.Delete()
	return true
}

// Len returns the current number of entries.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Keys returns all keys, most recently used first.
func (c *LRU[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.items))
	for e := c.order.Front(); e != nil; e = e.Next() {
		keys = append(keys, e.Value.(*lruEntry[V]).key)
	}
	return keys
}

// Stats returns the cache statistics tracker.
func (c *LRU[V]) Stats() *Statistics {
	return c.stats
}

// evictOldest removes the least recently used entry.
// Caller must hold the lock.
func (c *LRU[V]) evictOldest() {
	element := c.order.Back()
	if element == nil {
		return
	}
	entry := element.Value.(*lruEntry[V])
	c.order.Remove(element)
	delete(c.items, entry.key)
	c.stats.Eviction()

	if c.evictFn != nil {
		c.evictFn(entry.key, entry.value)
	}
}
