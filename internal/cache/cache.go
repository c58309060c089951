package cache

import "sync"

// Cache defines a key/value memo for derived query results.
type Cache[T any] interface {
	// Get retrieves a value from the cache
	Get(key string) (T, bool)

	// Put stores a value in the cache, replacing any previous value
	Put(key string, value T)

	// InvalidateAll discards every entry
	InvalidateAll()

	// Size returns the current number of entries
	Size() int
}

var _ Cache[any] = (*MemoryCache[any])(nil)

// MemoryCache is an unbounded in-process Cache. Entries never expire; they
// live until InvalidateAll is called.
type MemoryCache[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache[T any]() *MemoryCache[T] {
	return &MemoryCache[T]{items: make(map[string]T)}
}

func (c *MemoryCache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.items[key]
	return value, ok
}

func (c *MemoryCache[T]) Put(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = value
}

func (c *MemoryCache[T]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]T)
}

func (c *MemoryCache[T]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}
