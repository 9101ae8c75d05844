package storage

import (
	"time"

	"github.com/maypok86/otter/v2"
)

// Cache is a TTL-bounded in-memory cache for values looked up from remote
// services.
type Cache[T any] struct {
	outer *otter.Cache[string, T]
}

func NewCache[T any](capacity int, ttl time.Duration) *Cache[T] {
	opts := &otter.Options[string, T]{
		InitialCapacity: capacity,
	}
	if capacity > 0 {
		opts.MaximumSize = capacity
	}
	if ttl > 0 {
		opts.ExpiryCalculator = otter.ExpiryAccessing[string, T](ttl)
	}

	return &Cache[T]{outer: otter.Must(opts)}
}

func (c *Cache[T]) Set(key string, val T) {
	c.outer.Set(key, val)
}

func (c *Cache[T]) Get(key string) (T, bool) {
	return c.outer.GetIfPresent(key)
}

func (c *Cache[T]) Delete(key string) {
	c.outer.Invalidate(key)
}

func (c *Cache[T]) Len() int {
	return c.outer.EstimatedSize()
}
