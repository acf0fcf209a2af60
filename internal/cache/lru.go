// Package cache provides the bounded in-process memo cache used by the fuzzy
// matcher and the Redis-backed response cache used by the HTTP server.
package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a bounded key/value memo. Implementations must be safe for concurrent use.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Add(key K, value V)
	Len() int
}

// LRU is a fixed-size least-recently-used cache.
type LRU[K comparable, V any] struct {
	inner *lru.Cache[K, V]
}

// NewLRU creates an LRU holding at most size entries.
func NewLRU[K comparable, V any](size int) (*LRU[K, V], error) {
	inner, err := lru.New[K, V](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache of size %d: %w", size, err)
	}
	return &LRU[K, V]{inner: inner}, nil
}

// Get returns the cached value and marks it recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	return c.inner.Get(key)
}

// Add stores value, evicting the least recently used entry when full.
func (c *LRU[K, V]) Add(key K, value V) {
	c.inner.Add(key, value)
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	return c.inner.Len()
}
