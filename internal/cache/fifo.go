// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache provides a bounded cache that evicts in insertion order.
//
// FIFO sits on golang-lru's simplelru but only ever reads through Peek, so
// no read promotes an entry and the recency order stays the insertion order.
package cache

import (
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// slot boxes a value so a replacement can be written in place without
// moving the key to the front of the list.
type slot[V any] struct {
	value V
}

// FIFO is a bounded map that evicts the oldest-inserted key once capacity is
// exceeded. It is safe for concurrent use.
type FIFO[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	lru      *simplelru.LRU[K, *slot[V]]

	// set by onEvict while mu is held
	evictedKey K
	evicted    bool
}

// NewFIFO returns an empty cache holding at most capacity entries.
// A capacity below 1 is treated as 1.
func NewFIFO[K comparable, V any](capacity int) *FIFO[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	c := &FIFO[K, V]{capacity: capacity}
	lru, err := simplelru.NewLRU[K, *slot[V]](capacity, c.onEvict)
	if err != nil {
		// NewLRU only fails for a non-positive size.
		panic(err)
	}
	c.lru = lru
	return c
}

func (c *FIFO[K, V]) onEvict(key K, _ *slot[V]) {
	c.evictedKey = key
	c.evicted = true
}

// Get returns the value stored for key.
func (c *FIFO[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.lru.Peek(key)
	if !ok {
		var zero V
		return zero, false
	}
	return s.value, true
}

// Put stores value under key. Replacing an existing key keeps its original
// insertion position. When a new key overflows the capacity, the oldest
// entry is removed and returned with evicted=true.
func (c *FIFO[K, V]) Put(key K, value V) (evictedKey K, evicted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.lru.Peek(key); ok {
		s.value = value
		return evictedKey, false
	}

	var zero K
	c.evictedKey, c.evicted = zero, false
	c.lru.Add(key, &slot[V]{value: value})
	return c.evictedKey, c.evicted
}

// Contains reports whether key is cached.
func (c *FIFO[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Contains(key)
}

// Len returns the number of cached entries.
func (c *FIFO[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Cap returns the capacity.
func (c *FIFO[K, V]) Cap() int {
	return c.capacity
}

// Keys returns the cached keys, oldest insertion first.
func (c *FIFO[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Keys()
}

// Clear removes every entry without reporting evictions.
func (c *FIFO[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
	var zero K
	c.evictedKey, c.evicted = zero, false
}
