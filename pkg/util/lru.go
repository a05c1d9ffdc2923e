package util

import (
	"container/list"
	"sync"
)

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// LRUCache is a thread-safe, generic, capacity-bounded LRU cache.
type LRUCache[K comparable, V any] struct {
	capacity int
	ll       *list.List
	cache    map[K]*list.Element
	lock     sync.Mutex
}

// NewLRU creates an LRUCache holding at most capacity entries. Non-positive
// capacities fall back to 1.
func NewLRU[K comparable, V any](capacity int) *LRUCache[K, V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCache[K, V]{
		capacity: capacity,
		ll:       list.New(),
		cache:    make(map[K]*list.Element),
	}
}

// Get returns the value for key and marks it most recently used.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	element, ok := c.cache[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.ll.MoveToFront(element)
	return element.Value.(*lruEntry[K, V]).value, true
}

// Put inserts or updates the value for key, evicting the least recently used
// entry when the cache is full.
func (c *LRUCache[K, V]) Put(key K, value V) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if element, ok := c.cache[key]; ok {
		element.Value.(*lruEntry[K, V]).value = value
		c.ll.MoveToFront(element)
		return
	}

	c.cache[key] = c.ll.PushFront(&lruEntry[K, V]{key: key, value: value})
	if c.ll.Len() > c.capacity {
		back := c.ll.Back()
		c.ll.Remove(back)
		delete(c.cache, back.Value.(*lruEntry[K, V]).key)
	}
}

// Len returns the current number of cached entries.
func (c *LRUCache[K, V]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.ll.Len()
}
