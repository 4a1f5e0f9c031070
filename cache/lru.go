package cache

import (
	"github.com/dlshle/evictcache/data_structures"
	"github.com/dlshle/evictcache/errors"
)

// LRUCache implements a Least Recently Used cache. Front of the list is the
// most recently used entry, the back is the next to be evicted.
type LRUCache[K comparable, V any] struct {
	capacity int
	items    map[K]data_structures.Handle
	list     *data_structures.HandleList[lruEntry[K, V]]
	opts     *options[K, V]
}

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// NewLRUCache creates a new LRU cache with the specified capacity
func NewLRUCache[K comparable, V any](capacity int, opts ...Option[K, V]) (*LRUCache[K, V], error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}
	c := &LRUCache[K, V]{
		capacity: capacity,
		items:    make(map[K]data_structures.Handle, capacity),
		list:     data_structures.NewHandleList[lruEntry[K, V]](capacity),
		opts:     buildOptions("lru", opts),
	}
	c.opts.logger.Debugf("created lru cache with capacity %d", capacity)
	return c, nil
}

// Get retrieves a value from the cache by key and marks it most recently used
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	h, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.list.MoveToFront(h)
	return c.list.Get(h).value, true
}

// Peek retrieves a value without updating its recency
func (c *LRUCache[K, V]) Peek(key K) (V, bool) {
	h, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	return c.list.Get(h).value, true
}

// Has checks if a key exists in the cache
func (c *LRUCache[K, V]) Has(key K) bool {
	_, ok := c.items[key]
	return ok
}

// Put adds or updates a value and marks it most recently used
func (c *LRUCache[K, V]) Put(key K, value V) {
	if h, ok := c.items[key]; ok {
		c.list.Set(h, lruEntry[K, V]{key: key, value: value})
		c.list.MoveToFront(h)
		return
	}

	var (
		victim  lruEntry[K, V]
		evicted bool
	)
	if len(c.items) >= c.capacity {
		victim, evicted = c.evict()
	}

	c.items[key] = c.list.PushFront(lruEntry[K, V]{key: key, value: value})
	if evicted {
		c.opts.notifyEvicted(victim.key, victim.value)
	}
}

// Remove deletes key and reports whether it was present
func (c *LRUCache[K, V]) Remove(key K) bool {
	h, ok := c.items[key]
	if !ok {
		return false
	}
	c.list.Remove(h)
	delete(c.items, key)
	return true
}

// Oldest returns the least recently used entry without touching it
func (c *LRUCache[K, V]) Oldest() (key K, value V, ok bool) {
	h, ok := c.list.Back()
	if !ok {
		return
	}
	e := c.list.Get(h)
	return e.key, e.value, true
}

// Len returns the number of items in the cache
func (c *LRUCache[K, V]) Len() int {
	return len(c.items)
}

func (c *LRUCache[K, V]) Cap() int {
	return c.capacity
}

// Clear removes all items from the cache
func (c *LRUCache[K, V]) Clear() {
	c.items = make(map[K]data_structures.Handle, c.capacity)
	c.list.Reset()
}

// Keys returns all keys from most to least recently used
func (c *LRUCache[K, V]) Keys() []K {
	keys := make([]K, 0, len(c.items))
	c.list.ForEach(func(_ data_structures.Handle, e lruEntry[K, V]) bool {
		keys = append(keys, e.key)
		return true
	})
	return keys
}

// GetWithLoader retrieves a value from the cache, using the loader function if not present
func (c *LRUCache[K, V]) GetWithLoader(key K, loader func(K) (V, error)) (V, error) {
	return getWithLoader[K, V](c, c.opts, key, loader)
}

// evict removes the least recently used item and returns it
func (c *LRUCache[K, V]) evict() (lruEntry[K, V], bool) {
	h, ok := c.list.Back()
	if !ok {
		return lruEntry[K, V]{}, false
	}
	e := c.list.Remove(h)
	delete(c.items, e.key)
	c.opts.logger.Tracef("evicted key %v", e.key)
	return e, true
}

// validate checks the list links and that the table and the list agree.
func (c *LRUCache[K, V]) validate() error {
	violations := errors.NewMultiError()
	violations.Add(c.list.Validate())
	if c.list.Len() != len(c.items) {
		violations.Add(errors.Errorf("list holds %d nodes, table holds %d keys", c.list.Len(), len(c.items)))
	}
	c.list.ForEach(func(h data_structures.Handle, e lruEntry[K, V]) bool {
		if c.items[e.key] != h {
			violations.Add(errors.Errorf("table handle for %v is %d, node is %d", e.key, c.items[e.key], h))
		}
		return true
	})
	return violations.ErrorOrNil()
}
