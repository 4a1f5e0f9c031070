package cache

import (
	"container/heap"
	"sort"
)

// FIFOCache evicts in insertion order. Writing an existing key counts as a
// new insertion and makes that key the newest. Reads never change the order.
type FIFOCache[K comparable, V any] struct {
	capacity int
	items    map[K]fifoSlot[V]
	order    *seqHeap[K]
	counter  uint64
	opts     *options[K, V]
}

type fifoSlot[V any] struct {
	value V
	seq   uint64
}

type fifoEntry[K comparable] struct {
	seq uint64
	key K
}

// seqHeap implements heap.Interface ordered by insertion sequence. It may hold
// stale entries whose key was removed or rewritten since they were pushed.
type seqHeap[K comparable] []fifoEntry[K]

func (h seqHeap[K]) Len() int           { return len(h) }
func (h seqHeap[K]) Less(i, j int) bool { return h[i].seq < h[j].seq }
func (h seqHeap[K]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *seqHeap[K]) Push(x interface{}) {
	*h = append(*h, x.(fifoEntry[K]))
}

func (h *seqHeap[K]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	var zero fifoEntry[K]
	old[n-1] = zero // avoid memory leak
	*h = old[0 : n-1]
	return item
}

// NewFIFOCache creates a new FIFO cache with the specified capacity
func NewFIFOCache[K comparable, V any](capacity int, opts ...Option[K, V]) (*FIFOCache[K, V], error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}
	c := &FIFOCache[K, V]{
		capacity: capacity,
		items:    make(map[K]fifoSlot[V], capacity),
		order:    &seqHeap[K]{},
		opts:     buildOptions("fifo", opts),
	}
	c.opts.logger.Debugf("created fifo cache with capacity %d", capacity)
	return c, nil
}

func (c *FIFOCache[K, V]) isLive(e fifoEntry[K]) bool {
	slot, ok := c.items[e.key]
	return ok && slot.seq == e.seq
}

func (c *FIFOCache[K, V]) staleCount() int {
	return c.order.Len() - len(c.items)
}

// Get retrieves a value from the cache by key
func (c *FIFOCache[K, V]) Get(key K) (V, bool) {
	slot, ok := c.items[key]
	return slot.value, ok
}

// Has checks if a key exists in the cache
func (c *FIFOCache[K, V]) Has(key K) bool {
	_, ok := c.items[key]
	return ok
}

// Put adds a value as the newest entry, replacing any previous value of key
func (c *FIFOCache[K, V]) Put(key K, value V) {
	// the old heap entry turns stale once the key leaves the table
	delete(c.items, key)

	var (
		evictedKey   K
		evictedValue V
		evicted      bool
	)
	if len(c.items) >= c.capacity {
		evictedKey, evictedValue, evicted = c.evict()
	}

	heap.Push(c.order, fifoEntry[K]{seq: c.counter, key: key})
	c.items[key] = fifoSlot[V]{value: value, seq: c.counter}
	c.counter++
	c.compactIfNeeded()
	if evicted {
		c.opts.notifyEvicted(evictedKey, evictedValue)
	}
}

// Remove deletes key; its heap entry is purged lazily
func (c *FIFOCache[K, V]) Remove(key K) bool {
	if _, ok := c.items[key]; !ok {
		return false
	}
	delete(c.items, key)
	c.compactIfNeeded()
	return true
}

// PeekOldest returns the oldest live entry without removing it
func (c *FIFOCache[K, V]) PeekOldest() (K, V, error) {
	e, ok := c.oldest()
	if !ok {
		var (
			zeroK K
			zeroV V
		)
		return zeroK, zeroV, ErrEmptyCache
	}
	return e.key, c.items[e.key].value, nil
}

// PopOldest removes and returns the oldest live entry
func (c *FIFOCache[K, V]) PopOldest() (K, V, error) {
	key, value, ok := c.popOldest()
	if !ok {
		return key, value, ErrEmptyCache
	}
	c.compactIfNeeded()
	return key, value, nil
}

// Len returns the number of items in the cache
func (c *FIFOCache[K, V]) Len() int {
	return len(c.items)
}

func (c *FIFOCache[K, V]) Cap() int {
	return c.capacity
}

// Clear removes all items from the cache and restarts the insertion counter
func (c *FIFOCache[K, V]) Clear() {
	c.items = make(map[K]fifoSlot[V], c.capacity)
	c.order = &seqHeap[K]{}
	c.counter = 0
}

// Keys returns all keys from oldest to newest
func (c *FIFOCache[K, V]) Keys() []K {
	entries := make([]fifoEntry[K], 0, len(c.items))
	for key, slot := range c.items {
		entries = append(entries, fifoEntry[K]{seq: slot.seq, key: key})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	keys := make([]K, len(entries))
	for i, e := range entries {
		keys[i] = e.key
	}
	return keys
}

// GetWithLoader retrieves a value from the cache, using the loader function if not present
func (c *FIFOCache[K, V]) GetWithLoader(key K, loader func(K) (V, error)) (V, error) {
	return getWithLoader[K, V](c, c.opts, key, loader)
}

// oldest drops stale entries off the top of the heap and returns the first live one.
func (c *FIFOCache[K, V]) oldest() (fifoEntry[K], bool) {
	for c.order.Len() > 0 {
		top := (*c.order)[0]
		if c.isLive(top) {
			return top, true
		}
		heap.Pop(c.order)
	}
	return fifoEntry[K]{}, false
}

func (c *FIFOCache[K, V]) popOldest() (key K, value V, ok bool) {
	for c.order.Len() > 0 {
		e := heap.Pop(c.order).(fifoEntry[K])
		if !c.isLive(e) {
			continue
		}
		value = c.items[e.key].value
		delete(c.items, e.key)
		return e.key, value, true
	}
	return
}

// evict removes the oldest live item and returns it
func (c *FIFOCache[K, V]) evict() (key K, value V, ok bool) {
	key, value, ok = c.popOldest()
	if ok {
		c.opts.logger.Tracef("evicted key %v", key)
	}
	return
}

// compactIfNeeded rebuilds the heap from live entries once stale ones outnumber them.
func (c *FIFOCache[K, V]) compactIfNeeded() {
	stale := c.staleCount()
	if stale <= len(c.items) {
		return
	}
	live := make(seqHeap[K], 0, len(c.items))
	for key, slot := range c.items {
		live = append(live, fifoEntry[K]{seq: slot.seq, key: key})
	}
	heap.Init(&live)
	c.order = &live
	c.opts.logger.Debugf("compacted order heap, dropped %d stale entries", stale)
}
