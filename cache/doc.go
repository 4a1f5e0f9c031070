// Package cache provides capacity bounded FIFO and LRU caches with support for
// generics and loading cache patterns.
//
// Neither cache is safe for concurrent use; callers sharing one across
// goroutines must synchronize access themselves.
//
// Example usage:
//
//	// Create a FIFO cache, eviction follows insertion order
//	fifo, err := cache.NewFIFOCache[string, int](100)
//	if err != nil {
//		return err
//	}
//	fifo.Put("key1", 42)
//	key, value, err := fifo.PeekOldest()
//
//	// Create an LRU cache, Get and Put both count as a use
//	lru, _ := cache.NewLRUCache[string, int](100,
//		cache.WithLogger[string, int](logging.StdOutLevelLogger("[lru]")),
//		cache.WithEvictionListener(func(k string, v int) {
//			fmt.Println("evicted", k, v)
//		}))
//	lru.Put("key1", 42)
//	if val, ok := lru.Get("key1"); ok {
//		fmt.Println("Value:", val)
//	}
//
//	// Use GetWithLoader for automatic loading
//	val, err := lru.GetWithLoader("key2", func(key string) (int, error) {
//		// Load value from database or other source
//		return 100, nil
//	})
package cache
