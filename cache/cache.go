package cache

// Cache defines the common interface for all cache implementations
type Cache[K comparable, V any] interface {
	// Get retrieves a value from the cache by key
	Get(key K) (V, bool)

	// Put adds or updates a value in the cache, evicting one entry if the cache is full
	Put(key K, value V)

	// Remove deletes a key and reports whether it was present
	Remove(key K) bool

	// Has checks if a key exists in the cache without affecting eviction order
	Has(key K) bool

	// Len returns the number of items in the cache
	Len() int

	// Cap returns the maximum number of items the cache holds
	Cap() int

	// Clear removes all items from the cache
	Clear()

	// Keys returns all keys in eviction order, next victim last
	Keys() []K

	// GetWithLoader retrieves a value from the cache, using the loader function if not present
	GetWithLoader(key K, loader func(K) (V, error)) (V, error)
}

func getWithLoader[K comparable, V any](c Cache[K, V], opts *options[K, V], key K, loader func(K) (V, error)) (V, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err := loader(key)
	if err != nil {
		opts.logger.Warnf("loader failed for key %v: %v", key, err)
		var zero V
		return zero, err
	}

	c.Put(key, value)
	return value, nil
}
