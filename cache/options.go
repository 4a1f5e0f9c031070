package cache

import "github.com/dlshle/evictcache/logging"

type options[K comparable, V any] struct {
	logger  logging.Logger
	name    string
	onEvict func(K, V)
}

type Option[K comparable, V any] func(*options[K, V])

// WithLogger routes cache logs to logger. Caches are silent by default.
func WithLogger[K comparable, V any](logger logging.Logger) Option[K, V] {
	return func(o *options[K, V]) {
		o.logger = logger
	}
}

// WithName tags every log entry of the cache with name.
func WithName[K comparable, V any](name string) Option[K, V] {
	return func(o *options[K, V]) {
		o.name = name
	}
}

// WithEvictionListener registers fn to be called synchronously with each
// entry dropped to make room for a new key. Remove, PopOldest and Clear do
// not trigger it.
//
// fn runs once the Put that caused the eviction has stored its entry, so it
// may call back into the cache. A Put made from fn is a regular Put and may
// evict, and notify, again.
func WithEvictionListener[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(o *options[K, V]) {
		o.onEvict = fn
	}
}

func (o *options[K, V]) notifyEvicted(key K, value V) {
	if o.onEvict != nil {
		o.onEvict(key, value)
	}
}

func buildOptions[K comparable, V any](policy string, opts []Option[K, V]) *options[K, V] {
	o := &options[K, V]{
		logger: logging.NoopLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	ctx := map[string]string{"policy": policy}
	if o.name != "" {
		ctx["cache"] = o.name
	}
	o.logger = o.logger.WithContext(ctx)
	return o
}
