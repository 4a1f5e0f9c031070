package cache

import "github.com/dlshle/evictcache/errors"

var (
	// ErrInvalidArgument is returned by constructors given a non-positive capacity.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyCache is returned by FIFOCache.PeekOldest and FIFOCache.PopOldest
	// when no live entry exists. The cache stays usable.
	ErrEmptyCache = errors.New("cache is empty")
)

func validateCapacity(capacity int) error {
	if capacity <= 0 {
		return errors.Errorf("%w: capacity must be positive, got %d", ErrInvalidArgument, capacity)
	}
	return nil
}
