package cache

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dlshle/evictcache/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Cache[string, int] = (*FIFOCache[string, int])(nil)
	_ Cache[string, int] = (*LRUCache[string, int])(nil)
)

func bothPolicies(t *testing.T, capacity int, opts ...Option[string, int]) map[string]Cache[string, int] {
	t.Helper()
	fifo, err := NewFIFOCache[string, int](capacity, opts...)
	require.NoError(t, err)
	lru, err := NewLRUCache[string, int](capacity, opts...)
	require.NoError(t, err)
	return map[string]Cache[string, int]{"fifo": fifo, "lru": lru}
}

func TestCapacityInvariant(t *testing.T) {
	for name, c := range bothPolicies(t, 4) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				c.Put(string(rune('a'+i%26)), i)
				require.LessOrEqual(t, c.Len(), c.Cap())
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for name, c := range bothPolicies(t, 3) {
		t.Run(name, func(t *testing.T) {
			c.Put("k", 1)
			c.Put("k", 2)
			v, ok := c.Get("k")
			assert.True(t, ok)
			assert.Equal(t, 2, v)
			assert.Equal(t, 1, c.Len())
		})
	}
}

func TestGetWithLoader(t *testing.T) {
	for name, c := range bothPolicies(t, 2) {
		t.Run(name, func(t *testing.T) {
			calls := 0
			loader := func(key string) (int, error) {
				calls++
				if key == "loadedKey" {
					return 42, nil
				}
				return 0, errors.New("key not found")
			}

			v, err := c.GetWithLoader("loadedKey", loader)
			require.NoError(t, err)
			assert.Equal(t, 42, v)
			assert.True(t, c.Has("loadedKey"))

			v, err = c.GetWithLoader("loadedKey", loader)
			require.NoError(t, err)
			assert.Equal(t, 42, v)
			assert.Equal(t, 1, calls)

			_, err = c.GetWithLoader("other", loader)
			assert.EqualError(t, err, "key not found")
			assert.False(t, c.Has("other"))
			assert.Equal(t, 1, c.Len())
		})
	}
}

func TestClearEmptiesBoth(t *testing.T) {
	for name, c := range bothPolicies(t, 2) {
		t.Run(name, func(t *testing.T) {
			c.Put("a", 1)
			c.Put("b", 2)
			c.Clear()
			assert.Zero(t, c.Len())
			assert.Empty(t, c.Keys())
			c.Put("c", 3)
			assert.Equal(t, []string{"c"}, c.Keys())
		})
	}
}

func TestCacheLogging(t *testing.T) {
	var buf, audit bytes.Buffer
	logger := logging.CreateLevelLogger(logging.NewTeeWriter(
		logging.NewConsoleLogWriter(&buf),
		logging.NewlineSeparatedJSONWriter(&audit),
	), "[cache]", logging.LogAllWaterMark)
	caches := bothPolicies(t, 1, WithLogger[string, int](logger), WithName[string, int]("sessions"))

	for name, c := range caches {
		t.Run(name, func(t *testing.T) {
			buf.Reset()
			audit.Reset()
			c.Put("a", 1)
			c.Put("b", 2)
			out := buf.String()
			assert.Contains(t, audit.String(), `"message":"evicted key a"`)
			assert.Contains(t, audit.String(), `"policy":"`+name+`"`)
			assert.Contains(t, out, "[TRACE]")
			assert.Contains(t, out, "evicted key a")
			assert.Contains(t, out, "cache:sessions")
			assert.Contains(t, out, "policy:"+name)

			buf.Reset()
			_, err := c.GetWithLoader("x", func(string) (int, error) { return 0, errors.New("down") })
			require.Error(t, err)
			assert.Contains(t, buf.String(), "[WARN]")
			assert.Contains(t, buf.String(), "loader failed for key x: down")
		})
	}
}

func TestEvictionListenerMayWriteBack(t *testing.T) {
	constructors := map[string]func(opts ...Option[string, int]) (Cache[string, int], error){
		"fifo": func(opts ...Option[string, int]) (Cache[string, int], error) {
			return NewFIFOCache[string, int](1, opts...)
		},
		"lru": func(opts ...Option[string, int]) (Cache[string, int], error) {
			return NewLRUCache[string, int](1, opts...)
		},
	}
	for name, construct := range constructors {
		t.Run(name, func(t *testing.T) {
			var (
				c       Cache[string, int]
				evicted []string
			)
			c, err := construct(WithEvictionListener(func(k string, _ int) {
				evicted = append(evicted, k)
				if k == "A" {
					c.Put("X", 9)
					require.LessOrEqual(t, c.Len(), c.Cap())
				}
			}))
			require.NoError(t, err)

			c.Put("A", 1)
			c.Put("B", 2)

			assert.Equal(t, 1, c.Len())
			assert.Equal(t, []string{"X"}, c.Keys())
			assert.Equal(t, []string{"A", "B"}, evicted)
			v, ok := c.Get("X")
			assert.True(t, ok)
			assert.Equal(t, 9, v)
			if lru, ok := c.(*LRUCache[string, int]); ok {
				require.NoError(t, lru.validate())
			}
		})
	}
}
