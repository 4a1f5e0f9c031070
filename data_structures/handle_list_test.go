package data_structures

import (
	"math/rand"
	"testing"

	"github.com/dlshle/evictcache/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values[T any](l *HandleList[T]) []T {
	res := make([]T, 0, l.Len())
	l.ForEach(func(_ Handle, v T) bool {
		res = append(res, v)
		return true
	})
	return res
}

func TestHandleList(t *testing.T) {
	var (
		l       *HandleList[string]
		a, b, c Handle
	)
	test_utils.NewGroup("handle list", "ordering and slot reuse").Cases(test_utils.New("empty", func() {
		l = NewHandleList[string](4)
		_, ok := l.Front()
		test_utils.AssertFalse(ok)
		_, ok = l.Back()
		test_utils.AssertFalse(ok)
		test_utils.AssertNil(l.Validate())
	}), test_utils.New("push front", func() {
		a = l.PushFront("a")
		b = l.PushFront("b")
		c = l.PushFront("c")
		test_utils.AssertSlicesEqual(values(l), []string{"c", "b", "a"})
		back, _ := l.Back()
		test_utils.AssertEquals(back, a)
		front, _ := l.Front()
		test_utils.AssertEquals(front, c)
		test_utils.AssertNil(l.Validate())
	}), test_utils.New("move to front keeps handle", func() {
		l.MoveToFront(a)
		test_utils.AssertSlicesEqual(values(l), []string{"a", "c", "b"})
		test_utils.AssertEquals(l.Get(a), "a")
		l.MoveToFront(a)
		test_utils.AssertSlicesEqual(values(l), []string{"a", "c", "b"})
		test_utils.AssertNil(l.Validate())
	}), test_utils.New("remove middle and reuse slot", func() {
		test_utils.AssertEquals(l.Remove(c), "c")
		test_utils.AssertSlicesEqual(values(l), []string{"a", "b"})
		d := l.PushFront("d")
		test_utils.AssertEquals(d, c)
		test_utils.AssertEquals(l.Len(), 3)
		test_utils.AssertNil(l.Validate())
	}), test_utils.New("set", func() {
		l.Set(b, "B")
		test_utils.AssertSlicesEqual(values(l), []string{"d", "a", "B"})
	}), test_utils.New("stale handle panics", func() {
		l.Remove(b)
		test_utils.AssertPanic(func() { l.Get(b) })
		test_utils.AssertPanic(func() { l.MoveToFront(Head) })
		test_utils.AssertPanic(func() { l.Remove(Tail) })
	}), test_utils.New("reset", func() {
		l.Reset()
		test_utils.AssertEquals(l.Len(), 0)
		test_utils.AssertSlicesEqual(values(l), []string{})
		test_utils.AssertNil(l.Validate())
		test_utils.AssertEquals(l.PushFront("x"), Handle(2))
	})).Do(t)
}

func TestHandleListValidateDetectsBrokenLinks(t *testing.T) {
	l := NewHandleList[int](0)
	x := l.PushFront(1)
	y := l.PushFront(2)
	require.NoError(t, l.Validate())

	l.nodes[x].prev = Head
	err := l.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prev")

	l.nodes[x].prev = y
	l.size = 5
	assert.ErrorContains(t, l.Validate(), "size is 5")
}

func TestHandleListRandomOps(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	l := NewHandleList[int](16)
	var model []int // front to back
	handles := map[int]Handle{}
	next := 0

	for i := 0; i < 2000; i++ {
		switch op := rnd.Intn(4); {
		case op == 0 || len(model) == 0:
			handles[next] = l.PushFront(next)
			model = append([]int{next}, model...)
			next++
		case op == 1:
			idx := rnd.Intn(len(model))
			v := model[idx]
			l.MoveToFront(handles[v])
			model = append([]int{v}, append(model[:idx:idx], model[idx+1:]...)...)
		case op == 2:
			idx := rnd.Intn(len(model))
			v := model[idx]
			require.Equal(t, v, l.Remove(handles[v]))
			delete(handles, v)
			model = append(model[:idx:idx], model[idx+1:]...)
		default:
			h, ok := l.Back()
			require.True(t, ok)
			require.Equal(t, model[len(model)-1], l.Get(h))
		}
		require.NoError(t, l.Validate(), "after op %d", i)
		require.Equal(t, len(model), l.Len())
	}
	assert.Equal(t, model, values(l))
}

func TestHandleListResetReusesArena(t *testing.T) {
	l := NewHandleList[*int](0)
	for i := 0; i < 8; i++ {
		v := i
		l.PushFront(&v)
	}
	backing := &l.nodes[:cap(l.nodes)][0]
	grown := cap(l.nodes)

	l.Reset()
	require.NoError(t, l.Validate())
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, grown, cap(l.nodes))
	assert.Same(t, backing, &l.nodes[:cap(l.nodes)][0])
	for _, n := range l.nodes[2:cap(l.nodes)] {
		assert.Nil(t, n.value)
	}

	v := 42
	h := l.PushFront(&v)
	assert.Equal(t, Handle(2), h)
	assert.Equal(t, 42, *l.Get(h))
	require.NoError(t, l.Validate())
}
