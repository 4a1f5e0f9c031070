package data_structures

import (
	"github.com/dlshle/evictcache/errors"
)

// Handle identifies a node of a HandleList. It stays valid until the node is
// removed; after that the slot may be reissued by a later PushFront.
type Handle int

const (
	// Head and Tail are the sentinel slots bounding the chain. They never hold a value.
	Head Handle = 0
	Tail Handle = 1

	nilHandle Handle = -1
)

type handleNode[T any] struct {
	prev  Handle
	next  Handle
	value T
	live  bool
}

// HandleList is a doubly-linked list whose nodes live in a slice and are
// addressed by index. Front is the node right after Head, Back the one
// right before Tail. Not safe for concurrent use.
type HandleList[T any] struct {
	nodes []handleNode[T]
	free  []Handle
	size  int
}

func NewHandleList[T any](capacityHint int) *HandleList[T] {
	l := &HandleList[T]{}
	l.init(capacityHint)
	return l
}

func (l *HandleList[T]) init(capacityHint int) {
	if capacityHint < 0 {
		capacityHint = 0
	}
	l.nodes = make([]handleNode[T], 2, capacityHint+2)
	l.nodes[Head] = handleNode[T]{prev: nilHandle, next: Tail}
	l.nodes[Tail] = handleNode[T]{prev: Head, next: nilHandle}
	l.free = l.free[:0]
	l.size = 0
}

// Reset drops every node and keeps the backing array for reuse.
func (l *HandleList[T]) Reset() {
	var zero handleNode[T]
	for i := 2; i < len(l.nodes); i++ {
		l.nodes[i] = zero
	}
	l.nodes = l.nodes[:2]
	l.nodes[Head] = handleNode[T]{prev: nilHandle, next: Tail}
	l.nodes[Tail] = handleNode[T]{prev: Head, next: nilHandle}
	l.free = l.free[:0]
	l.size = 0
}

func (l *HandleList[T]) Len() int {
	return l.size
}

func (l *HandleList[T]) alloc(value T) Handle {
	node := handleNode[T]{value: value, live: true}
	if n := len(l.free); n > 0 {
		h := l.free[n-1]
		l.free = l.free[:n-1]
		l.nodes[h] = node
		return h
	}
	l.nodes = append(l.nodes, node)
	return Handle(len(l.nodes) - 1)
}

func (l *HandleList[T]) linkAfter(h Handle, at Handle) {
	next := l.nodes[at].next
	l.nodes[h].prev = at
	l.nodes[h].next = next
	l.nodes[next].prev = h
	l.nodes[at].next = h
}

func (l *HandleList[T]) unlink(h Handle) {
	prev, next := l.nodes[h].prev, l.nodes[h].next
	l.nodes[prev].next = next
	l.nodes[next].prev = prev
	l.nodes[h].prev = nilHandle
	l.nodes[h].next = nilHandle
}

func (l *HandleList[T]) mustBeLive(h Handle) {
	if h <= Tail || int(h) >= len(l.nodes) || !l.nodes[h].live {
		panic(errors.Errorf("handle %d does not address a live node", h))
	}
}

// PushFront stores value in a new node right after Head.
func (l *HandleList[T]) PushFront(value T) Handle {
	h := l.alloc(value)
	l.linkAfter(h, Head)
	l.size++
	return h
}

// MoveToFront relinks h right after Head. The handle does not change.
func (l *HandleList[T]) MoveToFront(h Handle) {
	l.mustBeLive(h)
	if l.nodes[Head].next == h {
		return
	}
	l.unlink(h)
	l.linkAfter(h, Head)
}

// Remove unlinks h, frees its slot and returns the value it held.
func (l *HandleList[T]) Remove(h Handle) T {
	l.mustBeLive(h)
	l.unlink(h)
	value := l.nodes[h].value
	var zero T
	l.nodes[h].value = zero
	l.nodes[h].live = false
	l.free = append(l.free, h)
	l.size--
	return value
}

func (l *HandleList[T]) Front() (Handle, bool) {
	h := l.nodes[Head].next
	return h, h != Tail
}

func (l *HandleList[T]) Back() (Handle, bool) {
	h := l.nodes[Tail].prev
	return h, h != Head
}

func (l *HandleList[T]) Get(h Handle) T {
	l.mustBeLive(h)
	return l.nodes[h].value
}

func (l *HandleList[T]) Set(h Handle, value T) {
	l.mustBeLive(h)
	l.nodes[h].value = value
}

// ForEach walks front to back until cb returns false.
func (l *HandleList[T]) ForEach(cb func(Handle, T) bool) {
	for h := l.nodes[Head].next; h != Tail; h = l.nodes[h].next {
		if !cb(h, l.nodes[h].value) {
			return
		}
	}
}

// Validate walks the chain and reports every broken link it finds.
func (l *HandleList[T]) Validate() error {
	violations := errors.NewMultiError()
	if l.nodes[Head].prev != nilHandle {
		violations.Add(errors.Errorf("head sentinel has prev %d", l.nodes[Head].prev))
	}
	if l.nodes[Tail].next != nilHandle {
		violations.Add(errors.Errorf("tail sentinel has next %d", l.nodes[Tail].next))
	}
	count := 0
	prev := Head
	for h := l.nodes[Head].next; h != Tail; h = l.nodes[h].next {
		if h < 0 || int(h) >= len(l.nodes) {
			violations.Add(errors.Errorf("node %d links to out of range handle %d", prev, h))
			return violations.ErrorOrNil()
		}
		if h == Head {
			violations.Add(errors.Errorf("node %d links back to the head sentinel", prev))
			return violations.ErrorOrNil()
		}
		if !l.nodes[h].live {
			violations.Add(errors.Errorf("detached node %d is reachable from node %d", h, prev))
		}
		if l.nodes[h].prev != prev {
			violations.Add(errors.Errorf("node %d.next is %d but node %d.prev is %d", prev, h, h, l.nodes[h].prev))
		}
		count++
		if count > len(l.nodes) {
			violations.Add(errors.Error("cycle detected"))
			return violations.ErrorOrNil()
		}
		prev = h
	}
	if l.nodes[Tail].prev != prev {
		violations.Add(errors.Errorf("tail sentinel prev is %d, last node is %d", l.nodes[Tail].prev, prev))
	}
	if count != l.size {
		violations.Add(errors.Errorf("chain holds %d nodes but size is %d", count, l.size))
	}
	if live := len(l.nodes) - 2 - len(l.free); live != l.size {
		violations.Add(errors.Errorf("arena holds %d live slots but size is %d", live, l.size))
	}
	return violations.ErrorOrNil()
}
