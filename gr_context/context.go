// Package gr_context keeps small key/value maps scoped to the calling goroutine.
package gr_context

import (
	"sync"

	"github.com/petermattis/goid"
)

var (
	mutex    sync.RWMutex
	contexts = map[int64]map[string]interface{}{}
)

func Put(key string, v interface{}) {
	id := goid.Get()
	mutex.Lock()
	defer mutex.Unlock()
	ctx, ok := contexts[id]
	if !ok {
		ctx = make(map[string]interface{})
		contexts[id] = ctx
	}
	ctx[key] = v
}

func Get(key string) interface{} {
	id := goid.Get()
	mutex.RLock()
	defer mutex.RUnlock()
	return contexts[id][key]
}

func Delete(key string) {
	id := goid.Get()
	mutex.Lock()
	defer mutex.Unlock()
	ctx, ok := contexts[id]
	if !ok {
		return
	}
	delete(ctx, key)
	if len(ctx) == 0 {
		delete(contexts, id)
	}
}

// All returns a copy of the current goroutine's context.
func All() map[string]interface{} {
	id := goid.Get()
	mutex.RLock()
	defer mutex.RUnlock()
	res := make(map[string]interface{}, len(contexts[id]))
	for k, v := range contexts[id] {
		res[k] = v
	}
	return res
}

// Clear drops everything stored by the current goroutine. Goroutines that
// used Put should call it before exiting, ids are not reclaimed otherwise.
func Clear() {
	id := goid.Get()
	mutex.Lock()
	defer mutex.Unlock()
	delete(contexts, id)
}

func ID() int64 {
	return goid.Get()
}
