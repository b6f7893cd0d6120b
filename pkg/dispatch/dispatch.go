// Package dispatch marshals callbacks onto the context that owns the fetch
// controllers, typically a UI event loop.
//
// The embedding application registers its scheduler once at startup:
//
//	dispatch.Register(func(cb func()) { runLoop.Post(cb) })
//
// Pipeline callbacks are then delivered through [Dispatch] so that observable
// state only ever mutates on the owning context.
package dispatch

import "sync"

var (
	mu           sync.RWMutex
	dispatchFunc func(callback func())
)

// Register sets the dispatch function used to schedule callbacks on the
// owning context. This should be called once during initialization.
func Register(fn func(callback func())) {
	mu.Lock()
	dispatchFunc = fn
	mu.Unlock()
}

// Reset clears the registered dispatch function. Intended for tests.
func Reset() {
	mu.Lock()
	dispatchFunc = nil
	mu.Unlock()
}

// Dispatch schedules a callback to run on the owning context.
// Returns true if the callback was successfully scheduled, false if no
// dispatch function is registered or the callback is nil.
func Dispatch(callback func()) bool {
	mu.RLock()
	fn := dispatchFunc
	mu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}
