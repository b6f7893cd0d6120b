package observe

import "sync"

// Observable holds a value of type T and notifies listeners when it changes.
//
// Create with [NewObservable] or [NewObservableWithEquality]. Listeners are
// invoked synchronously on the goroutine that calls Set, after the new value
// has been stored.
type Observable[T any] struct {
	mu        sync.Mutex
	value     T
	equals    func(a, b T) bool
	listeners map[int]func(T)
	nextID    int
}

// NewObservable creates an observable with the given initial value.
// Every call to Set notifies listeners, even if the value is unchanged.
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{
		value:     initial,
		listeners: make(map[int]func(T)),
	}
}

// NewObservableWithEquality creates an observable that skips notification
// when the equality function reports the new value equal to the current one.
func NewObservableWithEquality[T any](initial T, equals func(a, b T) bool) *Observable[T] {
	obs := NewObservable(initial)
	obs.equals = equals
	return obs
}

// Value returns the current value.
func (o *Observable[T]) Value() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Set stores a new value and notifies listeners.
func (o *Observable[T]) Set(value T) {
	o.mu.Lock()
	if o.equals != nil && o.equals(o.value, value) {
		o.mu.Unlock()
		return
	}
	o.value = value
	listeners := make([]func(T), 0, len(o.listeners))
	for _, fn := range o.listeners {
		listeners = append(listeners, fn)
	}
	o.mu.Unlock()

	// Notify outside the lock so listeners can read Value or mutate other
	// observables without deadlocking.
	for _, fn := range listeners {
		fn(value)
	}
}

// Update applies fn to the current value and stores the result.
func (o *Observable[T]) Update(fn func(T) T) {
	o.mu.Lock()
	next := fn(o.value)
	o.mu.Unlock()
	o.Set(next)
}

// AddListener registers a callback that fires whenever the value changes.
// Returns an unsubscribe function.
func (o *Observable[T]) AddListener(fn func(T)) func() {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.listeners[id] = fn
	o.mu.Unlock()
	return func() {
		o.mu.Lock()
		delete(o.listeners, id)
		o.mu.Unlock()
	}
}

// ListenerCount returns the number of registered listeners.
func (o *Observable[T]) ListenerCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.listeners)
}
