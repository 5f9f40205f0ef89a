// Package store holds the process-wide observable values shared across
// screens: the authenticated session, the UI language and the toast queue.
// Each value has a single writer; readers subscribe and are notified on the
// writer's goroutine in subscription order.
package store

import "sync"

// Value is a single-writer observable. Zero value is not usable; construct
// with NewValue.
type Value[T any] struct {
	mu     sync.RWMutex
	val    T
	nextID int
	subs   map[int]func(T)
}

// NewValue builds an observable seeded with an initial value.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{val: initial, subs: make(map[int]func(T))}
}

// Get returns a snapshot of the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.val
}

// Set stores a new value and notifies every subscriber.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	v.val = val
	subs := make([]func(T), 0, len(v.subs))
	for _, fn := range v.subs {
		subs = append(subs, fn)
	}
	v.mu.Unlock()

	for _, fn := range subs {
		fn(val)
	}
}

// Subscribe registers fn for future updates and returns an unsubscribe
// function. fn is not called with the current value; use Get for that.
func (v *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.subs, id)
		v.mu.Unlock()
	}
}
