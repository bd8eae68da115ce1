package vango

import (
	"reflect"
	"sync"
)

// Signal is a reactive value container bound to an owner. A Set that changes
// the value marks the owner's root dirty.
type Signal[T any] struct {
	id    uint64
	owner *Owner

	// mu protects the value.
	mu    sync.RWMutex
	value T

	// equal is the equality function used to determine if the value changed.
	// If nil, uses default equality checking.
	equal func(T, T) bool
}

// NewSignal creates a new signal owned by o with the given initial value.
// A nil owner yields a detached signal that never marks anything dirty.
func NewSignal[T any](o *Owner, initial T) *Signal[T] {
	return &Signal[T]{
		id:    nextID(),
		owner: o,
		value: initial,
	}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value. Equal values are ignored.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	if s.equals(s.value, value) {
		s.mu.Unlock()
		return
	}
	s.value = value
	s.mu.Unlock()

	s.notify()
}

// Update sets the value to fn applied to the current value, atomically.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	next := fn(s.value)
	if s.equals(s.value, next) {
		s.mu.Unlock()
		return
	}
	s.value = next
	s.mu.Unlock()

	s.notify()
}

// WithEquals sets a custom equality function and returns the signal.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.id
}

// notify marks the owning tree dirty unless the owner is gone.
func (s *Signal[T]) notify() {
	if s.owner == nil || s.owner.IsDisposed() {
		return
	}
	s.owner.markDirty()
}

// equals checks if two values are equal using the configured equality function.
func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for common comparable types and reflect.DeepEqual
// for everything else.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int64:
		return av == any(b).(int64)
	case uint64:
		return av == any(b).(uint64)
	case float64:
		// NaN never equals itself; a NaN write is still a change.
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
