package reval

import "sync"

// Container is a reactive value cell. It owns a single current value and an
// ordered list of observers notified on every write.
//
// A container is either absent (no value written yet) or holds exactly one
// current value; superseded values are never buffered. Every Set notifies
// every current observer exactly once, synchronously, before Set returns.
// There is no equality short-circuit: writing the same value again is
// observable.
type Container[T any] struct {
	subs registry

	// mu protects value and present.
	mu      sync.RWMutex
	value   T
	present bool
}

// New creates an absent container. Observers registered before the first
// write are invoked once with the zero value and present == false.
func New[T any]() *Container[T] {
	return &Container[T]{}
}

// NewWith creates a container holding initial. The value is stored without
// notifying; no observers can exist yet.
func NewWith[T any](initial T) *Container[T] {
	return &Container[T]{
		value:   initial,
		present: true,
	}
}

// Get returns the current value and whether one is present.
func (c *Container[T]) Get() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.present
}

// Value returns the current value, or the zero value when absent.
func (c *Container[T]) Value() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set stores v and notifies all current observers with it.
// Notification is unconditional: there is no equality check, so every
// assignment is observable, including re-assignment of an equal value.
func (c *Container[T]) Set(v T) {
	c.mu.Lock()
	c.value = v
	c.present = true
	c.mu.Unlock()

	c.subs.notify(v, true)
}

// ForceNotify re-delivers the current value to all observers without
// changing it. Use after mutating a referenced object in place (for example
// a slice held by the container) where the stored value itself is unchanged.
func (c *Container[T]) ForceNotify() {
	c.mu.RLock()
	v, present := c.value, c.present
	c.mu.RUnlock()

	c.subs.notify(v, present)
}

// Observe registers fn and immediately invokes it once with the container's
// current value and presence, so a late observer is synchronized with
// present state. The returned handle removes the subscription when disposed.
func (c *Container[T]) Observe(fn func(value T, present bool)) *Handle {
	h := &Handle{
		id:    nextID(),
		owner: &c.subs,
		fn: func(value any, present bool) {
			if value == nil {
				var zero T
				fn(zero, present)
				return
			}
			fn(value.(T), present)
		},
	}
	c.subs.add(h)

	v, present := c.Get()
	if !h.disposed.Load() {
		fn(v, present)
	}

	return h
}

// Dispose removes one subscription. It is idempotent; disposing an unknown
// or already-disposed handle is a no-op.
func (c *Container[T]) Dispose(h *Handle) {
	h.Dispose()
}

// DisposeAll removes every subscription currently registered. The container
// itself stays usable: subsequent writes succeed and simply reach zero
// observers.
func (c *Container[T]) DisposeAll() {
	c.subs.removeAll()
}

// Observers returns the number of active subscriptions.
func (c *Container[T]) Observers() int {
	return c.subs.size()
}
