package reval

import "sync"

// registry is the ordered set of subscriptions on one container.
// It is embedded in Container[T] and shares its lifetime.
//
// Removal preserves subscription order: notification order for a single
// write is part of the container contract, so handles are never swap-removed.
type registry struct {
	mu      sync.Mutex
	handles []*Handle
}

// add registers a handle at the end of the notification order.
func (r *registry) add(h *Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handles = append(r.handles, h)
}

// remove unregisters the handle with the given ID.
// Unknown IDs are a no-op.
func (r *registry) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, h := range r.handles {
		if h.id == id {
			r.handles = append(r.handles[:i], r.handles[i+1:]...)
			return
		}
	}
}

// removeAll unregisters every handle and marks each one disposed.
func (r *registry) removeAll() {
	r.mu.Lock()
	handles := r.handles
	r.handles = nil
	r.mu.Unlock()

	for _, h := range handles {
		h.disposed.Store(true)
	}
}

// snapshot returns a copy of the current handles for iteration.
// Copy-before-notify keeps the lock out of observer callbacks, so a callback
// may observe, dispose, or write without deadlocking.
func (r *registry) snapshot() []*Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.handles) == 0 {
		return nil
	}
	out := make([]*Handle, len(r.handles))
	copy(out, r.handles)
	return out
}

// size returns the number of active subscriptions.
func (r *registry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// notify delivers the value to every handle in the snapshot, in subscription
// order, skipping handles disposed since the snapshot was taken.
func (r *registry) notify(value any, present bool) {
	for _, h := range r.snapshot() {
		if h.disposed.Load() {
			continue
		}
		h.fn(value, present)
	}
}
