package reval

import "sync/atomic"

// Handle identifies one active subscription on a container.
// It is returned by Observe and can be passed to Container.Dispose for
// targeted removal, or disposed directly via Handle.Dispose.
//
// A disposed handle never fires again, even if a write is in flight on
// another goroutine when Dispose returns.
type Handle struct {
	id uint64

	// fn receives the container's value and presence flag.
	// Type-erased so the registry can stay non-generic.
	fn func(value any, present bool)

	// disposed suppresses delivery once set. Checked immediately before
	// every invocation, so disposal from inside a notification pass
	// (including self-disposal) takes effect within that same pass.
	disposed atomic.Bool

	// owner is the registry this handle is registered with.
	owner *registry
}

// ID returns the unique identifier for this subscription.
func (h *Handle) ID() uint64 {
	return h.id
}

// Dispose removes this subscription from its container.
// It is idempotent and safe to call from inside the handle's own callback.
func (h *Handle) Dispose() {
	if h == nil {
		return
	}
	if h.disposed.CompareAndSwap(false, true) {
		h.owner.remove(h.id)
	}
}

// Disposed reports whether the handle has been disposed.
func (h *Handle) Disposed() bool {
	return h.disposed.Load()
}
