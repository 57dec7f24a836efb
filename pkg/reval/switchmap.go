package reval

import "sync"

// SwitchMap maps each source value to a new inner container and keeps the
// returned container in sync with the latest inner one. On every qualifying
// source notification the previous inner subscription is disposed before fn
// runs, so exactly one inner subscription is active at any time: writes to a
// superseded inner container never reach the result.
//
// Observing the new inner container copies its current value into the result
// immediately (Observe's catch-up invoke) and keeps propagating its future
// changes until the next source notification replaces it.
//
// Absent source notifications are skipped unless the EmitAbsent option is
// given.
func SwitchMap[T, M any](source *Container[T], fn func(T) *Container[M], opts ...Option) *Container[M] {
	cfg := applyOptions(opts)
	mapped := New[M]()

	var mu sync.Mutex
	var inner *Handle

	source.Observe(func(v T, present bool) {
		if !present && !cfg.emitAbsent {
			return
		}

		mu.Lock()
		defer mu.Unlock()

		if inner != nil {
			inner.Dispose()
			inner = nil
		}

		next := fn(v)
		if next == nil {
			return
		}
		inner = next.Observe(func(m M, innerPresent bool) {
			if !innerPresent && !cfg.emitAbsent {
				return
			}
			mapped.Set(m)
		})
	})

	return mapped
}
