package reval

import "context"

// Map returns a container whose value is fn applied to the source's value,
// kept in sync through a subscription. Because Observe delivers the current
// value on subscribe, the mapped container receives an initial computed
// value synchronously when the source already holds one.
//
// Absent source notifications are skipped unless the EmitAbsent option is
// given, in which case fn receives the zero value. A panic in fn propagates
// out of the triggering Set; the mapped container keeps its last good value.
func Map[T, M any](source *Container[T], fn func(T) M, opts ...Option) *Container[M] {
	cfg := applyOptions(opts)
	mapped := New[M]()

	source.Observe(func(v T, present bool) {
		if !present && !cfg.emitAbsent {
			return
		}
		mapped.Set(fn(v))
	})

	return mapped
}

// MapAsync returns a container asynchronously derived from the source. Each
// qualifying source notification launches fn in its own goroutine; on
// success the result is written through Set so notification semantics stay
// uniform with plain writes.
//
// No ordering is imposed between overlapping invocations: if fn is invoked
// again before a previous call completes, the mapped value reflects
// whichever call completes last, which may be the stale one. Use SwitchMap
// when latest-wins semantics are required.
//
// Errors from fn are dropped unless the OnError option is given.
func MapAsync[T, M any](source *Container[T], fn func(context.Context, T) (M, error), opts ...Option) *Container[M] {
	cfg := applyOptions(opts)
	mapped := New[M]()

	source.Observe(func(v T, present bool) {
		if !present && !cfg.emitAbsent {
			return
		}
		go func() {
			result, err := fn(cfg.ctx, v)
			if err != nil {
				cfg.fail(err)
				return
			}
			mapped.Set(result)
		}()
	})

	return mapped
}
