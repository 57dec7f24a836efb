package reval

import "time"

// Delay returns a container that re-emits every qualifying source value,
// each shifted later by d. Unlike Debounce, nothing is ever cancelled:
// every value is eventually emitted. Completion order across overlapping
// delays follows the runtime's timers and is not guaranteed to match issue
// order.
//
// Absent source notifications are skipped unless the EmitAbsent option is
// given.
func Delay[T any](source *Container[T], d time.Duration, opts ...Option) *Container[T] {
	cfg := applyOptions(opts)
	delayed := New[T]()

	source.Observe(func(v T, present bool) {
		if !present && !cfg.emitAbsent {
			return
		}
		time.AfterFunc(d, func() {
			delayed.Set(v)
		})
	})

	return delayed
}
