package reval

import (
	"sync"
	"time"
)

// Debounce returns a container that emits the source's value only after the
// source has been quiet for d. Each qualifying source notification cancels
// the previously scheduled emission and schedules a fresh one, so of a burst
// of writes arriving faster than d apart, only the last value is emitted,
// d after the last write.
//
// Absent source notifications are skipped unless the EmitAbsent option is
// given.
func Debounce[T any](source *Container[T], d time.Duration, opts ...Option) *Container[T] {
	cfg := applyOptions(opts)
	debounced := New[T]()

	var mu sync.Mutex
	var pending *time.Timer
	var seq uint64

	source.Observe(func(v T, present bool) {
		if !present && !cfg.emitAbsent {
			return
		}

		mu.Lock()
		defer mu.Unlock()

		// Nil on the first notification: nothing scheduled yet.
		if pending != nil {
			pending.Stop()
		}
		// Stop does not guarantee the timer callback has not started, so a
		// sequence number guards against a superseded emission sneaking in.
		seq++
		mine := seq
		pending = time.AfterFunc(d, func() {
			mu.Lock()
			stale := mine != seq
			mu.Unlock()
			if stale {
				return
			}
			debounced.Set(v)
		})
	})

	return debounced
}
