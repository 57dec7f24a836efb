package reval

import (
	"context"
	"time"
)

const (
	// DefaultBlockingGetTimeout is how long BlockingGet waits when callers
	// use it as the conventional timeout.
	DefaultBlockingGetTimeout = 5 * time.Second

	// blockingGetInterval is the polling period of BlockingGet. The wait is
	// a coarse poll rather than an event-driven one; it trades latency for
	// staying out of the container's subscription model.
	blockingGetInterval = 10 * time.Millisecond
)

// FromFunc returns an immediately-available absent container and launches fn
// in the background; on success the result is written into the container
// through Set. Errors are dropped unless the OnError option is given, in
// which case the container simply stays absent (or keeps its current value).
func FromFunc[T any](fn func(context.Context) (T, error), opts ...Option) *Container[T] {
	cfg := applyOptions(opts)
	c := New[T]()

	go func() {
		v, err := fn(cfg.ctx)
		if err != nil {
			cfg.fail(err)
			return
		}
		c.Set(v)
	}()

	return c
}

// BlockingGet polls the container until it holds a value or timeout elapses.
// It returns the value and true once present, or the zero value and false on
// timeout. Timing out is not an error.
func BlockingGet[T any](c *Container[T], timeout time.Duration) (T, bool) {
	if v, ok := c.Get(); ok {
		return v, true
	}

	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(blockingGetInterval)
	defer ticker.Stop()

	for now := range ticker.C {
		if v, ok := c.Get(); ok {
			return v, true
		}
		if now.After(deadline) {
			break
		}
	}

	var zero T
	return zero, false
}
