// Package reval provides reactive value containers.
//
// A Container[T] holds a single current value and notifies its observers on
// every write. Unlike an event bus, a container has no history: observers
// always see only the latest value, and a late observer is synchronized with
// the present state the moment it subscribes.
//
// # Core Types
//
// Container[T] is the reactive value cell:
//
//	count := reval.NewWith(0)
//	h := count.Observe(func(n int, ok bool) {
//	    fmt.Println("count is", n)
//	})          // prints "count is 0" immediately
//	count.Set(5) // prints "count is 5"
//	h.Dispose()
//
// A container starts absent when created with New; the boolean passed to
// observers reports presence. Every Set notifies, even when the new value
// equals the old one. This keeps behavior predictable for types without
// meaningful equality and makes deliberate re-broadcast (ForceNotify) work
// the same way as a write.
//
// # Derived Containers
//
// Operators build new containers kept in sync with their sources through
// ordinary subscriptions:
//
//	names := reval.Map(users, func(u User) string { return u.Name })
//	full := reval.Combine(first, last, func(a, b string) string { return a + " " + b })
//	calm := reval.Debounce(input, 100*time.Millisecond)
//	rows := reval.SwitchMap(query, func(q string) *reval.Container[[]Row] { ... })
//
// Absent source values are skipped by operators unless the EmitAbsent option
// is given.
//
// # Thread Safety
//
// Observing, disposing, writing, and reading are safe from multiple
// goroutines. Notifications for a single write are delivered synchronously,
// in subscription order, against a snapshot of the subscriber list, so an
// observer may dispose itself (or any other handle) from inside its own
// callback. Ordering across containers linked by asynchronous operators is
// not guaranteed.
package reval
