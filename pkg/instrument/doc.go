// Package instrument provides observability for reactive containers:
// Prometheus metrics over emissions and observer counts, and OpenTelemetry
// span wrapping for observer callbacks.
//
// Metrics:
//
//	m := instrument.NewMetrics(instrument.WithNamespace("myapp"))
//	instrument.Watch(m, "cart_items", items)
//
// Tracing:
//
//	items.Observe(instrument.Traced("cart_items", func(v []Item, ok bool) {
//	    render(v)
//	}))
package instrument
