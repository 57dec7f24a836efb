package instrument

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for reval applications.
const defaultTracerName = "reval"

// TraceConfig configures the traced observer wrapper.
type TraceConfig struct {
	// TracerName is the name of the tracer (default: "reval").
	TracerName string

	// Attributes are added to every emission span.
	Attributes []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// TraceOption configures the traced observer wrapper.
type TraceOption func(*TraceConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TraceOption {
	return func(c *TraceConfig) {
		c.TracerName = name
	}
}

// WithAttributes adds attributes to every emission span.
func WithAttributes(attrs ...attribute.KeyValue) TraceOption {
	return func(c *TraceConfig) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// Traced wraps an observer callback so every emission runs inside an
// OpenTelemetry span named "reval.emission", carrying the container name and
// presence flag as attributes. A panic in the callback is recorded on the
// span with error status before propagating.
func Traced[T any](name string, fn func(T, bool), opts ...TraceOption) func(T, bool) {
	config := TraceConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return func(v T, present bool) {
		_, span := config.tracer.Start(context.Background(), "reval.emission",
			trace.WithSpanKind(trace.SpanKindInternal))
		span.SetAttributes(
			attribute.String("reval.container", name),
			attribute.Bool("reval.present", present),
		)
		span.SetAttributes(config.Attributes...)

		defer func() {
			if r := recover(); r != nil {
				span.SetStatus(codes.Error, fmt.Sprint(r))
				span.End()
				panic(r)
			}
			span.End()
		}()

		fn(v, present)
	}
}
