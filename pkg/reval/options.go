package reval

import "context"

// Option configures an operator.
type Option func(*operatorOptions)

// operatorOptions holds configuration shared by all operators.
type operatorOptions struct {
	// emitAbsent forwards absent source notifications to the operator's
	// function (which then receives the zero value) instead of skipping them.
	emitAbsent bool

	// onError receives failures from asynchronous operators.
	onError func(error)

	// ctx is the base context for asynchronous work.
	ctx context.Context
}

// EmitAbsent makes an operator process absent source notifications instead
// of skipping them. The operator's function receives the zero value for an
// absent source.
func EmitAbsent() Option {
	return func(o *operatorOptions) {
		o.emitAbsent = true
	}
}

// OnError registers a callback for failures of asynchronous operators
// (MapAsync, FromFunc). Without it, failed results are dropped and the
// derived container keeps its last good value.
func OnError(fn func(error)) Option {
	return func(o *operatorOptions) {
		o.onError = fn
	}
}

// WithContext sets the base context passed to asynchronous operator
// functions. Defaults to context.Background().
func WithContext(ctx context.Context) Option {
	return func(o *operatorOptions) {
		o.ctx = ctx
	}
}

// applyOptions applies the given options and returns the resulting config.
func applyOptions(opts []Option) operatorOptions {
	options := operatorOptions{ctx: context.Background()}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// fail reports err through the configured callback, if any.
func (o *operatorOptions) fail(err error) {
	if o.onError != nil {
		o.onError(err)
	}
}
