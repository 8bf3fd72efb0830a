package statethunk

import (
	"time"

	"github.com/go-logr/logr"
)

// OnInterceptFunc is called when the middleware recognizes a deferred value,
// before it runs.
type OnInterceptFunc func(value any)

// OnForwardFunc is called when the middleware passes a value to the next
// stage.
type OnForwardFunc func(action any)

// OnResultFunc is called after a deferred value has run, with its result and
// how long it took.
type OnResultFunc func(value, result any, duration time.Duration)

// options holds middleware configuration.
type options struct {
	logger      logr.Logger
	onIntercept []OnInterceptFunc
	onForward   []OnForwardFunc
	onResult    []OnResultFunc
}

func newOptions(opts []Option) options {
	o := options{logger: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures the middleware.
type Option func(*options)

// WithLogger sets the logger used by the middleware. Intercepted values are
// logged at V(1) and forwarded values at V(2).
//
// Example:
//
//	statethunk.Middleware[State](statethunk.WithLogger(logger.WithName("thunk")))
func WithLogger(l logr.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithOnIntercept adds a hook called before a deferred value runs.
// Multiple hooks are called in order.
func WithOnIntercept(fn OnInterceptFunc) Option {
	return func(o *options) {
		o.onIntercept = append(o.onIntercept, fn)
	}
}

// WithOnForward adds a hook called when a value is passed to the next stage.
// Multiple hooks are called in order.
func WithOnForward(fn OnForwardFunc) Option {
	return func(o *options) {
		o.onForward = append(o.onForward, fn)
	}
}

// WithOnResult adds a hook called after a deferred value returns. It is not
// called when the deferred value panics.
// Multiple hooks are called in order.
//
// Example:
//
//	statethunk.WithOnResult(func(value, result any, d time.Duration) {
//	    metrics.Timing("thunk.run", d)
//	})
func WithOnResult(fn OnResultFunc) Option {
	return func(o *options) {
		o.onResult = append(o.onResult, fn)
	}
}
