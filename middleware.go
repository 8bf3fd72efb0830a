package statethunk

import (
	"time"
)

// API is the live dispatch function and state accessor a pipeline hands to
// each middleware.
type API[S any] struct {
	Dispatch DispatchFunc
	GetState GetState[S]
}

// MiddlewareFunc is a dispatch pipeline stage. It receives the pipeline API,
// then the next stage, and returns the function that handles each value.
type MiddlewareFunc[S any] func(api API[S]) func(next DispatchFunc) DispatchFunc

// Middleware returns a pipeline stage that runs deferred values.
//
// A value that implements Deferred and reports SelectorAction true is run
// with the pipeline's dispatch and state accessor, and its result is
// returned; it is not passed on. Any other value, including plain functions
// and actions, is passed to the next stage unchanged.
//
// Example:
//
//	dispatch := statethunk.Apply(store.GetState, store.Reduce,
//	    statethunk.Middleware[State](statethunk.WithLogger(logger)),
//	)
//	dispatch(selectItem.AsDeferred())
func Middleware[S any](opts ...Option) MiddlewareFunc[S] {
	o := newOptions(opts)
	return func(api API[S]) func(next DispatchFunc) DispatchFunc {
		return func(next DispatchFunc) DispatchFunc {
			return func(value any) any {
				if d, ok := value.(Deferred[S]); ok && d.SelectorAction() {
					return runDeferred(&o, d, api)
				}
				o.forward(value)
				return next(value)
			}
		}
	}
}

// runDeferred calls intercept hooks, runs d and reports the result.
func runDeferred[S any](o *options, d Deferred[S], api API[S]) any {
	if v := o.logger.V(1); v.Enabled() {
		v.Info("running deferred action", "value", typeName(d))
	}
	for _, fn := range o.onIntercept {
		fn(d)
	}

	start := time.Now()
	result := d.Run(api.Dispatch, api.GetState)
	duration := time.Since(start)

	for _, fn := range o.onResult {
		fn(d, result, duration)
	}
	return result
}

func (o *options) forward(action any) {
	if v := o.logger.V(2); v.Enabled() {
		if t, ok := TypeOf(action); ok {
			v.Info("forwarding action", "type", t)
		} else {
			v.Info("forwarding action", "value", typeName(action))
		}
	}
	for _, fn := range o.onForward {
		fn(action)
	}
}

// Apply folds middleware over a base dispatch function and returns the
// resulting dispatch. Middleware run in the order given: for A, B, C the
// flow is A→B→C→base. The API handed to each middleware dispatches through
// the full chain, so values dispatched from a deferred computation pass
// through every stage again.
//
// A middleware that dispatches while it is being constructed panics.
func Apply[S any](getState GetState[S], base DispatchFunc, mws ...MiddlewareFunc[S]) DispatchFunc {
	var dispatch DispatchFunc = func(any) any {
		panic("statethunk: dispatching while constructing middleware is not allowed")
	}
	api := API[S]{
		Dispatch: func(action any) any { return dispatch(action) },
		GetState: getState,
	}

	stages := make([]func(DispatchFunc) DispatchFunc, len(mws))
	for i, mw := range mws {
		stages[i] = mw(api)
	}

	chain := base
	for i := len(stages) - 1; i >= 0; i-- {
		chain = stages[i](chain)
	}
	dispatch = chain
	return dispatch
}
