// Package statethunk composes selectors with action creators into units that
// compute their action from application state at dispatch time.
//
// A selector derives a value from the state. An action creator builds the
// action to dispatch. Compose joins them: when the resulting Unit runs, it
// reads the state, applies every selector in order, and calls the action
// creator with the selector results followed by the state.
//
// # Quick Start
//
// Declare the unit once, at package level:
//
//	type State struct {
//	    ActiveID int
//	}
//
//	var selectActive = statethunk.MustCompose[State](
//	    func(s State) int { return s.ActiveID },
//	    func(id int) statethunk.Action {
//	        return statethunk.Action{Type: "item/select", Payload: id}
//	    },
//	)
//
// Install the middleware in the dispatch pipeline and dispatch a deferred
// computation:
//
//	dispatch := statethunk.Apply(store.GetState, store.Reduce,
//	    statethunk.Middleware[State](),
//	)
//	dispatch(selectActive.AsDeferred())
//
// # Composing
//
// Selectors are given either as separate arguments or as one slice; both
// forms behave the same:
//
//	statethunk.Compose[State](selA, selB, create)
//	statethunk.Compose[State]([]any{selA, selB}, create)
//	statethunk.ComposeWithSelectors([]statethunk.Selector[State]{selA, selB}, create)
//
// ComposeWithSelectors is the typed form. Compose accepts loosely typed
// funcs and adapts them with reflection: a selector may take the state or
// nothing, and an action creator may declare fewer parameters than the
// arguments it receives, in which case the trailing arguments are dropped.
// That lets an action creator ignore the state argument.
//
// Arguments are validated when the unit is built, never when it runs:
//
//   - ErrArity: Compose was called without arguments
//   - ErrInvalidActionCreator: the last argument is not callable
//   - ErrInvalidSelector: a selector is not callable; each one is reported
//     as a *SelectorError
//
// # Running a Unit
//
// A Unit runs in one of two ways:
//
//   - AsDeferred returns a Thunk, a func of (dispatch, getState), that the
//     middleware or any other dispatch wrapper runs later
//   - RunNow runs immediately against a live dispatch and state accessor and
//     returns the dispatch result
//
// Call combines both for glue code that expects a single entry point: with
// a dispatch func and a state accessor it runs now; otherwise it returns a
// Thunk.
//
// OriginalActionCreator exposes the action creator as it was passed in, so
// tests can call it directly with literal arguments.
//
// # Recognition
//
// Units and Thunks implement Marked and report SelectorAction true. The
// middleware runs any value that implements Deferred and carries the marker,
// and passes every other value to the next stage unchanged. Code outside
// this package can take part by implementing Deferred.
//
// # Hooks and Logging
//
// The middleware accepts functional options:
//
//	statethunk.Middleware[State](
//	    statethunk.WithLogger(logger),
//	    statethunk.WithOnResult(func(value, result any, d time.Duration) {
//	        metrics.Timing("thunk.run", d)
//	    }),
//	)
//
// Available options:
//   - WithLogger: logr logger; intercepts at V(1), forwards at V(2)
//   - WithOnIntercept: called before a deferred value runs
//   - WithOnForward: called when a value is passed on
//   - WithOnResult: called after a deferred value returns
//
// TypeOf extracts an action's discriminant for logging. It understands
// Typer values, maps, and JSON encoded actions.
//
// # Errors at Run Time
//
// Panics raised by selectors, action creators or dispatch are not recovered.
// They reach the caller exactly as if the state access and dispatch had been
// written by hand.
//
// # Thread Safety
//
// Units are immutable after construction and safe for concurrent use. Every
// run reads the state afresh and builds a new action.
package statethunk
