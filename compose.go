package statethunk

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Unit is a composed action creator. It is built once, usually at package
// initialization, and is safe for concurrent use: its selectors and action
// creator never change after construction.
type Unit[S any] struct {
	selectors []Selector[S]
	create    ActionCreator
	original  any
}

// ComposeWithSelectors builds a Unit from an ordered list of selectors and
// an action creator. The action creator receives each selector's result in
// order, followed by the state.
//
// Example:
//
//	selectItem, err := statethunk.ComposeWithSelectors(
//	    []statethunk.Selector[State]{activeID},
//	    func(args ...any) any {
//	        return statethunk.Action{Type: "item/select", Payload: args[0]}
//	    },
//	)
func ComposeWithSelectors[S any](selectors []Selector[S], creator ActionCreator) (*Unit[S], error) {
	if creator == nil {
		return nil, &actionCreatorError{reason: "nil ActionCreator"}
	}

	var errs *multierror.Error
	for i, sel := range selectors {
		if sel == nil {
			errs = multierror.Append(errs, &SelectorError{Index: i, Type: typeName(sel)})
		}
	}
	if err := finish(errs); err != nil {
		return nil, err
	}

	return newUnit(selectors, creator, creator), nil
}

// Compose builds a Unit from loosely typed arguments. The last argument is
// the action creator and every preceding argument is a selector, unless
// exactly two arguments are given and the first is a slice or array, in
// which case its elements are the selectors.
//
// Selectors may be Selector values or any func taking no parameters or a
// single parameter the state is assignable to. The action creator may be an
// ActionCreator or any func; see AdaptActionCreator for how it is called.
//
// Validation happens here, not when the Unit is used. Compose returns
// ErrArity without arguments, ErrInvalidActionCreator when the last argument
// is not callable, and ErrInvalidSelector when any selector is not callable.
// Every rejected selector is reported as a *SelectorError.
//
// Example:
//
//	selectItem, err := statethunk.Compose[State](
//	    func(s State) int { return s.ActiveID },
//	    func(id int) statethunk.Action {
//	        return statethunk.Action{Type: "item/select", Payload: id}
//	    },
//	)
func Compose[S any](args ...any) (*Unit[S], error) {
	if len(args) == 0 {
		return nil, ErrArity
	}

	last := args[len(args)-1]
	leading := args[:len(args)-1]
	if len(args) == 2 {
		if seq, ok := sequence(args[0]); ok {
			leading = seq
		}
	}

	creator, err := AdaptActionCreator(last, len(leading))
	if err != nil {
		return nil, err
	}

	var errs *multierror.Error
	selectors := make([]Selector[S], 0, len(leading))
	for i, v := range leading {
		sel, err := adaptSelector[S](v, i)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		selectors = append(selectors, sel)
	}
	if err := finish(errs); err != nil {
		return nil, err
	}

	return newUnit(selectors, creator, last), nil
}

// MustCompose is like Compose but panics if the arguments are invalid. Use
// it for package-level declarations.
func MustCompose[S any](args ...any) *Unit[S] {
	u, err := Compose[S](args...)
	if err != nil {
		panic(err)
	}
	return u
}

func newUnit[S any](selectors []Selector[S], creator ActionCreator, original any) *Unit[S] {
	return &Unit[S]{
		selectors: append([]Selector[S](nil), selectors...),
		create:    creator,
		original:  original,
	}
}

// sequence returns the elements of v when v is a slice or array.
func sequence(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// finish flattens collected selector errors into a single error.
func finish(errs *multierror.Error) error {
	if errs == nil {
		return nil
	}
	errs.ErrorFormat = func(es []error) string {
		msgs := make([]string, len(es))
		for i, e := range es {
			msgs[i] = e.Error()
		}
		return strings.Join(msgs, "; ")
	}
	return errs.ErrorOrNil()
}

// Len returns the number of selectors.
func (u *Unit[S]) Len() int { return len(u.selectors) }

// OriginalActionCreator returns the action creator exactly as it was passed
// to Compose or ComposeWithSelectors, so tests can call it with literal
// arguments.
func (u *Unit[S]) OriginalActionCreator() any { return u.original }

// SelectorAction implements Marked.
func (u *Unit[S]) SelectorAction() bool { return true }

// Compute applies the selectors to state in construction order and returns
// the action built from their results.
func (u *Unit[S]) Compute(state S) any {
	args := make([]any, 0, len(u.selectors)+1)
	for _, sel := range u.selectors {
		args = append(args, sel(state))
	}
	args = append(args, state)
	return u.create(args...)
}

// RunNow reads the state, computes the action and dispatches it. It returns
// the result of dispatch.
func (u *Unit[S]) RunNow(dispatch DispatchFunc, getState GetState[S]) any {
	return dispatch(u.Compute(getState()))
}

// Run implements Deferred. It is the same as RunNow, which lets a Unit be
// dispatched directly through the middleware.
func (u *Unit[S]) Run(dispatch DispatchFunc, getState GetState[S]) any {
	return u.RunNow(dispatch, getState)
}

// AsDeferred returns a new Thunk that runs the unit when given a dispatch
// function and state accessor.
func (u *Unit[S]) AsDeferred() Thunk[S] {
	return func(dispatch DispatchFunc, getState GetState[S]) any {
		return u.RunNow(dispatch, getState)
	}
}

// Call is the dual-mode entry point expected by dispatch glue. Given a
// dispatch function and a state accessor it runs immediately and returns the
// dispatch result. Given anything else, including no arguments, it returns
// a Thunk.
//
// The dispatch function may be any func of one parameter, such as a named
// dispatch type or a func(Action) any. The accessor may be any func of no
// parameters whose result is the state or an interface holding it. Two
// funcs that cannot serve in those roles panic with an error wrapping
// ErrUnusableLiveCall.
func (u *Unit[S]) Call(args ...any) any {
	if len(args) == 2 {
		dispatch, okDispatch := asDispatch(args[0])
		getState, okState := asGetState[S](args[1])
		if okDispatch && okState {
			return u.RunNow(dispatch, getState)
		}
		if isFunc(args[0]) && isFunc(args[1]) {
			panic(fmt.Errorf("%w: got %s and %s", ErrUnusableLiveCall, typeName(args[0]), typeName(args[1])))
		}
	}
	return u.AsDeferred()
}
