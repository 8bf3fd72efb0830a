package statethunk

import (
	"fmt"
	"reflect"
)

// Selector derives a value from the application state.
type Selector[S any] func(state S) any

// ActionCreator builds an action from the selector results followed by the
// state itself. For a unit with N selectors, args has N+1 elements.
type ActionCreator func(args ...any) any

// DispatchFunc hands an action to a dispatch pipeline and returns whatever
// the pipeline returns.
type DispatchFunc func(action any) any

// GetState returns the current application state.
type GetState[S any] func() S

// adaptSelector turns a selector-like value into a Selector. Besides the
// Selector type itself it accepts any func with no parameters or a single
// parameter the state is assignable to. The first result, if any, is the
// derived value.
func adaptSelector[S any](v any, index int) (Selector[S], error) {
	switch fn := v.(type) {
	case Selector[S]:
		if fn != nil {
			return fn, nil
		}
	case func(S) any:
		if fn != nil {
			return Selector[S](fn), nil
		}
	default:
		if sel, ok := reflectSelector[S](v); ok {
			return sel, nil
		}
	}
	return nil, &SelectorError{Index: index, Type: typeName(v)}
}

func reflectSelector[S any](v any) (Selector[S], bool) {
	fn := reflect.ValueOf(v)
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return nil, false
	}
	ft := fn.Type()
	stateType := reflect.TypeOf((*S)(nil)).Elem()

	var takesState bool
	switch {
	case ft.NumIn() == 0:
	case ft.NumIn() == 1 && !ft.IsVariadic() && stateType.AssignableTo(ft.In(0)):
		takesState = true
	case ft.NumIn() == 1 && ft.IsVariadic() && stateType.AssignableTo(ft.In(0).Elem()):
		takesState = true
	default:
		return nil, false
	}

	return func(state S) any {
		var in []reflect.Value
		if takesState {
			in = append(in, reflect.ValueOf(&state).Elem())
		}
		return firstResult(fn.Call(in))
	}, true
}

// AdaptActionCreator turns an action-creator-like value into an
// ActionCreator for a unit with the given number of selectors.
//
// ActionCreator and func(...any) any values are returned as is. Any other
// func is called through reflection: when it declares fewer parameters than
// the N+1 arguments it receives, the trailing arguments are dropped, nil
// arguments become zero values, and its first result is the action. A func
// that declares more fixed parameters than it can receive is rejected.
func AdaptActionCreator(v any, selectors int) (ActionCreator, error) {
	switch fn := v.(type) {
	case ActionCreator:
		if fn != nil {
			return fn, nil
		}
		return nil, &actionCreatorError{reason: "nil ActionCreator"}
	case func(...any) any:
		if fn != nil {
			return fn, nil
		}
		return nil, &actionCreatorError{reason: "nil func"}
	}

	fn := reflect.ValueOf(v)
	if fn.Kind() != reflect.Func {
		return nil, &actionCreatorError{reason: "got " + typeName(v)}
	}
	if fn.IsNil() {
		return nil, &actionCreatorError{reason: "nil " + typeName(v)}
	}

	ft := fn.Type()
	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
	}
	if fixed > selectors+1 {
		return nil, &actionCreatorError{
			reason: fmt.Sprintf("%s declares %d parameters but receives %d", ft, fixed, selectors+1),
		}
	}

	return func(args ...any) any {
		in := make([]reflect.Value, 0, len(args))
		for i, arg := range args {
			var pt reflect.Type
			switch {
			case i < fixed:
				pt = ft.In(i)
			case ft.IsVariadic():
				pt = ft.In(fixed).Elem()
			default:
				return firstResult(fn.Call(in))
			}
			in = append(in, argValue(arg, pt, i))
		}
		return firstResult(fn.Call(in))
	}, nil
}

// argValue prepares an argument for a reflective call. A value that is not
// assignable to the parameter type panics.
func argValue(arg any, t reflect.Type, i int) reflect.Value {
	if arg == nil {
		return reflect.Zero(t)
	}
	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(t) {
		panic(fmt.Sprintf("statethunk: argument %d of type %s is not assignable to %s", i, v.Type(), t))
	}
	return v
}

func firstResult(out []reflect.Value) any {
	if len(out) == 0 {
		return nil
	}
	return out[0].Interface()
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// asDispatch adapts v to a DispatchFunc. Besides DispatchFunc itself it
// accepts any func with a single parameter, such as a caller's own named
// dispatch type or a func(Action) any. The action must be assignable to the
// parameter when the func is called. The first result, if any, is returned.
func asDispatch(v any) (DispatchFunc, bool) {
	switch fn := v.(type) {
	case DispatchFunc:
		return fn, fn != nil
	case func(any) any:
		return fn, fn != nil
	}

	fn := reflect.ValueOf(v)
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return nil, false
	}
	ft := fn.Type()
	if ft.NumIn() != 1 || ft.IsVariadic() {
		return nil, false
	}
	if ft.ConvertibleTo(dispatchType) {
		return fn.Convert(dispatchType).Interface().(DispatchFunc), true
	}

	pt := ft.In(0)
	return func(action any) any {
		return firstResult(fn.Call([]reflect.Value{argValue(action, pt, 0)}))
	}, true
}

// asGetState adapts v to a GetState. Besides GetState itself it accepts any
// func with no parameters whose first result holds the state: either a type
// assignable to S, or an interface the state satisfies. In the latter case a
// result that is not an S panics when the func is called.
func asGetState[S any](v any) (GetState[S], bool) {
	switch fn := v.(type) {
	case GetState[S]:
		return fn, fn != nil
	case func() S:
		return fn, fn != nil
	}

	fn := reflect.ValueOf(v)
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return nil, false
	}
	ft := fn.Type()
	stateType := reflect.TypeOf((*S)(nil)).Elem()
	if ft.NumIn() != 0 || ft.NumOut() == 0 {
		return nil, false
	}
	out := ft.Out(0)
	if !out.AssignableTo(stateType) && !(out.Kind() == reflect.Interface && stateType.AssignableTo(out)) {
		return nil, false
	}

	return func() S {
		var state S
		result := fn.Call(nil)[0]
		if result.Kind() == reflect.Interface {
			if result.IsNil() {
				return state
			}
			result = result.Elem()
		}
		if !result.Type().AssignableTo(stateType) {
			panic(fmt.Sprintf("statethunk: state of type %s is not assignable to %s", result.Type(), stateType))
		}
		reflect.ValueOf(&state).Elem().Set(result)
		return state
	}, true
}

// isFunc reports whether v is a non-nil func.
func isFunc(v any) bool {
	fn := reflect.ValueOf(v)
	return fn.Kind() == reflect.Func && !fn.IsNil()
}

var dispatchType = reflect.TypeOf(DispatchFunc(nil))
