package statethunk

import (
	"errors"
	"fmt"
)

var (
	// ErrArity is returned when Compose is called without arguments.
	ErrArity = errors.New("compose requires at least an action creator")

	// ErrInvalidActionCreator is returned when the action creator is not a function.
	ErrInvalidActionCreator = errors.New("action creator must be callable")

	// ErrInvalidSelector is returned when any selector is not a function of
	// the state.
	ErrInvalidSelector = errors.New("selector must be callable")

	// ErrUnusableLiveCall is wrapped by the panic value of Unit.Call when it
	// is given two funcs that cannot serve as dispatch and state accessor.
	ErrUnusableLiveCall = errors.New("callable arguments cannot serve as dispatch and getState")
)

// SelectorError describes a single rejected selector. It wraps
// ErrInvalidSelector.
type SelectorError struct {
	// Index is the position of the selector in construction order.
	Index int

	// Type is the Go type of the rejected value.
	Type string
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("%s: selector %d is %s", ErrInvalidSelector, e.Index, e.Type)
}

func (e *SelectorError) Unwrap() error { return ErrInvalidSelector }

// actionCreatorError wraps ErrInvalidActionCreator with the reason the value
// was rejected.
type actionCreatorError struct {
	reason string
}

func (e *actionCreatorError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidActionCreator, e.reason)
}

func (e *actionCreatorError) Unwrap() error { return ErrInvalidActionCreator }
