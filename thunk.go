package statethunk

// Marked is implemented by values that take part in the recognition
// protocol. A value whose SelectorAction method reports true declares that
// it was produced by this package, or by code interoperating with it, and
// should be run by the middleware instead of being forwarded.
type Marked interface {
	SelectorAction() bool
}

// Deferred is a computation the middleware can run with its live dispatch
// and state accessor. Unit and Thunk both implement it.
type Deferred[S any] interface {
	Marked
	Run(dispatch DispatchFunc, getState GetState[S]) any
}

// Thunk computes an action from the current state and dispatches it. A new
// Thunk is returned by every call to Unit.AsDeferred.
type Thunk[S any] func(dispatch DispatchFunc, getState GetState[S]) any

// SelectorAction implements Marked.
func (Thunk[S]) SelectorAction() bool { return true }

// Run executes the thunk and returns the dispatch result.
func (t Thunk[S]) Run(dispatch DispatchFunc, getState GetState[S]) any {
	return t(dispatch, getState)
}

// IsMarked reports whether v carries a true recognition marker.
func IsMarked(v any) bool {
	m, ok := v.(Marked)
	return ok && m.SelectorAction()
}

// Verify interface implementations
var (
	_ Deferred[any] = Thunk[any](nil)
	_ Deferred[any] = (*Unit[any])(nil)
)
