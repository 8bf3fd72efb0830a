package statethunk

import (
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/suite"
)

type HooksSuite struct {
	suite.Suite
	unit *Unit[itemState]
}

func TestHooksSuite(t *testing.T) {
	suite.Run(t, new(HooksSuite))
}

func (s *HooksSuite) SetupTest() {
	s.unit = MustCompose[itemState](
		func(st itemState) int { return st.ActiveID },
		func(id int) Action { return Action{Type: "X", Payload: id} },
	)
}

func (s *HooksSuite) pipeline(opts ...Option) DispatchFunc {
	return Apply(stateOf(itemState{ActiveID: 1}), func(action any) any { return "reduced" },
		Middleware[itemState](opts...),
	)
}

func (s *HooksSuite) TestHooksRunInOrder() {
	var order []string

	dispatch := s.pipeline(
		WithOnIntercept(func(any) { order = append(order, "intercept-1") }),
		WithOnIntercept(func(any) { order = append(order, "intercept-2") }),
		WithOnForward(func(any) { order = append(order, "forward") }),
		WithOnResult(func(any, any, time.Duration) { order = append(order, "result") }),
	)
	dispatch(s.unit.AsDeferred())

	s.Assert().Equal([]string{"intercept-1", "intercept-2", "forward", "result"}, order)
}

func (s *HooksSuite) TestOnResultReceivesValueAndResult() {
	thunk := s.unit.AsDeferred()

	var gotValue, gotResult any
	var gotDuration time.Duration = -1
	dispatch := s.pipeline(WithOnResult(func(value, result any, d time.Duration) {
		gotValue, gotResult, gotDuration = value, result, d
	}))
	dispatch(thunk)

	s.Require().IsType(Thunk[itemState](nil), gotValue)
	s.Assert().Equal("reduced", gotResult)
	s.Assert().GreaterOrEqual(gotDuration, time.Duration(0))
}

func (s *HooksSuite) TestOnForwardReceivesAction() {
	var forwarded []any
	dispatch := s.pipeline(WithOnForward(func(action any) { forwarded = append(forwarded, action) }))

	dispatch(Action{Type: "plain"})

	s.Assert().Equal([]any{Action{Type: "plain"}}, forwarded)
}

func (s *HooksSuite) TestOnResultSkippedOnPanic() {
	called := false
	dispatch := s.pipeline(WithOnResult(func(any, any, time.Duration) { called = true }))
	boom := MustCompose[itemState](func(...any) any { panic("boom") })

	s.Assert().Panics(func() { dispatch(boom.AsDeferred()) })
	s.Assert().False(called)
}

func (s *HooksSuite) TestLogsInterceptAndForward() {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 2})

	dispatch := s.pipeline(WithLogger(logger))
	dispatch(s.unit.AsDeferred())

	s.Require().Len(lines, 2)
	s.Assert().Contains(lines[0], `"msg"="running deferred action"`)
	s.Assert().Contains(lines[1], `"msg"="forwarding action"`)
	s.Assert().Contains(lines[1], `"type"="X"`)
}

func (s *HooksSuite) TestLogsUntypedForwardByGoType() {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 2})

	dispatch := s.pipeline(WithLogger(logger))
	dispatch(42)

	s.Require().Len(lines, 1)
	s.Assert().Contains(lines[0], `"value"="int"`)
}

func (s *HooksSuite) TestForwardNotLoggedBelowVerbosity() {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 1})

	dispatch := s.pipeline(WithLogger(logger))
	dispatch(s.unit.AsDeferred())

	s.Require().Len(lines, 1)
	s.Assert().True(strings.Contains(lines[0], "running deferred action"))
}

func (s *HooksSuite) TestInterceptNotLoggedAtDefaultVerbosity() {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{})

	dispatch := s.pipeline(WithLogger(logger))

	s.Assert().Equal("reduced", dispatch(s.unit.AsDeferred()))
	s.Assert().Empty(lines)
}

func (s *HooksSuite) TestTestLogger() {
	dispatch := s.pipeline(WithLogger(testr.NewWithOptions(s.T(), testr.Options{Verbosity: 2})))

	s.Assert().Equal("reduced", dispatch(s.unit.AsDeferred()))
}
