package asyncloop_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	asyncloop "github.com/lexmihaylov/AsyncLoop"
)

func TestLoopKillsAtIterationBound(t *testing.T) {
	t.Parallel()

	var myExecutor asyncloop.Executor
	myExecutor.Autorun(myExecutor.Run)

	calls := 0
	f := asyncloop.Until(&myExecutor, func(*asyncloop.Loop) bool {
		calls++
		return false
	}, 5)

	require.Equal(t, 5, calls, "handle must run exactly iterations times")
	require.Equal(t, asyncloop.Rejected, f.State())
	require.EqualError(t, f.Reason(), "[Kill] maximum iterations reached.")

	var reason *asyncloop.Reason
	require.ErrorAs(t, f.Reason(), &reason)
	require.Equal(t, asyncloop.KindKill, reason.Kind)
}

func TestLoopFulfillsOnCompletion(t *testing.T) {
	t.Parallel()

	var myExecutor asyncloop.Executor
	myExecutor.Autorun(myExecutor.Run)

	calls := 0
	f := asyncloop.Until(&myExecutor, func(*asyncloop.Loop) bool {
		calls++
		return calls == 3
	}, 10)

	require.Equal(t, 3, calls, "handle must not run after reporting completion")
	require.Equal(t, asyncloop.Fulfilled, f.State())
}

func TestLoopUnboundedRunsUntilDone(t *testing.T) {
	t.Parallel()

	var myExecutor asyncloop.Executor
	myExecutor.Autorun(myExecutor.Run)

	calls := 0
	f := asyncloop.Until(&myExecutor, func(*asyncloop.Loop) bool {
		calls++
		return calls == 100
	}, 0)

	require.Equal(t, 100, calls)
	require.Equal(t, asyncloop.Fulfilled, f.State())
}

func TestLoopHandleEndsLoopEarly(t *testing.T) {
	t.Parallel()

	var myExecutor asyncloop.Executor
	myExecutor.Autorun(myExecutor.Run)

	calls := 0
	f := asyncloop.Until(&myExecutor, func(l *asyncloop.Loop) bool {
		calls++
		l.Done()
		return false
	}, 10)

	require.Equal(t, 1, calls)
	require.Equal(t, asyncloop.Fulfilled, f.State())
}

func TestLoopCancelBeforeDispatchedTick(t *testing.T) {
	t.Parallel()

	// A tick already in the queue when the loop is cancelled must find
	// the settled outcome and do nothing.
	var myExecutor asyncloop.Executor

	calls := 0
	l := asyncloop.NewLoop(&myExecutor, func(*asyncloop.Loop) bool {
		calls++
		return false
	}, 0)

	f := l.Start()
	l.Cancel("stop it")

	myExecutor.Run()

	require.Equal(t, 0, calls, "cancelled loop must not invoke the handle")
	require.Equal(t, asyncloop.Rejected, f.State())
	require.EqualError(t, f.Reason(), "[Cancel] stop it")
}

func TestLoopCancelIdempotent(t *testing.T) {
	t.Parallel()

	var myExecutor asyncloop.Executor

	l := asyncloop.NewLoop(&myExecutor, func(*asyncloop.Loop) bool { return false }, 0)
	f := l.Start()

	l.Cancel("first")
	l.Cancel("second")
	l.Kill("third")

	myExecutor.Run()

	require.Equal(t, asyncloop.Rejected, f.State())
	require.EqualError(t, f.Reason(), "[Cancel] first", "only the first termination is observable")
}

func TestLoopTerminateDefaultMessage(t *testing.T) {
	t.Parallel()

	var myExecutor asyncloop.Executor

	l := asyncloop.NewLoop(&myExecutor, func(*asyncloop.Loop) bool { return false }, 0)
	f := l.Start()
	l.Terminate(asyncloop.KindTerminate, "")

	myExecutor.Run()

	require.EqualError(t, f.Reason(), "[Terminate] Unknown reason")
}

func TestLoopHandlePanicRejects(t *testing.T) {
	t.Parallel()

	var myExecutor asyncloop.Executor
	myExecutor.Autorun(myExecutor.Run)

	f := asyncloop.Until(&myExecutor, func(*asyncloop.Loop) bool {
		panic("boom")
	}, 0)

	require.Equal(t, asyncloop.Rejected, f.State())
	require.EqualError(t, f.Reason(), "[Error] boom")

	var reason *asyncloop.Reason
	require.ErrorAs(t, f.Reason(), &reason)
	require.Equal(t, asyncloop.KindError, reason.Kind)

	var pe *asyncloop.PanicError
	require.ErrorAs(t, f.Reason(), &pe)
	require.Equal(t, "boom", pe.Value)
	require.NotEmpty(t, pe.Stack)
}

func TestLoopStartIdempotent(t *testing.T) {
	t.Parallel()

	var myExecutor asyncloop.Executor

	calls := 0
	l := asyncloop.NewLoop(&myExecutor, func(*asyncloop.Loop) bool {
		calls++
		return true
	}, 0)

	f1 := l.Start()
	f2 := l.Start()
	require.Same(t, f1, f2)

	myExecutor.Run()

	require.Equal(t, 1, calls, "a second Start must not schedule a second tick")
}

func TestLoopIterationCounts(t *testing.T) {
	t.Parallel()

	var myExecutor asyncloop.Executor
	myExecutor.Autorun(myExecutor.Run)

	var seen []int
	asyncloop.Until(&myExecutor, func(l *asyncloop.Loop) bool {
		seen = append(seen, l.Iteration())
		return false
	}, 3)

	require.Equal(t, []int{1, 2, 3}, seen, "iteration numbering is 1-based")
}

func TestNewLoopValidation(t *testing.T) {
	t.Parallel()

	var myExecutor asyncloop.Executor

	require.PanicsWithValue(t, "asyncloop: nil handle", func() {
		asyncloop.NewLoop(&myExecutor, nil, 0)
	})
	require.PanicsWithValue(t, "asyncloop: negative iterations", func() {
		asyncloop.NewLoop(&myExecutor, func(*asyncloop.Loop) bool { return true }, -1)
	})
}
