package asyncloop

import "fmt"

// A LoopFunc is the per-tick handle of a [Loop].
//
// It is invoked once per scheduler turn with the Loop itself, so that it may
// end the loop early by calling the Done method (see [List] Find for a use).
// Returning true signals completion and fulfills the loop's [Future].
type LoopFunc func(l *Loop) bool

// A Loop runs a [LoopFunc] in a cooperative, cancellable, iteration-bounded
// polling loop.
//
// Each tick runs on its own scheduler turn; between ticks control returns to
// the [Executor], so other pending work interleaves with the loop. A Loop
// owns exactly one [Future], which fulfills when the handle reports
// completion and rejects with a *[Reason] on every termination path.
//
// A Loop is never reused after its Future settles.
//
// A Loop must not be shared by more than one [Executor].
type Loop struct {
	executor      *Executor
	handle        LoopFunc
	maxIterations int
	iteration     int
	scheduled     bool
	started       bool
	future        *Future

	// Set by Registry for unique loops; the loop evicts itself on
	// settlement.
	registry *Registry
	id       string
}

// NewLoop creates a [Loop] that drives handle until it returns true, at most
// iterations times. An iterations of zero means unbounded; a negative value
// panics.
//
// The loop does not tick until Start is called.
func NewLoop(e *Executor, handle LoopFunc, iterations int) *Loop {
	if handle == nil {
		panic("asyncloop: nil handle")
	}
	if iterations < 0 {
		panic("asyncloop: negative iterations")
	}
	return &Loop{
		executor:      e,
		handle:        handle,
		maxIterations: iterations,
		iteration:     1,
		future:        e.NewFuture(),
	}
}

// Future returns the [Future] representing the loop's outcome.
func (l *Loop) Future() *Future {
	return l.future
}

// Iteration returns the 1-based number of the current iteration.
func (l *Loop) Iteration() int {
	return l.iteration
}

// Start schedules the first tick and returns the loop's [Future] without
// blocking. Starting an already started Loop just returns the Future.
func (l *Loop) Start() *Future {
	if l.started {
		return l.future
	}
	l.started = true
	l.schedule()

	l.executor.Logger.Debug().
		Str("id", l.id).
		Int("iterations", l.maxIterations).
		Log("loop started")

	return l.future
}

func (l *Loop) schedule() {
	l.scheduled = true
	l.executor.Spawn(l.tick)
}

// tick runs one invocation of the handle. A tick dispatched before a
// termination finds the Future settled and must not act.
func (l *Loop) tick() {
	l.scheduled = false

	if l.future.state != Pending {
		return
	}

	var done bool
	if pe := try(func() { done = l.handle(l) }); pe != nil {
		l.terminate(&Reason{
			Kind:    KindError,
			Message: fmt.Sprint(pe.Value),
			Cause:   pe,
		})
		return
	}

	if l.future.state != Pending {
		// The handle ended the loop itself.
		return
	}

	switch {
	case done:
		l.Done()
	case l.maxIterations != 0 && l.iteration == l.maxIterations:
		l.Kill("maximum iterations reached.")
	default:
		l.iteration++
		l.schedule()
	}
}

// Done ends the loop, fulfilling its [Future]. Calling Done on a settled
// Loop has no effect.
func (l *Loop) Done() {
	if l.future.state != Pending {
		return
	}

	l.scheduled = false
	l.future.Resolve(nil)
	l.evict()

	l.executor.Logger.Debug().
		Str("id", l.id).
		Int("iteration", l.iteration).
		Log("loop finished")
}

// Terminate ends the loop, rejecting its [Future] with a *[Reason] of the
// given kind. An empty message becomes "Unknown reason". Calling Terminate
// on a settled Loop has no effect; of back-to-back terminations only the
// first is observable.
func (l *Loop) Terminate(kind Kind, message string) {
	if message == "" {
		message = "Unknown reason"
	}
	l.terminate(&Reason{Kind: kind, Message: message})
}

// Cancel is sugar for Terminate with [KindCancel].
func (l *Loop) Cancel(message string) {
	l.Terminate(KindCancel, message)
}

// Kill is sugar for Terminate with [KindKill].
func (l *Loop) Kill(message string) {
	l.Terminate(KindKill, message)
}

func (l *Loop) terminate(reason *Reason) {
	if l.future.state != Pending {
		return
	}

	l.scheduled = false
	l.future.Reject(reason)
	l.evict()

	l.executor.Logger.Debug().
		Str("id", l.id).
		Int("iteration", l.iteration).
		Str("kind", string(reason.Kind)).
		Str("message", reason.Message).
		Log("loop terminated")
}

func (l *Loop) evict() {
	if l.registry != nil {
		l.registry.evict(l)
	}
}

// Until constructs and starts a [Loop], returning its [Future].
// Convenience for fire-and-forget one-shot loops.
func Until(e *Executor, handle LoopFunc, iterations int) *Future {
	return NewLoop(e, handle, iterations).Start()
}
