package asyncloop

// FutureState is the settlement state of a [Future].
type FutureState int8

const (
	// Pending indicates that a [Future] has not settled yet.
	Pending FutureState = iota
	// Fulfilled indicates that a [Future] has resolved with a value.
	Fulfilled
	// Rejected indicates that a [Future] has rejected with a reason.
	Rejected
)

// String returns "Pending", "Fulfilled" or "Rejected".
func (s FutureState) String() string {
	switch s {
	case Fulfilled:
		return "Fulfilled"
	case Rejected:
		return "Rejected"
	default:
		return "Pending"
	}
}

// A Future is a single-resolution value container.
// It settles at most once, either with a value (Resolve) or with a reason
// (Reject); any further settlement attempt is a no-op.
//
// Continuations registered with Then, Catch and Finally never run inline;
// they are spawned onto the executor and run on a later turn, in
// registration order.
//
// A Future must not be shared by more than one [Executor].
// All of its methods must be called on the executor's thread; to settle
// a Future from another goroutine, spawn the settling call instead:
//
//	myExecutor.Spawn(func() { f.Resolve(v) })
type Future struct {
	executor  *Executor
	state     FutureState
	value     any
	reason    error
	callbacks []func()
}

// NewFuture creates a new pending [Future] bound to e.
func (e *Executor) NewFuture() *Future {
	return &Future{executor: e}
}

// State returns the settlement state of f.
func (f *Future) State() FutureState {
	return f.state
}

// Value returns the value f resolved with, or nil if f is pending or
// rejected.
func (f *Future) Value() any {
	if f.state != Fulfilled {
		return nil
	}
	return f.value
}

// Reason returns the reason f rejected with, or nil if f is pending or
// fulfilled.
func (f *Future) Reason() error {
	if f.state != Rejected {
		return nil
	}
	return f.reason
}

// Resolve fulfills f with v. If f has already settled, Resolve is a no-op.
//
// Resolving with another *Future adopts it: f stays pending and settles
// the way v eventually settles.
func (f *Future) Resolve(v any) {
	if f.state != Pending {
		return
	}
	if other, ok := v.(*Future); ok && other != nil {
		if other == f {
			panic("asyncloop: future resolved with itself")
		}
		other.subscribe(func() {
			if other.state == Rejected {
				f.settle(Rejected, nil, other.reason)
			} else {
				f.settle(Fulfilled, other.value, nil)
			}
		})
		return
	}
	f.settle(Fulfilled, v, nil)
}

// Reject rejects f with err. If f has already settled, Reject is a no-op.
func (f *Future) Reject(err error) {
	if err == nil {
		panic("asyncloop: Reject called with nil error")
	}
	f.settle(Rejected, nil, err)
}

func (f *Future) settle(state FutureState, value any, reason error) {
	if f.state != Pending {
		return
	}

	f.state = state
	f.value = value
	f.reason = reason

	callbacks := f.callbacks
	f.callbacks = nil
	for _, cb := range callbacks {
		f.executor.Spawn(cb)
	}
}

// subscribe schedules cb for when f settles; cb reads the terminal state.
// Registering on a settled Future schedules cb for the next turn.
func (f *Future) subscribe(cb func()) {
	if f.state != Pending {
		f.executor.Spawn(cb)
		return
	}
	f.callbacks = append(f.callbacks, cb)
}

// Then returns a derived [Future] that, once f fulfills, settles with the
// return value of onResolved. A nil onResolved passes the value through.
// If f rejects, the derived Future rejects with the same reason.
//
// If onResolved returns a *Future, the derived Future adopts it.
// If onResolved panics, the derived Future rejects with a [*PanicError].
func (f *Future) Then(onResolved func(v any) any) *Future {
	d := f.executor.NewFuture()
	f.subscribe(func() {
		if f.state == Rejected {
			d.Reject(f.reason)
			return
		}
		if onResolved == nil {
			d.Resolve(f.value)
			return
		}
		var r any
		if pe := try(func() { r = onResolved(f.value) }); pe != nil {
			d.Reject(pe)
			return
		}
		d.Resolve(r)
	})
	return d
}

// Catch returns a derived [Future] that, once f rejects, settles with the
// return value of onRejected, recovering from the failure. If f fulfills,
// the derived Future fulfills with the same value.
//
// If onRejected returns a *Future, the derived Future adopts it.
// If onRejected panics, the derived Future rejects with a [*PanicError].
func (f *Future) Catch(onRejected func(reason error) any) *Future {
	d := f.executor.NewFuture()
	f.subscribe(func() {
		if f.state == Fulfilled {
			d.Resolve(f.value)
			return
		}
		if onRejected == nil {
			d.Reject(f.reason)
			return
		}
		var r any
		if pe := try(func() { r = onRejected(f.reason) }); pe != nil {
			d.Reject(pe)
			return
		}
		d.Resolve(r)
	})
	return d
}

// Finally returns a derived [Future] that runs fn once f settles, either
// way, and then settles like f. If fn panics, the derived Future rejects
// with a [*PanicError] instead.
func (f *Future) Finally(fn func()) *Future {
	d := f.executor.NewFuture()
	f.subscribe(func() {
		if fn != nil {
			if pe := try(fn); pe != nil {
				d.Reject(pe)
				return
			}
		}
		if f.state == Rejected {
			d.Reject(f.reason)
		} else {
			d.Resolve(f.value)
		}
	})
	return d
}

// Async runs f on the next scheduler turn and returns a [Future] of its
// outcome: the returned value resolves it, a non-nil error rejects it, and
// a panic rejects it with a [*PanicError].
func Async(e *Executor, f func() (any, error)) *Future {
	if f == nil {
		panic("asyncloop: nil function")
	}
	fut := e.NewFuture()
	e.Spawn(func() {
		var (
			v   any
			err error
		)
		if pe := try(func() { v, err = f() }); pe != nil {
			fut.Reject(pe)
			return
		}
		if err != nil {
			fut.Reject(err)
			return
		}
		fut.Resolve(v)
	})
	return fut
}
