package asyncloop

// If evaluates condition on the next scheduler turn and returns a [Branch]
// whose outcome is decided by the boolean result: true runs the Then
// handle, false runs the Else handle.
//
// Both handles must be registered before the condition's turn comes up,
// which is always the case when the whole chain is composed within one
// turn:
//
//	If(e, cond).Then(onTrue).Else(onFalse)
//
// A condition panic rejects the outcome with a [*PanicError].
func If(e *Executor, condition func() bool) *Branch {
	if condition == nil {
		panic("asyncloop: nil condition")
	}

	b := &Branch{outcome: e.NewFuture()}

	e.Spawn(func() {
		var v bool
		if pe := try(func() { v = condition() }); pe != nil {
			b.outcome.Reject(pe)
			return
		}
		b.decide(v)
	})

	return b
}

// A Branch is an asynchronous conditional: one boolean decision choosing
// between two handles, with the chosen handle's return value settling the
// outcome [Future].
type Branch struct {
	outcome *Future
	thenFn  func() any
	elseFn  func() any
}

// Then registers the handle run when the condition is true.
func (b *Branch) Then(handle func() any) *Branch {
	b.thenFn = handle
	return b
}

// Else registers the handle run when the condition is false.
func (b *Branch) Else(handle func() any) *Branch {
	b.elseFn = handle
	return b
}

// Future returns the outcome of the branch. It settles with the chosen
// handle's return value; a missing handle settles it with nil.
func (b *Branch) Future() *Future {
	return b.outcome
}

func (b *Branch) decide(cond bool) {
	fn := b.thenFn
	if !cond {
		fn = b.elseFn
	}

	if fn == nil {
		b.outcome.Resolve(nil)
		return
	}

	var r any
	if pe := try(func() { r = fn() }); pe != nil {
		b.outcome.Reject(pe)
		return
	}

	// A handle returning another Branch (or a bare Future) is adopted,
	// flattening nested conditionals into one outcome.
	if inner, ok := r.(*Branch); ok {
		b.outcome.Resolve(inner.outcome)
		return
	}
	b.outcome.Resolve(r)
}
