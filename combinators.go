package asyncloop

// All returns a [Future] that fulfills with a []any of the values of all
// the given futures, in argument order, once every one of them fulfills.
// It rejects with the first rejection reason as soon as any of them
// rejects.
//
// With no arguments, All fulfills immediately with an empty slice.
func All(e *Executor, futures ...*Future) *Future {
	f := e.NewFuture()

	n := len(futures)
	if n == 0 {
		f.Resolve([]any{})
		return f
	}

	values := make([]any, n)
	remaining := n

	for i, ft := range futures {
		i, ft := i, ft
		if ft == nil {
			panic("asyncloop: nil Future")
		}
		ft.subscribe(func() {
			if ft.state == Rejected {
				f.Reject(ft.reason)
				return
			}
			values[i] = ft.value
			if remaining--; remaining == 0 {
				f.Resolve(values)
			}
		})
	}

	return f
}

// Race returns a [Future] that settles the way the first of the given
// futures settles; the rest are ignored.
//
// With no arguments, Race stays pending forever.
func Race(e *Executor, futures ...*Future) *Future {
	f := e.NewFuture()

	for _, ft := range futures {
		ft := ft
		if ft == nil {
			panic("asyncloop: nil Future")
		}
		ft.subscribe(func() {
			if ft.state == Rejected {
				f.Reject(ft.reason)
			} else {
				f.Resolve(ft.value)
			}
		})
	}

	return f
}
