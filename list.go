package asyncloop

// A List iterates an ordered sequence asynchronously, one element per
// scheduler turn, by composing the [Loop] engine. Result sequences preserve
// input index order.
//
// A List must not be shared by more than one [Executor].
type List[T any] struct {
	executor *Executor
	items    []T
}

// NewList creates a [List] over items, bound to e.
// The slice is not copied; it must not be mutated while an iteration runs.
func NewList[T any](e *Executor, items []T) *List[T] {
	return &List[T]{executor: e, items: items}
}

// A Match is the result of a successful [List] Find.
type Match[T any] struct {
	Item  T
	Index int
}

// Each drives a [Loop] that invokes f once per element, one element per
// turn, and returns the loop's [Future]. It fulfills once iteration
// completes; over an empty sequence it fulfills without ever invoking f.
func (l *List[T]) Each(f func(item T, index int)) *Future {
	if f == nil {
		panic("asyncloop: nil handle")
	}
	index := 0
	return Until(l.executor, func(*Loop) bool {
		if index > len(l.items)-1 {
			return true
		}
		f(l.items[index], index)
		index++
		return false
	}, 0)
}

// Map returns a [Future] that fulfills with a new []T holding f applied to
// every element, in input order.
func (l *List[T]) Map(f func(item T, index int) T) *Future {
	if f == nil {
		panic("asyncloop: nil handle")
	}
	result := make([]T, 0, len(l.items))
	return l.Each(func(item T, index int) {
		result = append(result, f(item, index))
	}).Then(func(any) any {
		return result
	})
}

// Filter returns a [Future] that fulfills with a new []T holding the
// elements cond accepted, in input order.
func (l *List[T]) Filter(cond func(item T, index int) bool) *Future {
	if cond == nil {
		panic("asyncloop: nil condition")
	}
	result := make([]T, 0, len(l.items))
	return l.Each(func(item T, index int) {
		if cond(item, index) {
			result = append(result, item)
		}
	}).Then(func(any) any {
		return result
	})
}

// Find returns a [Future] that fulfills with a [Match] for the first
// element cond accepts, ending the underlying loop through its early-exit
// path. If iteration completes without a match, the Future rejects with
// [ErrNotFound]; distinguish it from real failures with errors.Is.
func (l *List[T]) Find(cond func(item T, index int) bool) *Future {
	if cond == nil {
		panic("asyncloop: nil condition")
	}

	f := l.executor.NewFuture()
	index := 0

	lf := Until(l.executor, func(lp *Loop) bool {
		if index > len(l.items)-1 {
			return true
		}
		item := l.items[index]
		if cond(item, index) {
			f.Resolve(Match[T]{Item: item, Index: index})
			lp.Done()
			return false
		}
		index++
		return false
	}, 0)

	lf.subscribe(func() {
		if lf.state == Rejected {
			f.Reject(lf.reason)
			return
		}
		f.Reject(ErrNotFound) // no-op when a match resolved f already
	})

	return f
}
