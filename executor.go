package asyncloop

import (
	"sync"

	"github.com/joeycumines/logiface"
)

// An Executor is a callback spawner, and a callback runner.
//
// When a callback is spawned, it is added into an internal queue.
// The Run method then pops and runs each of them from the queue until
// the queue is emptied.
// It is done in a single-threaded manner.
// If one callback blocks, no other callbacks can run.
// The best practice is not to block.
//
// The internal queue is a FIFO queue: callbacks run in the order they were
// spawned. Every primitive in this package ([Loop], [Thread], [List], [If]
// and [Future]) defers its work through this queue, one turn at a time, so
// independent activities interleave between turns.
//
// Manually calling the Run method is usually not desired.
// One would instead use the Autorun method to set up an autorun function to
// calling the Run method automatically whenever a callback is spawned.
// The Executor never calls the autorun function twice at the same time.
type Executor struct {
	// Logger, when non-nil, receives structured events for loop, registry
	// and thread lifecycle transitions. A nil Logger is disabled.
	Logger *logiface.Logger[logiface.Event]

	mu      sync.Mutex
	q       queue[func()]
	running bool
	autorun func()
}

// Autorun sets up an autorun function to calling the Run method automatically
// whenever a callback is spawned.
//
// One must pass a function that calls the Run method.
//
// If f blocks, the Spawn method may block too.
// The best practice is not to block.
func (e *Executor) Autorun(f func()) {
	e.autorun = f
}

// Run pops and runs every callback in the queue until the queue is emptied.
//
// Run must not be called twice at the same time.
func (e *Executor) Run() {
	e.mu.Lock()
	e.running = true

	for !e.q.Empty() {
		f := e.q.Pop()
		e.mu.Unlock()
		f()
		e.mu.Lock()
	}

	e.running = false
	e.mu.Unlock()
}

// Spawn adds f in the queue, to run on a later turn.
//
// To run it, either call the Run method, or call the Autorun method to set up
// an autorun function beforehand.
//
// Spawn is safe for concurrent use.
func (e *Executor) Spawn(f func()) {
	if f == nil {
		panic("asyncloop: nil callback")
	}

	var autorun func()

	e.mu.Lock()

	if !e.running && e.autorun != nil {
		e.running = true
		autorun = e.autorun
	}

	e.q.Push(f)
	e.mu.Unlock()

	if autorun != nil {
		autorun()
	}
}
