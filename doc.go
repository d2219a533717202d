// Package asyncloop is a toolkit for asynchronous control flow.
//
// It provides four primitives on top of a single-threaded cooperative
// scheduler: a cancellable polling loop ([Loop]), offloaded execution
// ([Thread]), an asynchronous collection iterator ([List]), and an
// asynchronous conditional branch ([If]). All four express control flow
// in terms of deferred completion values ([Future]) rather than direct
// calls, while preserving cancellation and error propagation through
// chained continuations.
//
// # Turns
//
// An [Executor] runs spawned callbacks one at a time, in FIFO order, on
// a single logical thread. Every primitive in this package defers its
// work through this queue: each [Loop] tick, each [List] element, and
// each [If] evaluation takes one turn and then yields, so independent
// activities interleave instead of starving one another. No two turns
// of the same executor ever run concurrently, which is why none of these
// types carry locks — and why none of them may be shared by more than
// one Executor.
//
// Callbacks aren't designed to block. If one blocks, no other callbacks
// can run. The best practice is not to block.
//
// # Futures
//
// A [Future] settles exactly once, either with a value or with a reason.
// Every public operation of this package returns one; callers attach
// continuations with Then, Catch and Finally rather than wait. To settle
// or inspect a Future from another goroutine, spawn the call onto the
// executor instead of touching the Future directly — the Spawn method is
// the only concurrency-safe entry point.
//
// # Loops
//
// A [Loop] re-invokes its handle once per turn until the handle reports
// completion, the iteration bound is hit, or the loop is terminated from
// outside. Termination is cooperative and external: Cancel, Kill and
// Terminate settle the loop's Future immediately, and a tick already in
// the queue finds the Future settled and does nothing. A [Registry]
// keeps at most one live loop per string identifier; starting a second
// loop under the same identifier cancels the first (the newest call
// always wins).
//
// # Threads
//
// A [Thread] is the only construct here that introduces genuine
// parallelism. Its handle runs on a dedicated worker goroutine and
// exchanges exactly one request and one response message per invocation;
// failures cross the boundary as structured data, never as live panic
// values. [Threaded] wraps a handle into a plain asynchronous function
// that spawns, runs and tears down a fresh worker per call.
//
// # Logging
//
// An [Executor] optionally carries a logiface logger; when set, loop,
// registry and thread lifecycle transitions emit structured debug
// events. A nil logger is valid and disabled.
package asyncloop
