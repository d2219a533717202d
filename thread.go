package asyncloop

import (
	"context"
	"fmt"
)

// A ThreadFunc is the handle a [Thread] runs on its worker.
//
// It must be self-contained: the worker runs on its own goroutine with no
// access to the executor's turn-by-turn sequencing, so the handle must not
// touch state owned by code running on the [Executor].
type ThreadFunc func(args ...any) (any, error)

// Message type values of the request/response envelopes exchanged with a
// worker.
const (
	msgExec   = "exec"
	msgResult = "result"
	msgError  = "error"
)

// An execRequest asks the worker for one invocation of the handle.
type execRequest struct {
	Type string `json:"type"`
	Data []any  `json:"data"`

	reply *Future
}

// An execResponse reports one invocation's outcome. Failures cross the
// worker boundary as a structured *[ThreadError], never as a live panic
// value.
type execResponse struct {
	Type    string       `json:"type"`
	Data    any          `json:"data,omitempty"`
	Failure *ThreadError `json:"failure,omitempty"`
}

// A ThreadError describes a failure inside a [Thread] worker: the message
// of the returned error or panic value, plus the worker's stack trace for
// panics.
type ThreadError struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

func (te *ThreadError) Error() string {
	return te.Message
}

// A Thread packages a [ThreadFunc] for execution off the executor's thread.
//
// Unlike a [Loop], a Thread introduces genuine parallelism: its worker is
// a dedicated goroutine that communicates with the executor only through
// one request and one response message per invocation.
//
// A Thread must be started before Exec is called, and holds at most one
// in-flight invocation at a time.
//
// Except for the worker it spawns, a Thread must not be shared by more than
// one [Executor].
type Thread struct {
	executor *Executor
	handle   ThreadFunc

	// The worker handle and its resource token; both nil unless started.
	requests chan execRequest
	cancel   context.CancelFunc

	pending *Future
}

// NewThread creates a [Thread] that runs handle on a worker goroutine.
func NewThread(e *Executor, handle ThreadFunc) *Thread {
	if handle == nil {
		panic("asyncloop: nil handle")
	}
	return &Thread{executor: e, handle: handle}
}

// Start spawns a fresh worker, tearing down any existing one first.
// A pending invocation of the previous worker is rejected with
// [ErrTerminated].
func (t *Thread) Start() {
	t.Terminate()

	ctx, cancel := context.WithCancel(context.Background())
	requests := make(chan execRequest, 1)

	t.cancel = cancel
	t.requests = requests

	go t.worker(ctx, requests)

	t.executor.Logger.Debug().Log("thread started")
}

func (t *Thread) worker(ctx context.Context, requests <-chan execRequest) {
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-requests:
			if !ok {
				return
			}
			resp := t.invoke(req.Data)
			reply := req.reply
			t.executor.Spawn(func() { t.deliver(reply, resp) })
		}
	}
}

// invoke applies the handle to args on the worker goroutine, marshaling
// any failure into a response the executor side can inspect.
func (t *Thread) invoke(args []any) execResponse {
	var (
		v   any
		err error
	)
	if pe := try(func() { v, err = t.handle(args...) }); pe != nil {
		return execResponse{Type: msgError, Failure: &ThreadError{
			Message: fmt.Sprint(pe.Value),
			Stack:   string(pe.Stack),
		}}
	}
	if err != nil {
		return execResponse{Type: msgError, Failure: &ThreadError{Message: err.Error()}}
	}
	return execResponse{Type: msgResult, Data: v}
}

// deliver settles an invocation's Future on the executor's thread.
// A response for an invocation abandoned by Terminate finds its Future
// already rejected and has no effect.
func (t *Thread) deliver(reply *Future, resp execResponse) {
	if t.pending == reply {
		t.pending = nil
	}

	if resp.Type == msgError {
		t.executor.Logger.Err().
			Str("message", resp.Failure.Message).
			Log("thread invocation failed")

		reply.Reject(resp.Failure)
		return
	}

	reply.Resolve(resp.Data)
}

// Exec sends one invocation request to the worker and returns a [Future]
// of the response.
//
// Exec on a non-started Thread rejects with [ErrNotStarted]; a second Exec
// before the first settles rejects with [ErrAlreadyExecuting].
func (t *Thread) Exec(args ...any) *Future {
	f := t.executor.NewFuture()

	switch {
	case t.requests == nil:
		f.Reject(ErrNotStarted)
	case t.pending != nil:
		f.Reject(ErrAlreadyExecuting)
	default:
		t.pending = f
		t.requests <- execRequest{Type: msgExec, Data: args, reply: f}
	}

	return f
}

// Terminate destroys the worker and releases its resource token, rejecting
// a pending invocation with [ErrTerminated]. The worker's in-progress
// computation is abandoned, not halted.
//
// Terminate is idempotent and safe to call on a non-started Thread.
func (t *Thread) Terminate() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}

	if t.requests != nil {
		close(t.requests)
		t.requests = nil

		t.executor.Logger.Debug().Log("thread terminated")
	}

	if p := t.pending; p != nil {
		t.pending = nil
		p.Reject(ErrTerminated)
	}
}

// Threaded wraps handle into a directly-callable asynchronous function:
// each call runs on a fresh [Thread], which is unconditionally terminated
// once the call settles, success or failure. One Thread per call, no
// pooling.
func Threaded(e *Executor, handle ThreadFunc) func(args ...any) *Future {
	if handle == nil {
		panic("asyncloop: nil handle")
	}
	return func(args ...any) *Future {
		t := NewThread(e, handle)
		t.Start()
		f := t.Exec(args...)
		f.Finally(t.Terminate)
		return f
	}
}
