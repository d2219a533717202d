package asyncloop

import "errors"

// A Kind classifies how a [Loop] was terminated.
type Kind string

const (
	// KindTerminate is the generic termination kind.
	KindTerminate Kind = "Terminate"
	// KindCancel marks an explicit user cancellation.
	KindCancel Kind = "Cancel"
	// KindKill marks a forced stop, including hitting the iteration bound.
	KindKill Kind = "Kill"
	// KindError marks a termination caused by a panicking loop handle.
	KindError Kind = "Error"
)

// A Reason is the rejection value of a terminated [Loop].
// Its message reads "[<Kind>] <message>".
type Reason struct {
	Kind    Kind
	Message string
	// Cause is the underlying failure for KindError terminations,
	// typically a *PanicError.
	Cause error
}

func (r *Reason) Error() string {
	return "[" + string(r.Kind) + "] " + r.Message
}

func (r *Reason) Unwrap() error {
	return r.Cause
}

var (
	// ErrNotFound rejects a [List] Find future when no element matches.
	// It marks the absence of a match, not a failure.
	ErrNotFound = errors.New("asyncloop: no match")

	// ErrTerminated rejects a pending [Thread] invocation abandoned by
	// Terminate.
	ErrTerminated = errors.New("Terminated")

	// ErrNotStarted rejects an Exec on a [Thread] with no live worker.
	ErrNotStarted = errors.New("asyncloop: thread not started")

	// ErrAlreadyExecuting rejects an Exec issued while a previous
	// invocation of the same [Thread] is still pending.
	ErrAlreadyExecuting = errors.New("asyncloop: exec already in flight")
)
