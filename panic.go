package asyncloop

import (
	"fmt"
	"runtime/debug"
)

// A PanicError carries a recovered panic value along with the stack trace
// captured at the recovery point, as returned by [runtime/debug.Stack].
type PanicError struct {
	Value any
	Stack []byte
}

func (pe *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", pe.Value, pe.Stack)
}

func (pe *PanicError) Unwrap() error {
	if err, ok := pe.Value.(error); ok {
		return err
	}
	return nil
}

// try calls f, converting a panic into a *PanicError.
func try(f func()) (pe *PanicError) {
	var ok bool
	defer func() {
		if !ok {
			v := recover()
			if v == nil {
				panic("asyncloop: asyncloop does not support runtime.Goexit()")
			}
			pe = &PanicError{v, debug.Stack()}
		}
	}()
	f()
	ok = true
	return nil
}
