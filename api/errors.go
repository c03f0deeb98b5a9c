// File: api/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Common error types for the hioload-smp library.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrUnknownBackend     = fmt.Errorf("unknown backend name")
	ErrBackendUnavailable = fmt.Errorf("backend not available in this process")
	ErrPartialFunctor     = fmt.Errorf("functor provides only one of Initialize/Reduce; stateful functors require both")
)

// PanicError wraps a panic raised inside a functor on a worker
// goroutine. Engines capture the first such panic per call and
// re-raise it, wrapped, on the goroutine that issued the parallel
// call. Value is the original panic value, Stack the worker stack at
// capture time.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in parallel worker: %v\n%s", e.Value, e.Stack)
}

// Unwrap exposes a wrapped error panic value to errors.Is/As.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
