// File: internal/panics/panics.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// First-panic capture for engine workers. Every engine wraps subrange
// execution in Catcher.Try and re-raises on the calling goroutine once
// the pass has drained, so functor failures surface at the blocking
// parallel call exactly once.

package panics

import (
	"runtime"
	"sync/atomic"

	"github.com/momentics/hioload-smp/api"
)

// Catcher records the first panic observed across Try calls.
type Catcher struct {
	captured atomic.Pointer[api.PanicError]
}

// Try runs fn, recovering and recording a panic. Only the first panic
// per Catcher is kept; later ones are dropped.
func (c *Catcher) Try(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 64<<10)
			buf = buf[:runtime.Stack(buf, false)]
			c.captured.CompareAndSwap(nil, &api.PanicError{Value: r, Stack: buf})
		}
	}()
	fn()
}

// Captured reports whether a panic has been recorded.
func (c *Catcher) Captured() bool {
	return c.captured.Load() != nil
}

// Repanic re-raises the recorded panic, if any, on the calling
// goroutine. Must be called only after all Try calls have returned.
func (c *Catcher) Repanic() {
	if pe := c.captured.Load(); pe != nil {
		panic(pe)
	}
}
