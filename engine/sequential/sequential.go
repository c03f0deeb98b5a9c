// File: engine/sequential/sequential.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Always-available single-worker engine. Every operation runs on the
// calling goroutine, so functor panics propagate to the caller without
// any capture machinery. Serves as the terminal fallback of the
// backend registry.

package sequential

import (
	"sort"

	"github.com/momentics/hioload-smp/api"
)

// Engine is the sequential backend.
type Engine struct{}

var _ api.Engine = (*Engine)(nil)

// New returns the sequential engine.
func New() *Engine { return &Engine{} }

// Name implements api.Engine.
func (e *Engine) Name() string { return api.BackendSequential }

// Available implements api.Engine. The sequential engine can always run.
func (e *Engine) Available() bool { return true }

// For implements api.Engine. With an explicit grain the range is fed
// to the body in grain-sized subranges so callers exercise the same
// subrange shape as under a parallel backend; otherwise the body sees
// the whole range at once.
func (e *Engine) For(first, last, grain int64, body api.Body) {
	if first >= last {
		return
	}
	if grain <= 0 {
		body.Execute(first, last)
		return
	}
	for lo := first; lo < last; lo += grain {
		hi := lo + grain
		if hi > last {
			hi = last
		}
		body.Execute(lo, hi)
	}
}

// Transform implements api.Engine.
func (e *Engine) Transform(n int64, kernel api.Body) {
	if n > 0 {
		kernel.Execute(0, n)
	}
}

// Fill implements api.Engine.
func (e *Engine) Fill(n int64, kernel api.Body) {
	if n > 0 {
		kernel.Execute(0, n)
	}
}

// Sort implements api.Engine.
func (e *Engine) Sort(data sort.Interface) { sort.Sort(data) }

// SetMaxThreads implements api.Engine. The bound is irrelevant for a
// single-worker engine.
func (e *Engine) SetMaxThreads(int) {}

// EstimatedThreads implements api.Engine.
func (e *Engine) EstimatedThreads() int { return 1 }
