// File: engine/team/team.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Directive-style engine: each parallel pass spawns a fresh goroutine
// team and partitions the range statically into one contiguous block
// per member, the way an OpenMP static schedule would. Nested passes
// simply spawn nested teams, which the Go scheduler multiplexes, so
// nesting is true-nested.
//
// With HIOLOAD_SMP_PIN=1 team members pin their OS threads round-robin
// across CPUs for the duration of a pass (Linux only, no-op elsewhere).

package team

import (
	"os"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-smp/api"
	"github.com/momentics/hioload-smp/internal/chunker"
	"github.com/momentics/hioload-smp/internal/panics"
	"github.com/momentics/hioload-smp/internal/psort"
)

// Engine is the thread-team backend.
type Engine struct {
	maxThreads atomic.Int32 // 0 = hardware concurrency
	pin        bool
}

var _ api.Engine = (*Engine)(nil)

// New returns a team engine.
func New() *Engine {
	return &Engine{pin: os.Getenv("HIOLOAD_SMP_PIN") == "1"}
}

// Name implements api.Engine.
func (e *Engine) Name() string { return api.BackendTeam }

// Available implements api.Engine.
func (e *Engine) Available() bool { return true }

// SetMaxThreads implements api.Engine.
func (e *Engine) SetMaxThreads(n int) {
	if n < 0 {
		n = 0
	}
	e.maxThreads.Store(int32(n))
}

// EstimatedThreads implements api.Engine.
func (e *Engine) EstimatedThreads() int {
	limit := runtime.NumCPU()
	if n := int(e.maxThreads.Load()); n > 0 && n < limit {
		return n
	}
	return limit
}

// For implements api.Engine.
func (e *Engine) For(first, last, grain int64, body api.Body) {
	count := last - first
	if count <= 0 {
		return
	}
	members := int64(e.EstimatedThreads())
	g := chunker.Grain(count, grain, int(members))
	// Keep every static block at or above the grain hint.
	if blocks := count / g; blocks < members {
		members = blocks
	}
	if members <= 1 {
		body.Execute(first, last)
		return
	}

	// Static schedule: member m owns one contiguous block; remainder
	// indices go to the leading blocks.
	block := count / members
	rem := count % members

	var wg sync.WaitGroup
	var catcher panics.Catcher
	lo := first
	for m := int64(0); m < members; m++ {
		hi := lo + block
		if m < rem {
			hi++
		}
		if m == members-1 {
			// The caller runs the last block itself.
			callerLo, callerHi := lo, hi
			catcher.Try(func() { body.Execute(callerLo, callerHi) })
			break
		}
		wg.Add(1)
		go func(m, lo, hi int64) {
			defer wg.Done()
			if e.pin {
				unpin := pinThread(int(m))
				defer unpin()
			}
			catcher.Try(func() { body.Execute(lo, hi) })
		}(m, lo, hi)
		lo = hi
	}
	wg.Wait()
	catcher.Repanic()
}

// Transform implements api.Engine.
func (e *Engine) Transform(n int64, kernel api.Body) {
	e.For(0, n, 0, kernel)
}

// Fill implements api.Engine.
func (e *Engine) Fill(n int64, kernel api.Body) {
	e.For(0, n, 0, kernel)
}

// Sort implements api.Engine.
func (e *Engine) Sort(data sort.Interface) {
	psort.Sort(data, e.EstimatedThreads())
}
