// File: engine/stdthread/stdthread.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// OS-thread-pool style engine: a persistent pool of worker goroutines
// plus the calling goroutine cooperate on each parallel pass. Chunks
// are claimed through an atomic cursor, so load balances itself and
// the caller's participation guarantees progress even when the pool is
// saturated by nested calls (nested passes serialize onto the calling
// worker, they never deadlock).
//
// A pass completes when its chunk count drains, not when its helper
// runners return: queued helpers are pure accelerators, and one that
// starts after the cursor is exhausted exits without being waited on.
// The caller therefore never blocks on pool availability.

package stdthread

import (
	"runtime"
	"sort"
	"sync/atomic"

	"github.com/momentics/hioload-smp/api"
	"github.com/momentics/hioload-smp/internal/chunker"
	"github.com/momentics/hioload-smp/internal/panics"
	"github.com/momentics/hioload-smp/internal/psort"
)

// Engine is the stdthread backend.
type Engine struct {
	pool       *pool
	maxThreads atomic.Int32 // 0 = hardware concurrency
}

var _ api.Engine = (*Engine)(nil)

// New returns a stdthread engine with hardware-concurrency workers
// (one of which is always the caller of a parallel pass).
func New() *Engine {
	return &Engine{pool: newPool(runtime.NumCPU() - 1)}
}

// Name implements api.Engine.
func (e *Engine) Name() string { return api.BackendSTDThread }

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
	limit := e.pool.workers + 1
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
	workers := e.EstimatedThreads()
	g := chunker.Grain(count, grain, workers)
	chunks := chunker.Chunks(count, g)
	if chunks == 1 || workers == 1 {
		e.serialFor(first, last, g, body)
		return
	}

	var cursor, pending atomic.Int64
	pending.Store(chunks)
	done := make(chan struct{})
	var catcher panics.Catcher
	runner := func() {
		for {
			c := cursor.Add(1) - 1
			if c >= chunks {
				return
			}
			if !catcher.Captured() {
				lo := first + c*g
				hi := lo + g
				if hi > last {
					hi = last
				}
				catcher.Try(func() { body.Execute(lo, hi) })
			}
			if pending.Add(-1) == 0 {
				close(done)
			}
		}
	}

	helpers := int64(workers - 1)
	if helpers > chunks-1 {
		helpers = chunks - 1
	}
	for i := int64(0); i < helpers; i++ {
		if !e.pool.trySubmit(runner) {
			break
		}
	}
	runner() // the caller is always one of the workers
	<-done   // every claimed chunk is being executed by someone
	catcher.Repanic()
}

func (e *Engine) serialFor(first, last, grain int64, body api.Body) {
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

// Close releases the pool workers. Only tests and embedders that
// construct private engines need it; the registry's engine lives for
// the process.
func (e *Engine) Close() {
	e.pool.close()
}
