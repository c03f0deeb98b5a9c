// File: engine/stealing/stealing.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Task-stealing engine. Persistent workers each own a task queue;
// a parallel pass splits its range into chunk tasks, distributes them
// over the workers' queues and the caller then helps drain them,
// stealing from whichever queue has work. Idle workers sleep on a
// notify channel, so the engine costs nothing between passes.
//
// A nested For issued from inside a worker pushes its chunks onto that
// worker's own queue and drains them in the same help loop, so nesting
// is true-nested and deadlock-free: the goroutine that waits is always
// also a goroutine that executes.

package stealing

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-smp/api"
	"github.com/momentics/hioload-smp/internal/chunker"
	"github.com/momentics/hioload-smp/internal/goid"
	"github.com/momentics/hioload-smp/internal/panics"
	"github.com/momentics/hioload-smp/internal/psort"
)

// task is one chunk of one parallel pass.
type task struct {
	body        api.Body
	first, last int64
	call        *callState
}

// callState tracks completion of a single parallel pass.
type callState struct {
	pending atomic.Int64
	catcher panics.Catcher
	done    chan struct{}
}

func (t *task) run() {
	if !t.call.catcher.Captured() {
		t.call.catcher.Try(func() { t.body.Execute(t.first, t.last) })
	}
	if t.call.pending.Add(-1) == 0 {
		close(t.call.done)
	}
}

// Engine is the task-stealing backend.
type Engine struct {
	deques     []*deque
	notify     []chan struct{}
	stop       chan struct{}
	workerIDs  map[uint64]int // goroutine id -> deque index
	maxThreads atomic.Int32   // 0 = hardware concurrency
	rr         atomic.Uint64  // round-robin distribution cursor
}

var _ api.Engine = (*Engine)(nil)

// New returns a stealing engine with hardware-concurrency workers
// (the caller of a pass acts as the extra worker).
func New() *Engine {
	n := runtime.NumCPU() - 1
	if n < 0 {
		n = 0
	}
	e := &Engine{
		deques:    make([]*deque, n),
		notify:    make([]chan struct{}, n),
		stop:      make(chan struct{}),
		workerIDs: make(map[uint64]int, n),
	}
	// Workers register their goroutine ids before New returns; the map
	// is read-only afterwards, so For may read it without locking.
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		e.deques[i] = newDeque()
		e.notify[i] = make(chan struct{}, 1)
		wg.Add(1)
		go func(i int) {
			mu.Lock()
			e.workerIDs[goid.ID()] = i
			mu.Unlock()
			wg.Done()
			e.run(i)
		}(i)
	}
	wg.Wait()
	return e
}

func (e *Engine) run(i int) {
	for {
		if t := e.grab(i); t != nil {
			t.run()
			continue
		}
		select {
		case <-e.notify[i]:
		case <-e.stop:
			return
		}
	}
}

// grab pops from the worker's own queue, then scans siblings.
func (e *Engine) grab(own int) *task {
	if own >= 0 {
		if t := e.deques[own].pop(); t != nil {
			return t
		}
	}
	for i := range e.deques {
		if i == own {
			continue
		}
		if t := e.deques[i].pop(); t != nil {
			return t
		}
	}
	return nil
}

// Name implements api.Engine.
func (e *Engine) Name() string { return api.BackendStealing }

// Available implements api.Engine.
func (e *Engine) Available() bool { return true }

// SetMaxThreads implements api.Engine. The bound shapes chunk
// distribution and the thread estimate; it does not fence workers, so
// an already-awake worker may still steal a chunk and a pass can
// transiently run on more workers than the bound. The contract is
// advisory.
func (e *Engine) SetMaxThreads(n int) {
	if n < 0 {
		n = 0
	}
	e.maxThreads.Store(int32(n))
}

// EstimatedThreads implements api.Engine.
func (e *Engine) EstimatedThreads() int {
	limit := len(e.deques) + 1
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
		serialFor(first, last, g, body)
		return
	}

	call := &callState{done: make(chan struct{})}
	call.pending.Store(chunks)

	// A nested pass keeps its chunks on the issuing worker's queue,
	// where siblings can still steal them. workers > 1 here, so at
	// least one pool deque exists.
	own, nested := e.workerIDs[goid.ID()]
	spread := workers - 1
	for c := int64(0); c < chunks; c++ {
		lo := first + c*g
		hi := lo + g
		if hi > last {
			hi = last
		}
		t := &task{body: body, first: lo, last: hi, call: call}
		if nested {
			e.deques[own].push(t)
		} else {
			e.deques[int(e.rr.Add(1)-1)%spread].push(t)
		}
	}
	e.wake(spread)
	e.help(own, nested, call)
	call.catcher.Repanic()
}

// help drains tasks until the pass completes. The caller executes any
// available task, including tasks of concurrent or nested passes.
func (e *Engine) help(own int, nested bool, call *callState) {
	idx := -1
	if nested {
		idx = own
	}
	for {
		if t := e.grab(idx); t != nil {
			t.run()
			continue
		}
		select {
		case <-call.done:
			return
		default:
			runtime.Gosched()
		}
	}
}

// wake signals up to n pool workers.
func (e *Engine) wake(n int) {
	if n > len(e.notify) {
		n = len(e.notify)
	}
	for i := 0; i < n; i++ {
		select {
		case e.notify[i] <- struct{}{}:
		default:
		}
	}
}

func serialFor(first, last, grain int64, body api.Body) {
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

// Close stops the pool workers.
func (e *Engine) Close() {
	select {
	case <-e.stop:
	default:
		close(e.stop)
	}
}
