// File: engine/stdthread/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Persistent worker pool backing the stdthread engine. Workers block
// on a shared task queue; submission is non-blocking so a saturated
// pool never stalls a parallel call — the caller always participates
// in its own pass and tasks are pure helpers.

package stdthread

import "sync/atomic"

type pool struct {
	tasks   chan func()
	stop    chan struct{}
	closed  atomic.Bool
	workers int
}

func newPool(workers int) *pool {
	if workers < 0 {
		workers = 0
	}
	p := &pool{
		tasks:   make(chan func(), workers*4),
		stop:    make(chan struct{}),
		workers: workers,
	}
	for i := 0; i < workers; i++ {
		go p.run()
	}
	return p
}

func (p *pool) run() {
	for {
		select {
		case task := <-p.tasks:
			task()
		case <-p.stop:
			return
		}
	}
}

// trySubmit enqueues task without blocking. A false return means the
// queue is full or the pool is closed; the caller runs the work itself.
func (p *pool) trySubmit(task func()) bool {
	if p.closed.Load() {
		return false
	}
	select {
	case p.tasks <- task:
		return true
	default:
		return false
	}
}

func (p *pool) close() {
	if p.closed.CompareAndSwap(false, true) {
		close(p.stop)
	}
}
