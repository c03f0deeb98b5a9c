// File: threadlocal/threadlocal.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker-local storage for parallel functors. A Var hands each
// execution context (goroutine) its own slot, created on first use.
// Slots are touched only by their owning goroutine while a parallel
// pass is running; Range reads all of them and is meant for the
// post-pass reduction, after the engine's For has returned.
//
// The slot count equals the number of goroutines that actually touched
// the Var, not the total threads in the process: engines with
// persistent worker pools produce one slot per pool worker, per-call
// team engines one slot per team member, the sequential engine a
// single slot on the calling goroutine.

package threadlocal

import (
	"sync"

	"github.com/momentics/hioload-smp/internal/goid"
)

// Var is a set of per-goroutine slots of T. The zero value is not
// usable; construct with New.
type Var[T any] struct {
	mu    sync.RWMutex
	slots map[uint64]*T
	init  func() T
}

// New creates a Var whose slots start from the value produced by
// initial. A nil initial yields zero-valued slots.
func New[T any](initial func() T) *Var[T] {
	return &Var[T]{
		slots: make(map[uint64]*T),
		init:  initial,
	}
}

// Local returns the calling goroutine's slot, creating it on first
// use. The returned pointer stays valid for the life of the Var and
// must not be shared with other goroutines while a pass is running.
func (v *Var[T]) Local() *T {
	id := goid.ID()

	v.mu.RLock()
	p, ok := v.slots[id]
	v.mu.RUnlock()
	if ok {
		return p
	}

	var val T
	if v.init != nil {
		val = v.init()
	}
	v.mu.Lock()
	// Another Local from this goroutine cannot race us, but re-check
	// keeps the invariant obvious.
	if p, ok = v.slots[id]; !ok {
		p = &val
		v.slots[id] = p
	}
	v.mu.Unlock()
	return p
}

// Range calls fn with every slot created so far. Call only after all
// workers of the enclosing parallel pass have finished.
func (v *Var[T]) Range(fn func(*T)) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, p := range v.slots {
		fn(p)
	}
}

// Len returns the number of slots created so far.
func (v *Var[T]) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.slots)
}

// Reset drops all slots. Call only between parallel passes.
func (v *Var[T]) Reset() {
	v.mu.Lock()
	v.slots = make(map[uint64]*T)
	v.mu.Unlock()
}
