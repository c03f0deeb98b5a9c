// File: smp/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package smp is the public facade of hioload-smp: a set of parallel
// utility functions (For, Transform, Fill, Sort) whose execution is
// delegated to one of several interchangeable backend engines.
//
// The active backend is resolved once, from SetBackend, the
// HIOLOAD_SMP_BACKEND environment variable, or the compiled-in
// preference order (stealing, team, stdthread, sequential). Every
// entry point blocks the calling goroutine until all spawned work for
// that call has completed; panics raised inside functors surface at
// the blocking call, wrapped in *api.PanicError when they crossed a
// worker boundary.
//
// Functors come in two shapes. A stateless functor only implements
// Execute(first, last) and may run concurrently over disjoint
// subranges. A stateful functor additionally implements Initialize,
// run exactly once per worker before that worker's first subrange, and
// Reduce, run exactly once on the calling goroutine after the whole
// pass completed cleanly:
//
//	type histogram struct {
//	    data []float64
//	    bins *threadlocal.Var[[]int]
//	    out  []int
//	}
//
//	func (h *histogram) Initialize()              { *h.bins.Local() = make([]int, len(h.out)) }
//	func (h *histogram) Execute(first, last int64) { /* bin h.data[first:last] into *h.bins.Local() */ }
//	func (h *histogram) Reduce()                  { h.bins.Range(func(b *[]int) { /* merge into h.out */ }) }
//
//	smp.For(0, int64(len(data)), &histogram{...})
//
// Changing the backend or the thread bound while parallel calls are in
// flight is undefined; both are startup or scope-entry operations.
package smp
