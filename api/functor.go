// File: api/functor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Functor shapes accepted by smp.For. Capability is detected by
// interface assertion at call time; the per-subrange hot path carries
// no dynamic checks beyond the single adapter dispatch.

package api

// Functor processes subranges of a parallel-for call. Execute may run
// concurrently on multiple workers over disjoint subranges.
type Functor interface {
	Execute(first, last int64)
}

// FunctorFunc adapts a plain function to the Functor contract.
type FunctorFunc func(first, last int64)

// Execute implements Functor.
func (f FunctorFunc) Execute(first, last int64) { f(first, last) }

// Initializer is the optional per-worker setup capability. Initialize
// runs exactly once on each worker that touches any subrange, before
// that worker's first Execute.
type Initializer interface {
	Initialize()
}

// Reducer is the optional post-pass capability. Reduce runs exactly
// once on the calling goroutine, after every subrange of the call has
// completed. It is skipped when the pass does not complete cleanly.
type Reducer interface {
	Reduce()
}

// StatefulFunctor is the full stateful shape: per-worker Initialize,
// concurrent Execute, single Reduce. A functor providing Initialize
// without Reduce (or the reverse) is rejected by smp.For.
type StatefulFunctor interface {
	Initializer
	Functor
	Reducer
}
