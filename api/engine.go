// File: api/engine.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Backend engine capability contract consumed by the smp facade and the
// functor adapter. Exactly one engine is active at a time, process-wide.

package api

import "sort"

// Body is one unit of range work. Engines split [first,last) into
// subranges and call Execute once per subrange, possibly concurrently
// on different workers. Subranges never overlap and together cover the
// full range.
type Body interface {
	// Execute processes the half-open index range [first,last).
	Execute(first, last int64)
}

// BodyFunc adapts a plain function to the Body contract.
type BodyFunc func(first, last int64)

// Execute implements Body.
func (f BodyFunc) Execute(first, last int64) { f(first, last) }

// Engine is one parallel runtime. Implementations must be safe for
// concurrent parallel calls, must block the caller until all spawned
// work for a call has completed, and must re-raise the first worker
// panic of a call on the calling goroutine (see PanicError).
//
// Go interfaces cannot carry type-parameterized methods, so the
// element-generic surface (Transform/Fill/Sort over slices) lives in
// the smp facade; engines receive index-range kernels and, for sorting,
// a sort.Interface.
type Engine interface {
	// Name returns the selection name of this engine, one of the fixed
	// set: "sequential", "stdthread", "stealing", "team".
	Name() string

	// Available reports whether the engine can run in this process.
	Available() bool

	// For executes body over [first,last) split into subranges of at
	// least grain indices. grain == 0 lets the engine pick a default
	// from the range size and worker count. first >= last is a no-op.
	For(first, last, grain int64, body Body)

	// Transform executes kernel over [0,n) with partitioning tuned for
	// cheap element-wise maps.
	Transform(n int64, kernel Body)

	// Fill executes kernel over [0,n) with partitioning tuned for
	// constant-cost assignment.
	Fill(n int64, kernel Body)

	// Sort sorts data under its Less order. Stability is not
	// guaranteed.
	Sort(data sort.Interface)

	// SetMaxThreads bounds the number of workers the engine may use.
	// n <= 0 resets to hardware concurrency.
	SetMaxThreads(n int)

	// EstimatedThreads returns the engine's current worker-count
	// estimate. Advisory only: a given call may use fewer workers.
	EstimatedThreads() int
}

// Engine selection names.
const (
	BackendSequential = "sequential"
	BackendSTDThread  = "stdthread"
	BackendStealing   = "stealing"
	BackendTeam       = "team"
)
