// File: smp/adapter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Functor adapters. The facade inspects a functor's capabilities once
// per call and wraps it in the matching adapter; the per-subrange hot
// path is a single static call through the adapter, with no capability
// checks left on it.

package smp

import (
	"github.com/momentics/hioload-smp/api"
	"github.com/momentics/hioload-smp/threadlocal"
)

// forRunner drives one parallel-for pass over an engine.
type forRunner interface {
	runFor(eng api.Engine, first, last, grain int64)
}

// newAdapter picks the adapter for f's shape. Initialize and Reduce
// must come in pairs; a functor exposing only one of the two is a
// programming error and is rejected loudly.
func newAdapter(f api.Functor) forRunner {
	ini, hasInit := f.(api.Initializer)
	red, hasReduce := f.(api.Reducer)
	switch {
	case hasInit && hasReduce:
		return &statefulAdapter{
			functor: f,
			init:    ini,
			reduce:  red,
			inited:  threadlocal.New[bool](nil),
		}
	case hasInit || hasReduce:
		panic(api.ErrPartialFunctor)
	default:
		return statelessAdapter{f}
	}
}

// statelessAdapter forwards subranges straight to the functor.
type statelessAdapter struct {
	functor api.Functor
}

var _ api.Body = statelessAdapter{}

// Execute implements api.Body.
func (a statelessAdapter) Execute(first, last int64) {
	a.functor.Execute(first, last)
}

func (a statelessAdapter) runFor(eng api.Engine, first, last, grain int64) {
	eng.For(first, last, grain, a)
}

// statefulAdapter runs the functor's Initialize once per worker before
// that worker's first subrange, and Reduce once after the engine's
// pass has returned. The init flags live in a worker-local Var whose
// lifetime is this one call.
type statefulAdapter struct {
	functor api.Functor
	init    api.Initializer
	reduce  api.Reducer
	inited  *threadlocal.Var[bool]
}

var _ api.Body = (*statefulAdapter)(nil)

// Execute implements api.Body.
func (a *statefulAdapter) Execute(first, last int64) {
	flag := a.inited.Local()
	if !*flag {
		a.init.Initialize()
		*flag = true
	}
	a.functor.Execute(first, last)
}

func (a *statefulAdapter) runFor(eng api.Engine, first, last, grain int64) {
	// A panic inside the pass unwinds past this call, so Reduce only
	// runs after a clean, fully completed pass.
	eng.For(first, last, grain, a)
	a.reduce.Reduce()
}
