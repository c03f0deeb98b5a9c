// File: smp/algorithms.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Element-generic convenience algorithms over the active backend.
// Engines cannot carry type parameters through the api.Engine
// interface, so the generic surface lives here: each algorithm closes
// over its slices and hands the engine an index-range kernel; the
// engine decides the partitioning.

package smp

import (
	"cmp"
	"sort"

	"github.com/momentics/hioload-smp/api"
	"github.com/momentics/hioload-smp/internal/registry"
)

// Transform applies op element-wise, out[i] = op(in[i]), a parallel
// drop-in for a map loop. in and out must have the same length; out
// may alias in. Length mismatches are the caller's contract and are
// not validated here.
func Transform[In, Out any](in []In, out []Out, op func(In) Out) {
	eng := registry.Default().GetActive()
	n := int64(len(in))
	observe("transform", 0, n, 0, eng.Name(), func() {
		eng.Transform(n, api.BodyFunc(func(first, last int64) {
			for i := first; i < last; i++ {
				out[i] = op(in[i])
			}
		}))
	})
}

// Transform2 applies op element-wise over two inputs,
// out[i] = op(in1[i], in2[i]). All three must have the same length.
func Transform2[In1, In2, Out any](in1 []In1, in2 []In2, out []Out, op func(In1, In2) Out) {
	eng := registry.Default().GetActive()
	n := int64(len(in1))
	observe("transform", 0, n, 0, eng.Name(), func() {
		eng.Transform(n, api.BodyFunc(func(first, last int64) {
			for i := first; i < last; i++ {
				out[i] = op(in1[i], in2[i])
			}
		}))
	})
}

// Fill assigns value to every element of s, a parallel drop-in for a
// fill loop.
func Fill[T any](s []T, value T) {
	eng := registry.Default().GetActive()
	n := int64(len(s))
	observe("fill", 0, n, 0, eng.Name(), func() {
		eng.Fill(n, api.BodyFunc(func(first, last int64) {
			for i := first; i < last; i++ {
				s[i] = value
			}
		}))
	})
}

// Sort sorts s ascending under natural ordering. Ordering is a total
// order; stability is not guaranteed by any backend.
func Sort[S ~[]E, E cmp.Ordered](s S) {
	SortData(ordered[E](s))
}

// SortFunc sorts s under the comparator's total order: compare returns
// negative when a orders before b. Stability is not guaranteed.
func SortFunc[S ~[]E, E any](s S, compare func(a, b E) int) {
	SortData(&compared[E]{s: s, cmp: compare})
}

// SortData sorts arbitrary sort.Interface data on the active backend.
func SortData(data sort.Interface) {
	eng := registry.Default().GetActive()
	observe("sort", 0, int64(data.Len()), 0, eng.Name(), func() {
		eng.Sort(data)
	})
}

type ordered[E cmp.Ordered] []E

func (s ordered[E]) Len() int           { return len(s) }
func (s ordered[E]) Less(i, j int) bool { return cmp.Less(s[i], s[j]) }
func (s ordered[E]) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

type compared[E any] struct {
	s   []E
	cmp func(a, b E) int
}

func (c *compared[E]) Len() int           { return len(c.s) }
func (c *compared[E]) Less(i, j int) bool { return c.cmp(c.s[i], c.s[j]) < 0 }
func (c *compared[E]) Swap(i, j int)      { c.s[i], c.s[j] = c.s[j], c.s[i] }
