// File: engine/enginetest/enginetest.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Conformance suite for api.Engine implementations. Every engine must
// pass the same contract: exact subrange coverage, no-op empty ranges,
// panic propagation to the caller, deadlock-free nesting, and sorted
// output under arbitrary comparators.

package enginetest

import (
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/hioload-smp/api"
)

// coverageBody records every subrange it is handed.
type coverageBody struct {
	mu     sync.Mutex
	spans  [][2]int64
	nested func(first, last int64)
}

func (b *coverageBody) Execute(first, last int64) {
	if b.nested != nil {
		b.nested(first, last)
	}
	b.mu.Lock()
	b.spans = append(b.spans, [2]int64{first, last})
	b.mu.Unlock()
}

// checkCoverage verifies spans tile [first,last) exactly once.
func checkCoverage(t *testing.T, spans [][2]int64, first, last int64) {
	t.Helper()
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })
	next := first
	for _, s := range spans {
		if s[0] != next {
			t.Fatalf("gap or overlap: expected subrange starting at %d, got [%d,%d)", next, s[0], s[1])
		}
		if s[1] <= s[0] {
			t.Fatalf("empty subrange [%d,%d)", s[0], s[1])
		}
		next = s[1]
	}
	if next != last {
		t.Fatalf("range covered to %d, want %d", next, last)
	}
}

// Run executes the full conformance suite against e.
func Run(t *testing.T, e api.Engine) {
	t.Run("Coverage", func(t *testing.T) { testCoverage(t, e) })
	t.Run("EmptyRange", func(t *testing.T) { testEmptyRange(t, e) })
	t.Run("Panic", func(t *testing.T) { testPanic(t, e) })
	t.Run("Nested", func(t *testing.T) { testNested(t, e) })
	t.Run("TransformFill", func(t *testing.T) { testTransformFill(t, e) })
	t.Run("Sort", func(t *testing.T) { testSort(t, e) })
	t.Run("Threads", func(t *testing.T) { testThreads(t, e) })
}

func testCoverage(t *testing.T, e api.Engine) {
	cases := []struct {
		first, last, grain int64
	}{
		{0, 1, 0},
		{0, 100, 0},
		{0, 100, 7},
		{0, 100, 1000},
		{-50, 50, 0},
		{1000, 100000, 0},
		{0, 100000, 1},
	}
	for _, c := range cases {
		body := &coverageBody{}
		e.For(c.first, c.last, c.grain, body)
		checkCoverage(t, body.spans, c.first, c.last)
	}
}

func testEmptyRange(t *testing.T, e api.Engine) {
	body := &coverageBody{}
	e.For(10, 10, 0, body)
	e.For(10, 3, 5, body)
	if len(body.spans) != 0 {
		t.Errorf("Expected zero invocations on empty range, got %v", body.spans)
	}
}

func testPanic(t *testing.T, e api.Engine) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("Expected functor panic to reach the caller")
		}
		if pe, ok := r.(*api.PanicError); ok && pe.Value != "functor failure" {
			t.Errorf("Expected wrapped value %q, got %v", "functor failure", pe.Value)
		}
	}()
	e.For(0, 100000, 1, api.BodyFunc(func(first, last int64) {
		if first >= 50000 {
			panic("functor failure")
		}
	}))
}

func testNested(t *testing.T, e api.Engine) {
	var mu sync.Mutex
	covered := int64(0)
	e.For(0, 64, 1, api.BodyFunc(func(first, last int64) {
		e.For(0, 128, 0, api.BodyFunc(func(f, l int64) {
			mu.Lock()
			covered += l - f
			mu.Unlock()
		}))
	}))
	if covered != 64*128 {
		t.Errorf("Nested passes covered %d indices, want %d", covered, 64*128)
	}

	// Minimal nested chunk counts, enough outer chunks to occupy every
	// worker: all participants sit inside nested passes at once. Must
	// complete regardless of how the engine schedules helpers, so run
	// under a watchdog instead of letting the whole test binary hang.
	outer := int64(e.EstimatedThreads()) * 4
	var small atomic.Int64
	nestedDone := make(chan struct{})
	go func() {
		defer close(nestedDone)
		e.For(0, outer, 1, api.BodyFunc(func(_, _ int64) {
			e.For(0, 2, 1, api.BodyFunc(func(f, l int64) {
				small.Add(l - f)
			}))
		}))
	}()
	select {
	case <-nestedDone:
	case <-time.After(30 * time.Second):
		t.Fatal("nested passes with minimal chunk counts did not complete")
	}
	if small.Load() != outer*2 {
		t.Errorf("Nested passes covered %d indices, want %d", small.Load(), outer*2)
	}
}

func testTransformFill(t *testing.T, e api.Engine) {
	for _, n := range []int64{0, 1, 1000} {
		body := &coverageBody{}
		e.Transform(n, body)
		checkCoverage(t, body.spans, 0, n)

		body = &coverageBody{}
		e.Fill(n, body)
		checkCoverage(t, body.spans, 0, n)
	}
}

func testSort(t *testing.T, e api.Engine) {
	rng := rand.New(rand.NewSource(42))
	for _, n := range []int{0, 1, 1000, 50000} {
		s := make([]int, n)
		for i := range s {
			s[i] = rng.Intn(n + 1)
		}
		e.Sort(sort.IntSlice(s))
		if !sort.IntsAreSorted(s) {
			t.Fatalf("Sort left %d elements unsorted", n)
		}
	}
	// Descending comparator.
	s := rng.Perm(20000)
	e.Sort(sort.Reverse(sort.IntSlice(s)))
	if !sort.IsSorted(sort.Reverse(sort.IntSlice(s))) {
		t.Fatalf("Sort ignored comparator order")
	}
}

func testThreads(t *testing.T, e api.Engine) {
	orig := e.EstimatedThreads()
	if orig < 1 {
		t.Fatalf("Expected at least one worker, got %d", orig)
	}
	e.SetMaxThreads(1)
	if got := e.EstimatedThreads(); got != 1 {
		t.Errorf("Expected bound of 1 to apply, got %d", got)
	}
	// Bounded passes still cover the range.
	body := &coverageBody{}
	e.For(0, 1000, 0, body)
	checkCoverage(t, body.spans, 0, 1000)

	e.SetMaxThreads(0)
	if got := e.EstimatedThreads(); got != orig {
		t.Errorf("Expected reset to %d workers, got %d", orig, got)
	}
}
