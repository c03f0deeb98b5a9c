// File: internal/psort/psort.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Concurrent quicksort over sort.Interface, shared by the pooled
// engines. Partitioning swaps only within the subrange being
// partitioned, so the two halves can recurse on separate goroutines
// without touching common indices. Width is bounded by a semaphore,
// recursion by a depth limit below which the stdlib sort takes over,
// which also caps degenerate pivot runs (all-equal inputs) at
// O(n log n).

package psort

import (
	"math/bits"
	"sort"
	"sync"

	"github.com/momentics/hioload-smp/internal/panics"
)

// Below this many elements a subproblem is handed to the stdlib sort.
const serialCutoff = 2048

// Sort sorts data using up to parallelism concurrent goroutines.
// parallelism <= 1 degrades to the stdlib sort.
func Sort(data sort.Interface, parallelism int) {
	n := data.Len()
	if parallelism <= 1 || n <= serialCutoff {
		sort.Sort(data)
		return
	}
	sem := make(chan struct{}, parallelism-1) // the caller counts as one worker
	var wg sync.WaitGroup
	var catcher panics.Catcher
	depth := 2 * bits.Len(uint(n))
	// The caller's own frame is not wrapped: a comparator panic here
	// propagates raw, exactly as in a serial sort. Only panics crossing
	// a goroutine boundary arrive wrapped. The deferred Wait keeps
	// spawned workers from outliving an unwinding caller.
	func() {
		defer wg.Wait()
		quicksort(data, 0, n, depth, sem, &wg, &catcher)
	}()
	catcher.Repanic()
}

func quicksort(data sort.Interface, lo, hi, depth int, sem chan struct{}, wg *sync.WaitGroup, catcher *panics.Catcher) {
	for hi-lo > serialCutoff {
		if depth == 0 || catcher.Captured() {
			break
		}
		depth--
		p := partition(data, lo, hi)
		// Hand off the smaller half if a worker slot is free, keep the
		// larger in this frame.
		if p-lo < hi-(p+1) {
			spawnOrRun(data, lo, p, depth, sem, wg, catcher)
			lo = p + 1
		} else {
			spawnOrRun(data, p+1, hi, depth, sem, wg, catcher)
			hi = p
		}
	}
	sortRange(data, lo, hi)
}

func spawnOrRun(data sort.Interface, lo, hi, depth int, sem chan struct{}, wg *sync.WaitGroup, catcher *panics.Catcher) {
	select {
	case sem <- struct{}{}:
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			catcher.Try(func() { quicksort(data, lo, hi, depth, sem, wg, catcher) })
		}()
	default:
		quicksort(data, lo, hi, depth, sem, wg, catcher)
	}
}

// partition splits [lo,hi) around a median-of-three pivot and returns
// the pivot's final index j: [lo,j) < pivot, [j+1,hi) >= pivot.
func partition(data sort.Interface, lo, hi int) int {
	mid := int(uint(lo+hi) >> 1)
	medianOfThree(data, lo, mid, hi-1)
	// Pivot sits at lo and is never scanned, so comparisons against it
	// stay valid throughout the pass.
	i, j := lo+1, hi-1
	for {
		for i <= j && data.Less(i, lo) {
			i++
		}
		for i <= j && !data.Less(j, lo) {
			j--
		}
		if i > j {
			break
		}
		data.Swap(i, j)
		i++
		j--
	}
	data.Swap(lo, j)
	return j
}

// medianOfThree leaves the median of positions a, b, c at a.
func medianOfThree(data sort.Interface, a, b, c int) {
	if data.Less(b, a) {
		data.Swap(a, b)
	}
	if data.Less(c, b) {
		data.Swap(b, c)
		if data.Less(b, a) {
			data.Swap(a, b)
		}
	}
	data.Swap(a, b)
}

// sortRange sorts [lo,hi) with the stdlib sort.
func sortRange(data sort.Interface, lo, hi int) {
	if hi-lo > 1 {
		sort.Sort(&rangeView{data, lo, hi - lo})
	}
}

// rangeView exposes a subrange of data as its own sort.Interface.
type rangeView struct {
	data sort.Interface
	off  int
	n    int
}

func (r *rangeView) Len() int           { return r.n }
func (r *rangeView) Less(i, j int) bool { return r.data.Less(r.off+i, r.off+j) }
func (r *rangeView) Swap(i, j int)      { r.data.Swap(r.off+i, r.off+j) }
