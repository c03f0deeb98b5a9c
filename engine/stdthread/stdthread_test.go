// File: engine/stdthread/stdthread_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package stdthread

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/hioload-smp/api"
	"github.com/momentics/hioload-smp/engine/enginetest"
	"github.com/momentics/hioload-smp/internal/goid"
)

// TestConformance runs the shared engine contract suite.
func TestConformance(t *testing.T) {
	e := New()
	defer e.Close()
	enginetest.Run(t, e)
}

// TestFor_UsesMultipleGoroutines verifies a large pass actually runs
// on more than the calling goroutine when workers exist.
func TestFor_UsesMultipleGoroutines(t *testing.T) {
	e := New()
	defer e.Close()
	if e.EstimatedThreads() < 2 {
		t.Skip("single-CPU host")
	}
	var mu sync.Mutex
	goroutines := make(map[uint64]bool)
	e.For(0, 1<<16, 64, api.BodyFunc(func(first, last int64) {
		mu.Lock()
		goroutines[goid.ID()] = true
		mu.Unlock()
		time.Sleep(10 * time.Microsecond) // keep chunks busy enough to overlap
	}))
	if len(goroutines) < 2 {
		t.Errorf("Expected work on multiple goroutines, got %d", len(goroutines))
	}
}

// TestFor_NestedSmallRanges pins the pool to two workers and issues
// nested passes whose chunk counts fit the task queue, so every
// participant sits inside a nested pass while its helper task is still
// queued. Completion must come from chunk draining, not from the
// queued helpers ever running.
func TestFor_NestedSmallRanges(t *testing.T) {
	e := &Engine{pool: newPool(2)}
	defer e.Close()
	var inner atomic.Int64
	done := make(chan struct{})
	go func() {
		defer close(done)
		e.For(0, 12, 1, api.BodyFunc(func(_, _ int64) {
			e.For(0, 2, 1, api.BodyFunc(func(f, l int64) {
				inner.Add(l - f)
			}))
		}))
	}()
	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("nested passes did not complete")
	}
	if inner.Load() != 12*2 {
		t.Errorf("Nested coverage %d, want %d", inner.Load(), 12*2)
	}
}

// TestFor_SaturatedPoolStillCompletes floods the pool, then issues a
// pass that must finish on caller participation alone.
func TestFor_SaturatedPoolStillCompletes(t *testing.T) {
	e := New()
	defer e.Close()
	block := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < e.pool.workers*8; i++ {
		wg.Add(1)
		if e.pool.trySubmit(func() { defer wg.Done(); <-block }) {
			continue
		}
		wg.Done()
	}
	var covered atomic.Int64
	e.For(0, 10000, 0, api.BodyFunc(func(first, last int64) {
		covered.Add(last - first)
	}))
	close(block)
	wg.Wait()
	if covered.Load() != 10000 {
		t.Errorf("Covered %d of 10000 under saturation", covered.Load())
	}
}

// TestClose_Idempotent verifies Close can run twice.
func TestClose_Idempotent(t *testing.T) {
	e := New()
	e.Close()
	e.Close()
}
