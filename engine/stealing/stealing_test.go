// File: engine/stealing/stealing_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package stealing

import (
	"sync/atomic"
	"testing"

	"github.com/momentics/hioload-smp/api"
	"github.com/momentics/hioload-smp/engine/enginetest"
)

// TestConformance runs the shared engine contract suite.
func TestConformance(t *testing.T) {
	e := New()
	defer e.Close()
	enginetest.Run(t, e)
}

// TestNested_FromWorker verifies a pass issued from inside a worker
// pushes to the worker's own queue and completes (true nesting).
func TestNested_FromWorker(t *testing.T) {
	e := New()
	defer e.Close()
	var inner atomic.Int64
	e.For(0, 32, 1, api.BodyFunc(func(_, _ int64) {
		e.For(0, 1000, 10, api.BodyFunc(func(f, l int64) {
			inner.Add(l - f)
		}))
	}))
	if inner.Load() != 32*1000 {
		t.Errorf("Nested coverage %d, want %d", inner.Load(), 32*1000)
	}
}

// TestConcurrentCalls verifies independent passes from independent
// goroutines share the worker set without interference.
func TestConcurrentCalls(t *testing.T) {
	e := New()
	defer e.Close()
	const calls = 8
	results := make(chan int64, calls)
	for i := 0; i < calls; i++ {
		go func() {
			var covered atomic.Int64
			e.For(0, 10000, 7, api.BodyFunc(func(f, l int64) {
				covered.Add(l - f)
			}))
			results <- covered.Load()
		}()
	}
	for i := 0; i < calls; i++ {
		if got := <-results; got != 10000 {
			t.Errorf("Concurrent pass covered %d of 10000", got)
		}
	}
}

// TestDeque covers the queue used by the workers.
func TestDeque(t *testing.T) {
	d := newDeque()
	if d.pop() != nil {
		t.Errorf("Expected nil from empty deque")
	}
	t1 := &task{first: 1}
	t2 := &task{first: 2}
	d.push(t1)
	d.push(t2)
	if got := d.pop(); got != t1 {
		t.Errorf("Expected FIFO order, got %v", got)
	}
	if got := d.pop(); got != t2 {
		t.Errorf("Expected second task, got %v", got)
	}
	if d.pop() != nil {
		t.Errorf("Expected nil after draining")
	}
}
