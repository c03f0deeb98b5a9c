// File: control/control_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package control

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestMetricsRegistry(t *testing.T) {
	mr := NewMetricsRegistry()
	mr.Inc("calls")
	mr.Inc("calls")
	mr.Set("backend", "stealing")

	snap := mr.GetSnapshot()
	if got := snap["calls"]; got != int64(2) {
		t.Errorf("Expected counter 2, got %v", got)
	}
	if got := snap["backend"]; got != "stealing" {
		t.Errorf("Expected gauge value, got %v", got)
	}

	// Snapshot is a copy, not a view.
	mr.Inc("calls")
	if got := snap["calls"]; got != int64(2) {
		t.Errorf("Snapshot mutated after Inc: %v", got)
	}
}

func TestMetricsRegistry_Concurrent(t *testing.T) {
	mr := NewMetricsRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				mr.Inc("n")
			}
		}()
	}
	wg.Wait()
	if got := mr.GetSnapshot()["n"]; got != int64(8000) {
		t.Errorf("Expected 8000, got %v", got)
	}
}

func TestDebugProbes(t *testing.T) {
	dp := NewDebugProbes()
	dp.RegisterProbe("answer", func() any { return 42 })
	dp.RegisterProbe("answer", func() any { return 43 }) // re-register replaces

	state := dp.DumpState()
	if got := state["answer"]; got != 43 {
		t.Errorf("Expected latest probe to win, got %v", got)
	}
	if len(state) != 1 {
		t.Errorf("Expected 1 probe, got %d", len(state))
	}
}

func TestConfigStore(t *testing.T) {
	cs := NewConfigStore()
	var seen map[string]any
	cs.OnChange(func(changed map[string]any) { seen = changed })

	cs.Set(map[string]any{SettingBackend: "team", "app.key": 7})
	if seen[SettingBackend] != "team" {
		t.Errorf("Expected listener to see changed subset, got %v", seen)
	}

	cs.Set(map[string]any{SettingMaxThreads: 4})
	snap := cs.GetSnapshot()
	if snap[SettingBackend] != "team" || snap[SettingMaxThreads] != 4 || snap["app.key"] != 7 {
		t.Errorf("Expected merged settings, got %v", snap)
	}
	if _, ok := seen[SettingBackend]; ok {
		t.Errorf("Expected second notification to carry only its own keys")
	}
}

func TestCallLog_DisabledByDefault(t *testing.T) {
	cl := NewCallLog(4)
	cl.Record(CallRecord{Op: "for"})
	if cl.Len() != 0 {
		t.Errorf("Expected no records while disabled, got %d", cl.Len())
	}
}

func TestCallLog_RecordAndTrim(t *testing.T) {
	cl := NewCallLog(3)
	cl.SetEnabled(true)
	for i := int64(0); i < 5; i++ {
		cl.Record(CallRecord{Op: "for", First: i})
	}
	if cl.Len() != 3 {
		t.Fatalf("Expected ring trimmed to 3, got %d", cl.Len())
	}
	recs := cl.Snapshot()
	// Oldest two dropped; survivors in insertion order.
	for i, want := range []int64{2, 3, 4} {
		if recs[i].First != want {
			t.Errorf("Record %d First = %d, want %d", i, recs[i].First, want)
		}
	}
	for _, r := range recs {
		if r.ID == uuid.Nil {
			t.Errorf("Expected assigned record id")
		}
		if r.When.IsZero() {
			t.Errorf("Expected assigned timestamp")
		}
	}
}

func TestCallLog_ToggleStopsRecording(t *testing.T) {
	cl := NewCallLog(8)
	cl.SetEnabled(true)
	cl.Record(CallRecord{Op: "sort"})
	cl.SetEnabled(false)
	cl.Record(CallRecord{Op: "sort"})
	if cl.Len() != 1 {
		t.Errorf("Expected 1 record after disable, got %d", cl.Len())
	}
}
