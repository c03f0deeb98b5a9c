// File: smp/smp.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Facade entry points over the backend registry: parallel for,
// backend selection, thread-count control and scoped overrides.

package smp

import (
	"os"
	"time"

	"github.com/momentics/hioload-smp/api"
	"github.com/momentics/hioload-smp/control"
	"github.com/momentics/hioload-smp/internal/registry"
)

var (
	metrics  = control.NewMetricsRegistry()
	probes   = control.NewDebugProbes()
	callLog  = control.NewCallLog(256)
	settings = control.NewConfigStore()
)

func init() {
	callLog.SetEnabled(os.Getenv("HIOLOAD_SMP_TRACE") == "1")
	probes.RegisterProbe("backend", func() any { return GetBackend() })
	probes.RegisterProbe("threads", func() any { return GetEstimatedNumberOfThreads() })
	probes.RegisterProbe("backends", func() any { return registry.Default().Backends() })
	probes.RegisterProbe("metrics", func() any { return metrics.GetSnapshot() })
	control.RegisterPlatformProbes(probes)
	settings.OnChange(applySettings)
}

// For executes f in parallel over the half-open index range
// [first,last) with a default grain. first >= last is a no-op; a
// stateful functor's Reduce still runs exactly once on an empty range.
func For(first, last int64, f api.Functor) {
	ForWithGrain(first, last, 0, f)
}

// ForWithGrain is For with an explicit minimum subrange size. grain 0
// lets the active backend choose from range size and thread count.
func ForWithGrain(first, last, grain int64, f api.Functor) {
	eng := registry.Default().GetActive()
	observe("for", first, last, grain, eng.Name(), func() {
		newAdapter(f).runFor(eng, first, last, grain)
	})
}

// ForFunc is For over a plain function, for callers with no per-worker
// state.
func ForFunc(first, last int64, fn func(first, last int64)) {
	For(first, last, api.FunctorFunc(fn))
}

// Initialize applies a maximum thread count to the active backend.
// numThreads <= 0 resets to all available hardware concurrency, or the
// HIOLOAD_SMP_MAX_THREADS environment bound if set. Calling it is
// optional; backends start with the default bound.
func Initialize(numThreads int) {
	registry.Default().Initialize(numThreads)
}

// SetBackend switches the active backend by name ("sequential",
// "stdthread", "stealing", "team"; case-insensitive). It reports
// whether the backend is compiled in and available; on false the
// previously active backend stays in effect. Explicit selection takes
// priority over the HIOLOAD_SMP_BACKEND environment default.
func SetBackend(name string) bool {
	ok := registry.Default().SetBackend(name)
	if ok {
		metrics.Set("backend", registry.Default().ActiveName())
	}
	return ok
}

// GetBackend returns the name of the backend in use, resolving the
// default on first use.
func GetBackend() string {
	return registry.Default().ActiveName()
}

// GetEstimatedNumberOfThreads returns the active backend's worker
// count estimate. Treat it as advisory: any given call may use fewer
// workers.
func GetEstimatedNumberOfThreads() int {
	return registry.Default().EstimatedThreads()
}

// ScopeWithMaxThread runs work under a temporary maximum thread count
// and restores the previous bound on every exit path, normal return or
// panic. Scopes nest LIFO.
//
//	smp.ScopeWithMaxThread(4, func() { smp.For(0, n, worker) })
func ScopeWithMaxThread(numThreads int, work func()) {
	registry.Default().ScopeMaxThreads(numThreads, work)
}

// ScopeWithMaxThreadDefault is ScopeWithMaxThread with the bound taken
// from the HIOLOAD_SMP_MAX_THREADS environment variable (hardware
// concurrency if unset).
func ScopeWithMaxThreadDefault(work func()) {
	registry.Default().ScopeMaxThreads(0, work)
}

// ApplySettings merges runtime settings and applies the well-known keys
// to the backend registry: control.SettingBackend selects a backend by
// name, control.SettingMaxThreads (int) bounds the worker count. Extra
// keys are stored and visible in Settings for application use.
func ApplySettings(cfg map[string]any) {
	settings.Set(cfg)
}

// Settings returns a snapshot of the runtime settings store.
func Settings() map[string]any {
	return settings.GetSnapshot()
}

func applySettings(changed map[string]any) {
	if name, ok := changed[control.SettingBackend].(string); ok {
		SetBackend(name)
	}
	if n, ok := changed[control.SettingMaxThreads].(int); ok {
		Initialize(n)
	}
}

// Stats returns a snapshot of facade-level metrics.
func Stats() map[string]any {
	return metrics.GetSnapshot()
}

// RegisterDebugProbe adds a named probe to the facade's debug surface.
func RegisterDebugProbe(name string, fn func() any) {
	probes.RegisterProbe(name, fn)
}

// DumpState runs all debug probes and returns their output.
func DumpState() map[string]any {
	return probes.DumpState()
}

// RecentCalls returns the retained call-log records, oldest first.
// Recording is enabled with HIOLOAD_SMP_TRACE=1 or SetCallTrace.
func RecentCalls() []control.CallRecord {
	return callLog.Snapshot()
}

// SetCallTrace switches call-log recording on or off at runtime.
func SetCallTrace(on bool) {
	callLog.SetEnabled(on)
}

// observe wraps one facade operation with metrics and optional call
// tracing. With tracing disabled the added cost is one counter bump.
func observe(op string, first, last, grain int64, backend string, fn func()) {
	metrics.Inc(op + ".calls")
	if !callLog.Enabled() {
		fn()
		return
	}
	start := time.Now()
	fn()
	callLog.Record(control.CallRecord{
		Backend:  backend,
		Op:       op,
		First:    first,
		Last:     last,
		Grain:    grain,
		Duration: time.Since(start),
	})
}
