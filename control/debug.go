// File: control/debug.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Debug probe registry backing the smp facade's DumpState. Probes
// expose live views of the parallel runtime (active backend, thread
// bound, platform topology, metrics) plus any application-registered
// state.

package control

import "sync"

// Probe returns a live view of one piece of runtime state. It must be
// safe to call concurrently with parallel passes.
type Probe func() any

// DebugProbes holds named probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]Probe
}

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]Probe),
	}
}

// RegisterProbe inserts a named debug hook, replacing any previous
// probe of the same name.
func (dp *DebugProbes) RegisterProbe(name string, fn Probe) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// DumpState evaluates every probe and returns the results keyed by
// probe name.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any, len(dp.probes))
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}
