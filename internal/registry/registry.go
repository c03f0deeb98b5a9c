// File: internal/registry/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Process-wide backend selection. The registry owns one instance of
// every compiled-in engine and tracks which is active. Resolution is
// lazy: the first operation that needs an engine resolves the default
// from, in priority order, an explicit SetBackend call, the
// HIOLOAD_SMP_BACKEND environment variable, and the compiled-in
// preference order, falling back to the always-available sequential
// engine.
//
// Switching backends or thread bounds concurrently with in-flight
// parallel calls is the caller's responsibility to avoid; both are
// startup/scope-entry operations.

package registry

import (
	"log"
	"strings"
	"sync"

	"github.com/momentics/hioload-smp/api"
	"github.com/momentics/hioload-smp/engine/sequential"
	"github.com/momentics/hioload-smp/engine/stdthread"
	"github.com/momentics/hioload-smp/engine/stealing"
	"github.com/momentics/hioload-smp/engine/team"
)

// preferred is the compiled-in default order, best first.
var preferred = []string{
	api.BackendStealing,
	api.BackendTeam,
	api.BackendSTDThread,
	api.BackendSequential,
}

// Registry holds the engines and the active selection.
type Registry struct {
	mu        sync.RWMutex
	engines   map[string]api.Engine
	active    api.Engine
	requested int // last Initialize argument, raw; 0 = auto/env
}

var (
	once     sync.Once
	instance *Registry
)

// Default returns the process-wide registry, constructing it on first
// use.
func Default() *Registry {
	once.Do(func() {
		instance = newRegistry()
	})
	return instance
}

func newRegistry() *Registry {
	engines := []api.Engine{
		sequential.New(),
		stdthread.New(),
		stealing.New(),
		team.New(),
	}
	r := &Registry{engines: make(map[string]api.Engine, len(engines))}
	for _, e := range engines {
		r.engines[e.Name()] = e
	}
	return r
}

// GetActive returns the active engine, resolving the default on first
// use.
func (r *Registry) GetActive() api.Engine {
	r.mu.RLock()
	e := r.active
	r.mu.RUnlock()
	if e != nil {
		return e
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		r.active = r.resolveDefault()
		r.active.SetMaxThreads(resolveThreads(r.requested))
	}
	return r.active
}

func (r *Registry) resolveDefault() api.Engine {
	if name := envBackend(); name != "" {
		if e, ok := r.lookup(name); ok && e.Available() {
			return e
		}
		log.Printf("[registry] backend %q from HIOLOAD_SMP_BACKEND is unknown or unavailable, using default", name)
	}
	for _, name := range preferred {
		if e, ok := r.engines[name]; ok && e.Available() {
			return e
		}
	}
	return r.engines[api.BackendSequential]
}

// lookup finds an engine by case-insensitive name.
func (r *Registry) lookup(name string) (api.Engine, bool) {
	e, ok := r.engines[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}

// SetBackend switches the active engine. It reports whether the named
// backend is compiled in and available; on false the previous active
// engine is unchanged.
func (r *Registry) SetBackend(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.lookup(name)
	if !ok || !e.Available() {
		return false
	}
	r.active = e
	// Carry the configured thread bound over to the new engine.
	e.SetMaxThreads(resolveThreads(r.requested))
	return true
}

// ActiveName returns the active engine's name, resolving the default
// if needed.
func (r *Registry) ActiveName() string {
	return r.GetActive().Name()
}

// Backends returns the names of all compiled-in engines.
func (r *Registry) Backends() []string {
	names := make([]string, 0, len(r.engines))
	for _, name := range preferred {
		if _, ok := r.engines[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// Initialize applies a thread-count request to the active engine.
// numThreads <= 0 means "all available hardware concurrency, or the
// HIOLOAD_SMP_MAX_THREADS bound if set".
func (r *Registry) Initialize(numThreads int) {
	e := r.GetActive()
	r.mu.Lock()
	if numThreads < 0 {
		numThreads = 0
	}
	r.requested = numThreads
	r.mu.Unlock()
	e.SetMaxThreads(resolveThreads(numThreads))
}

// EstimatedThreads queries the active engine's worker-count estimate.
func (r *Registry) EstimatedThreads() int {
	return r.GetActive().EstimatedThreads()
}

// ScopeMaxThreads runs work under a temporary thread bound and
// restores the previous bound on every exit path, panicking included.
// Scopes nest LIFO.
func (r *Registry) ScopeMaxThreads(numThreads int, work func()) {
	r.mu.RLock()
	prev := r.requested
	r.mu.RUnlock()

	r.Initialize(numThreads)
	defer r.Initialize(prev)
	work()
}
