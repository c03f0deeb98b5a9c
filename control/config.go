// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe settings store with dynamic update propagation. The smp
// facade binds one of these to its backend registry so long-running
// services can retune backend and thread bound at runtime.

package control

import (
	"sync"
)

// Well-known settings keys understood by the smp facade.
const (
	SettingBackend    = "backend"
	SettingMaxThreads = "max_threads"
)

// ConfigStore is a dynamic key/value map with atomic snapshot and listener support.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	listeners []func(changed map[string]any)
}

// NewConfigStore initializes a new config store with empty data.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		config: make(map[string]any),
	}
}

// GetSnapshot returns a copy of all settings.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		out[k] = v
	}
	return out
}

// Set merges new values and notifies listeners with the changed subset.
// Listeners run synchronously on the calling goroutine; callers see the
// new settings applied when Set returns.
func (cs *ConfigStore) Set(newCfg map[string]any) {
	cs.mu.Lock()
	for k, v := range newCfg {
		cs.config[k] = v
	}
	listeners := cs.listeners
	cs.mu.Unlock()
	for _, fn := range listeners {
		fn(newCfg)
	}
}

// OnChange registers a listener invoked on every Set.
func (cs *ConfigStore) OnChange(fn func(changed map[string]any)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}
