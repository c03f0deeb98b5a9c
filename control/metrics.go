// File: control/metrics.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Runtime metrics collector for the smp facade. Exposes counters and
// gauges in a thread-safe map with dynamic registration.

package control

import (
	"sync"
	"time"
)

// MetricsRegistry holds mutable and read-only metrics.
type MetricsRegistry struct {
	mu       sync.RWMutex
	counters map[string]int64
	gauges   map[string]any
	updated  time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		counters: make(map[string]int64),
		gauges:   make(map[string]any),
	}
}

// Inc increments a named counter.
func (mr *MetricsRegistry) Inc(key string) {
	mr.mu.Lock()
	mr.counters[key]++
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Set sets or updates a gauge key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.gauges[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// GetSnapshot returns the latest metrics.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.counters)+len(mr.gauges))
	for k, v := range mr.counters {
		out[k] = v
	}
	for k, v := range mr.gauges {
		out[k] = v
	}
	return out
}
