// File: control/calllog.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded log of recent parallel calls for diagnostics. Disabled it
// costs one atomic load per call; enabled it records one entry per
// facade-level operation into a ring of fixed capacity.

package control

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"
	"github.com/google/uuid"
)

// CallRecord describes one facade-level parallel operation.
type CallRecord struct {
	ID       uuid.UUID
	Backend  string
	Op       string // "for", "transform", "fill", "sort"
	First    int64
	Last     int64
	Grain    int64
	Duration time.Duration
	When     time.Time
}

// CallLog is a bounded ring of CallRecords.
type CallLog struct {
	enabled atomic.Bool
	mu      sync.Mutex
	ring    *queue.Queue
	limit   int
}

// NewCallLog creates a log keeping at most limit records.
func NewCallLog(limit int) *CallLog {
	if limit < 1 {
		limit = 1
	}
	return &CallLog{ring: queue.New(), limit: limit}
}

// SetEnabled switches recording on or off.
func (cl *CallLog) SetEnabled(on bool) { cl.enabled.Store(on) }

// Enabled reports whether recording is on.
func (cl *CallLog) Enabled() bool { return cl.enabled.Load() }

// Record appends a record, dropping the oldest past the limit. The
// record id is assigned here.
func (cl *CallLog) Record(rec CallRecord) {
	if !cl.enabled.Load() {
		return
	}
	rec.ID = uuid.New()
	rec.When = time.Now()
	cl.mu.Lock()
	cl.ring.Add(rec)
	for cl.ring.Length() > cl.limit {
		cl.ring.Remove()
	}
	cl.mu.Unlock()
}

// Snapshot returns the retained records, oldest first.
func (cl *CallLog) Snapshot() []CallRecord {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	out := make([]CallRecord, 0, cl.ring.Length())
	for i := 0; i < cl.ring.Length(); i++ {
		out = append(out, cl.ring.Get(i).(CallRecord))
	}
	return out
}

// Len returns the number of retained records.
func (cl *CallLog) Len() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.ring.Length()
}
