// File: engine/stealing/deque.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-worker task queue. eapache/queue supplies the ring storage; the
// mutex makes it safe for the owner and for thieves. Owners and
// thieves both take from the front — strict LIFO/FIFO split is not
// needed for flat range chunks, whose cost profile is uniform.

package stealing

import (
	"sync"

	"github.com/eapache/queue"
)

type deque struct {
	mu sync.Mutex
	q  *queue.Queue
}

func newDeque() *deque {
	return &deque{q: queue.New()}
}

func (d *deque) push(t *task) {
	d.mu.Lock()
	d.q.Add(t)
	d.mu.Unlock()
}

func (d *deque) pop() *task {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.q.Length() == 0 {
		return nil
	}
	return d.q.Remove().(*task)
}
