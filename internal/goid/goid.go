// File: internal/goid/goid.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Goroutine identity for worker-local slot keying. The runtime does not
// expose goroutine ids, so the id is parsed from the stack header
// ("goroutine N [running]:"). This is the same identity scheme the
// original thread-id-keyed local storage relies on, priced for cold
// paths: callers cache the slot pointer, not the id.

package goid

import (
	"bytes"
	"runtime"
	"strconv"
)

var prefix = []byte("goroutine ")

// ID returns the runtime id of the calling goroutine.
func ID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	if !bytes.HasPrefix(b, prefix) {
		return 0
	}
	b = b[len(prefix):]
	i := bytes.IndexByte(b, ' ')
	if i < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(b[:i]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
