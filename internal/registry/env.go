// File: internal/registry/env.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Environment defaults. Explicit calls always take priority; the
// variables only fill in when nothing was requested.

package registry

import (
	"log"
	"os"
	"strconv"
)

const (
	// EnvBackend names the default backend, one of the engine
	// selection names.
	EnvBackend = "HIOLOAD_SMP_BACKEND"

	// EnvMaxThreads bounds worker counts when Initialize is called
	// with 0 (or not at all).
	EnvMaxThreads = "HIOLOAD_SMP_MAX_THREADS"
)

func envBackend() string {
	return os.Getenv(EnvBackend)
}

// resolveThreads maps a raw Initialize argument to the bound handed to
// engines: an explicit positive request wins, otherwise the
// environment bound, otherwise 0 (engines treat 0 as hardware
// concurrency).
func resolveThreads(requested int) int {
	if requested > 0 {
		return requested
	}
	if v := os.Getenv(EnvMaxThreads); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Printf("[registry] ignoring invalid %s=%q", EnvMaxThreads, v)
			return 0
		}
		return n
	}
	return 0
}
