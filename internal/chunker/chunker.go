// File: internal/chunker/chunker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Range splitting shared by the parallel engines.

package chunker

// Grain resolves the effective minimum subrange size for a range of
// count indices. A caller-provided grain wins; zero asks for a default
// sized so each worker sees a handful of chunks, which absorbs uneven
// per-index cost without drowning the pass in scheduling overhead.
func Grain(count, grain int64, workers int) int64 {
	if grain > 0 {
		return grain
	}
	if workers < 1 {
		workers = 1
	}
	g := count / int64(workers*4)
	if g < 1 {
		g = 1
	}
	return g
}

// Chunks returns the number of grain-sized chunks covering count
// indices.
func Chunks(count, grain int64) int64 {
	return (count + grain - 1) / grain
}
