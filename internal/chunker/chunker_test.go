// File: internal/chunker/chunker_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package chunker

import "testing"

// TestGrain_ExplicitWins verifies a caller grain is used verbatim.
func TestGrain_ExplicitWins(t *testing.T) {
	if g := Grain(1000, 64, 8); g != 64 {
		t.Errorf("Expected grain 64, got %d", g)
	}
}

// TestGrain_DefaultScalesWithWorkers verifies the auto grain gives
// each worker several chunks and never drops below one index.
func TestGrain_DefaultScalesWithWorkers(t *testing.T) {
	if g := Grain(1024, 0, 4); g != 64 {
		t.Errorf("Expected grain 64 for 1024/4 workers, got %d", g)
	}
	if g := Grain(3, 0, 8); g != 1 {
		t.Errorf("Expected minimum grain 1, got %d", g)
	}
	if g := Grain(100, 0, 0); g != 25 {
		t.Errorf("Expected workers clamped to 1, got grain %d", g)
	}
}

// TestChunks verifies chunk counting over uneven ranges.
func TestChunks(t *testing.T) {
	cases := []struct {
		count, grain, want int64
	}{
		{10, 3, 4},
		{9, 3, 3},
		{1, 10, 1},
	}
	for _, c := range cases {
		if got := Chunks(c.count, c.grain); got != c.want {
			t.Errorf("Chunks(%d,%d) = %d, want %d", c.count, c.grain, got, c.want)
		}
	}
}
