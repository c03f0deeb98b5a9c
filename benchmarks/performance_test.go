// Package benchmarks
// Author: momentics <momentics@gmail.com>
//
// Performance benchmarks for hioload-smp backends and primitives.

package benchmarks

import (
	"math/rand"
	"testing"

	"github.com/momentics/hioload-smp/api"
	"github.com/momentics/hioload-smp/engine/sequential"
	"github.com/momentics/hioload-smp/engine/stdthread"
	"github.com/momentics/hioload-smp/engine/stealing"
	"github.com/momentics/hioload-smp/engine/team"
	"github.com/momentics/hioload-smp/smp"
	"github.com/momentics/hioload-smp/threadlocal"
)

const rangeSize = 1 << 20

// kernel is a small fixed-cost body so the measurement is dominated by
// scheduling overhead rather than user work.
var kernel = api.BodyFunc(func(first, last int64) {
	var acc int64
	for i := first; i < last; i++ {
		acc += i
	}
	_ = acc
})

func benchFor(b *testing.B, e api.Engine) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.For(0, rangeSize, 0, kernel)
	}
}

// BenchmarkForSequential measures the single-goroutine baseline.
func BenchmarkForSequential(b *testing.B) {
	benchFor(b, sequential.New())
}

// BenchmarkForSTDThread measures the shared-pool backend.
func BenchmarkForSTDThread(b *testing.B) {
	e := stdthread.New()
	defer e.Close()
	benchFor(b, e)
}

// BenchmarkForStealing measures the work-stealing backend.
func BenchmarkForStealing(b *testing.B) {
	e := stealing.New()
	defer e.Close()
	benchFor(b, e)
}

// BenchmarkForTeam measures the per-pass team backend, including the
// cost of spawning a fresh team each call.
func BenchmarkForTeam(b *testing.B) {
	benchFor(b, team.New())
}

// BenchmarkForFineGrain measures scheduling overhead with many small
// chunks on the default backend.
func BenchmarkForFineGrain(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		smp.ForWithGrain(0, rangeSize, 256, api.FunctorFunc(func(_, _ int64) {}))
	}
}

// BenchmarkSort measures parallel sort throughput on the default
// backend.
func BenchmarkSort(b *testing.B) {
	src := make([]int, rangeSize/4)
	rng := rand.New(rand.NewSource(1))
	for i := range src {
		src[i] = rng.Int()
	}
	data := make([]int, len(src))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(data, src)
		smp.Sort(data)
	}
}

// BenchmarkTransform measures element-wise throughput on the default
// backend.
func BenchmarkTransform(b *testing.B) {
	in := make([]float64, rangeSize)
	out := make([]float64, rangeSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		smp.Transform(in, out, func(v float64) float64 { return v*2 + 1 })
	}
}

// BenchmarkThreadLocal measures worker-local slot access, the hot path
// of every stateful functor.
func BenchmarkThreadLocal(b *testing.B) {
	v := threadlocal.New[int64](nil)
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			*v.Local()++
		}
	})
}
