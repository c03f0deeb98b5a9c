// File: smp/algorithms_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package smp_test

import (
	"math/rand"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-smp/smp"
)

func TestTransform(t *testing.T) {
	withBackend(t, func(t *testing.T) {
		for _, n := range []int{0, 1, 1000} {
			in := make([]int, n)
			for i := range in {
				in[i] = i
			}
			out := make([]int, n)
			smp.Transform(in, out, func(v int) int { return v * 2 })
			for i := range out {
				require.Equal(t, in[i]*2, out[i], "n=%d index %d", n, i)
			}
		}
	})
}

func TestTransform_TypeChange(t *testing.T) {
	in := []int{7, 0, -3}
	out := make([]string, len(in))
	smp.Transform(in, out, strconv.Itoa)
	assert.Equal(t, []string{"7", "0", "-3"}, out)
}

func TestTransform_Aliasing(t *testing.T) {
	s := make([]int, 5000)
	for i := range s {
		s[i] = i
	}
	smp.Transform(s, s, func(v int) int { return v + 1 })
	for i := range s {
		require.Equal(t, i+1, s[i])
	}
}

func TestTransform2(t *testing.T) {
	withBackend(t, func(t *testing.T) {
		const n = 1000
		a := make([]float64, n)
		b := make([]float64, n)
		for i := range a {
			a[i] = float64(i)
			b[i] = float64(n - i)
		}
		out := make([]float64, n)
		smp.Transform2(a, b, out, func(x, y float64) float64 { return x + y })
		for i := range out {
			require.Equal(t, float64(n), out[i], "index %d", i)
		}
	})
}

func TestFill(t *testing.T) {
	withBackend(t, func(t *testing.T) {
		for _, n := range []int{0, 1, 1000} {
			s := make([]int, n)
			smp.Fill(s, 42)
			for i, v := range s {
				require.Equal(t, 42, v, "n=%d index %d", n, i)
			}
		}
	})

	var empty []string
	smp.Fill(empty, "x") // nil slice is a no-op
}

func TestSort(t *testing.T) {
	withBackend(t, func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		for _, n := range []int{0, 1, 2, 1000, 50000} {
			s := make([]int, n)
			for i := range s {
				s[i] = rng.Intn(n/2 + 1) // force duplicates
			}
			smp.Sort(s)
			require.True(t, sort.IntsAreSorted(s), "n=%d not sorted", n)
		}
	})
}

func TestSortFunc_Descending(t *testing.T) {
	s := []int{3, 1, 4, 1, 5, 9, 2, 6}
	smp.SortFunc(s, func(a, b int) int { return b - a })
	assert.True(t, sort.SliceIsSorted(s, func(i, j int) bool { return s[i] > s[j] }))
}

func TestSortData(t *testing.T) {
	s := sort.StringSlice{"pear", "apple", "fig", "banana"}
	smp.SortData(s)
	assert.Equal(t, sort.StringSlice{"apple", "banana", "fig", "pear"}, s)
}
