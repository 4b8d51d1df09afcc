// Package workload generates the pseudo-random inputs and queries used
// to exercise and measure prefix-sum trees.
package workload

import (
	rng "github.com/leesper/go_rng"
)

// RNG is the source of uniformly distributed values.
type RNG interface {
	// Int64Range returns a value in [a, b).
	Int64Range(a, b int64) int64
}

// NewRNG returns a uniform generator; equal seeds yield equal sequences.
func NewRNG(seed int64) RNG {
	return rng.NewUniformGenerator(seed)
}

// Values returns n values drawn uniformly from [lo, hi], both inclusive.
func Values(r RNG, n int, lo, hi int64) []int64 {
	values := make([]int64, n)
	for i := range values {
		values[i] = r.Int64Range(lo, hi+1)
	}
	return values
}

// Queries returns count indices drawn uniformly from [0, n).
func Queries(r RNG, count, n int) []int {
	queries := make([]int, count)
	for i := range queries {
		queries[i] = int(r.Int64Range(0, int64(n)))
	}
	return queries
}
