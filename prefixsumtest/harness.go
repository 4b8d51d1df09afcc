// Package prefixsumtest verifies prefix-sum trees against an
// independently accumulated reference.
package prefixsumtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caio/go-prefixsum"
	"github.com/caio/go-prefixsum/internal/workload"
)

const (
	// MinValue and MaxValue bound the generated inputs and deltas.
	MinValue = -100
	MaxValue = 1_000_000_000

	// Runs is the number of update passes made by CheckTree.
	Runs = 100
	// Queries is the number of updated indices per pass.
	Queries = 5000
)

// CheckTree builds tree from n random values and checks every prefix
// sum. It then draws a single delta and makes Runs passes over the
// tree, adding delta to evenly spaced indices and checking the prefix
// sum at each of them right after the update.
func CheckTree(t testing.TB, tree prefixsum.Tree, n int, seed int64) {
	t.Helper()

	r := workload.NewRNG(seed)
	values := workload.Values(r, n, MinValue, MaxValue)
	require.NoError(t, tree.Build(append([]int64(nil), values...)), "building %s with %d nodes", tree.Name(), n)

	var expected int64
	for i := 0; i < n; i++ {
		got, err := tree.Sum(i)
		expected += values[i]
		if err != nil || got != expected {
			require.NoError(t, err)
			require.Equalf(t, expected, got, "%s: got sum(%d) = %d but expected %d", tree.Name(), i, got, expected)
		}
	}

	delta := r.Int64Range(MinValue, MaxValue+1)
	step := n / Queries
	if step == 0 {
		step = 1
	}
	for run := 0; run < Runs; run++ {
		expected = 0
		k := 0
		for i := 0; i < n; i += step {
			if err := tree.Update(i, delta); err != nil {
				require.NoError(t, err, "%s: update(%d, %d)", tree.Name(), i, delta)
			}
			got, err := tree.Sum(i)
			values[i] += delta
			for ; k != i+1; k++ {
				expected += values[k]
			}
			// Only hand over to require on mismatch, the loop is hot.
			if err != nil || got != expected {
				require.NoError(t, err)
				require.Equalf(t, expected, got, "%s: error during run %d: got sum(%d) = %d but expected %d",
					tree.Name(), run, i, got, expected)
			}
		}
	}
}

// CheckEquivalent builds a and b from the same input and requires both
// to answer every sum identically, before and after the same sequence
// of random updates.
func CheckEquivalent(t testing.TB, a, b prefixsum.Tree, input []int64, updates int, seed int64) {
	t.Helper()

	require.NoError(t, a.Build(append([]int64(nil), input...)))
	require.NoError(t, b.Build(append([]int64(nil), input...)))

	compare := func(stage string) {
		for i := range input {
			x, err := a.Sum(i)
			require.NoError(t, err)
			y, err := b.Sum(i)
			require.NoError(t, err)
			require.Equalf(t, x, y, "%s: sum(%d) of %s and %s differ", stage, i, a.Name(), b.Name())
		}
	}

	compare("after build")

	r := workload.NewRNG(seed)
	for k := 0; k < updates; k++ {
		i := int(r.Int64Range(0, int64(len(input))))
		delta := r.Int64Range(MinValue, MaxValue+1)
		require.NoError(t, a.Update(i, delta))
		require.NoError(t, b.Update(i, delta))
	}

	compare("after updates")
}
