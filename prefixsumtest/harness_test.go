package prefixsumtest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caio/go-prefixsum"
	"github.com/caio/go-prefixsum/internal/workload"
)

const (
	minLog2 = 0
	maxLog2 = 14
)

func TestTrees(t *testing.T) {
	for _, kind := range prefixsum.Kinds() {
		kind := kind
		t.Run(kind, func(t *testing.T) {
			t.Parallel()
			for log2 := minLog2; log2 <= maxLog2; log2++ {
				tree, err := prefixsum.New(kind)
				require.NoError(t, err)
				CheckTree(t, tree, 1<<log2, int64(log2))
			}
		})
	}
}

func TestTreesUnevenSizes(t *testing.T) {
	for _, kind := range prefixsum.Kinds() {
		for _, n := range []int{3, 100, 1000, 6001} {
			tree, err := prefixsum.New(kind)
			require.NoError(t, err)
			CheckTree(t, tree, n, int64(n))
		}
	}
}

func TestEquivalentDescents(t *testing.T) {
	for _, kind := range []string{"st", "stt"} {
		for _, n := range []int{1, 2, 5, 64, 1000, 1 << 12} {
			t.Run(fmt.Sprintf("%s/%d", kind, n), func(t *testing.T) {
				branchless, err := prefixsum.New(kind, prefixsum.BranchlessThreshold(1<<30), prefixsum.LeafSize(4))
				require.NoError(t, err)
				branchy, err := prefixsum.New(kind, prefixsum.BranchlessThreshold(0), prefixsum.LeafSize(4))
				require.NoError(t, err)

				input := workload.Values(workload.NewRNG(int64(n)), n, MinValue, MaxValue)
				CheckEquivalent(t, branchless, branchy, input, 2000, int64(n))
			})
		}
	}
}

func TestEquivalentLayouts(t *testing.T) {
	kinds := prefixsum.Kinds()
	input := make([]int64, 3333)
	for i := range input {
		input[i] = int64(i*7%13) - 6
	}

	for _, kind := range kinds[1:] {
		ref, err := prefixsum.New(kinds[0])
		require.NoError(t, err)
		other, err := prefixsum.New(kind)
		require.NoError(t, err)
		CheckEquivalent(t, ref, other, input, 5000, 71)
	}
}
