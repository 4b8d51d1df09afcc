package prefixsum

import (
	"math/rand"
	"testing"
)

func TestUseBranchless(t *testing.T) {
	tests := []struct {
		name      string
		size      uint64
		threshold int
		want      bool
	}{
		{"single leaf", 1, DefaultBranchlessThreshold, true},
		{"small", 1 << 10, DefaultBranchlessThreshold, true},
		{"last branchless", 1 << 22, DefaultBranchlessThreshold, true},
		{"first branchy", 1 << 23, DefaultBranchlessThreshold, false},
		{"huge", 1 << 30, DefaultBranchlessThreshold, false},
		{"forced branchy", 2, 0, false},
		{"forced branchy single leaf", 1, 0, false},
		{"custom", 64, 33, true},
		{"custom boundary", 64, 32, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := useBranchless(tt.size, tt.threshold); got != tt.want {
				t.Errorf("useBranchless(%d, %d) = %v, want %v", tt.size, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestCeilPow2(t *testing.T) {
	for n, want := range map[uint64]uint64{1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 1000: 1024, 1 << 20: 1 << 20, 1<<20 + 1: 1 << 21} {
		if got := ceilPow2(n); got != want {
			t.Errorf("ceilPow2(%d) = %d, want %d", n, got, want)
		}
		if got := log2(want); uint64(1)<<got != want {
			t.Errorf("log2(%d) = %d", want, got)
		}
	}
}

func TestFillLayout(t *testing.T) {
	tree := newImplicitTree(4, DefaultBranchlessThreshold)
	tree.fill([]int64{1, 2, 3, 4})

	// root, [0,1], [2,3], then the leaves
	want := []int64{10, 3, 7, 1, 2, 3, 4}
	for p, x := range want {
		if tree.slots[p] != x {
			t.Errorf("slot %d = %d, want %d (slots %v)", p, tree.slots[p], x, tree.slots)
		}
	}

	for i := uint64(0); i < 4; i++ {
		if tree.leaf(i) != int64(i+1) {
			t.Errorf("leaf(%d) = %d, want %d", i, tree.leaf(i), i+1)
		}
	}
}

// checkDescentsAgree compares both descents on every index of two trees
// sharing the same leaves, then applies the same updates through each
// descent and compares the whole slot arrays.
func checkDescentsAgree(t *testing.T, r *rand.Rand, size uint64, updates int) {
	t.Helper()

	leaves := randomInput(r, int(size))
	fast := newImplicitTree(size, DefaultBranchlessThreshold)
	slow := newImplicitTree(size, DefaultBranchlessThreshold)
	fast.fill(leaves)
	slow.fill(leaves)

	for i := uint64(0); i < size; i++ {
		a, b := fast.prefixBranchless(i), fast.prefixBranchy(i)
		if a != b {
			t.Fatalf("size %d: branchless prefix(%d) = %d but branchy gives %d", size, i, a, b)
		}
	}

	for k := 0; k < updates; k++ {
		i := uint64(r.Int63n(int64(size)))
		delta := r.Int63n(2001) - 1000
		fast.addBranchless(i, delta)
		slow.addBranchy(i, delta)
	}

	for p := range fast.slots {
		if fast.slots[p] != slow.slots[p] {
			t.Fatalf("size %d: slot %d differs after updates: branchless %d, branchy %d", size, p, fast.slots[p], slow.slots[p])
		}
	}

	for i := uint64(0); i < size; i++ {
		a, b := fast.prefixBranchless(i), slow.prefixBranchy(i)
		if a != b {
			t.Fatalf("size %d: after updates prefix(%d) = %d branchless, %d branchy", size, i, a, b)
		}
	}
}

func TestDescentEquivalence(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(0xDEADBEEF))

	for size := uint64(1); size <= 1<<13; size <<= 1 {
		checkDescentsAgree(t, r, size, 500)
	}
}

func TestThresholdSelectsDescent(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	input := randomInput(r, 1000)

	branchless, _ := NewSegmentTree(BranchlessThreshold(1 << 30))
	branchy, _ := NewSegmentTree(BranchlessThreshold(0))
	_ = branchless.Build(input)
	_ = branchy.Build(input)

	if !branchless.Branchless() || branchy.Branchless() {
		t.Fatalf("BranchlessThreshold did not select the expected descents")
	}

	for k := 0; k < 2000; k++ {
		i := r.Intn(1024)
		delta := r.Int63n(100) - 50
		_ = branchless.Update(i, delta)
		_ = branchy.Update(i, delta)
		a, _ := branchless.Sum(i)
		b, _ := branchy.Sum(i)
		if a != b {
			t.Fatalf("Sum(%d) = %d branchless, %d branchy", i, a, b)
		}
	}
}

func TestDescentEquivalenceAtCutover(t *testing.T) {
	if testing.Short() {
		t.Skipf("Skipping cutover test. Short flag is on")
	}

	r := rand.New(rand.NewSource(71))

	// 1<<22 elements is the largest default branchless tree, one more
	// element pads to the first branchy one.
	for _, n := range []int{1 << 22, 1<<22 + 1} {
		tree, _ := NewSegmentTree()
		if err := tree.Build(randomInput(r, n)); err != nil {
			t.Fatalf("Build() of %d elements failed: %s", n, err)
		}
		if want := n == 1<<22; tree.Branchless() != want {
			t.Fatalf("n=%d: Branchless() = %v, want %v", n, tree.Branchless(), want)
		}

		for k := 0; k < 20000; k++ {
			i := uint64(r.Intn(tree.Size()))
			if k%2 == 0 {
				tree.tree.addBranchless(i, r.Int63n(2001)-1000)
			} else {
				tree.tree.addBranchy(i, r.Int63n(2001)-1000)
			}
			a, b := tree.tree.prefixBranchless(i), tree.tree.prefixBranchy(i)
			if a != b {
				t.Fatalf("n=%d: prefix(%d) = %d branchless, %d branchy", n, i, a, b)
			}
		}
	}
}
