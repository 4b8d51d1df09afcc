package prefixsum

import "github.com/caio/go-prefixsum/internal/fenwick"

// TruncatedTree is a segment tree that stops subdividing at blocks of
// LeafSize elements. The binary tree holds one counter per block total,
// and each block is a small Fenwick list, so the tree needs about
// 2*Size()/LeafSize counters on top of the Size() element slots.
type TruncatedTree struct {
	threshold int
	leafSize  uint64
	block     uint64
	shift     uint64
	n         int
	blocks    implicitTree
	leaves    []fenwick.List
}

// NewTruncatedTree returns an unbuilt truncated segment tree.
func NewTruncatedTree(options ...Option) (*TruncatedTree, error) {
	c, err := newConfig(options)
	if err != nil {
		return nil, err
	}
	return &TruncatedTree{
		threshold: c.branchlessThreshold,
		leafSize:  uint64(c.leafSize),
	}, nil
}

// Name implements Tree.
func (t *TruncatedTree) Name() string {
	return "truncated_segment_tree"
}

// Build implements Tree.
func (t *TruncatedTree) Build(input []int64) error {
	if err := checkInput(len(input), t.leaves != nil, maxLayoutLen); err != nil {
		return err
	}
	size := ceilPow2(uint64(len(input)))
	block := t.leafSize
	if block > size {
		block = size
	}
	count := size / block

	backing := make([]int64, size)
	copy(backing, input)
	leaves := make([]fenwick.List, count)
	totals := make([]int64, count)
	for k := range leaves {
		lo, hi := uint64(k)*block, uint64(k+1)*block
		leaves[k] = fenwick.Wrap(backing[lo:hi:hi])
		totals[k] = leaves[k].Sum(int(block))
	}

	t.blocks = newImplicitTree(count, t.threshold)
	t.blocks.fill(totals)
	t.block = block
	t.shift = log2(block)
	t.leaves = leaves
	t.n = len(input)
	return nil
}

// Sum implements Tree.
func (t *TruncatedTree) Sum(i int) (int64, error) {
	size := t.size()
	if !inRange(i, size) {
		return 0, indexError(i, size)
	}
	k, off := t.locate(i)
	// prefix(k) includes all of block k; swap its total for the part
	// up to off.
	return t.blocks.prefix(k) - t.blocks.leaf(k) + t.leaves[k].Sum(off+1), nil
}

// Update implements Tree.
func (t *TruncatedTree) Update(i int, delta int64) error {
	size := t.size()
	if !inRange(i, size) {
		return indexError(i, size)
	}
	k, off := t.locate(i)
	t.blocks.add(k, delta)
	t.leaves[k].Add(off, delta)
	return nil
}

func (t *TruncatedTree) locate(i int) (block uint64, offset int) {
	x := uint64(i)
	return x >> t.shift, int(x & (t.block - 1))
}

func (t *TruncatedTree) size() uint64 {
	return t.blocks.size * t.block
}

// Len returns the number of elements the tree was built from.
func (t *TruncatedTree) Len() int {
	return t.n
}

// Size returns the padded number of elements, a power of two.
func (t *TruncatedTree) Size() int {
	return int(t.size())
}

// Blocks returns the number of leaf blocks, 0 before Build.
func (t *TruncatedTree) Blocks() int {
	return int(t.blocks.size)
}

// Branchless reports whether the descent over blocks avoids branches.
func (t *TruncatedTree) Branchless() bool {
	return t.blocks.branchless
}
