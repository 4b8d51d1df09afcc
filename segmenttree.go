package prefixsum

// SegmentTree keeps one signed 64-bit counter per node of an implicit
// complete binary tree over the input padded to a power of two.
type SegmentTree struct {
	threshold int
	n         int
	tree      implicitTree
}

// NewSegmentTree returns an unbuilt segment tree.
func NewSegmentTree(options ...Option) (*SegmentTree, error) {
	c, err := newConfig(options)
	if err != nil {
		return nil, err
	}
	return &SegmentTree{threshold: c.branchlessThreshold}, nil
}

// Name implements Tree.
func (t *SegmentTree) Name() string {
	return "segment_tree"
}

// Build implements Tree. It allocates 2*Size()-1 counters.
func (t *SegmentTree) Build(input []int64) error {
	if err := checkInput(len(input), t.tree.size != 0, 0); err != nil {
		return err
	}
	size := ceilPow2(uint64(len(input)))
	leaves := make([]int64, size)
	copy(leaves, input)

	t.tree = newImplicitTree(size, t.threshold)
	t.tree.fill(leaves)
	t.n = len(input)
	return nil
}

// Sum implements Tree.
func (t *SegmentTree) Sum(i int) (int64, error) {
	if !inRange(i, t.tree.size) {
		return 0, indexError(i, t.tree.size)
	}
	return t.tree.prefix(uint64(i)), nil
}

// Update implements Tree.
func (t *SegmentTree) Update(i int, delta int64) error {
	if !inRange(i, t.tree.size) {
		return indexError(i, t.tree.size)
	}
	t.tree.add(uint64(i), delta)
	return nil
}

// Len returns the number of elements the tree was built from.
func (t *SegmentTree) Len() int {
	return t.n
}

// Size returns the padded number of elements, a power of two.
func (t *SegmentTree) Size() int {
	return int(t.tree.size)
}

// Branchless reports whether the tree descends without branches.
func (t *SegmentTree) Branchless() bool {
	return t.tree.branchless
}
