package prefixsum

import "github.com/caio/go-prefixsum/internal/fenwick"

// FenwickTree is a binary indexed tree over the input padded to a power
// of two. It uses Size() counters, half of what a SegmentTree needs.
type FenwickTree struct {
	n    int
	list *fenwick.List
}

// NewFenwickTree returns an unbuilt Fenwick tree. It accepts the common
// options for symmetry with the other layouts but none of them apply.
func NewFenwickTree(options ...Option) (*FenwickTree, error) {
	if _, err := newConfig(options); err != nil {
		return nil, err
	}
	return &FenwickTree{}, nil
}

// Name implements Tree.
func (t *FenwickTree) Name() string {
	return "fenwick_tree"
}

// Build implements Tree.
func (t *FenwickTree) Build(input []int64) error {
	if err := checkInput(len(input), t.list != nil, 0); err != nil {
		return err
	}
	padded := make([]int64, ceilPow2(uint64(len(input))))
	copy(padded, input)
	l := fenwick.Wrap(padded)
	t.list = &l
	t.n = len(input)
	return nil
}

// Sum implements Tree.
func (t *FenwickTree) Sum(i int) (int64, error) {
	size := t.size()
	if !inRange(i, size) {
		return 0, indexError(i, size)
	}
	return t.list.Sum(i + 1), nil
}

// Update implements Tree.
func (t *FenwickTree) Update(i int, delta int64) error {
	size := t.size()
	if !inRange(i, size) {
		return indexError(i, size)
	}
	t.list.Add(i, delta)
	return nil
}

// Len returns the number of elements the tree was built from.
func (t *FenwickTree) Len() int {
	return t.n
}

// Size returns the padded number of elements, a power of two.
func (t *FenwickTree) Size() int {
	return int(t.size())
}

func (t *FenwickTree) size() uint64 {
	if t.list == nil {
		return 0
	}
	return uint64(t.list.Len())
}
