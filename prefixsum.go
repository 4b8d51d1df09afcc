// Package prefixsum implements fixed size arrays of integers supporting
// prefix sums and point updates in O(log n).
//
// Several layouts are provided, all behind the Tree interface: a segment
// tree stored as an implicit complete binary tree, a Fenwick tree, a
// wide-node segment tree whose nodes span several levels, and a
// truncated segment tree that stops subdividing at small blocks.
//
// Trees are not safe for concurrent use. Sum and Update never allocate.
package prefixsum

import (
	"fmt"
	"sort"

	"golang.org/x/exp/constraints"
)

// Tree is the capability set shared by every layout.
//
// Build must be called exactly once, before any Sum or Update. Sum(i)
// returns input[0] + ... + input[i]. Update(i, delta) adds delta to the
// element at index i; it is additive, not a set. Indices between the
// input length and the padded Size() read as zero.
type Tree interface {
	Build(input []int64) error
	Sum(i int) (int64, error)
	Update(i int, delta int64) error
	Name() string
}

// Number is any value a tree can be built from.
type Number interface {
	constraints.Integer | constraints.Float
}

// BuildFrom converts input to int64, truncating floats, and builds t.
func BuildFrom[T Number](t Tree, input []T) error {
	values := make([]int64, len(input))
	for i, x := range input {
		values[i] = int64(x)
	}
	return t.Build(values)
}

var kinds = map[string]func(...Option) (Tree, error){
	"st": func(options ...Option) (Tree, error) {
		t, err := NewSegmentTree(options...)
		if err != nil {
			return nil, err
		}
		return t, nil
	},
	"ft": func(options ...Option) (Tree, error) {
		t, err := NewFenwickTree(options...)
		if err != nil {
			return nil, err
		}
		return t, nil
	},
	"sts_64u": func(options ...Option) (Tree, error) {
		t, err := NewWideTree(Node64, options...)
		if err != nil {
			return nil, err
		}
		return t, nil
	},
	"sts_256u": func(options ...Option) (Tree, error) {
		t, err := NewWideTree(Node256, options...)
		if err != nil {
			return nil, err
		}
		return t, nil
	},
	"stt": func(options ...Option) (Tree, error) {
		t, err := NewTruncatedTree(options...)
		if err != nil {
			return nil, err
		}
		return t, nil
	},
}

// New returns an unbuilt tree of the given kind. See Kinds.
func New(kind string, options ...Option) (Tree, error) {
	mk, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown tree kind %q", ErrInvalidArgument, kind)
	}
	return mk(options...)
}

// Kinds returns the kinds accepted by New, sorted.
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func checkInput(n int, built bool, limit uint64) error {
	if built {
		return fmt.Errorf("%w: tree already built", ErrInvalidArgument)
	}
	if n == 0 {
		return fmt.Errorf("%w: cannot build a tree of 0 elements", ErrInvalidArgument)
	}
	if limit != 0 && uint64(n) > limit {
		return fmt.Errorf("%w: %d elements exceed the layout limit of %d", ErrInvalidArgument, n, limit)
	}
	return nil
}
