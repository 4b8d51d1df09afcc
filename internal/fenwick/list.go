// Package fenwick provides a list data structure supporting prefix sums.
//
// A Fenwick tree, or binary indexed tree, is a space-efficient list
// data structure that can efficiently update elements and calculate
// prefix sums in a list of numbers.
//
// Both operations run in O(log n) time while using the same amount of
// memory as a plain array. This is achieved by representing the list as
// an implicit tree, where the value of each node is the sum of the
// numbers in that subtree.
//
// A List never grows: its length is fixed when it is created.
package fenwick

// List represents a list of numbers with support for efficient
// prefix sum computation. The zero value is an empty list.
type List struct {
	// The tree slice stores range sums of an underlying array t.
	// To compute the prefix sum t[0] + t[1] + t[k-1], add elements
	// which correspond to each 1 bit in the binary expansion of k.
	//
	// For example, this is how the sum of the 13 first elements
	// in t is computed: 13 is 1101₂ in binary, so the elements
	// at indices 1101₂ - 1, 1100₂ - 1, and 1000₂ - 1  are added;
	// they contain the range sums t[12], t[8] + … t[11], and
	// t[0] + … + t[7], respectively.
	//
	tree []int64
}

// Wrap turns buf into a list holding the elements currently stored in
// buf. The conversion happens in place: buf becomes the list's backing
// storage and must not be modified by the caller afterwards.
func Wrap(buf []int64) List {
	n := len(buf)
	for i := range buf {
		if j := i | (i + 1); j < n {
			buf[j] += buf[i]
		}
	}
	return List{tree: buf}
}

// Len returns the number of elements in the list.
func (l *List) Len() int {
	return len(l.tree)
}

// Add adds n to the element at index i.
func (l *List) Add(i int, n int64) {
	for size := len(l.tree); i < size; i |= i + 1 {
		l.tree[i] += n
	}
}

// Sum returns the sum of the elements from index 0 to index i-1.
func (l *List) Sum(i int) int64 {
	var sum int64
	for i > 0 {
		sum += l.tree[i-1]
		i &= i - 1
	}
	return sum
}
