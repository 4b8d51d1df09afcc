package prefixsum

import "math/bits"

// implicitTree is a complete binary tree over size leaves, size being a
// power of two, laid out breadth first in a single slice: slot 0 is the
// root and the children of slot p are 2p+1 and 2p+2. Every slot holds
// the sum of the leaves below it.
//
// Two equivalent descents are available. The branchless one turns the
// comparison against the midpoint into 0 or 1 and multiplies with it
// instead of jumping. The branchy one is the plain conditional walk,
// which also stops early as soon as the query index is the upper bound
// of the current range.
type implicitTree struct {
	size       uint64
	slots      []int64
	branchless bool
}

func newImplicitTree(size uint64, threshold int) implicitTree {
	return implicitTree{
		size:       size,
		slots:      make([]int64, 2*size-1),
		branchless: useBranchless(size, threshold),
	}
}

func useBranchless(size uint64, threshold int) bool {
	return (size+1)/2 < uint64(threshold)
}

// fill sets the leaves and every inner slot. len(leaves) must be size.
func (t *implicitTree) fill(leaves []int64) {
	t.fillRange(leaves, 0, t.size-1, 0)
}

func (t *implicitTree) fillRange(leaves []int64, l, h, p uint64) int64 {
	if l == h {
		t.slots[p] = leaves[l]
		return leaves[l]
	}
	m := (l + h) / 2
	sum := t.fillRange(leaves, l, m, 2*p+1) + t.fillRange(leaves, m+1, h, 2*p+2)
	t.slots[p] = sum
	return sum
}

// leaf returns the value stored for leaf i.
func (t *implicitTree) leaf(i uint64) int64 {
	return t.slots[t.size-1+i]
}

// prefix returns the sum of leaves 0..i inclusive.
func (t *implicitTree) prefix(i uint64) int64 {
	if t.branchless {
		return t.prefixBranchless(i)
	}
	return t.prefixBranchy(i)
}

// add adds delta to leaf i and to every slot above it.
func (t *implicitTree) add(i uint64, delta int64) {
	if t.branchless {
		t.addBranchless(i, delta)
		return
	}
	t.addBranchy(i, delta)
}

// bit is compiled to a flag-setting instruction, not a jump.
func bit(b bool) uint64 {
	var x uint64
	if b {
		x = 1
	}
	return x
}

func (t *implicitTree) prefixBranchless(i uint64) int64 {
	slots := t.slots
	n := t.size
	m := (n - 1) / 2
	var p uint64
	var sum int64
	for n != 1 {
		cmp := bit(i > m)
		p = 2*p + 1
		sum += int64(cmp) * slots[p]
		p += cmp
		n /= 2
		// Unsigned wrap-around makes this m - n/2 when cmp is 0.
		m += cmp*n - n/2
	}
	return sum + slots[p]
}

func (t *implicitTree) prefixBranchy(i uint64) int64 {
	slots := t.slots
	var l, p uint64
	h := t.size - 1
	var sum int64
	for l < h {
		if i == h {
			break
		}
		m := (l + h) / 2
		p = 2*p + 1
		if i > m {
			sum += slots[p]
			l = m + 1
			p++
		} else {
			h = m
		}
	}
	return sum + slots[p]
}

func (t *implicitTree) addBranchless(i uint64, delta int64) {
	slots := t.slots
	n := t.size
	m := (n - 1) / 2
	var p uint64
	for n != 1 {
		slots[p] += delta
		cmp := bit(i > m)
		p = 2*p + 1 + cmp
		n /= 2
		m += cmp*n - n/2
	}
	slots[p] += delta
}

func (t *implicitTree) addBranchy(i uint64, delta int64) {
	slots := t.slots
	var l, p uint64
	h := t.size - 1
	for l < h {
		slots[p] += delta
		m := (l + h) / 2
		p = 2*p + 1
		if i > m {
			l = m + 1
			p++
		} else {
			h = m
		}
	}
	slots[p] += delta
}

// ceilPow2 returns the smallest power of two >= n, for n >= 1.
func ceilPow2(n uint64) uint64 {
	return 1 << bits.Len64(n-1)
}

// log2 returns the exponent of the power of two p.
func log2(p uint64) uint64 {
	return uint64(bits.TrailingZeros64(p))
}
