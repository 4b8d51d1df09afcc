package prefixsum

import "fmt"

// NodeWidth is the number of counters held by one node of a WideTree.
type NodeWidth int

const (
	// Node64 nodes span 6 binary levels.
	Node64 NodeWidth = 64
	// Node256 nodes span 8 binary levels.
	Node256 NodeWidth = 256
)

// maxLayoutLen bounds the input of the wide and truncated layouts, whose
// in-node offsets are kept within 32 bits.
const maxLayoutLen = 1 << 32

// WideTree is a segment tree whose nodes are blocks of NodeWidth
// counters, each node encoding log2(NodeWidth) levels of the binary
// tree. A query reads one counter per node level and an update adds its
// delta to a contiguous run of counters per node level, trading extra
// arithmetic for far fewer cache lines per operation.
//
// Inner nodes store at slot j the total of their children 0..j-1, the
// sum of everything left of child j. Leaf nodes store inclusive prefix
// sums of their elements.
type WideTree struct {
	width  uint64
	shift  uint64
	height uint64
	size   uint64
	n      int
	levels []uint64 // first slot of each level, root first, plus the end
	slots  []int64
}

// NewWideTree returns an unbuilt wide-node segment tree.
func NewWideTree(width NodeWidth, options ...Option) (*WideTree, error) {
	if width != Node64 && width != Node256 {
		return nil, fmt.Errorf("%w: unsupported node width %d", ErrInvalidArgument, width)
	}
	if _, err := newConfig(options); err != nil {
		return nil, err
	}
	w := uint64(width)
	return &WideTree{width: w, shift: log2(w)}, nil
}

// Name implements Tree.
func (t *WideTree) Name() string {
	if t.width == uint64(Node256) {
		return "segment_tree_wide_256u"
	}
	return "segment_tree_wide_64u"
}

// wideHeight returns how many node levels cover size elements when each
// node spans shift binary levels.
func wideHeight(size, shift uint64) uint64 {
	h := (log2(size) + shift - 1) / shift
	if h == 0 {
		h = 1
	}
	return h
}

// Build implements Tree.
func (t *WideTree) Build(input []int64) error {
	if err := checkInput(len(input), t.size != 0, maxLayoutLen); err != nil {
		return err
	}
	size := ceilPow2(uint64(len(input)))
	height := wideHeight(size, t.shift)
	w := int(t.width)

	nodes := make([]int, height)
	levels := make([]uint64, height+1)
	for l := uint64(0); l < height; l++ {
		c := size >> (t.shift * (height - l))
		if c == 0 {
			c = 1
		}
		nodes[l] = int(c)
		levels[l+1] = levels[l] + c*t.width
	}
	slots := make([]int64, levels[height])

	leaves := slots[levels[height-1]:]
	copy(leaves, input)
	totals := make([]int64, nodes[height-1])
	for k := range totals {
		var run int64
		for j, x := range leaves[k*w : (k+1)*w] {
			run += x
			leaves[k*w+j] = run
		}
		totals[k] = run
	}

	for l := int(height) - 2; l >= 0; l-- {
		level := slots[levels[l]:levels[l+1]]
		next := make([]int64, nodes[l])
		for k := range next {
			var run int64
			for j := 0; j < w; j++ {
				level[k*w+j] = run
				if c := k*w + j; c < len(totals) {
					run += totals[c]
				}
			}
			next[k] = run
		}
		totals = next
	}

	t.size = size
	t.height = height
	t.levels = levels
	t.slots = slots
	t.n = len(input)
	return nil
}

// Sum implements Tree.
func (t *WideTree) Sum(i int) (int64, error) {
	if !inRange(i, t.size) {
		return 0, indexError(i, t.size)
	}
	x := uint64(i)
	var sum int64
	for l := uint64(0); l < t.height; l++ {
		// The node number times the width plus the slot in the node is
		// the index shifted down to this level.
		sum += t.slots[t.levels[l]+(x>>(t.shift*(t.height-1-l)))]
	}
	return sum, nil
}

// Update implements Tree.
func (t *WideTree) Update(i int, delta int64) error {
	if !inRange(i, t.size) {
		return indexError(i, t.size)
	}
	x := uint64(i)
	mask := t.width - 1
	for l := uint64(0); l < t.height; l++ {
		c := x >> (t.shift * (t.height - 1 - l))
		// Inner nodes skip the slot of the child being entered, leaves
		// include the element itself.
		first := t.levels[l] + c + bit(l+1 < t.height)
		end := t.levels[l] + (c | mask) + 1
		addSuffix(t.slots[first:end], delta)
	}
	return nil
}

func addSuffix(block []int64, delta int64) {
	for j := range block {
		block[j] += delta
	}
}

// Len returns the number of elements the tree was built from.
func (t *WideTree) Len() int {
	return t.n
}

// Size returns the padded number of elements, a power of two.
func (t *WideTree) Size() int {
	return int(t.size)
}

// Height returns the number of node levels, 0 before Build.
func (t *WideTree) Height() int {
	return int(t.height)
}
