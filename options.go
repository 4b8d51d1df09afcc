package prefixsum

import "fmt"

// DefaultBranchlessThreshold is the half size below which descents are
// made without data dependent branches.
const DefaultBranchlessThreshold = 1 << 22

// DefaultLeafSize is the number of elements a TruncatedTree keeps in
// each leaf block.
const DefaultLeafSize = 64

type config struct {
	branchlessThreshold int
	leafSize            int
}

func defaultConfig() config {
	return config{
		branchlessThreshold: DefaultBranchlessThreshold,
		leafSize:            DefaultLeafSize,
	}
}

func newConfig(options []Option) (config, error) {
	c := defaultConfig()
	for _, option := range options {
		if err := option(&c); err != nil {
			return config{}, err
		}
	}
	return c, nil
}

type Option func(*config) error

// BranchlessThreshold sets the cutover between the two descents
//
// Trees whose half size, (Size()+1)/2, is below the threshold walk from
// the root to a leaf using arithmetic on the comparison result instead
// of a conditional jump. Larger trees no longer fit in the fast caches,
// and there a well predicted branch that skips the extra memory traffic
// wins. The default was tuned on a machine with a few megabytes of last
// level cache and should be re-measured on other hardware.
//
// A threshold of 0 forces the branchy descent on every tree. The
// threshold must not be negative.
func BranchlessThreshold(halfSize int) Option {
	return func(c *config) error {
		if halfSize < 0 {
			return fmt.Errorf("%w: branchless threshold must be >= 0, got %d", ErrInvalidArgument, halfSize)
		}
		c.branchlessThreshold = halfSize
		return nil
	}
}

// LeafSize sets the number of elements below which a TruncatedTree
// stops subdividing. It must be a power of two and at least 2. Other
// layouts ignore it.
func LeafSize(size int) Option {
	return func(c *config) error {
		if size < 2 || size&(size-1) != 0 {
			return fmt.Errorf("%w: leaf size must be a power of two >= 2, got %d", ErrInvalidArgument, size)
		}
		c.leafSize = size
		return nil
	}
}
