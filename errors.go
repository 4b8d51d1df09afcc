package prefixsum

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a tree cannot be built or
	// configured with the given arguments.
	ErrInvalidArgument = errors.New("prefixsum: invalid argument")
	// ErrIndexOutOfRange is returned by Sum and Update for an index
	// outside of [0, Size()), including any call made before Build.
	ErrIndexOutOfRange = errors.New("prefixsum: index out of range")
)

func indexError(i int, size uint64) error {
	if size == 0 {
		return fmt.Errorf("%w: tree not built", ErrIndexOutOfRange)
	}
	return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, size)
}

func inRange(i int, size uint64) bool {
	return i >= 0 && uint64(i) < size
}
