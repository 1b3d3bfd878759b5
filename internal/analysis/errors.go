package analysis

import (
	"errors"
	"fmt"
)

// ErrUndefinedRatio marks a ratio whose denominator is zero.
var ErrUndefinedRatio = errors.New("undefined ratio: zero total")

// EmptySplitError is returned when a comparison is asked to summarise a split
// with no rows.
type EmptySplitError struct {
	Split string
}

func (e *EmptySplitError) Error() string {
	return fmt.Sprintf("split %q has no rows", e.Split)
}
