package scoring

import (
	"errors"
	"fmt"
	"sort"
)

// Validation failures for a submitted confidence-point set. Each check
// has its own sentinel so callers can surface a specific message.
var (
	ErrWrongCount        = errors.New("wrong number of confidence points")
	ErrNonPositiveWeight = errors.New("confidence points must be positive")
	ErrDuplicateWeight   = errors.New("duplicate confidence points")
	ErrNotSequential     = errors.New("confidence points must run 1..N with no gaps")
)

// ValidateConfidencePoints checks that weights form a permutation of
// 1..expected: right count, all positive, no duplicates, no gaps.
// Checks run in order and short-circuit on the first failure. Invoked
// at submission time and again defensively before scoring trusts a
// stored pick set.
func ValidateConfidencePoints(weights []int, expected int) error {
	if len(weights) != expected {
		return fmt.Errorf("%w: got %d, expected %d", ErrWrongCount, len(weights), expected)
	}

	for _, w := range weights {
		if w <= 0 {
			return fmt.Errorf("%w: got %d", ErrNonPositiveWeight, w)
		}
	}

	seen := make(map[int]bool, len(weights))
	for _, w := range weights {
		if seen[w] {
			return fmt.Errorf("%w: %d appears more than once", ErrDuplicateWeight, w)
		}
		seen[w] = true
	}

	sorted := make([]int, len(weights))
	copy(sorted, weights)
	sort.Ints(sorted)
	for i, w := range sorted {
		if w != i+1 {
			return fmt.Errorf("%w: got %d at position %d", ErrNotSequential, w, i+1)
		}
	}

	return nil
}
