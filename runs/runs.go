// runs/runs.go
package runs

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when the threshold or the ordering of the input is not usable.
var ErrInvalidInput = errors.New("invalid input")

// Range is an inclusive span of consecutive values.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"` // inclusive
}

// Len returns the number of values covered by the range.
func (r Range) Len() int {
	return r.End - r.Start + 1
}

func (r Range) String() string {
	return fmt.Sprintf("(%d, %d)", r.Start, r.End)
}

// FindConsecutiveGroups returns every maximal run of values where each element is exactly
// one greater than the previous, keeping only runs of at least minConsecutive elements.
// Both ends of every returned range are shifted by offset.
//
// values must be non-decreasing. Repeated values are allowed but break the run.
func FindConsecutiveGroups(values []int, minConsecutive, offset int) ([]Range, error) {
	if minConsecutive < 1 {
		return nil, fmt.Errorf("%w: min_consecutive must be at least 1, got %d", ErrInvalidInput, minConsecutive)
	}
	if len(values) == 0 {
		return nil, nil
	}
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return nil, fmt.Errorf("%w: values must be non-decreasing, got %d after %d at index %d",
				ErrInvalidInput, values[i], values[i-1], i)
		}
	}

	var groups []Range
	start := 0
	for i := 1; i <= len(values); i++ {
		if i < len(values) && values[i] == values[i-1]+1 {
			// Still inside the current run
			continue
		}

		if i-start >= minConsecutive {
			groups = append(groups, Range{
				Start: values[start] + offset,
				End:   values[i-1] + offset,
			})
		}
		start = i
	}

	return groups, nil
}

// Indices returns the positions at which flags is true, in ascending order.
func Indices(flags []bool) []int {
	var idx []int
	for i, f := range flags {
		if f {
			idx = append(idx, i)
		}
	}
	return idx
}

// Streaks groups the true positions of flags into runs of at least minLength positions.
// offset maps the positions into the caller's index space.
func Streaks(flags []bool, minLength, offset int) ([]Range, error) {
	return FindConsecutiveGroups(Indices(flags), minLength, offset)
}

// Covered sums the lengths of ranges.
func Covered(ranges []Range) int {
	total := 0
	for _, r := range ranges {
		total += r.Len()
	}
	return total
}
