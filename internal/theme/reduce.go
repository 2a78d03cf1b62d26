package theme

import (
	"fmt"
	"slices"
)

// Reduction is a per-channel statistic.
type Reduction int

const (
	// Mean is the arithmetic mean, truncated toward zero.
	Mean Reduction = iota
	// MedianValue is the statistical median. For an even count it is the
	// mean of the two middle values, truncated toward zero.
	MedianValue
)

func (r Reduction) String() string {
	switch r {
	case Mean:
		return "mean"
	case MedianValue:
		return "median"
	default:
		return fmt.Sprintf("reduction(%d)", int(r))
	}
}

// Reduce collapses one channel's values into a single byte.
//
// values is never modified; Median sorts a private copy. An empty sequence
// returns ErrEmptyImage.
func Reduce(values []uint8, r Reduction) (uint8, error) {
	if len(values) == 0 {
		return 0, ErrEmptyImage
	}
	switch r {
	case Mean:
		return mean(values), nil
	case MedianValue:
		sorted := slices.Clone(values)
		slices.Sort(sorted)
		return medianSorted(sorted), nil
	default:
		return 0, fmt.Errorf("unsupported reduction %s", r)
	}
}

func mean(values []uint8) uint8 {
	var sum uint64
	for _, v := range values {
		sum += uint64(v)
	}
	return uint8(float64(sum) / float64(len(values)))
}

// medianSorted expects an ascending, non-empty slice.
func medianSorted(sorted []uint8) uint8 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	lo, hi := uint16(sorted[n/2-1]), uint16(sorted[n/2])
	return uint8((lo + hi) / 2)
}
