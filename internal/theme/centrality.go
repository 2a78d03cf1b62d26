package theme

import (
	"fmt"
	"strings"
)

// Centrality selects the statistic used to collapse many pixels into the
// primary color. A single calculation uses exactly one mode.
type Centrality int

const (
	Average Centrality = iota
	Median
	Prevalent
)

func (m Centrality) String() string {
	switch m {
	case Average:
		return "average"
	case Median:
		return "median"
	case Prevalent:
		return "prevalent"
	default:
		return fmt.Sprintf("centrality(%d)", int(m))
	}
}

// Centralities lists every mode in declaration order.
func Centralities() []Centrality {
	return []Centrality{Average, Median, Prevalent}
}

// ParseCentrality converts a mode name into a Centrality. Matching is
// case-insensitive and "mean", "mode" and "prevalance" are accepted as
// aliases.
func ParseCentrality(s string) (Centrality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "average", "mean":
		return Average, nil
	case "median":
		return Median, nil
	case "prevalent", "prevalance", "mode":
		return Prevalent, nil
	default:
		return 0, fmt.Errorf("unknown centrality %q (want average, median or prevalent)", s)
	}
}

// reduction returns the per-channel reduction for m. Prevalent has none since
// it works on whole pixels.
func (m Centrality) reduction() (Reduction, bool) {
	switch m {
	case Average:
		return Mean, true
	case Median:
		return MedianValue, true
	default:
		return 0, false
	}
}
