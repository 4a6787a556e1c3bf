package compare

import (
	"math"
)

type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierPoor      Tier = "poor"
)

// Performance is actual as a rounded percentage of reference. ok is false
// when there is nothing to compare against.
func Performance(actual, reference float64) (pct int, ok bool) {
	if reference <= 0 || math.IsNaN(reference) || math.IsInf(reference, 0) {
		return 0, false
	}
	if math.IsNaN(actual) || math.IsInf(actual, 0) {
		return 0, false
	}
	return int(math.Round(actual / reference * 100)), true
}

// PerformanceOf is Performance over an optional reference.
func PerformanceOf(actual float64, reference *float64) (int, bool) {
	if reference == nil {
		return 0, false
	}
	return Performance(actual, *reference)
}

func TierOf(pct int) Tier {
	switch {
	case pct >= 95:
		return TierExcellent
	case pct >= 85:
		return TierGood
	case pct >= 75:
		return TierFair
	default:
		return TierPoor
	}
}

// BarWidth is the progress-bar fill, clamped to [0, 100].
func BarWidth(pct int) int {
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}
