package compare

import (
	"fmt"
	"math"
	"strconv"

	"raidlytics/backend"
)

// FormatNumber abbreviates large values: 2.3M, 1.5K, 999.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "0"
	case n >= 1000000:
		return fixed(n/1000000, 1) + "M"
	case n >= 1000:
		return fixed(n/1000, 1) + "K"
	}
	return fixed(n, 0)
}

func FormatOptional(n *float64) string {
	if n == nil {
		return "0"
	}
	return FormatNumber(*n)
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds float64) string {
	s := int(math.Floor(seconds))
	if s < 0 {
		s = 0
	}
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// fixed rounds half away from zero before formatting.
func fixed(v float64, digits int) string {
	return strconv.FormatFloat(roundTo(v, digits), 'f', digits, 64)
}

func FightLabel(f backend.Fight) string {
	label := f.Name
	switch {
	case f.Kill:
		label += " ✓"
	case f.BossPercentage != nil:
		label += " (" + fixed(*f.BossPercentage/100, 1) + "%)"
	}
	return label + " — " + strconv.FormatFloat(f.Duration, 'f', -1, 64) + "s"
}

func PlayerLabel(p backend.DPSEntry) string {
	return p.Name + " — " + FormatNumber(p.DPS) + " DPS"
}
