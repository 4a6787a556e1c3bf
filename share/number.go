package share

import (
	"math"

	"github.com/dustin/go-humanize"
)

// Comma renders a value with thousands separators, keeping up to two decimals
// the way the dashboard prints raw dps and damage cells.
func Comma(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	if v == math.Trunc(v) {
		return humanize.Comma(int64(v))
	}
	return humanize.CommafWithDigits(v, 2)
}
