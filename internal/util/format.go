package util

import (
	"fmt"
	"math"
	"strconv"
)

// FormatNumber renders a count with K/M suffixes for terminal display.
func FormatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

// Percent returns part/total*100, defined as 0.0 when total is zero.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(part) / float64(total) * 100
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds to three decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// FormatFloat renders a float with trailing zeros trimmed, matching the
// report file number style (e.g. 2.5 not 2.500, 12 not 12.0).
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
