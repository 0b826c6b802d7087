package analytics

import (
	"math"
	"strconv"
)

// formatFixed renders v with the given number of decimals, rounding half away from zero.
// Small negative values keep their sign ("-0.00").
func formatFixed(v float64, decimals int) string {
	scale := math.Pow(10, float64(decimals))
	rounded := math.Round(v*scale) / scale
	return strconv.FormatFloat(rounded, 'f', decimals, 64)
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}
