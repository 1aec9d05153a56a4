package exporter

import (
	"fmt"
	"math"
	"strconv"
)

// VersionString is the dataset version carried in every published
// report filename
const VersionString = "v3.0"

// padLeft right-aligns s in a field of the given width
func padLeft(s string, width int) string {
	return fmt.Sprintf("%*s", width, s)
}

// zeroPad formats n with at least two digits, then right-aligns it
func zeroPad(n, width int) string {
	return padLeft(fmt.Sprintf("%02d", n), width)
}

// formatFixed right-aligns v with three decimal places in a field of
// the given width. NaN renders as a blank field.
func formatFixed(v float64, width int) string {
	if math.IsNaN(v) {
		return padLeft("", width)
	}
	return fmt.Sprintf("%*.3f", width, v)
}

// roundTo rounds v to the given number of decimal digits. Negative
// digits round to tens, hundreds and so on, matching the published
// rates-of-change precision. Ties round to even as in the historical
// workbooks.
func roundTo(v float64, digits int) float64 {
	if math.IsNaN(v) {
		return v
	}
	pow := math.Pow(10, float64(digits))
	return math.RoundToEven(v*pow) / pow
}

// formatLevel renders a quantile level as a percentile label, e.g.
// 0.25 becomes "25th"
func formatLevel(level float64) string {
	return strconv.FormatFloat(100*level, 'g', -1, 64) + "th"
}
