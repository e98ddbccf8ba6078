// Package corpus builds the statistics corpus: it normalizes raw weekly and
// seasonal fantasy-basketball records into immutable per-entity documents
// ready for indexing.
package corpus

import (
	"math"
	"strconv"
	"strings"
)

// ParseFraction splits a "<made>/<attempted>" value into its two parts.
// Missing, malformed or non-numeric input yields (0, 0): a bad value
// degrades to zero contribution instead of failing the build.
func ParseFraction(val string) (made, attempted float64) {
	parts := strings.SplitN(val, "/", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	made, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0
	}
	attempted, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0
	}
	return made, attempted
}

// SafeFloat parses a numeric stat value, treating empty and placeholder
// values ("-", whitespace) as zero.
func SafeFloat(val string) float64 {
	trimmed := strings.TrimSpace(val)
	if trimmed == "" || trimmed == "-" {
		return 0
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return f
}

// Round2 rounds a counting-stat average to 2 decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds a percentage stat to 3 decimal places for display.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Ratio returns made/attempted, defined as exactly 0 when attempted is not
// positive. Callers rely on this never returning NaN or Inf.
func Ratio(made, attempted float64) float64 {
	if attempted <= 0 {
		return 0
	}
	return made / attempted
}
