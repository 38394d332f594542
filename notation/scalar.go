// SPDX-License-Identifier: MIT

package notation

import (
	"math"
	"strconv"
	"strings"
)

const (
	// MaxDenominator is the largest denominator tried before falling back to decimals.
	MaxDenominator = 12

	// DecimalPlaces is the rounding applied when no small fraction matches.
	DecimalPlaces = 4

	// fractionEps decides whether v*d is an integer.
	fractionEps = 1e-9
)

// FormatScalar renders v as an integer, a reduced fraction with denominator
// ≤ MaxDenominator, or a decimal rounded to DecimalPlaces, in that order of
// preference. Zero (including -0) renders as "0".
//
// Examples: 2 → "2", -0.5 → "-1/2", 0.3333333333 → "1/3", 0.123456 → "0.1235".
func FormatScalar(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if num, den, ok := Fraction(v); ok {
		if num == 0 {
			return "0"
		}
		if den == 1 {
			return strconv.FormatInt(num, 10)
		}
		return strconv.FormatInt(num, 10) + "/" + strconv.FormatInt(den, 10)
	}

	s := strconv.FormatFloat(v, 'f', DecimalPlaces, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}

	return s
}

// Fraction finds the smallest denominator d ≤ MaxDenominator for which v*d is
// an integer within tolerance. Since d is minimal, num/den is already reduced.
func Fraction(v float64) (num, den int64, ok bool) {
	if math.Abs(v) > 1e12 {
		return 0, 0, false
	}
	for d := int64(1); d <= MaxDenominator; d++ {
		n := v * float64(d)
		r := math.Round(n)
		if math.Abs(n-r) < fractionEps {
			return int64(r), d, true
		}
	}

	return 0, 0, false
}

// coefficient renders k as a multiplier in front of a symbol:
// 1 → "", -1 → "-", 2 → "2", 1/2 → "(1/2)", -1/2 → "-(1/2)", 0.1235 → "0.1235".
func coefficient(k float64) string {
	s := FormatScalar(k)
	switch {
	case s == "1":
		return ""
	case s == "-1":
		return "-"
	case strings.Contains(s, "/"):
		if strings.HasPrefix(s, "-") {
			return "-(" + s[1:] + ")"
		}
		return "(" + s + ")"
	default:
		return s
	}
}
