package geometry

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloat reads the longest leading decimal number of s, ignoring leading
// whitespace and any trailing unit ("12.5px" → 12.5, "40%" → 40). It returns
// NaN when s has no numeric prefix.
func ParseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "Infinity") || strings.HasPrefix(s, "+Infinity") {
		return math.Inf(1)
	}
	if strings.HasPrefix(s, "-Infinity") {
		return math.Inf(-1)
	}
	end := numericPrefix(s)
	if end == 0 {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// numericPrefix returns the length of the numeric prefix of s, 0 if none.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	// exponent only counts when followed by at least one digit
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// FormatFloat renders v the shortest way that round-trips, matching how
// style and attribute values are written ("12.5", "300", "NaN").
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// IsPercent reports whether a declared value is a percentage ("40%", " 7.5 % ").
func IsPercent(value string) bool {
	return strings.HasSuffix(strings.TrimSpace(value), "%")
}
