package parcel

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	nonNumericChars = regexp.MustCompile(`[^0-9.\-]`)
	numericPrefix   = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)`)
)

// ParseNumber normalises a user-entered number. Both comma and dot act as the
// decimal separator, anything outside [0-9.-] is dropped and the longest
// numeric prefix of what remains is parsed. Empty or unparseable input is 0;
// callers reject non-positive values rather than reporting a parse error.
func ParseNumber(raw string) float64 {
	s := strings.ReplaceAll(raw, ",", ".")
	s = nonNumericChars.ReplaceAllString(s, "")

	prefix := numericPrefix.FindString(s)
	if prefix == "" {
		return 0
	}

	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseUnits parses the units field: the number is truncated towards zero and
// clamped to at least 1.
func ParseUnits(raw string) int {
	f := ParseNumber(raw)
	if f < 1 {
		return 1
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// ParseFlag reports whether a presence flag was submitted as truthy.
// Empty, "0", "false", "off" and "no" are falsy.
func ParseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "off", "no":
		return false
	}
	return true
}
