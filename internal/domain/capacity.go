package domain

import (
	"strconv"
	"strings"
)

// openEndedCapacity is the fixed value assigned to ">500"-style entries.
const openEndedCapacity = 600

// capacityResult records whether the default had to stand in for an
// unparseable value, so assembly can count fallbacks without ever surfacing
// them as errors.
type capacityResult struct {
	value    int
	fallback bool
}

// ParseCapacity normalizes a raw capacity field into a positive integer.
// Recognized shapes, in priority order:
//
//  1. Empty or missing → DefaultCapacity.
//  2. Pure digits → parsed directly.
//  3. "low-high" range → integer-truncated average of both sides.
//  4. Contains ">500" → 600.
//
// Anything else, including ranges whose sides fail to parse, falls back to
// DefaultCapacity. The function never fails.
func ParseCapacity(raw string) int {
	return parseCapacity(raw).value
}

func parseCapacity(raw string) capacityResult {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return capacityResult{value: DefaultCapacity, fallback: true}
	}

	if isDigits(raw) {
		v, err := strconv.Atoi(raw)
		if err != nil {
			// Digit runs too long for an int. Treated like any other
			// unparseable value.
			return capacityResult{value: DefaultCapacity, fallback: true}
		}
		return capacityResult{value: v}
	}

	if strings.Contains(raw, "-") {
		low, high, ok := parseRange(raw)
		if !ok {
			return capacityResult{value: DefaultCapacity, fallback: true}
		}
		return capacityResult{value: (low + high) / 2}
	}

	if strings.Contains(raw, ">500") {
		return capacityResult{value: openEndedCapacity}
	}

	return capacityResult{value: DefaultCapacity, fallback: true}
}

// parseRange splits once on the first "-" and parses both sides as integers.
func parseRange(raw string) (low, high int, ok bool) {
	parts := strings.SplitN(raw, "-", 2)
	low, errLow := strconv.Atoi(strings.TrimSpace(parts[0]))
	high, errHigh := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errLow != nil || errHigh != nil {
		return 0, 0, false
	}
	return low, high, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
