package service

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// parseLeadingInt reads an optionally signed base-10 integer from the start
// of s, after leading whitespace, and ignores anything that follows the
// digits. It reports false when no digits are present. Values outside the
// int range are clamped.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], 10, strconv.IntSize)
	if err != nil {
		// Only a range error is possible here.
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	return int(n), true
}
