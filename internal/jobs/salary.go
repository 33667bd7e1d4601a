package jobs

import (
	"regexp"
	"strconv"
	"strings"
)

// HoursPerYear converts annual salaries into an hourly-equivalent rate (40h x 52 weeks).
const HoursPerYear = 2080

var integerRe = regexp.MustCompile(`\d+`)

// HourlyIndicated reports whether salary text looks like an hourly rate.
// It is a substring heuristic: "hr" also matches words like "through".
func HourlyIndicated(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "hour") || strings.Contains(lower, "hr")
}

// FirstInteger returns the first run of digits in text.
func FirstInteger(text string) (int, bool) {
	m := integerRe.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// LeadingInteger parses the integer prefix of s after optional whitespace and sign,
// so "83200" and "18/hr" parse while "$100" does not.
func LeadingInteger(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
