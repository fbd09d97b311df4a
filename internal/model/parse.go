package model

import (
	"strconv"
	"strings"
	"time"
)

// ParseLeadingInt reads the integer prefix of s after trimming spaces, so
// "45 min" gives 45. It reports false when s does not start with a number.
func ParseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseMinutes parses a positive minute count. Zero, negative and non
// numeric input count as absent.
func ParseMinutes(s string) (int, bool) {
	n, ok := ParseLeadingInt(s)
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

// ParseEstimate returns the estimate in minutes or Unestimated.
func ParseEstimate(s string) int {
	n, ok := ParseMinutes(s)
	if !ok {
		return Unestimated
	}
	return n
}

// SplitList splits comma separated text into trimmed, non-empty, unique
// values in order of first appearance.
func SplitList(s string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04",
	"01/02/2006",
	"1/2/2006",
}

// ParseDate accepts ISO dates, RFC3339 timestamps and US style m/d/yyyy.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate is the inverse of ParseDate for date-only values.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
