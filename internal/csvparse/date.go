package csvparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// datePatterns are the candidate formats tried in order. The first pattern
// whose reconstructed date round-trips exactly wins, which rejects e.g.
// "13/05/2024" read as MM/dd (month 13 normalizes to a different date).
var datePatterns = []string{
	"yyyy-MM-dd",
	"MM/dd/yyyy",
	"dd/MM/yyyy",
	"MM-dd-yyyy",
	"dd-MM-yyyy",
	"yyyy/MM/dd",
	"MM/dd/yy",
	"dd/MM/yy",
}

// ParseFlexibleDate parses a raw date token against the candidate patterns,
// returning midnight UTC on the parsed calendar date.
func ParseFlexibleDate(token string) (time.Time, error) {
	for _, pattern := range datePatterns {
		if d, ok := parseDateWithPattern(token, pattern); ok {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", token)
}

// splitDateToken splits on either separator, keeping empty fragments so a
// malformed token fails the fragment-count check instead of shifting values.
func splitDateToken(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "/", "-"), "-")
}

func parseDateWithPattern(token, pattern string) (time.Time, bool) {
	parts := splitDateToken(token)
	patternParts := splitDateToken(pattern)
	if len(parts) != len(patternParts) {
		return time.Time{}, false
	}

	var year, month, day int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return time.Time{}, false
		}
		switch patternParts[i] {
		case "yyyy":
			year = n
		case "yy":
			year = n + 2000
		case "MM":
			month = n
		case "dd":
			day = n
		}
	}

	if year == 0 || month < 1 || day == 0 {
		return time.Time{}, false
	}

	// Round-trip check: time.Date normalizes out-of-range components, so an
	// overflowed month or day reads back as a different calendar date.
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}
