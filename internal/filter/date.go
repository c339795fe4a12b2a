package filter

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var firstNumberRegex = regexp.MustCompile(`(\d+)`)

// Absolute formats the site has been seen using. Tried in order.
var absoluteLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006-01-02",
	"02/01/2006",
	"January 2 2006",
}

// ParseJobDate turns a posted-time phrase ("2 days ago", "yesterday",
// "March 3, 2026", ...) into an absolute timestamp. It never fails:
// anything unparseable is treated as posted right now.
func ParseJobDate(dateText string) time.Time {
	return ParseJobDateAt(dateText, time.Now())
}

func ParseJobDateAt(dateText string, now time.Time) time.Time {
	if dateText == "" {
		return now
	}

	text := strings.ToLower(strings.TrimSpace(dateText))

	n := 0
	if match := firstNumberRegex.FindString(text); match != "" {
		n, _ = strconv.Atoi(match)
	}
	if n == 0 {
		n = 1
	}

	//Relative phrases, first match wins. "yesterday" must be checked
	//before "day" since it contains it.
	switch {
	case strings.Contains(text, "hour"), strings.Contains(text, "hr"):
		return now.Add(-time.Duration(n) * time.Hour)
	case strings.Contains(text, "yesterday"):
		return now.Add(-24 * time.Hour)
	case strings.Contains(text, "day"):
		return now.Add(-time.Duration(n) * 24 * time.Hour)
	case strings.Contains(text, "week"):
		return now.Add(-time.Duration(n) * 7 * 24 * time.Hour)
	case strings.Contains(text, "month"):
		return now.Add(-time.Duration(n) * 30 * 24 * time.Hour)
	case strings.Contains(text, "today"), strings.Contains(text, "recent"):
		return now
	}

	for _, layout := range absoluteLayouts {
		if parsed, err := time.Parse(layout, strings.TrimSpace(dateText)); err == nil {
			return parsed
		}
	}

	return now
}

// IsRecent reports whether a posted-time phrase falls within cutoffDays of
// now. Malformed input parses as "now", so this fails open.
func IsRecent(dateText string, cutoffDays int) bool {
	return IsRecentAt(dateText, cutoffDays, time.Now())
}

func IsRecentAt(dateText string, cutoffDays int, now time.Time) bool {
	jobDate := ParseJobDateAt(dateText, now)
	cutoff := now.Add(-time.Duration(cutoffDays) * 24 * time.Hour)
	return !jobDate.Before(cutoff)
}
