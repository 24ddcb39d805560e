// Package timeutil parses due dates and counts calendar days.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const layoutISO = "2006-01-02"

var (
	offsetPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitDays      = map[string]int{
		"d":     1,
		"day":   1,
		"days":  1,
		"w":     7,
		"wk":    7,
		"wks":   7,
		"week":  7,
		"weeks": 7,
	}
)

// ParseDue resolves a due date relative to now. It accepts "today",
// "tomorrow", an ISO date ("2026-10-20") or a day offset such as "3d" or
// "1w2d". The result is local midnight of the due day.
func ParseDue(input string, now time.Time) (time.Time, error) {
	lower := strings.ToLower(strings.TrimSpace(input))
	switch lower {
	case "":
		return time.Time{}, fmt.Errorf("empty due date")
	case "today":
		return StartOfDay(now), nil
	case "tomorrow":
		return StartOfDay(now).AddDate(0, 0, 1), nil
	}
	if t, err := time.ParseInLocation(layoutISO, lower, time.Local); err == nil {
		return t, nil
	}
	days, err := ParseOffset(lower)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q: %w", input, err)
	}
	return StartOfDay(now).AddDate(0, 0, days), nil
}

// ParseOffset parses a day/week offset ("3d", "1w2d") into days.
func ParseOffset(input string) (int, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, fmt.Errorf("empty offset")
	}
	total := 0
	for len(remaining) > 0 {
		matches := offsetPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, fmt.Errorf("invalid offset segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, fmt.Errorf("invalid offset value %q: %w", matches[1], err)
		}
		per, ok := unitDays[matches[2]]
		if !ok {
			return 0, fmt.Errorf("unsupported offset unit %q", matches[2])
		}
		total += value * per
		remaining = remaining[len(matches[0]):]
	}
	return total, nil
}

// StartOfDay is local midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// DaysBetween counts local calendar days from a to b, negative when b is
// earlier.
func DaysBetween(a, b time.Time) int {
	a = a.Local()
	b = b.Local()
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
