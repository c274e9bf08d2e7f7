// Package timeutil holds the minute-of-day arithmetic and the shared
// countdown formatting rules used by every temporal component. "HH:mm"
// strings are parsed into integers once at the boundary; comparisons
// and offsets happen as integer arithmetic with explicit mod-1440
// wraparound, and values are formatted back to strings only at output.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	MinutesPerDay = 24 * 60
	SecondsPerDay = 24 * 60 * 60
)

// ParseClock converts a clock string like "05:30" (or "5:30") into a
// minute-of-day integer. Comparing these integers avoids lexicographic
// pitfalls such as "9:5" sorting after "09:05".
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return hour*60 + minute, nil
}

// WrapMinutes normalizes a minute offset into [0, 1440), so offsets
// that cross midnight in either direction stay valid clock values.
func WrapMinutes(m int) int {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return m
}

// FormatClock renders a minute-of-day as "HH:mm", or as "H:mm AM/PM"
// when the deployment prefers 12-hour display.
func FormatClock(minuteOfDay int, use12h bool) string {
	m := WrapMinutes(minuteOfDay)
	hour, minute := m/60, m%60
	if !use12h {
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, period)
}

// SecondsUntil returns the whole seconds from now until target, both
// expressed as seconds of the current day. When wrap is true a target
// already behind now is treated as tomorrow's; otherwise an elapsed
// target clamps to zero rather than going negative.
func SecondsUntil(nowSec, targetSec int, wrap bool) int {
	d := targetSec - nowSec
	if d < 0 && wrap {
		d += SecondsPerDay
	}
	if d < 0 {
		d = 0
	}
	return d
}

// Countdown renders a remaining duration using the rules every
// countdown in the system shares: an hour or more shows "2h 5m",
// under an hour shows "4m 30s", or just "4m" when the caller does not
// want seconds. Values truncate toward zero, so the string never hits
// zero before the target instant and never shows stale time after it.
func Countdown(remaining time.Duration, withSeconds bool) string {
	if remaining < 0 {
		remaining = 0
	}
	total := int(remaining / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if withSeconds {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%dm", minutes)
}
