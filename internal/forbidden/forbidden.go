// Package forbidden computes the daily makruh windows, the times when
// voluntary prayer is discouraged. The windows apply year-round and
// are derived purely from the raw table; Ramadan never changes them.
package forbidden

import (
	"github.com/minbar-signage/minbar/internal/clock"
	"github.com/minbar-signage/minbar/internal/model"
	"github.com/minbar-signage/minbar/internal/timeutil"
)

const (
	dawnLabel     = "After dawn until sun up"
	zenithLabel   = "At the sun's zenith"
	afterAsrLabel = "After Asr until sunset"
)

const (
	sunriseGraceMinutes = 15
	// The zenith window approximates solar noon as the few minutes
	// before Zuhr; no astronomical computation is attempted.
	zenithLeadMinutes = 5
)

// Window is one half-open [Start, End) range.
type Window struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`

	startMin int
	endMin   int
}

func (w Window) contains(minuteOfDay int) bool {
	if w.startMin <= w.endMin {
		return minuteOfDay >= w.startMin && minuteOfDay < w.endMin
	}
	// Window wraps midnight.
	return minuteOfDay >= w.startMin || minuteOfDay < w.endMin
}

// Status reports whether an instant falls inside a window.
type Status struct {
	IsForbidden bool   `json:"is_forbidden"`
	Reason      string `json:"reason,omitempty"`
	EndsAt      string `json:"ends_at,omitempty"`
}

// Windows derives the at-most-three daily windows. A window whose
// source times are missing or unparsable is omitted, never defaulted.
func Windows(times *model.DailyTimes) []Window {
	if times == nil {
		return nil
	}

	windows := make([]Window, 0, 3)

	if fajr, ok := minutes(times.Fajr.Adhan); ok {
		if sunrise, ok := minutes(times.Sunrise.Adhan); ok {
			windows = append(windows, newWindow(dawnLabel, fajr, sunrise+sunriseGraceMinutes))
		}
	}
	if zuhr, ok := minutes(times.Zuhr.Adhan); ok {
		windows = append(windows, newWindow(zenithLabel, zuhr-zenithLeadMinutes, zuhr))
	}
	if asr, ok := minutes(times.Asr.Adhan); ok {
		if maghrib, ok := minutes(times.Maghrib.Adhan); ok {
			windows = append(windows, newWindow(afterAsrLabel, asr, maghrib))
		}
	}

	return windows
}

// Current returns the window containing now, if any. All three windows
// use the same half-open rule: start inclusive, end exclusive.
func Current(times *model.DailyTimes, snap clock.Snapshot) Status {
	for _, w := range Windows(times) {
		if w.contains(snap.MinuteOfDay) {
			return Status{IsForbidden: true, Reason: w.Label, EndsAt: w.End}
		}
	}
	return Status{}
}

func newWindow(label string, startMin, endMin int) Window {
	startMin = timeutil.WrapMinutes(startMin)
	endMin = timeutil.WrapMinutes(endMin)
	return Window{
		Label:    label,
		Start:    timeutil.FormatClock(startMin, false),
		End:      timeutil.FormatClock(endMin, false),
		startMin: startMin,
		endMin:   endMin,
	}
}

func minutes(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	m, err := timeutil.ParseClock(raw)
	if err != nil {
		return 0, false
	}
	return m, true
}
