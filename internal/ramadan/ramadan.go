// Package ramadan detects the fasting month from the Hijri calendar
// and derives the Suhoor/Iftar/Imsak schedule plus the live fasting
// state from today's Fajr and Maghrib times.
package ramadan

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/minbar-signage/minbar/internal/clock"
	"github.com/minbar-signage/minbar/internal/hijri"
	"github.com/minbar-signage/minbar/internal/model"
	"github.com/minbar-signage/minbar/internal/timeutil"
)

// ForceMode is the tri-state dev/test override: Auto follows the Hijri
// calendar, ForceOn and ForceOff win over it.
type ForceMode int

const (
	Auto ForceMode = iota
	ForceOn
	ForceOff
)

// ParseForceMode maps the wire values "on"/"off"/"auto" (and their
// boolean spellings) onto a ForceMode.
func ParseForceMode(s string) (ForceMode, bool) {
	switch s {
	case "on", "true":
		return ForceOn, true
	case "off", "false":
		return ForceOff, true
	case "auto", "":
		return Auto, true
	}
	return Auto, false
}

func (m ForceMode) String() string {
	switch m {
	case ForceOn:
		return "on"
	case ForceOff:
		return "off"
	}
	return "auto"
}

const (
	imsakOffsetMinutes = 5
	// placeholderDay renders deterministically when Ramadan is forced
	// on outside the real month.
	placeholderDay = 15
)

// State is the derived Ramadan mode for one tick. The countdown target
// names let a caller spot when a Ramadan countdown and the ordinary
// next-prayer countdown point at the same prayer and merge them into
// one, instead of re-deriving prayer identity.
type State struct {
	IsRamadan      bool   `json:"is_ramadan"`
	Day            int    `json:"day,omitempty"` // 1..30, 0 when not Ramadan
	SuhoorEnd      string `json:"suhoor_end,omitempty"`
	Iftar          string `json:"iftar,omitempty"`
	Imsak          string `json:"imsak,omitempty"`
	IsFastingHours bool   `json:"is_fasting_hours"`

	IftarCountdown  string `json:"iftar_countdown,omitempty"`
	SuhoorCountdown string `json:"suhoor_countdown,omitempty"`
	IftarPrayer     string `json:"iftar_prayer,omitempty"`
	SuhoorPrayer    string `json:"suhoor_prayer,omitempty"`
}

// Detector evaluates Ramadan state per tick. The Hijri conversion is
// memoized per Gregorian day; the month cannot change mid-day, so only
// the fasting flag and countdowns are live.
type Detector struct {
	mu        sync.Mutex
	force     ForceMode
	memoDate  string
	memoHijri hijri.Date
	memoBad   bool
}

func NewDetector() *Detector {
	return &Detector{}
}

// SetForce applies the tri-state override.
func (d *Detector) SetForce(mode ForceMode) {
	d.mu.Lock()
	d.force = mode
	d.mu.Unlock()
}

// Force returns the current override mode.
func (d *Detector) Force() ForceMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.force
}

// Evaluate derives the Ramadan state for one snapshot. A nil or
// incomplete table degrades to flags without times; it never fails.
func (d *Detector) Evaluate(times *model.DailyTimes, snap clock.Snapshot) State {
	hdate, known := d.hijriFor(snap)
	force := d.Force()

	inMonth := known && hdate.Month == hijri.MonthRamadan
	isRamadan := inMonth
	switch force {
	case ForceOn:
		isRamadan = true
	case ForceOff:
		isRamadan = false
	}

	state := State{IsRamadan: isRamadan}
	if !isRamadan {
		return state
	}

	if inMonth {
		state.Day = hdate.Day
	} else {
		state.Day = placeholderDay
	}

	fajrMin, hasFajr := clockMinutes(times, func(t model.DailyTimes) string { return t.Fajr.Adhan })
	maghribMin, hasMaghrib := clockMinutes(times, func(t model.DailyTimes) string { return t.Maghrib.Adhan })

	if hasFajr {
		state.SuhoorEnd = timeutil.FormatClock(fajrMin, false)
		state.SuhoorPrayer = model.PrayerFajr
		// Imsak sits a fixed offset before Fajr; wrap through midnight
		// instead of going negative.
		state.Imsak = timeutil.FormatClock(timeutil.WrapMinutes(fajrMin-imsakOffsetMinutes), false)
	}
	if hasMaghrib {
		state.Iftar = timeutil.FormatClock(maghribMin, false)
		state.IftarPrayer = model.PrayerMaghrib
	}

	if hasFajr && hasMaghrib {
		state.IsFastingHours = snap.MinuteOfDay >= fajrMin && snap.MinuteOfDay < maghribMin
	}

	now := snap.SecondOfDay
	if state.IsFastingHours {
		remaining := time.Duration(timeutil.SecondsUntil(now, maghribMin*60, false)) * time.Second
		state.IftarCountdown = timeutil.Countdown(remaining, true)
	} else if hasFajr && snap.MinuteOfDay < fajrMin {
		remaining := time.Duration(timeutil.SecondsUntil(now, fajrMin*60, false)) * time.Second
		state.SuhoorCountdown = timeutil.Countdown(remaining, true)
	}

	return state
}

// hijriFor returns today's Hijri date, converting at most once per
// Gregorian day. Conversion goes through the display string and back,
// so a malformed render surfaces here as "unknown" instead of a wrong
// month downstream.
func (d *Detector) hijriFor(snap clock.Snapshot) (hijri.Date, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.memoDate == snap.Date {
		return d.memoHijri, !d.memoBad
	}

	d.memoDate = snap.Date
	d.memoBad = false
	parsed, err := hijri.Parse(hijri.FromTime(snap.Time).String())
	if err != nil {
		log.Error().Err(err).Str("date", snap.Date).Msg("hijri conversion failed, treating as not ramadan")
		d.memoBad = true
		d.memoHijri = hijri.Date{}
		return d.memoHijri, false
	}
	d.memoHijri = parsed
	return parsed, true
}

func clockMinutes(times *model.DailyTimes, pick func(model.DailyTimes) string) (int, bool) {
	if times == nil {
		return 0, false
	}
	raw := pick(*times)
	if raw == "" {
		return 0, false
	}
	m, err := timeutil.ParseClock(raw)
	if err != nil {
		return 0, false
	}
	return m, true
}
