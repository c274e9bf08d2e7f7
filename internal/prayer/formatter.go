// Package prayer turns the raw daily time table into the annotated
// schedule the display consumes: an ordered entry per known prayer,
// next/current flags and a minute-granular countdown to the next one.
package prayer

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/minbar-signage/minbar/internal/clock"
	"github.com/minbar-signage/minbar/internal/model"
	"github.com/minbar-signage/minbar/internal/timeutil"
)

// Formatted is one display-ready entry of the daily schedule. A prayer
// counts as elapsed only once its congregation time (or its adhan time
// when it has no congregation) has passed, so Asr stays "next" between
// its adhan and its jamaat.
type Formatted struct {
	Name          string `json:"name"`
	Adhan         string `json:"adhan"`
	Jamaat        string `json:"jamaat,omitempty"`
	Display       string `json:"display"`
	DisplayJamaat string `json:"display_jamaat,omitempty"`
	AdhanMinutes  int    `json:"-"`
	JamaatMinutes int    `json:"-"` // -1 when there is no congregation time
	IsNext        bool   `json:"is_next"`
	IsCurrent     bool   `json:"is_current"`
	Tomorrow      bool   `json:"tomorrow,omitempty"`
	Countdown     string `json:"countdown,omitempty"`
}

// Schedule is the formatter's output triple. Next and Current point
// into Prayers; both are nil when the table is empty.
type Schedule struct {
	Prayers []Formatted `json:"prayers"`
	Next    *Formatted  `json:"next_prayer"`
	Current *Formatted  `json:"current_prayer"`
}

// Formatter derives schedules and memoizes them for the current
// minute. The memo is a pure performance cache; bypassing or clearing
// it never changes a result.
type Formatter struct {
	use12h bool
	cache  *scheduleCache
}

func NewFormatter(use12h bool) *Formatter {
	return &Formatter{
		use12h: use12h,
		cache:  newScheduleCache(cacheSize, cacheTTL),
	}
}

// Format derives the annotated schedule for one snapshot. Results are
// memoized per (date, table stamp, minute); a hit is shape-identical
// to a fresh computation because nothing in the schedule is finer
// grained than a minute.
func (f *Formatter) Format(times *model.DailyTimes, snap clock.Snapshot) Schedule {
	if times == nil {
		return Schedule{}
	}
	key := cacheKey{date: snap.Date, stamp: times.Stamp(), minute: snap.MinuteOfDay}
	if sched, ok := f.cache.get(key, snap.Time); ok {
		return sched
	}
	sched := f.compute(*times, snap)
	f.cache.put(key, sched, snap.Time)
	return sched
}

func (f *Formatter) compute(times model.DailyTimes, snap clock.Snapshot) Schedule {
	now := snap.MinuteOfDay
	prayers := make([]Formatted, 0, 6)

	for _, nt := range times.Ordered() {
		if nt.Adhan == "" {
			continue
		}
		adhanMin, err := timeutil.ParseClock(nt.Adhan)
		if err != nil {
			log.Warn().Str("prayer", nt.Name).Str("value", nt.Adhan).
				Msg("dropping prayer with unparsable adhan time")
			continue
		}

		entry := Formatted{
			Name:          nt.Name,
			Adhan:         nt.Adhan,
			AdhanMinutes:  adhanMin,
			JamaatMinutes: -1,
			Display:       timeutil.FormatClock(adhanMin, f.use12h),
		}
		if nt.Jamaat != "" {
			if jamaatMin, err := timeutil.ParseClock(nt.Jamaat); err == nil {
				entry.Jamaat = nt.Jamaat
				entry.JamaatMinutes = jamaatMin
				entry.DisplayJamaat = timeutil.FormatClock(jamaatMin, f.use12h)
			} else {
				log.Warn().Str("prayer", nt.Name).Str("value", nt.Jamaat).
					Msg("ignoring unparsable jamaat time")
			}
		}
		prayers = append(prayers, entry)
	}

	sched := Schedule{Prayers: prayers}

	// Sunrise appears in the list for display but never becomes next
	// or current.
	next, current := -1, -1
	for i := range prayers {
		if prayers[i].Name == model.PrayerSunrise {
			continue
		}
		eff := effectiveMinutes(prayers[i])
		if eff > now {
			if next == -1 || eff < effectiveMinutes(prayers[next]) {
				next = i
			}
		} else if current == -1 || eff > effectiveMinutes(prayers[current]) {
			current = i
		}
	}

	if current >= 0 {
		prayers[current].IsCurrent = true
		sched.Current = &prayers[current]
	}

	if next >= 0 {
		target := prayers[next].AdhanMinutes
		if target <= now && prayers[next].JamaatMinutes >= 0 {
			// Adhan already passed; the remaining wait is for jamaat.
			target = prayers[next].JamaatMinutes
		}
		prayers[next].IsNext = true
		prayers[next].Countdown = minuteCountdown(target - now)
		sched.Next = &prayers[next]
		return sched
	}

	// Everything eligible has passed: wrap to tomorrow's Fajr and add
	// a full day before subtracting now.
	for i := range prayers {
		if prayers[i].Name != model.PrayerFajr {
			continue
		}
		prayers[i].IsNext = true
		prayers[i].Tomorrow = true
		prayers[i].Countdown = minuteCountdown(timeutil.MinutesPerDay - now + prayers[i].AdhanMinutes)
		sched.Next = &prayers[i]
		break
	}
	return sched
}

// minuteCountdown renders a whole-minutes remainder with the shared
// countdown rules. Second-level countdowns are derived per tick by the
// phase machine and Ramadan detector and are never cached here.
func minuteCountdown(minutes int) string {
	return timeutil.Countdown(time.Duration(minutes)*time.Minute, false)
}

func effectiveMinutes(p Formatted) int {
	if p.JamaatMinutes >= 0 {
		return p.JamaatMinutes
	}
	return p.AdhanMinutes
}
