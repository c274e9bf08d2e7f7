package model

import "strings"

// Canonical prayer names, in chronological order of the daily table.
const (
	PrayerFajr    = "Fajr"
	PrayerSunrise = "Sunrise"
	PrayerZuhr    = "Zuhr"
	PrayerAsr     = "Asr"
	PrayerMaghrib = "Maghrib"
	PrayerIsha    = "Isha"
)

// PrayerTime holds the adhan time for one prayer plus an optional
// congregation time. Times are "HH:mm" strings scoped to today; an
// empty string means the value is unknown and the prayer is left out
// of scheduling rather than defaulted.
type PrayerTime struct {
	Adhan  string `json:"adhan"`
	Jamaat string `json:"jamaat,omitempty"`
}

// DailyTimes is today's raw prayer time table. It is supplied by the
// timetable store (or an external refresh) and replaced wholesale;
// the temporal core never mutates it.
type DailyTimes struct {
	Date    string     `json:"date"` // YYYY-MM-DD
	Fajr    PrayerTime `json:"fajr"`
	Sunrise PrayerTime `json:"sunrise"`
	Zuhr    PrayerTime `json:"zuhr"`
	Asr     PrayerTime `json:"asr"`
	Maghrib PrayerTime `json:"maghrib"`
	Isha    PrayerTime `json:"isha"`
}

// NamedTime pairs a prayer name with its raw times.
type NamedTime struct {
	Name string
	PrayerTime
}

// Ordered returns the table as a chronologically ordered slice.
func (d DailyTimes) Ordered() []NamedTime {
	return []NamedTime{
		{PrayerFajr, d.Fajr},
		{PrayerSunrise, d.Sunrise},
		{PrayerZuhr, d.Zuhr},
		{PrayerAsr, d.Asr},
		{PrayerMaghrib, d.Maghrib},
		{PrayerIsha, d.Isha},
	}
}

// Stamp identifies the table contents for cache keying. Two tables
// with the same stamp format identically for the same instant.
func (d DailyTimes) Stamp() string {
	parts := make([]string, 0, 13)
	parts = append(parts, d.Date)
	for _, nt := range d.Ordered() {
		parts = append(parts, nt.Adhan, nt.Jamaat)
	}
	return strings.Join(parts, "|")
}
