package model

import "time"

// Timetable is one stored day of raw prayer times. Empty strings mean
// the value is unknown; the temporal core drops those from scheduling.
type Timetable struct {
	ID            int       `db:"id"             json:"id"`
	Day           string    `db:"day"            json:"day"` // YYYY-MM-DD
	Fajr          string    `db:"fajr"           json:"fajr"`
	FajrJamaat    string    `db:"fajr_jamaat"    json:"fajr_jamaat"`
	Sunrise       string    `db:"sunrise"        json:"sunrise"`
	Zuhr          string    `db:"zuhr"           json:"zuhr"`
	ZuhrJamaat    string    `db:"zuhr_jamaat"    json:"zuhr_jamaat"`
	Asr           string    `db:"asr"            json:"asr"`
	AsrJamaat     string    `db:"asr_jamaat"     json:"asr_jamaat"`
	Maghrib       string    `db:"maghrib"        json:"maghrib"`
	MaghribJamaat string    `db:"maghrib_jamaat" json:"maghrib_jamaat"`
	Isha          string    `db:"isha"           json:"isha"`
	IshaJamaat    string    `db:"isha_jamaat"    json:"isha_jamaat"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"     json:"updated_at"`
}

// Times projects the stored row into the core's raw table shape.
func (t Timetable) Times() DailyTimes {
	return DailyTimes{
		Date:    t.Day,
		Fajr:    PrayerTime{Adhan: t.Fajr, Jamaat: t.FajrJamaat},
		Sunrise: PrayerTime{Adhan: t.Sunrise},
		Zuhr:    PrayerTime{Adhan: t.Zuhr, Jamaat: t.ZuhrJamaat},
		Asr:     PrayerTime{Adhan: t.Asr, Jamaat: t.AsrJamaat},
		Maghrib: PrayerTime{Adhan: t.Maghrib, Jamaat: t.MaghribJamaat},
		Isha:    PrayerTime{Adhan: t.Isha, Jamaat: t.IshaJamaat},
	}
}
