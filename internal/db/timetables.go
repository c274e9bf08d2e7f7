package db

import (
	"github.com/rs/zerolog/log"

	"github.com/minbar-signage/minbar/internal/model"
)

const timetableColumns = `
	id, day, fajr, fajr_jamaat, sunrise,
	zuhr, zuhr_jamaat, asr, asr_jamaat,
	maghrib, maghrib_jamaat, isha, isha_jamaat,
	created_at, updated_at`

// UpsertTimetable replaces the stored table for its day wholesale; a
// refreshed table always supersedes the previous one.
func (s *pgStore) UpsertTimetable(t model.Timetable) (model.Timetable, error) {
	var out model.Timetable
	const q = `
	INSERT INTO timetables (
		day, fajr, fajr_jamaat, sunrise,
		zuhr, zuhr_jamaat, asr, asr_jamaat,
		maghrib, maghrib_jamaat, isha, isha_jamaat,
		created_at, updated_at
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now(),now())
	ON CONFLICT (day) DO UPDATE SET
		fajr = EXCLUDED.fajr,
		fajr_jamaat = EXCLUDED.fajr_jamaat,
		sunrise = EXCLUDED.sunrise,
		zuhr = EXCLUDED.zuhr,
		zuhr_jamaat = EXCLUDED.zuhr_jamaat,
		asr = EXCLUDED.asr,
		asr_jamaat = EXCLUDED.asr_jamaat,
		maghrib = EXCLUDED.maghrib,
		maghrib_jamaat = EXCLUDED.maghrib_jamaat,
		isha = EXCLUDED.isha,
		isha_jamaat = EXCLUDED.isha_jamaat,
		updated_at = now()
	RETURNING ` + timetableColumns + `;`
	err := s.db.Get(&out, q,
		t.Day, t.Fajr, t.FajrJamaat, t.Sunrise,
		t.Zuhr, t.ZuhrJamaat, t.Asr, t.AsrJamaat,
		t.Maghrib, t.MaghribJamaat, t.Isha, t.IshaJamaat,
	)
	if err != nil {
		log.Error().Err(err).Str("day", t.Day).Msg("UpsertTimetable failed")
		return model.Timetable{}, err
	}
	return out, nil
}

func (s *pgStore) GetTimetable(day string) (model.Timetable, error) {
	var out model.Timetable
	err := s.db.Get(&out, `SELECT `+timetableColumns+` FROM timetables WHERE day = $1;`, day)
	return out, err
}

func (s *pgStore) ListTimetables(limit int) ([]model.Timetable, error) {
	var out []model.Timetable
	const q = `SELECT ` + timetableColumns + ` FROM timetables ORDER BY day DESC LIMIT $1;`
	if err := s.db.Select(&out, q, limit); err != nil {
		log.Error().Err(err).Msg("ListTimetables failed")
		return nil, err
	}
	return out, nil
}
