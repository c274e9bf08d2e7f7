package db

import (
	"github.com/rs/zerolog/log"

	"github.com/minbar-signage/minbar/internal/model"
)

func (s *pgStore) CreateScreen(name string, location *string) (model.Screen, error) {
	var sc model.Screen
	const q = `
	INSERT INTO screens (name, location, paired, created_at, updated_at)
	VALUES ($1, $2, false, now(), now())
	RETURNING id, device_id, name, location, paired, created_at, updated_at;`
	if err := s.db.Get(&sc, q, name, location); err != nil {
		log.Error().Err(err).Msg("CreateScreen failed")
		return model.Screen{}, err
	}
	return sc, nil
}

func (s *pgStore) GetScreenByID(id int) (model.Screen, error) {
	var sc model.Screen
	err := s.db.Get(&sc, `
	SELECT id, device_id, name, location, paired, created_at, updated_at
	  FROM screens WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("GetScreenByID failed")
	}
	return sc, err
}

func (s *pgStore) GetScreenByDeviceID(deviceID string) (model.Screen, error) {
	var sc model.Screen
	err := s.db.Get(&sc, `
	SELECT id, device_id, name, location, paired, created_at, updated_at
	  FROM screens WHERE device_id = $1;`, deviceID)
	if err != nil {
		log.Error().Err(err).Str("device_id", deviceID).Msg("GetScreenByDeviceID failed")
	}
	return sc, err
}

func (s *pgStore) ListScreens() ([]model.Screen, error) {
	var out []model.Screen
	const q = `
	SELECT id, device_id, name, location, paired, created_at, updated_at
	  FROM screens
	 ORDER BY id;`
	if err := s.db.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("ListScreens failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) PairScreen(screenID int, deviceID string) error {
	_, err := s.db.Exec(`
	UPDATE screens
	   SET device_id = $2, paired = true, updated_at = now()
	 WHERE id = $1;`, screenID, deviceID)
	if err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Str("device_id", deviceID).Msg("PairScreen failed")
	}
	return err
}

func (s *pgStore) DeleteScreen(id int) error {
	_, err := s.db.Exec(`DELETE FROM screens WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("DeleteScreen failed")
	}
	return err
}
