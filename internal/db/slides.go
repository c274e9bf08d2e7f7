package db

import (
	"github.com/rs/zerolog/log"

	"github.com/minbar-signage/minbar/internal/model"
)

func (s *pgStore) CreateSlide(name, url string, createdBy int) (model.Slide, error) {
	var sl model.Slide
	const q = `
	INSERT INTO slides (name, url, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id, name, url, created_by, created_at, updated_at;`
	if err := s.db.Get(&sl, q, name, url, createdBy); err != nil {
		log.Error().Err(err).Msg("CreateSlide failed")
		return model.Slide{}, err
	}
	return sl, nil
}

func (s *pgStore) ListSlides() ([]model.Slide, error) {
	var out []model.Slide
	const q = `
	SELECT id, name, url, created_by, created_at, updated_at
	  FROM slides
	 ORDER BY id;`
	if err := s.db.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("ListSlides failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) DeleteSlide(id int) error {
	_, err := s.db.Exec(`DELETE FROM slides WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("slide_id", id).Msg("DeleteSlide failed")
	}
	return err
}
