// Package db exposes a Store interface that API endpoints and the
// server wiring depend on, backed by PostgreSQL.
package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/minbar-signage/minbar/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)

	// screen functions
	CreateScreen(name string, location *string) (model.Screen, error)
	GetScreenByID(id int) (model.Screen, error)
	GetScreenByDeviceID(deviceID string) (model.Screen, error)
	ListScreens() ([]model.Screen, error)
	PairScreen(screenID int, deviceID string) error
	DeleteScreen(id int) error

	// timetable functions
	UpsertTimetable(t model.Timetable) (model.Timetable, error)
	GetTimetable(day string) (model.Timetable, error)
	ListTimetables(limit int) ([]model.Timetable, error)

	// slide functions
	CreateSlide(name, url string, createdBy int) (model.Slide, error)
	ListSlides() ([]model.Slide, error)
	DeleteSlide(id int) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(database *sqlx.DB) Store {
	return &pgStore{db: database}
}
