package store

import (
	"errors"

	"go.ngs.io/suntimes-api/internal/domain"
)

// ErrPlaceNotFound is returned when a place ID is unknown to the loader.
var ErrPlaceNotFound = errors.New("place not found")

// PlaceLoader is the interface for resolving named observer locations.
type PlaceLoader interface {
	// LoadPlace returns the place with the given ID (case-insensitive).
	LoadPlace(id string) (domain.Place, error)

	// ListPlaces returns all known places sorted by ID.
	ListPlaces() ([]domain.Place, error)
}

// DayLengthGrid is the interface for precomputed day-length lookups.
type DayLengthGrid interface {
	// DayLengthAt returns the interpolated day length in minutes at a
	// latitude (degrees) and 1-based day of year.
	DayLengthAt(lat float64, dayOfYear int) (float64, error)

	// GridYear returns the year the grid was generated for.
	GridYear() (int, error)
}
