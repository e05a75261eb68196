// Package csv provides CSV-based place data loading.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.ngs.io/suntimes-api/internal/adapter/store"
	"go.ngs.io/suntimes-api/internal/domain"
)

// PlacesFile is the file name read from the data directory.
const PlacesFile = "places.csv"

var expectedHeaders = []string{"place_id", "name", "lat", "lon", "tz_offset_hours"}

// PlaceStore provides access to named places listed in a CSV file.
type PlaceStore struct {
	dataDir string

	mu     sync.RWMutex
	places map[string]domain.Place // Loaded lazily, keyed by lower-case ID.
}

// NewPlaceStore creates a new CSV-based place store.
func NewPlaceStore(dataDir string) *PlaceStore {
	return &PlaceStore{
		dataDir: dataDir,
	}
}

// LoadPlace returns the place with the given ID.
func (s *PlaceStore) LoadPlace(id string) (domain.Place, error) {
	places, err := s.load()
	if err != nil {
		return domain.Place{}, err
	}

	p, ok := places[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return domain.Place{}, fmt.Errorf("%w: %s", store.ErrPlaceNotFound, id)
	}
	return p, nil
}

// ListPlaces returns every place sorted by ID.
func (s *PlaceStore) ListPlaces() ([]domain.Place, error) {
	places, err := s.load()
	if err != nil {
		return nil, err
	}

	list := make([]domain.Place, 0, len(places))
	for _, p := range places {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *PlaceStore) load() (map[string]domain.Place, error) {
	s.mu.RLock()
	places := s.places
	s.mu.RUnlock()
	if places != nil {
		return places, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.places != nil {
		return s.places, nil
	}

	filename := filepath.Join(s.dataDir, PlacesFile)
	//nolint:gosec // G304: File path constructed from dataDir (config).
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open places file: %w", err)
	}
	defer func() { _ = file.Close() }()

	places, err = ParsePlaces(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	s.places = places
	return places, nil
}

// ParsePlaces reads places from CSV with the header
// place_id,name,lat,lon,tz_offset_hours.
func ParsePlaces(r io.Reader) (map[string]domain.Place, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	// Read header.
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	// Validate header.
	if len(header) != len(expectedHeaders) {
		return nil, fmt.Errorf("invalid CSV header: expected %v, got %v", expectedHeaders, header)
	}
	for i, h := range header {
		if strings.TrimSpace(h) != expectedHeaders[i] {
			return nil, fmt.Errorf("invalid CSV header: expected column %d to be %s, got %s", i, expectedHeaders[i], h)
		}
	}

	places := make(map[string]domain.Place)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		p, err := parseRecord(record)
		if err != nil {
			return nil, err
		}

		key := strings.ToLower(p.ID)
		if _, dup := places[key]; dup {
			return nil, fmt.Errorf("duplicate place_id %q", p.ID)
		}
		places[key] = p
	}

	if len(places) == 0 {
		return nil, fmt.Errorf("no places found in CSV")
	}

	return places, nil
}

func parseRecord(record []string) (domain.Place, error) {
	id := strings.TrimSpace(record[0])
	if id == "" {
		return domain.Place{}, fmt.Errorf("empty place_id")
	}

	values := make([]float64, 3)
	for i, col := range []string{"lat", "lon", "tz_offset_hours"} {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[i+2]), 64)
		if err != nil {
			return domain.Place{}, fmt.Errorf("invalid %s for place %s: %w", col, id, err)
		}
		values[i] = v
	}

	p := domain.Place{
		ID:            id,
		Name:          strings.TrimSpace(record[1]),
		Location:      domain.Location{Latitude: values[0], Longitude: values[1]},
		TZOffsetHours: values[2],
	}
	if err := p.Location.Validate(); err != nil {
		return domain.Place{}, fmt.Errorf("place %s: %w", id, err)
	}
	return p, nil
}
