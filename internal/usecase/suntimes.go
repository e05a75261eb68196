package usecase

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.ngs.io/suntimes-api/internal/adapter/store"
	"go.ngs.io/suntimes-api/internal/domain"
	"go.ngs.io/suntimes-api/internal/metrics"
)

// ErrInvalidRequest wraps every request validation failure.
var ErrInvalidRequest = errors.New("invalid request")

// MaxDays bounds the number of days in one request.
const MaxDays = 366

// SunTimesRequest encapsulates a sunrise/sunset request
type SunTimesRequest struct {
	// Location parameters (mutually exclusive with PlaceID)
	Lat *float64
	Lon *float64

	// Place ID (mutually exclusive with Lat/Lon)
	PlaceID *string

	// First calendar date; only the date part is used.
	Date time.Time

	// Number of consecutive days, 1 to MaxDays. Zero means 1.
	Days int

	// Hours east of UTC. Required with Lat/Lon, overrides the place's
	// offset otherwise.
	TZOffsetHours *float64

	// Event: sunrise (default), civil, nautical or astronomical
	Event string
}

// SunTimesResponse contains the computed days
type SunTimesResponse struct {
	Location      LocationDTO       `json:"location"`
	Timezone      string            `json:"timezone"`
	Event         string            `json:"event"`
	DepressionDeg float64           `json:"depression_deg"`
	Days          []DayTimes        `json:"days"`
	Meta          map[string]string `json:"meta"`
}

// LocationDTO describes the observer.
type LocationDTO struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	PlaceID string  `json:"place_id,omitempty"`
	Name    string  `json:"name,omitempty"`
}

// DayTimes is one computed day. Sunrise and Sunset are null when the event
// does not occur; Condition then says why.
type DayTimes struct {
	Date         string  `json:"date"`
	Sunrise      *string `json:"sunrise"`
	Sunset       *string `json:"sunset"`
	SolarNoon    string  `json:"solar_noon"`
	DayLengthMin float64 `json:"day_length_min"`
	Condition    string  `json:"condition"`
}

// SunTimesUseCase orchestrates sunrise/sunset computation
type SunTimesUseCase struct {
	places store.PlaceLoader
	grid   store.DayLengthGrid
	memo   *Memo
}

// NewSunTimesUseCase creates a new use case. grid and memo may be nil.
func NewSunTimesUseCase(places store.PlaceLoader, grid store.DayLengthGrid, memo *Memo) *SunTimesUseCase {
	return &SunTimesUseCase{
		places: places,
		grid:   grid,
		memo:   memo,
	}
}

// Validate checks if the request is valid
func (r *SunTimesRequest) Validate() error {
	hasLatLon := r.Lat != nil && r.Lon != nil
	hasPlaceID := r.PlaceID != nil && *r.PlaceID != ""

	if (r.Lat == nil) != (r.Lon == nil) {
		return fmt.Errorf("%w: lat and lon must be provided together", ErrInvalidRequest)
	}
	if !hasLatLon && !hasPlaceID {
		return fmt.Errorf("%w: either lat/lon or place_id must be provided", ErrInvalidRequest)
	}
	if hasLatLon && hasPlaceID {
		return fmt.Errorf("%w: lat/lon and place_id are mutually exclusive", ErrInvalidRequest)
	}

	if hasLatLon {
		loc := domain.Location{Latitude: *r.Lat, Longitude: *r.Lon}
		if err := loc.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		if r.TZOffsetHours == nil {
			return fmt.Errorf("%w: tz is required with lat/lon", ErrInvalidRequest)
		}
	}

	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}

	if r.TZOffsetHours != nil {
		m := domain.MomentFromTime(r.Date, *r.TZOffsetHours)
		if err := m.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
	}

	if r.Days < 0 || r.Days > MaxDays {
		return fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidRequest, MaxDays)
	}

	if _, ok := domain.DepressionForEvent(r.Event); !ok {
		return fmt.Errorf("%w: unknown event %q (use sunrise, civil, nautical, or astronomical)", ErrInvalidRequest, r.Event)
	}

	return nil
}

// Execute computes sunrise, solar noon and sunset for each requested day
func (uc *SunTimesUseCase) Execute(req SunTimesRequest) (*SunTimesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	event := req.Event
	if event == "" {
		event = domain.EventSunrise
	}
	depression, _ := domain.DepressionForEvent(event)

	var place domain.Place
	if req.PlaceID != nil && *req.PlaceID != "" {
		if uc.places == nil {
			return nil, fmt.Errorf("place lookup is not configured")
		}
		var err error
		place, err = uc.places.LoadPlace(*req.PlaceID)
		if err != nil {
			return nil, fmt.Errorf("failed to load place %s: %w", *req.PlaceID, err)
		}
	} else {
		place = domain.Place{Location: domain.Location{Latitude: *req.Lat, Longitude: *req.Lon}}
	}
	if req.TZOffsetHours != nil {
		place.TZOffsetHours = *req.TZOffsetHours
	}

	days := req.Days
	if days == 0 {
		days = 1
	}

	year, month, day := req.Date.Date()
	first := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	out := make([]DayTimes, 0, days)
	var zone string
	for i := 0; i < days; i++ {
		moment := domain.MomentFromTime(first.AddDate(0, 0, i), place.TZOffsetHours)
		ctx := place.Context(moment).WithDepression(depression)

		st, err := uc.memo.Compute(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to compute %s: %w", moment.Date(), err)
		}
		metrics.ObserveComputation(st.Condition().String())

		out = append(out, toDayTimes(st))
		zone = formatOffset(st.SolarNoon)
	}

	return &SunTimesResponse{
		Location: LocationDTO{
			Lat:     place.Location.Latitude,
			Lon:     place.Location.Longitude,
			PlaceID: place.ID,
			Name:    place.Name,
		},
		Timezone:      zone,
		Event:         event,
		DepressionDeg: depression,
		Days:          out,
		Meta: map[string]string{
			"model": "noaa_low_precision",
		},
	}, nil
}

// ListPlaces returns all configured places
func (uc *SunTimesUseCase) ListPlaces() ([]domain.Place, error) {
	if uc.places == nil {
		return nil, nil
	}
	return uc.places.ListPlaces()
}

func toDayTimes(st domain.SolarTimes) DayTimes {
	return DayTimes{
		Date:         st.Context.Moment.Date(),
		Sunrise:      formatEvent(st.Sunrise),
		Sunset:       formatEvent(st.Sunset),
		SolarNoon:    st.SolarNoon.Format(time.RFC3339),
		DayLengthMin: roundToDecimal(st.DayLength().Minutes(), 2),
		Condition:    st.Condition().String(),
	}
}

func formatEvent(e domain.Event) *string {
	t, ok := e.Get()
	if !ok {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// formatOffset renders the zone offset of t as "+05:30".
func formatOffset(t time.Time) string {
	return t.Format("-07:00")
}

// Helper function to round to decimal places
func roundToDecimal(val float64, precision int) float64 {
	multiplier := math.Pow(10, float64(precision))
	return math.Round(val*multiplier) / multiplier
}
