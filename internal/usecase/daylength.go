package usecase

import (
	"errors"
	"fmt"
	"time"

	"go.ngs.io/suntimes-api/internal/domain"
	"go.ngs.io/suntimes-api/internal/metrics"
)

// Day-length sources.
const (
	SourceEngine = "engine"
	SourceGrid   = "grid"
)

// ErrGridUnavailable is returned for grid requests when no grid is configured.
var ErrGridUnavailable = errors.New("day-length grid is not configured")

// DayLengthRequest asks for the length of one day at a latitude.
type DayLengthRequest struct {
	Lat    float64
	Lon    float64 // Engine only; ignored by the grid.
	Date   time.Time
	Source string // "engine" (default) or "grid"
}

// DayLengthResponse is the answer to a DayLengthRequest.
type DayLengthResponse struct {
	Lat          float64 `json:"lat"`
	Date         string  `json:"date"`
	DayOfYear    int     `json:"day_of_year"`
	Source       string  `json:"source"`
	DayLengthMin float64 `json:"day_length_min"`
	Condition    string  `json:"condition,omitempty"`

	// GridYear is the year the grid was generated for. Grid answers are
	// interpolated from that year at longitude 0, whatever the requested
	// year.
	GridYear int `json:"grid_year,omitempty"`
}

// Validate checks if the request is valid
func (r *DayLengthRequest) Validate() error {
	loc := domain.Location{Latitude: r.Lat, Longitude: r.Lon}
	if err := loc.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}
	switch r.Source {
	case "", SourceEngine, SourceGrid:
	default:
		return fmt.Errorf("%w: unknown source %q (use engine or grid)", ErrInvalidRequest, r.Source)
	}
	return nil
}

// DayLength returns the standard sunrise-to-sunset day length, either
// computed exactly or interpolated from the precomputed grid.
func (uc *SunTimesUseCase) DayLength(req DayLengthRequest) (*DayLengthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = SourceEngine
	}

	moment := domain.MomentFromTime(req.Date, 0)
	resp := &DayLengthResponse{
		Lat:       req.Lat,
		Date:      moment.Date(),
		DayOfYear: req.Date.YearDay(),
		Source:    source,
	}

	switch source {
	case SourceGrid:
		if uc.grid == nil {
			return nil, ErrGridUnavailable
		}
		minutes, err := uc.grid.DayLengthAt(req.Lat, resp.DayOfYear)
		if err != nil {
			return nil, fmt.Errorf("failed to read day-length grid: %w", err)
		}
		year, err := uc.grid.GridYear()
		if err != nil {
			return nil, fmt.Errorf("failed to read day-length grid metadata: %w", err)
		}
		resp.DayLengthMin = roundToDecimal(minutes, 2)
		resp.GridYear = year
	default:
		ctx := domain.CalculationContext{
			Moment:   moment,
			Location: domain.Location{Latitude: req.Lat, Longitude: req.Lon},
		}
		st, err := uc.memo.Compute(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to compute %s: %w", moment.Date(), err)
		}
		metrics.ObserveComputation(st.Condition().String())
		resp.DayLengthMin = roundToDecimal(st.DayLength().Minutes(), 2)
		resp.Condition = st.Condition().String()
	}

	return resp, nil
}
