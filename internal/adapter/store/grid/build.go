package grid

import (
	"fmt"
	"time"

	"go.ngs.io/suntimes-api/internal/domain"
)

// DayLengthGrid holds day lengths, in minutes, sampled on a latitude ×
// day-of-year grid. Minutes is row-major: Minutes[i*len(DayOfYear)+j] is the
// value at (Lat[i], DayOfYear[j]).
type DayLengthGrid struct {
	Year          int
	DepressionDeg float64
	Lat           []float64
	DayOfYear     []float64
	Minutes       []float64
}

// BuildSpec describes the sampling of a DayLengthGrid.
type BuildSpec struct {
	Year          int
	DepressionDeg float64 // Zero selects domain.DepressionStandard.
	LatMin        float64
	LatMax        float64
	LatStep       float64 // Degrees.
	DayStep       int     // Days.
}

// DefaultBuildSpec is a global one-degree, daily grid for year.
func DefaultBuildSpec(year int) BuildSpec {
	return BuildSpec{
		Year:    year,
		LatMin:  -90,
		LatMax:  90,
		LatStep: 1,
		DayStep: 1,
	}
}

// Build computes a DayLengthGrid at longitude 0 with the solar engine.
// The last day of the year is always included so that every day can be
// interpolated.
func Build(spec BuildSpec) (*DayLengthGrid, error) {
	if spec.LatStep <= 0 || spec.DayStep <= 0 {
		return nil, fmt.Errorf("grid steps must be positive (lat %v, day %d)", spec.LatStep, spec.DayStep)
	}
	if spec.LatMin >= spec.LatMax {
		return nil, fmt.Errorf("lat-min %v must be below lat-max %v", spec.LatMin, spec.LatMax)
	}

	nLat := int((spec.LatMax-spec.LatMin)/spec.LatStep) + 1
	lats := make([]float64, nLat)
	for i := range lats {
		lats[i] = spec.LatMin + float64(i)*spec.LatStep
	}

	jan1 := time.Date(spec.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	daysInYear := jan1.AddDate(1, 0, 0).Sub(jan1).Hours() / 24

	var doys []float64
	for d := 1; float64(d) < daysInYear; d += spec.DayStep {
		doys = append(doys, float64(d))
	}
	doys = append(doys, daysInYear)

	g := &DayLengthGrid{
		Year:          spec.Year,
		DepressionDeg: spec.DepressionDeg,
		Lat:           lats,
		DayOfYear:     doys,
		Minutes:       make([]float64, 0, len(lats)*len(doys)),
	}
	if g.DepressionDeg == 0 {
		g.DepressionDeg = domain.DepressionStandard
	}

	for _, lat := range lats {
		for _, doy := range doys {
			day := jan1.AddDate(0, 0, int(doy)-1)
			ctx := domain.NewContext(day, 0, lat, 0).WithDepression(g.DepressionDeg)
			st, err := domain.Compute(ctx)
			if err != nil {
				return nil, fmt.Errorf("lat %v day %v: %w", lat, doy, err)
			}
			g.Minutes = append(g.Minutes, st.DayLength().Minutes())
		}
	}
	return g, nil
}
