package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/mooncaker816/learnmeeus/v3/solstice"
	"github.com/nathan-osman/go-sunrise"
)

func mustCompute(t *testing.T, ctx CalculationContext) SolarTimes {
	t.Helper()
	st, err := Compute(ctx)
	if err != nil {
		t.Fatalf("Compute(%+v): unexpected error: %v", ctx, err)
	}
	return st
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// marchEquinox returns the calendar date of the March equinox of year.
func marchEquinox(year int) time.Time {
	y, m, d := julian.JDToCalendar(solstice.March(year))
	return date(y, time.Month(m), int(d))
}

// TestCompute_EquinoxOrdering tests sunrise < solar noon < sunset and a day of
// roughly twelve hours at a mid latitude on the equinox.
func TestCompute_EquinoxOrdering(t *testing.T) {
	for _, year := range []int{2023, 2024, 2025} {
		st := mustCompute(t, NewContext(marchEquinox(year), -5, 40.7, -74.0))

		rise, ok := st.Sunrise.Get()
		if !ok {
			t.Fatalf("%d: expected a sunrise", year)
		}
		set, ok := st.Sunset.Get()
		if !ok {
			t.Fatalf("%d: expected a sunset", year)
		}

		if !rise.Before(st.SolarNoon) || !st.SolarNoon.Before(set) {
			t.Errorf("%d: expected sunrise %v < noon %v < sunset %v", year, rise, st.SolarNoon, set)
		}

		// Refraction and the solar disc add a few minutes to each end.
		if d := st.DayLength() - 12*time.Hour; d < 0 || d > 15*time.Minute {
			t.Errorf("%d: expected a day just over 12h, got %v", year, st.DayLength())
		}
	}
}

// TestCompute_KnownValue tests New York on the 2024 March equinox against the
// published almanac (sunrise 06:59, sunset 19:09 EDT).
func TestCompute_KnownValue(t *testing.T) {
	st := mustCompute(t, NewContext(date(2024, time.March, 20), -4, 40.7128, -74.0060))

	tests := []struct {
		name     string
		got      time.Time
		expected time.Time
	}{
		{"sunrise", st.Sunrise.Time, time.Date(2024, 3, 20, 6, 59, 0, 0, st.Context.Moment.Zone())},
		{"sunset", st.Sunset.Time, time.Date(2024, 3, 20, 19, 9, 0, 0, st.Context.Moment.Zone())},
	}
	for _, tt := range tests {
		if diff := tt.got.Sub(tt.expected); diff < -2*time.Minute || diff > 2*time.Minute {
			t.Errorf("%s: expected %v ±2m, got %v", tt.name, tt.expected, tt.got)
		}
	}

	if _, offset := st.Sunrise.Time.Zone(); offset != -4*3600 {
		t.Errorf("sunrise zone offset: expected %d, got %d", -4*3600, offset)
	}
	if got := st.Sunrise.Time.Format("2006-01-02"); got != "2024-03-20" {
		t.Errorf("sunrise local date: expected 2024-03-20, got %s", got)
	}
}

// TestCompute_MatchesGoSunrise cross-checks against an independent
// implementation of the sunrise equation.
func TestCompute_MatchesGoSunrise(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		day      time.Time
	}{
		{"cupertino", 37.3229978, -122.0321823, date(2024, time.January, 1)},
		{"london", 51.5, -0.12, date(2024, time.June, 21)},
		{"sydney", -33.87, 151.21, date(2024, time.December, 21)},
		{"quito", -0.18, -78.47, date(2025, time.September, 22)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := mustCompute(t, NewContext(tt.day, 0, tt.lat, tt.lon))
			wantRise, wantSet := sunrise.SunriseSunset(tt.lat, tt.lon, tt.day.Year(), tt.day.Month(), tt.day.Day())

			if d := st.Sunrise.Time.Sub(wantRise); math.Abs(d.Minutes()) > 2 {
				t.Errorf("sunrise: expected %v, got %v", wantRise, st.Sunrise.Time.UTC())
			}
			if d := st.Sunset.Time.Sub(wantSet); math.Abs(d.Minutes()) > 2 {
				t.Errorf("sunset: expected %v, got %v", wantSet, st.Sunset.Time.UTC())
			}
		})
	}
}

// TestCompute_DayLengthMonotonic tests that day length grows with latitude in
// the summer hemisphere until the Sun stops setting.
func TestCompute_DayLengthMonotonic(t *testing.T) {
	tests := []struct {
		name  string
		day   time.Time
		north bool
	}{
		{"june north", date(2024, time.June, 21), true},
		{"december south", date(2024, time.December, 21), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := time.Duration(0)
			reachedPolarDay := false
			for lat := 0.0; lat <= 89.0; lat++ {
				signed := lat
				if !tt.north {
					signed = -lat
				}
				st := mustCompute(t, NewContext(tt.day, 0, signed, 10))
				if st.Condition() == PolarDay {
					reachedPolarDay = true
					break
				}
				if st.DayLength() < prev {
					t.Fatalf("lat %v: day length %v shorter than %v", signed, st.DayLength(), prev)
				}
				prev = st.DayLength()
			}
			if !reachedPolarDay {
				t.Errorf("expected polar day before reaching the pole")
			}
		})
	}
}

// TestCompute_PolarBoundary tests continuous daylight and darkness at 80°N.
func TestCompute_PolarBoundary(t *testing.T) {
	tests := []struct {
		name      string
		day       time.Time
		condition Condition
		length    time.Duration
	}{
		{"summer", date(2024, time.June, 21), PolarDay, 24 * time.Hour},
		{"winter", date(2024, time.December, 21), PolarNight, 0},
	}

	for _, tt := range tests {
		st := mustCompute(t, NewContext(tt.day, 1, 80, 15))
		for _, ev := range []Event{st.Sunrise, st.Sunset} {
			if ev.Occurs {
				t.Errorf("%s: expected no event, got %v", tt.name, ev.Time)
			}
			if ev.Condition != tt.condition {
				t.Errorf("%s: expected %v, got %v", tt.name, tt.condition, ev.Condition)
			}
		}
		if got := st.DayLength(); got != tt.length {
			t.Errorf("%s: expected day length %v, got %v", tt.name, tt.length, got)
		}
		if st.SolarNoon.IsZero() {
			t.Errorf("%s: solar noon should still be defined", tt.name)
		}
	}
}

// TestCompute_Deterministic tests that identical inputs give identical results.
func TestCompute_Deterministic(t *testing.T) {
	ctx := NewContext(date(2024, time.August, 3), 5.5, 28.61, 77.21)
	a := mustCompute(t, ctx)
	b := mustCompute(t, ctx)

	if a.Context != b.Context {
		t.Errorf("contexts differ: %+v vs %+v", a.Context, b.Context)
	}
	for _, p := range [][2]time.Time{
		{a.Sunrise.Time, b.Sunrise.Time},
		{a.Sunset.Time, b.Sunset.Time},
		{a.SolarNoon, b.SolarNoon},
	} {
		if p[0].UnixNano() != p[1].UnixNano() || p[0].String() != p[1].String() {
			t.Errorf("expected identical times, got %v and %v", p[0], p[1])
		}
	}
}

// TestCompute_TimezoneShift tests that the offset moves local clock times
// but never the instants themselves.
func TestCompute_TimezoneShift(t *testing.T) {
	day := date(2024, time.May, 10)
	a := mustCompute(t, NewContext(day, -5, 40.7, -74.0))
	b := mustCompute(t, NewContext(day, -4, 40.7, -74.0))

	pairs := []struct {
		name string
		a, b time.Time
	}{
		{"sunrise", a.Sunrise.Time, b.Sunrise.Time},
		{"sunset", a.Sunset.Time, b.Sunset.Time},
		{"noon", a.SolarNoon, b.SolarNoon},
	}
	for _, p := range pairs {
		if !p.a.Equal(p.b) {
			t.Errorf("%s: UTC instants differ: %v vs %v", p.name, p.a.UTC(), p.b.UTC())
		}
		wallA := time.Date(2000, 1, 1, p.a.Hour(), p.a.Minute(), p.a.Second(), p.a.Nanosecond(), time.UTC)
		wallB := time.Date(2000, 1, 1, p.b.Hour(), p.b.Minute(), p.b.Second(), p.b.Nanosecond(), time.UTC)
		if got := wallB.Sub(wallA); got != time.Hour {
			t.Errorf("%s: expected local clock shift of 1h, got %v", p.name, got)
		}
	}
}

// TestCompute_DayRollover tests that events falling on the neighbouring UTC
// day keep their correct instant.
func TestCompute_DayRollover(t *testing.T) {
	// Sunrise in Sydney is the previous evening in UTC.
	st := mustCompute(t, NewContext(date(2024, time.December, 21), 11, -33.87, 151.21))
	if got := st.Sunrise.Time.UTC().Day(); got != 20 {
		t.Errorf("expected sunrise on the 20th UTC, got the %d", got)
	}
	if got := st.Sunrise.Time.Day(); got != 21 {
		t.Errorf("expected sunrise on the 21st local, got the %d", got)
	}
	if h := st.Sunrise.Time.Hour(); h != 5 {
		t.Errorf("expected local sunrise around 05:40, got %v", st.Sunrise.Time)
	}
}

// TestCompute_Twilight tests that deeper depression angles widen the day.
func TestCompute_Twilight(t *testing.T) {
	base := NewContext(date(2024, time.March, 20), -4, 40.7128, -74.0060)

	prev := mustCompute(t, base)
	for _, dep := range []float64{DepressionCivil, DepressionNautical, DepressionAstronomical} {
		st := mustCompute(t, base.WithDepression(dep))
		if !st.Sunrise.Time.Before(prev.Sunrise.Time) || !st.Sunset.Time.After(prev.Sunset.Time) {
			t.Errorf("depression %v: expected a wider window than %v-%v, got %v-%v",
				dep, prev.Sunrise.Time, prev.Sunset.Time, st.Sunrise.Time, st.Sunset.Time)
		}
		prev = st
	}

	civil := mustCompute(t, base.WithDepression(DepressionCivil))
	want := time.Date(2024, 3, 20, 6, 31, 12, 0, base.Moment.Zone())
	if d := civil.Sunrise.Time.Sub(want); d < -time.Minute || d > time.Minute {
		t.Errorf("civil dawn: expected %v, got %v", want, civil.Sunrise.Time)
	}
}

// TestCompute_InvalidInput tests that bad input is rejected before computing.
func TestCompute_InvalidInput(t *testing.T) {
	day := date(2024, time.March, 20)

	tests := []struct {
		name string
		ctx  CalculationContext
		want error
	}{
		{"latitude too large", NewContext(day, 0, 90.5, 0), ErrInvalidLocation},
		{"latitude NaN", NewContext(day, 0, math.NaN(), 0), ErrInvalidLocation},
		{"longitude too small", NewContext(day, 0, 0, -180.01), ErrInvalidLocation},
		{"february 30", CalculationContext{Moment: ReferenceMoment{Year: 2024, Month: time.February, Day: 30}}, ErrInvalidDate},
		{"february 29 non leap", CalculationContext{Moment: ReferenceMoment{Year: 2023, Month: time.February, Day: 29}}, ErrInvalidDate},
		{"month 13", CalculationContext{Moment: ReferenceMoment{Year: 2024, Month: 13, Day: 1}}, ErrInvalidDate},
		{"timezone NaN", NewContext(day, math.NaN(), 0, 0), ErrInvalidTimezone},
		{"timezone Inf", NewContext(day, math.Inf(-1), 0, 0), ErrInvalidTimezone},
		{"timezone beyond a fixed zone", NewContext(day, 1e7, 0, 0), ErrInvalidTimezone},
		{"depression", NewContext(day, 0, 0, 0).WithDepression(190), ErrInvalidDepression},
	}

	for _, tt := range tests {
		st, err := Compute(tt.ctx)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
		if st != (SolarTimes{}) {
			t.Errorf("%s: expected no partial result, got %+v", tt.name, st)
		}
	}

	leap := CalculationContext{Moment: ReferenceMoment{Year: 2024, Month: time.February, Day: 29}}
	if _, err := Compute(leap); err != nil {
		t.Errorf("2024-02-29: unexpected error %v", err)
	}
}

// TestCompute_LargeTimezoneOffset tests that offsets outside real-world
// zones are accepted and only shift the presentation.
func TestCompute_LargeTimezoneOffset(t *testing.T) {
	day := date(2024, time.March, 20)
	base := mustCompute(t, NewContext(day, 0, 10, 10))

	for _, tz := range []float64{14, 26, 27, 30, -40, 1000.5} {
		st, err := Compute(NewContext(day, tz, 10, 10))
		if err != nil {
			t.Fatalf("tz %v: unexpected error %v", tz, err)
		}
		if !st.Sunrise.Time.Equal(base.Sunrise.Time) || !st.Sunset.Time.Equal(base.Sunset.Time) || !st.SolarNoon.Equal(base.SolarNoon) {
			t.Errorf("tz %v: UTC instants moved: sunrise %v vs %v", tz, st.Sunrise.Time.UTC(), base.Sunrise.Time.UTC())
		}
		if _, offset := st.SolarNoon.Zone(); offset != int(math.Round(tz*3600)) {
			t.Errorf("tz %v: zone offset %d s", tz, offset)
		}
	}
}

func TestReferenceMoment_Zone(t *testing.T) {
	tests := []struct {
		offset float64
		name   string
		secs   int
	}{
		{0, "UTC+00:00", 0},
		{5.5, "UTC+05:30", 19800},
		{-3.5, "UTC-03:30", -12600},
		{12.75, "UTC+12:45", 45900},
	}
	for _, tt := range tests {
		zone := ReferenceMoment{TZOffsetHours: tt.offset}.Zone()
		name, secs := time.Date(2024, 1, 1, 0, 0, 0, 0, zone).Zone()
		if name != tt.name || secs != tt.secs {
			t.Errorf("offset %v: expected %s/%d, got %s/%d", tt.offset, tt.name, tt.secs, name, secs)
		}
	}
}
