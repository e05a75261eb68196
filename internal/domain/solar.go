package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"cloudeng.io/datetime"
)

var (
	// ErrInvalidLocation is returned for a latitude outside [-90, 90], a
	// longitude outside [-180, 180], or a non-finite coordinate.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidDate is returned for a date that is not a valid proleptic
	// Gregorian calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidTimezone is returned for a non-finite timezone offset or one
	// too large to express as a fixed zone.
	ErrInvalidTimezone = errors.New("invalid timezone offset")

	// ErrInvalidDepression is returned for a depression angle outside
	// (0, 180).
	ErrInvalidDepression = errors.New("invalid depression angle")
)

// maxTZOffsetHours is the largest offset whose seconds fit the int32 range,
// so time.FixedZone accepts it on every platform. Any smaller offset is a
// pure numeric shift.
const maxTZOffsetHours = math.MaxInt32 / 3600

// Condition describes whether a rise/set style event occurs on a date.
type Condition int

const (
	// Normal means the event occurs.
	Normal Condition = iota

	// PolarDay means the Sun stays above the depression angle all day.
	PolarDay

	// PolarNight means the Sun never climbs to the depression angle.
	PolarNight

	// Indeterminate means the formula has no defined answer for the inputs.
	// Compute never reports it for a validated context; it surfaces only
	// when HourAngle is called directly with non-finite arguments.
	Indeterminate
)

func (c Condition) String() string {
	switch c {
	case Normal:
		return "normal"
	case PolarDay:
		return "polar_day"
	case PolarNight:
		return "polar_night"
	case Indeterminate:
		return "indeterminate"
	default:
		return fmt.Sprintf("Condition(%d)", int(c))
	}
}

// Location is an observer's geographic position.
type Location struct {
	Latitude  float64 // Degrees, north positive.
	Longitude float64 // Degrees, east positive.
}

// Validate checks that the coordinates lie within their physical ranges.
func (l Location) Validate() error {
	if math.IsNaN(l.Latitude) || l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidLocation, l.Latitude)
	}
	if math.IsNaN(l.Longitude) || l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidLocation, l.Longitude)
	}
	return nil
}

// ReferenceMoment is a calendar date together with a fixed timezone offset.
// Computations always refer to this date; the time of day is irrelevant.
type ReferenceMoment struct {
	Year          int
	Month         time.Month
	Day           int
	TZOffsetHours float64 // Hours east of UTC, fractional values allowed.
}

// MomentFromTime takes the calendar date of t (in t's own location) and
// pairs it with the given offset.
func MomentFromTime(t time.Time, tzOffsetHours float64) ReferenceMoment {
	year, month, day := t.Date()
	return ReferenceMoment{Year: year, Month: month, Day: day, TZOffsetHours: tzOffsetHours}
}

// Validate checks the calendar date and the offset.
func (m ReferenceMoment) Validate() error {
	if m.Month < time.January || m.Month > time.December {
		return fmt.Errorf("%w: month %d", ErrInvalidDate, int(m.Month))
	}
	if m.Day < 1 || m.Day > int(datetime.DaysInMonth(m.Year, datetime.Month(m.Month))) {
		return fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, m.Year, int(m.Month), m.Day)
	}
	if math.IsNaN(m.TZOffsetHours) || math.IsInf(m.TZOffsetHours, 0) || math.Abs(m.TZOffsetHours) > maxTZOffsetHours {
		return fmt.Errorf("%w: %v hours", ErrInvalidTimezone, m.TZOffsetHours)
	}
	return nil
}

// Zone returns a fixed time.Location for the offset, named like "UTC+05:30".
func (m ReferenceMoment) Zone() *time.Location {
	seconds := int(math.Round(m.TZOffsetHours * 3600))
	sign := '+'
	abs := seconds
	if seconds < 0 {
		sign = '-'
		abs = -seconds
	}
	name := fmt.Sprintf("UTC%c%02d:%02d", sign, abs/3600, (abs%3600)/60)
	return time.FixedZone(name, seconds)
}

// Date returns the calendar date as a string, YYYY-MM-DD.
func (m ReferenceMoment) Date() string {
	return fmt.Sprintf("%04d-%02d-%02d", m.Year, int(m.Month), m.Day)
}

// CalculationContext is the complete input of a computation. It is a plain
// value: changing any field yields a different context, never a stale one.
type CalculationContext struct {
	Moment   ReferenceMoment
	Location Location

	// DepressionDeg is the zenith distance defining the event; zero selects
	// DepressionStandard.
	DepressionDeg float64
}

// NewContext binds a date, timezone offset and coordinates.
func NewContext(date time.Time, tzOffsetHours, lat, lon float64) CalculationContext {
	return CalculationContext{
		Moment:   MomentFromTime(date, tzOffsetHours),
		Location: Location{Latitude: lat, Longitude: lon},
	}
}

// WithDepression returns a copy of c using the given depression angle.
func (c CalculationContext) WithDepression(deg float64) CalculationContext {
	c.DepressionDeg = deg
	return c
}

// Depression returns the effective depression angle in degrees.
func (c CalculationContext) Depression() float64 {
	if c.DepressionDeg == 0 {
		return DepressionStandard
	}
	return c.DepressionDeg
}

// Validate checks every input of the context.
func (c CalculationContext) Validate() error {
	if err := c.Location.Validate(); err != nil {
		return err
	}
	if err := c.Moment.Validate(); err != nil {
		return err
	}
	if d := c.Depression(); math.IsNaN(d) || d <= 0 || d >= 180 {
		return fmt.Errorf("%w: %v degrees", ErrInvalidDepression, d)
	}
	return nil
}

// Event is the outcome of one rise/set style event. Time is meaningful only
// when Occurs is true; otherwise Condition says why the event is absent.
type Event struct {
	Time      time.Time
	Occurs    bool
	Condition Condition
}

// Get returns the event time and whether it occurs.
func (e Event) Get() (time.Time, bool) {
	return e.Time, e.Occurs
}

// SolarTimes is the result of Compute.
type SolarTimes struct {
	Context   CalculationContext
	Sunrise   Event
	Sunset    Event
	SolarNoon time.Time
}

// DayLength returns the time between sunrise and sunset: 24h during polar
// day and zero during polar night.
func (s SolarTimes) DayLength() time.Duration {
	if s.Sunrise.Occurs && s.Sunset.Occurs {
		return s.Sunset.Time.Sub(s.Sunrise.Time)
	}
	if s.Sunrise.Condition == PolarDay || s.Sunset.Condition == PolarDay {
		return 24 * time.Hour
	}
	return 0
}

// Condition summarises the day: Normal if both events occur, otherwise the
// reason reported for the missing one(s).
func (s SolarTimes) Condition() Condition {
	if s.Sunrise.Condition != Normal {
		return s.Sunrise.Condition
	}
	return s.Sunset.Condition
}

// Compute runs the solar position pipeline for ctx. It is a pure function:
// identical contexts produce identical results, and it is safe for
// concurrent use. An error is returned only for invalid input, before any
// computation happens; polar day and night are reported through the
// events' Condition.
func Compute(ctx CalculationContext) (SolarTimes, error) {
	if err := ctx.Validate(); err != nil {
		return SolarTimes{}, err
	}

	m := ctx.Moment
	lat, lon := ctx.Location.Latitude, ctx.Location.Longitude
	depression := ctx.Depression()

	jd := JulianDay(m.Year, m.Month, m.Day)
	midnight := time.Date(m.Year, m.Month, m.Day, 0, 0, 0, 0, time.UTC)
	zone := m.Zone()

	rise, riseCond := SunriseUTC(jd, lat, lon, depression)
	set, setCond := SunsetUTC(jd, lat, lon, depression)

	return SolarTimes{
		Context:   ctx,
		Sunrise:   newEvent(midnight, rise, riseCond, zone),
		Sunset:    newEvent(midnight, set, setCond, zone),
		SolarNoon: minutesToTime(midnight, SolarNoonUTC(jd, lon), zone),
	}, nil
}

func newEvent(midnight time.Time, minutes float64, cond Condition, zone *time.Location) Event {
	if cond != Normal || math.IsNaN(minutes) {
		if cond == Normal {
			cond = Indeterminate
		}
		return Event{Condition: cond}
	}
	return Event{
		Time:      minutesToTime(midnight, minutes, zone),
		Occurs:    true,
		Condition: Normal,
	}
}

// minutesToTime offsets a UTC midnight by minutes, rounded to the nearest
// millisecond; minutes outside [0, 1440) land on the adjacent day.
func minutesToTime(midnight time.Time, minutes float64, zone *time.Location) time.Time {
	ms := math.Round(minutes * 60 * 1000)
	return midnight.Add(time.Duration(ms) * time.Millisecond).In(zone)
}
