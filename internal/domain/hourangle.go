package domain

import "math"

// Depression angles, measured from the zenith, that define the instant of a
// rise/set style event.
const (
	// DepressionStandard is the zenith distance of the Sun's centre at
	// standard sunrise/sunset: 90°50', covering refraction and the solar
	// semidiameter.
	DepressionStandard = 90.833

	// DepressionCivil is the zenith distance at civil dawn/dusk.
	DepressionCivil = 96.0

	// DepressionNautical is the zenith distance at nautical dawn/dusk.
	DepressionNautical = 102.0

	// DepressionAstronomical is the zenith distance at astronomical dawn/dusk.
	DepressionAstronomical = 108.0
)

// Event names accepted by DepressionForEvent.
const (
	EventSunrise      = "sunrise"
	EventCivil        = "civil"
	EventNautical     = "nautical"
	EventAstronomical = "astronomical"
)

// DepressionForEvent maps an event name to its depression angle. The empty
// name selects the standard sunrise/sunset.
func DepressionForEvent(name string) (float64, bool) {
	switch name {
	case "", EventSunrise:
		return DepressionStandard, true
	case EventCivil:
		return DepressionCivil, true
	case EventNautical:
		return DepressionNautical, true
	case EventAstronomical:
		return DepressionAstronomical, true
	default:
		return 0, false
	}
}

const (
	// minutesPerDegree is the Earth's rotation rate expressed as minutes of
	// time per degree of hour angle (1440 / 360).
	minutesPerDegree = 4.0

	minutesPerDay = 1440.0
)

// HourAngle returns the (positive) hour angle in degrees at which the Sun's
// centre reaches the zenith distance depression, for an observer at latitude
// lat when the solar declination is dec. All arguments are in degrees.
//
// When the Sun never reaches the requested zenith distance the returned
// Condition reports why and the angle is NaN: an acos argument below -1 means
// the Sun stays above it all day (PolarDay), above +1 means it never climbs
// to it (PolarNight). Arguments that miss the [-1, 1] range by rounding
// alone are clamped. Non-finite inputs yield Indeterminate.
func HourAngle(lat, dec, depression float64) (float64, Condition) {
	latRad := Deg2Rad(lat)
	decRad := Deg2Rad(dec)

	arg := math.Cos(Deg2Rad(depression))/(math.Cos(latRad)*math.Cos(decRad)) -
		math.Tan(latRad)*math.Tan(decRad)

	switch {
	case math.IsNaN(arg) || math.IsInf(arg, 0):
		return math.NaN(), Indeterminate
	case arg < -1-unitTolerance:
		return math.NaN(), PolarDay
	case arg > 1+unitTolerance:
		return math.NaN(), PolarNight
	}

	return Rad2Deg(math.Acos(clampUnit(arg))), Normal
}

// SolarNoonUTC returns the time of solar transit, in minutes after 00:00 UTC
// of the day whose 0h Julian Day is jd, at longitude lon (degrees east).
// The equation of time is first evaluated at local mean noon and then
// re-evaluated at the resulting transit.
func SolarNoonUTC(jd, lon float64) float64 {
	meanNoon := 720.0 - minutesPerDegree*lon

	eqTime := EquationOfTime(JulianCentury(jd + meanNoon/minutesPerDay))
	noon := meanNoon - eqTime

	eqTime = EquationOfTime(JulianCentury(jd + noon/minutesPerDay))
	return meanNoon - eqTime
}

// SunriseUTC returns the time the Sun's centre rises through depression,
// in minutes after 00:00 UTC of the day whose 0h Julian Day is jd. Values
// outside [0, 1440) belong to the adjacent UTC day.
func SunriseUTC(jd, lat, lon, depression float64) (float64, Condition) {
	return eventUTC(jd, lat, lon, depression, 1)
}

// SunsetUTC is the setting counterpart of SunriseUTC.
func SunsetUTC(jd, lat, lon, depression float64) (float64, Condition) {
	return eventUTC(jd, lat, lon, depression, -1)
}

// eventUTC refines a rise (sign +1) or set (sign -1) in two passes: the
// first evaluates the Sun at solar noon, the second at the first estimate.
func eventUTC(jd, lat, lon, depression, sign float64) (float64, Condition) {
	noon := SolarNoonUTC(jd, lon)

	minutes, cond := eventPass(JulianCentury(jd+noon/minutesPerDay), lat, lon, depression, sign)
	if cond != Normal {
		return math.NaN(), cond
	}

	return eventPass(JulianCentury(jd+minutes/minutesPerDay), lat, lon, depression, sign)
}

func eventPass(t, lat, lon, depression, sign float64) (float64, Condition) {
	eqTime := EquationOfTime(t)
	dec := SunDeclination(t)

	ha, cond := HourAngle(lat, dec, depression)
	if cond != Normal {
		return math.NaN(), cond
	}

	// Hour angles grow westward: a rise takes +ha, a set -ha.
	delta := lon + sign*ha
	return 720.0 - minutesPerDegree*delta - eqTime, Normal
}
