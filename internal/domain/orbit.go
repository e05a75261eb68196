package domain

import "math"

// The functions in this file follow the NOAA solar calculator, itself a
// low precision reduction of Meeus, "Astronomical Algorithms" ch. 25 and 28.
// Every argument t is in Julian centuries since J2000.0 and every angle
// returned is in degrees.

// GeomMeanLongSun returns the geometric mean longitude of the Sun in [0, 360).
func GeomMeanLongSun(t float64) float64 {
	return Normalize360(280.46646 + t*(36000.76983+0.0003032*t))
}

// GeomMeanAnomalySun returns the geometric mean anomaly of the Sun.
func GeomMeanAnomalySun(t float64) float64 {
	return 357.52911 + t*(35999.05029-0.0001537*t)
}

// EccentricityEarthOrbit returns the (unitless) eccentricity of Earth's orbit.
func EccentricityEarthOrbit(t float64) float64 {
	return 0.016708634 - t*(0.000042037+0.0000001267*t)
}

// SunEqOfCenter returns the equation of center of the Sun.
func SunEqOfCenter(t float64) float64 {
	m := Deg2Rad(GeomMeanAnomalySun(t))

	return math.Sin(m)*(1.914602-t*(0.004817+0.000014*t)) +
		math.Sin(2*m)*(0.019993-0.000101*t) +
		math.Sin(3*m)*0.000289
}

// SunTrueLong returns the true longitude of the Sun.
func SunTrueLong(t float64) float64 {
	return GeomMeanLongSun(t) + SunEqOfCenter(t)
}

// SunApparentLong returns the apparent longitude of the Sun, corrected for
// nutation and aberration.
func SunApparentLong(t float64) float64 {
	return SunTrueLong(t) - 0.00569 - 0.00478*math.Sin(Deg2Rad(nodeLongitude(t)))
}

// MeanObliquityOfEcliptic returns the mean obliquity of the ecliptic.
func MeanObliquityOfEcliptic(t float64) float64 {
	seconds := 21.448 - t*(46.8150+t*(0.00059-t*0.001813))
	return 23.0 + (26.0+seconds/60.0)/60.0
}

// ObliquityCorrection returns the obliquity of the ecliptic corrected for
// nutation.
func ObliquityCorrection(t float64) float64 {
	return MeanObliquityOfEcliptic(t) + 0.00256*math.Cos(Deg2Rad(nodeLongitude(t)))
}

// SunDeclination returns the apparent declination of the Sun.
func SunDeclination(t float64) float64 {
	e := Deg2Rad(ObliquityCorrection(t))
	lambda := Deg2Rad(SunApparentLong(t))

	sint := math.Sin(e) * math.Sin(lambda)
	return Rad2Deg(math.Asin(clampUnit(sint)))
}

// EquationOfTime returns apparent minus mean solar time, in minutes.
func EquationOfTime(t float64) float64 {
	epsilon := Deg2Rad(ObliquityCorrection(t))
	l0 := Deg2Rad(GeomMeanLongSun(t))
	e := EccentricityEarthOrbit(t)
	m := Deg2Rad(GeomMeanAnomalySun(t))

	y := math.Tan(epsilon / 2.0)
	y *= y

	sin2l0 := math.Sin(2.0 * l0)
	sinm := math.Sin(m)
	cos2l0 := math.Cos(2.0 * l0)
	sin4l0 := math.Sin(4.0 * l0)
	sin2m := math.Sin(2.0 * m)

	etime := y*sin2l0 - 2.0*e*sinm + 4.0*e*y*sinm*cos2l0 -
		0.5*y*y*sin4l0 - 1.25*e*e*sin2m

	// Radians of hour angle to minutes of time.
	return Rad2Deg(etime) * minutesPerDegree
}

// nodeLongitude is the longitude of the Moon's ascending node, the argument
// shared by the nutation terms of the apparent longitude and the obliquity.
func nodeLongitude(t float64) float64 {
	return 125.04 - 1934.136*t
}
