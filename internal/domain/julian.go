package domain

import (
	"time"

	"github.com/mooncaker816/learnmeeus/v3/julian"
)

const (
	// J2000 is the Julian Day of the J2000.0 epoch (2000-01-01 12:00 TT).
	J2000 = 2451545.0

	// DaysPerJulianCentury is the length of a Julian century in days.
	DaysPerJulianCentury = 36525.0
)

// JulianDay returns the Julian Day at 0h UTC of the given proleptic
// Gregorian date. The result always ends in .5.
func JulianDay(year int, month time.Month, day int) float64 {
	return julian.CalendarGregorianToJD(year, int(month), float64(day))
}

// JulianCentury converts a Julian Day to Julian centuries since J2000.0.
func JulianCentury(jd float64) float64 {
	return (jd - J2000) / DaysPerJulianCentury
}

// JDFromJulianCentury converts Julian centuries since J2000.0 back to a
// Julian Day.
func JDFromJulianCentury(t float64) float64 {
	return t*DaysPerJulianCentury + J2000
}
