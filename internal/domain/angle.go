package domain

import (
	"math"

	"github.com/soniakeys/unit"
)

// unitTolerance is how far an inverse-trig argument may stray past ±1 from
// rounding alone before it is treated as genuinely out of range.
const unitTolerance = 1e-9

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return unit.AngleFromDeg(deg).Rad()
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 {
	return unit.Angle(rad).Deg()
}

// Normalize360 wraps an angle in degrees into [0, 360).
func Normalize360(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	return deg
}

// clampUnit limits x to [-1, 1] so that asin/acos never see a domain error.
func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
