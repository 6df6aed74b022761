package geometry

import (
	"math"
)

// Azimuth returns the direction from a to b in degrees, measured
// counter-clockwise from the positive x axis, normalized into [0, 360).
func Azimuth(a, b Point) float64 {
	deg := math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// Orientation returns the axial orientation of the line through a and b in
// degrees, normalized into [0, 180).
func Orientation(a, b Point) float64 {
	return NormalizeAxial(Azimuth(a, b))
}

// NormalizeAxial folds any angle in degrees into the axial range [0, 180).
func NormalizeAxial(deg float64) float64 {
	deg = math.Mod(deg, 180)
	if deg < 0 {
		deg += 180
	}
	// Mod can return 180 - epsilon rounding back up to 180 exactly.
	if deg >= 180 {
		deg -= 180
	}
	return deg
}

// AxialDifference returns the smallest angle between two axial orientations,
// in degrees. The result is in [0, 90].
func AxialDifference(a, b float64) float64 {
	d := math.Abs(NormalizeAxial(a) - NormalizeAxial(b))
	if d > 90 {
		d = 180 - d
	}
	return d
}
