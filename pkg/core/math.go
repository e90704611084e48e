package core

import "math"

// Epsilon is the default tolerance for geometric degeneracy checks.
const Epsilon = 1e-8

// Clamp restricts x to the range [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Saturate restricts x to the range [0, 1].
func Saturate(x float64) float64 {
	return Clamp(x, 0, 1)
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Radians converts an angle in degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Degrees converts an angle in radians to degrees.
func Degrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// AlmostEqual reports whether a and b differ by less than eps.
func AlmostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
