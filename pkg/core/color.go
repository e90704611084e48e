package core

import "math"

// Color represents an RGB radiance value. Channels are not restricted to
// [0,1] until final display quantization.
type Color struct {
	R, G, B float64
}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Black is the zero radiance color
var Black = Color{}

// White is unit radiance in all channels
var White = Color{R: 1, G: 1, B: 1}

// Fixed sRGB (D65) colorspace conversion matrix pair.
var (
	rgbToXYZ = Matrix3x3{
		{0.412453, 0.357580, 0.180423},
		{0.212671, 0.715160, 0.072169},
		{0.019334, 0.119193, 0.950227},
	}
	xyzToRGB = Matrix3x3{
		{3.240479, -1.537150, -0.498535},
		{-0.969256, 1.875991, 0.041556},
		{0.055648, -0.204043, 1.057311},
	}
)

// Add returns the sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns component-wise multiplication of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Lerp blends two colors by t
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: Lerp(c.R, other.R, t),
		G: Lerp(c.G, other.G, t),
		B: Lerp(c.B, other.B, t),
	}
}

// Clamp restricts all channels to [lo, hi]
func (c Color) Clamp(lo, hi float64) Color {
	return Color{Clamp(c.R, lo, hi), Clamp(c.G, lo, hi), Clamp(c.B, lo, hi)}
}

// Luminance returns the CIE Y component of the color
func (c Color) Luminance() float64 {
	return rgbToXYZ[1][0]*c.R + rgbToXYZ[1][1]*c.G + rgbToXYZ[1][2]*c.B
}

// IsBlack reports whether all channels are zero
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// IsFinite reports whether all channels are finite
func (c Color) IsFinite() bool {
	return IsFinite(c.R) && IsFinite(c.G) && IsFinite(c.B)
}

// ToXYZ converts the color to CIE XYZ
func (c Color) ToXYZ() (x, y, z float64) {
	v := rgbToXYZ.TransformVector(Vec3{c.R, c.G, c.B})
	return v.X, v.Y, v.Z
}

// ColorFromXYZ converts CIE XYZ components to RGB
func ColorFromXYZ(x, y, z float64) Color {
	v := xyzToRGB.TransformVector(Vec3{x, y, z})
	return Color{v.X, v.Y, v.Z}
}

// GammaEncode applies gamma encoding for display
func (c Color) GammaEncode(gamma float64) Color {
	inv := 1 / gamma
	return Color{
		R: math.Pow(math.Max(c.R, 0), inv),
		G: math.Pow(math.Max(c.G, 0), inv),
		B: math.Pow(math.Max(c.B, 0), inv),
	}
}

// GammaDecode inverts GammaEncode
func (c Color) GammaDecode(gamma float64) Color {
	return Color{
		R: math.Pow(math.Max(c.R, 0), gamma),
		G: math.Pow(math.Max(c.G, 0), gamma),
		B: math.Pow(math.Max(c.B, 0), gamma),
	}
}
