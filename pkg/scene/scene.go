package scene

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
	"github.com/lumen-render/lumen/pkg/material"
)

// Primitive pairs a world-space shape with its material.
type Primitive struct {
	Shape    geometry.Shape
	Material material.Material
}

// Scene is an immutable list of primitives plus the environment that
// lights them. Safe for concurrent reads once built.
type Scene struct {
	Primitives  []Primitive
	Environment *Environment
}

// Environment is a vertical-gradient sky with a luminance distribution
// for importance sampling.
type Environment struct {
	Horizon core.Color
	Zenith  core.Color

	distribution *Distribution
}

// Distribution importance-samples the environment by luminance over a
// latitude-longitude grid.
type Distribution struct {
	dist2D *core.Distribution2D
	width  int
	height int
}

// NewEnvironment builds a gradient environment and its sampling
// distribution at the given grid resolution.
func NewEnvironment(horizon, zenith core.Color, width, height int) *Environment {
	env := &Environment{Horizon: horizon, Zenith: zenith}

	f := make([]float64, width*height)
	for y := 0; y < height; y++ {
		// Latitude band center; sinTheta weights the solid angle each
		// grid row covers.
		theta := math.Pi * (float64(y) + 0.5) / float64(height)
		sinTheta := math.Sin(theta)
		for x := 0; x < width; x++ {
			u := (float64(x) + 0.5) / float64(width)
			v := (float64(y) + 0.5) / float64(height)
			f[y*width+x] = env.lookupUV(u, v).Luminance() * sinTheta
		}
	}

	env.distribution = &Distribution{
		dist2D: core.NewDistribution2D(f, width, height),
		width:  width,
		height: height,
	}
	return env
}

// Radiance returns the environment radiance in the given world direction.
func (e *Environment) Radiance(dir core.Vec3) core.Color {
	d := dir.Normalize()
	// Blend from horizon to zenith with elevation.
	t := 0.5 * (d.Z + 1)
	return e.Horizon.Lerp(e.Zenith, t)
}

// lookupUV maps lat-long coordinates to radiance; v=0 is the zenith row.
func (e *Environment) lookupUV(u, v float64) core.Color {
	theta := v * math.Pi
	dir := core.NewVec3(math.Sin(theta), 0, math.Cos(theta))
	return e.Radiance(dir)
}

// Sample draws a world direction from the luminance distribution.
// Returns the direction, its radiance, and the solid-angle PDF; ok is
// false for degenerate samples at the poles.
func (e *Environment) Sample(sample core.Vec2) (core.Vec3, core.Color, float64, bool) {
	uv, mapPDF := e.distribution.dist2D.SampleContinuous(sample)
	if mapPDF == 0 {
		return core.Vec3{}, core.Black, 0, false
	}

	theta := uv.Y * math.Pi
	phi := uv.X * 2 * math.Pi
	sinTheta := math.Sin(theta)
	if sinTheta == 0 {
		return core.Vec3{}, core.Black, 0, false
	}

	dir := core.SphericalDirection(sinTheta, math.Cos(theta), phi)
	// Change of measure from the unit square to solid angle.
	pdf := mapPDF / (2 * math.Pi * math.Pi * sinTheta)
	return dir, e.Radiance(dir), pdf, true
}

// PDF returns the solid-angle density Sample would assign to dir.
func (e *Environment) PDF(dir core.Vec3) float64 {
	d := dir.Normalize()
	theta := math.Acos(core.Clamp(d.Z, -1, 1))
	phi := math.Atan2(d.Y, d.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	sinTheta := math.Sin(theta)
	if sinTheta == 0 {
		return 0
	}
	uv := core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
	return e.distribution.dist2D.PDF(uv) / (2 * math.Pi * math.Pi * sinTheta)
}
