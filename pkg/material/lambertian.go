package material

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// Lambertian is a perfectly diffuse reflector: constant reflectance
// divided by pi, independent of direction.
type Lambertian struct {
	Albedo core.Color
}

// NewLambertian creates a new diffuse material
func NewLambertian(albedo core.Color) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Evaluate returns albedo/pi when both directions are on the same side of
// the normal, zero otherwise.
func (l *Lambertian) Evaluate(wo, wi, normal core.Vec3) core.Color {
	if !SameHemisphere(wo, wi, normal) {
		return core.Black
	}
	return l.Albedo.Multiply(1 / math.Pi)
}

// Sample draws a cosine-weighted direction in the hemisphere around the
// normal on the viewer's side.
func (l *Lambertian) Sample(wo, normal core.Vec3, sample core.Vec2) (core.Vec3, float64, bool) {
	n := normal
	if wo.Dot(normal) < 0 {
		n = normal.Negate()
	}
	wi := core.SampleCosineHemisphere(n, sample)
	pdf := core.CosineHemispherePDF(wi.Dot(n))
	if pdf <= 0 {
		return core.Vec3{}, 0, false
	}
	return wi, pdf, true
}

// PDF returns the cosine-weighted hemisphere density for wi.
func (l *Lambertian) PDF(wo, wi, normal core.Vec3) float64 {
	if !SameHemisphere(wo, wi, normal) {
		return 0
	}
	return core.CosineHemispherePDF(math.Abs(wi.Dot(normal)))
}
