package material

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// TrowbridgeReitz is the GGX microfacet distribution. All methods operate
// in the local shading frame with the normal along +z.
type TrowbridgeReitz struct {
	Alpha float64
}

// RoughnessToAlpha remaps an authored roughness in [0,1] to the
// distribution width. The squaring is an authoring convenience, not a
// physical requirement.
func RoughnessToAlpha(roughness float64) float64 {
	roughness = math.Max(roughness, 1e-3)
	return roughness * roughness
}

// D returns the differential area of microfacets oriented along wh.
func (d TrowbridgeReitz) D(wh core.Vec3) float64 {
	t2 := tan2Theta(wh)
	if math.IsInf(t2, 0) {
		return 0
	}
	a2 := d.Alpha * d.Alpha
	cos4 := cos2Theta(wh) * cos2Theta(wh)
	e := t2 / a2
	return 1 / (math.Pi * a2 * cos4 * (1 + e) * (1 + e))
}

// Lambda is the masking auxiliary function for the Smith shadowing term.
func (d TrowbridgeReitz) Lambda(w core.Vec3) float64 {
	t2 := tan2Theta(w)
	if math.IsInf(t2, 0) {
		return 0
	}
	a2 := d.Alpha * d.Alpha
	return (math.Sqrt(1+a2*t2) - 1) / 2
}

// G1 is the masking term for a single direction.
func (d TrowbridgeReitz) G1(w core.Vec3) float64 {
	return 1 / (1 + d.Lambda(w))
}

// G is the joint shadowing-masking term for a direction pair.
func (d TrowbridgeReitz) G(wo, wi core.Vec3) float64 {
	return 1 / (1 + d.Lambda(wo) + d.Lambda(wi))
}

// SampleWH samples a half-vector proportional to D*cosTheta.
func (d TrowbridgeReitz) SampleWH(sample core.Vec2) core.Vec3 {
	a2 := d.Alpha * d.Alpha
	cosTheta := math.Sqrt((1 - sample.X) / (1 + (a2-1)*sample.X))
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * sample.Y
	return core.SphericalDirection(sinTheta, cosTheta, phi)
}

// PDF returns the half-vector density of SampleWH.
func (d TrowbridgeReitz) PDF(wh core.Vec3) float64 {
	return d.D(wh) * absCosTheta(wh)
}

// TorranceSparrow is a microfacet BRDF: distribution at the half-vector
// times Fresnel times shadowing-masking, over the standard denominator.
type TorranceSparrow struct {
	Reflectance  core.Color
	Distribution TrowbridgeReitz
	Fresnel      Fresnel
}

// NewTorranceSparrow creates a glossy microfacet material from an
// authored roughness.
func NewTorranceSparrow(reflectance core.Color, roughness float64, fresnel Fresnel) *TorranceSparrow {
	return &TorranceSparrow{
		Reflectance:  reflectance,
		Distribution: TrowbridgeReitz{Alpha: RoughnessToAlpha(roughness)},
		Fresnel:      fresnel,
	}
}

// Evaluate computes D*G*F / (4 cosThetaO cosThetaI).
func (m *TorranceSparrow) Evaluate(wo, wi, normal core.Vec3) core.Color {
	if !SameHemisphere(wo, wi, normal) {
		return core.Black
	}
	frame := NewFrame(normal)
	woL := frame.ToLocal(wo)
	wiL := frame.ToLocal(wi)

	cosO := absCosTheta(woL)
	cosI := absCosTheta(wiL)
	wh := woL.Add(wiL)
	if cosO == 0 || cosI == 0 || wh.LengthSquared() == 0 {
		return core.Black
	}
	wh = wh.Normalize()
	if wh.Z < 0 {
		wh = wh.Negate()
	}

	f := m.Fresnel.Evaluate(wiL.Dot(wh))
	scale := m.Distribution.D(wh) * m.Distribution.G(woL, wiL) / (4 * cosO * cosI)
	return m.Reflectance.MultiplyColor(f).Multiply(scale)
}

// Sample draws a half-vector from the distribution and reflects wo about
// it, converting the half-vector density to a solid-angle density.
func (m *TorranceSparrow) Sample(wo, normal core.Vec3, sample core.Vec2) (core.Vec3, float64, bool) {
	frame := NewFrame(normal)
	woL := frame.ToLocal(wo)
	if woL.Z == 0 {
		return core.Vec3{}, 0, false
	}
	if woL.Z < 0 {
		// Shade from the other side by flipping into the upper hemisphere.
		woL = woL.Negate()
		frame.Normal = frame.Normal.Negate()
		frame.Bitangent = frame.Bitangent.Negate()
	}

	wh := m.Distribution.SampleWH(sample)
	wiL := Reflect(woL.Negate(), wh)
	if wiL.Z <= 0 {
		return core.Vec3{}, 0, false
	}

	dotOH := woL.Dot(wh)
	if dotOH <= 0 {
		return core.Vec3{}, 0, false
	}
	pdf := m.Distribution.PDF(wh) / (4 * dotOH)
	if pdf <= 0 {
		return core.Vec3{}, 0, false
	}
	return frame.ToWorld(wiL), pdf, true
}

// PDF converts the half-vector density to the solid-angle density of the
// reflected direction.
func (m *TorranceSparrow) PDF(wo, wi, normal core.Vec3) float64 {
	if !SameHemisphere(wo, wi, normal) {
		return 0
	}
	frame := NewFrame(normal)
	woL := frame.ToLocal(wo)
	wiL := frame.ToLocal(wi)
	wh := woL.Add(wiL)
	if wh.LengthSquared() == 0 {
		return 0
	}
	wh = wh.Normalize()
	if wh.Z < 0 {
		wh = wh.Negate()
	}
	dotOH := math.Abs(woL.Dot(wh))
	if dotOH == 0 {
		return 0
	}
	return m.Distribution.PDF(wh) / (4 * dotOH)
}
