package material

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// AshikhminShirley couples a non-Lambertian diffuse base with a glossy
// microfacet coat. Rd is the diffuse reflectance, Rs the specular
// reflectance at normal incidence.
type AshikhminShirley struct {
	Rd, Rs       core.Color
	Distribution TrowbridgeReitz
}

// NewAshikhminShirley creates the coupled diffuse/glossy material from an
// authored roughness.
func NewAshikhminShirley(rd, rs core.Color, roughness float64) *AshikhminShirley {
	return &AshikhminShirley{
		Rd:           rd,
		Rs:           rs,
		Distribution: TrowbridgeReitz{Alpha: RoughnessToAlpha(roughness)},
	}
}

func pow5(x float64) float64 { return x * x * x * x * x }

// Evaluate computes the coupled diffuse term plus the microfacet specular
// term with Schlick Fresnel at the half-vector.
func (m *AshikhminShirley) Evaluate(wo, wi, normal core.Vec3) core.Color {
	if !SameHemisphere(wo, wi, normal) {
		return core.Black
	}
	frame := NewFrame(normal)
	woL := frame.ToLocal(wo)
	wiL := frame.ToLocal(wi)

	cosO := absCosTheta(woL)
	cosI := absCosTheta(wiL)
	if cosO == 0 || cosI == 0 {
		return core.Black
	}

	// Diffuse term, weighted so that energy lost to the coat at grazing
	// angles is excluded.
	diffuseScale := (28.0 / (23.0 * math.Pi)) *
		(1 - pow5(1-cosI/2)) *
		(1 - pow5(1-cosO/2))
	oneMinusRs := core.White.Add(m.Rs.Multiply(-1))
	diffuse := m.Rd.MultiplyColor(oneMinusRs).Multiply(diffuseScale)

	wh := woL.Add(wiL)
	if wh.LengthSquared() == 0 {
		return diffuse
	}
	wh = wh.Normalize()

	dotIH := wiL.Dot(wh)
	specScale := m.Distribution.D(wh) / (4 * math.Abs(dotIH) * math.Max(cosI, cosO))
	specular := SchlickFresnel(m.Rs, dotIH).Multiply(specScale)

	return diffuse.Add(specular)
}

// Sample chooses the diffuse or specular lobe with equal probability,
// then samples the chosen lobe.
func (m *AshikhminShirley) Sample(wo, normal core.Vec3, sample core.Vec2) (core.Vec3, float64, bool) {
	frame := NewFrame(normal)
	woL := frame.ToLocal(wo)
	if woL.Z == 0 {
		return core.Vec3{}, 0, false
	}
	side := normal
	if woL.Z < 0 {
		side = normal.Negate()
	}

	var wi core.Vec3
	if sample.X < 0.5 {
		// Reuse the lobe-choice sample for the lobe itself.
		sample.X = math.Min(2*sample.X, 0.99999999)
		wi = core.SampleCosineHemisphere(side, core.NewVec2(sample.X, sample.Y))
	} else {
		sample.X = math.Min(2*(sample.X-0.5), 0.99999999)
		wh := m.Distribution.SampleWH(core.NewVec2(sample.X, sample.Y))
		wiL := Reflect(frame.ToLocal(wo).Negate(), wh)
		wi = frame.ToWorld(wiL)
	}

	if !SameHemisphere(wo, wi, normal) {
		return core.Vec3{}, 0, false
	}
	pdf := m.PDF(wo, wi, normal)
	if pdf <= 0 {
		return core.Vec3{}, 0, false
	}
	return wi, pdf, true
}

// PDF averages the two lobes' densities with the discrete choice weights.
func (m *AshikhminShirley) PDF(wo, wi, normal core.Vec3) float64 {
	if !SameHemisphere(wo, wi, normal) {
		return 0
	}
	frame := NewFrame(normal)
	woL := frame.ToLocal(wo)
	wiL := frame.ToLocal(wi)

	diffusePDF := core.CosineHemispherePDF(absCosTheta(wiL))

	wh := woL.Add(wiL)
	var specPDF float64
	if wh.LengthSquared() > 0 {
		wh = wh.Normalize()
		if dotOH := math.Abs(woL.Dot(wh)); dotOH > 0 {
			specPDF = m.Distribution.PDF(wh) / (4 * dotOH)
		}
	}
	return 0.5*diffusePDF + 0.5*specPDF
}
