package material

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// Fresnel computes the fraction of light reflected at a boundary for a
// given incidence angle cosine.
type Fresnel interface {
	Evaluate(cosThetaI float64) core.Color
}

// FresnelDielectric models a dielectric boundary (e.g. air/glass).
type FresnelDielectric struct {
	EtaI, EtaT float64
}

// Evaluate computes the unpolarized dielectric Fresnel reflectance.
func (f FresnelDielectric) Evaluate(cosThetaI float64) core.Color {
	fr := frDielectric(cosThetaI, f.EtaI, f.EtaT)
	return core.NewColor(fr, fr, fr)
}

// FresnelConductor models a conductor with complex refraction index
// eta + i*k per channel.
type FresnelConductor struct {
	Eta core.Color
	K   core.Color
}

// Evaluate computes the approximate conductor Fresnel reflectance.
func (f FresnelConductor) Evaluate(cosThetaI float64) core.Color {
	cos := core.Clamp(math.Abs(cosThetaI), 0, 1)
	return core.NewColor(
		frConductor(cos, f.Eta.R, f.K.R),
		frConductor(cos, f.Eta.G, f.K.G),
		frConductor(cos, f.Eta.B, f.K.B),
	)
}

// FresnelNoOp reflects everything; used for idealized mirrors.
type FresnelNoOp struct{}

// Evaluate returns full reflectance regardless of angle.
func (FresnelNoOp) Evaluate(cosThetaI float64) core.Color {
	return core.White
}

// frDielectric is the exact unpolarized Fresnel reflectance for a
// dielectric boundary. A negative cosThetaI means the ray arrives from
// inside the medium, which swaps the indices.
func frDielectric(cosThetaI, etaI, etaT float64) float64 {
	cosThetaI = core.Clamp(cosThetaI, -1, 1)
	if cosThetaI < 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}

	sinThetaI := math.Sqrt(math.Max(0, 1-cosThetaI*cosThetaI))
	sinThetaT := etaI / etaT * sinThetaI
	if sinThetaT >= 1 {
		// Total internal reflection
		return 1
	}
	cosThetaT := math.Sqrt(math.Max(0, 1-sinThetaT*sinThetaT))

	rParl := (etaT*cosThetaI - etaI*cosThetaT) / (etaT*cosThetaI + etaI*cosThetaT)
	rPerp := (etaI*cosThetaI - etaT*cosThetaT) / (etaI*cosThetaI + etaT*cosThetaT)
	return (rParl*rParl + rPerp*rPerp) / 2
}

// frConductor is the single-channel conductor reflectance approximation.
func frConductor(cosThetaI, eta, k float64) float64 {
	cos2 := cosThetaI * cosThetaI
	two := 2 * eta * cosThetaI
	t0 := eta*eta + k*k
	rs := (t0 - two + cos2) / (t0 + two + cos2)
	t1 := t0 * cos2
	rp := (t1 - two + 1) / (t1 + two + 1)
	return (rs + rp) / 2
}

// SchlickFresnel is the Schlick approximation to the Fresnel reflectance
// given the reflectance at normal incidence.
func SchlickFresnel(r0 core.Color, cosTheta float64) core.Color {
	pow5 := func(x float64) float64 { return x * x * x * x * x }
	white := core.White
	return r0.Add(white.Add(r0.Multiply(-1)).Multiply(pow5(1 - core.Clamp(cosTheta, 0, 1))))
}
