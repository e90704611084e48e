package material

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// Material is a BSDF evaluated at a fixed surface point. Directions are
// world-space unit vectors pointing away from the surface; wo is the
// direction toward the viewer, wi the direction toward the light.
// Degenerate configurations (zero-length vectors, directions below the
// hemisphere) yield zero contribution, never a panic.
type Material interface {
	// Evaluate returns the reflectance for a pair of directions.
	Evaluate(wo, wi, normal core.Vec3) core.Color

	// Sample draws an outgoing direction from a canonical 2D sample
	// together with its solid-angle PDF. ok is false when the sampled
	// direction carries no contribution.
	Sample(wo, normal core.Vec3, sample core.Vec2) (wi core.Vec3, pdf float64, ok bool)

	// PDF returns the solid-angle probability density that Sample would
	// have produced wi for the given wo.
	PDF(wo, wi, normal core.Vec3) float64
}

// Reflect mirrors an incident direction v (pointing toward the surface)
// about the normal n: v - 2(v·n)n.
func Reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// SameHemisphere reports whether both directions lie on the same side of
// the surface normal.
func SameHemisphere(wo, wi, normal core.Vec3) bool {
	return wo.Dot(normal)*wi.Dot(normal) > 0
}

// Frame is an orthonormal shading basis with the normal as its z axis.
// Microfacet math is evaluated in this local frame.
type Frame struct {
	Tangent   core.Vec3
	Bitangent core.Vec3
	Normal    core.Vec3
}

// NewFrame builds a shading frame around a unit normal.
func NewFrame(normal core.Vec3) Frame {
	var nt core.Vec3
	if math.Abs(normal.X) > 0.1 {
		nt = core.NewVec3(0, 1, 0)
	} else {
		nt = core.NewVec3(1, 0, 0)
	}
	tangent := nt.Cross(normal).Normalize()
	return Frame{
		Tangent:   tangent,
		Bitangent: normal.Cross(tangent),
		Normal:    normal,
	}
}

// ToLocal expresses a world-space direction in the shading frame.
func (f Frame) ToLocal(v core.Vec3) core.Vec3 {
	return core.NewVec3(v.Dot(f.Tangent), v.Dot(f.Bitangent), v.Dot(f.Normal))
}

// ToWorld expresses a frame-local direction in world space.
func (f Frame) ToWorld(v core.Vec3) core.Vec3 {
	return f.Tangent.Multiply(v.X).
		Add(f.Bitangent.Multiply(v.Y)).
		Add(f.Normal.Multiply(v.Z))
}

// Local-frame trigonometry helpers. All assume unit vectors with the
// shading normal along +z.

func cosTheta(w core.Vec3) float64  { return w.Z }
func cos2Theta(w core.Vec3) float64 { return w.Z * w.Z }
func absCosTheta(w core.Vec3) float64 {
	return math.Abs(w.Z)
}
func sin2Theta(w core.Vec3) float64 {
	return math.Max(0, 1-cos2Theta(w))
}
func tan2Theta(w core.Vec3) float64 {
	return sin2Theta(w) / cos2Theta(w)
}
