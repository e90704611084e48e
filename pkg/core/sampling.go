package core

import (
	"math"
	"math/rand"
)

// Sampler provides canonical random samples for rendering algorithms.
// Can be swapped out for deterministic testing or different sampling patterns.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator. Each worker owns
// its own seeded generator; samplers are not safe for concurrent use.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler with its own generator seeded from seed
func NewRandomSampler(seed int64) *RandomSampler {
	return &RandomSampler{random: rand.New(rand.NewSource(seed))}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// SampleCosineHemisphere generates a cosine-weighted direction in the
// hemisphere around normal. The normal must be unit length.
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	a := 2 * math.Pi * sample.X
	z := sample.Y
	r := math.Sqrt(z)

	x := r * math.Cos(a)
	y := r * math.Sin(a)
	zCoord := math.Sqrt(1 - z)

	// Build an orthonormal basis around the normal
	var nt Vec3
	if math.Abs(normal.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}
	tangent := nt.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)

	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(zCoord))
}

// CosineHemispherePDF returns the solid-angle PDF of SampleCosineHemisphere
// for a direction making angle cosTheta with the normal.
func CosineHemispherePDF(cosTheta float64) float64 {
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}

// SampleUniformSphere generates a uniform random direction on the unit sphere
func SampleUniformSphere(sample Vec2) Vec3 {
	z := 1 - 2*sample.X
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// UniformSpherePDF is the solid-angle PDF of SampleUniformSphere.
func UniformSpherePDF() float64 {
	return 1 / (4 * math.Pi)
}

// SampleConcentricDisk maps a [0,1)² sample uniformly onto the unit disk
// using concentric mapping, avoiding rejection sampling.
func SampleConcentricDisk(sample Vec2) Vec2 {
	uOffset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if uOffset.X == 0 && uOffset.Y == 0 {
		return Vec2{}
	}

	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}
	return NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}

// SphericalDirection converts spherical coordinates to a direction with
// the zenith along +z.
func SphericalDirection(sinTheta, cosTheta, phi float64) Vec3 {
	return NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
}
