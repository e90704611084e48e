package geometry

import (
	"fmt"
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// Sphere is a sphere of the given radius centered at the local-space
// origin, optionally clipped to a z range and a sweep angle around the z
// axis. World placement is applied externally via Transformed.
type Sphere struct {
	Radius float64
	ZMin   float64
	ZMax   float64
	PhiMax float64
}

// NewSphere creates a full sphere
func NewSphere(radius float64) *Sphere {
	return &Sphere{
		Radius: radius,
		ZMin:   -radius,
		ZMax:   radius,
		PhiMax: 2 * math.Pi,
	}
}

// NewPartialSphere creates a sphere clipped to [zMin, zMax] and the sweep
// angle phiMax in radians.
func NewPartialSphere(radius, zMin, zMax, phiMax float64) (*Sphere, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sphere radius must be positive, got %f", radius)
	}
	if zMin >= zMax {
		return nil, fmt.Errorf("sphere z range is empty: [%f, %f]", zMin, zMax)
	}
	return &Sphere{
		Radius: radius,
		ZMin:   math.Max(zMin, -radius),
		ZMax:   math.Min(zMax, radius),
		PhiMax: core.Clamp(phiMax, 0, 2*math.Pi),
	}, nil
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	o := ray.Origin
	d := ray.Direction

	a := d.Dot(d)
	b := 2 * o.Dot(d)
	c := o.Dot(o) - s.Radius*s.Radius

	t0, t1, ok := core.SolveQuadratic(a, b, c)
	if !ok {
		return nil, false
	}

	// Prefer the closer root, falling back to the farther one when the
	// closer fails interval or clipping validation.
	t, point, valid := s.validate(ray, t0, tMin, tMax)
	if !valid {
		t, point, valid = s.validate(ray, t1, tMin, tMax)
		if !valid {
			return nil, false
		}
	}

	phi := sweepAngle(point)
	theta := math.Acos(core.Clamp(point.Z/s.Radius, -1, 1))

	hit := &HitRecord{
		T:     t,
		Point: point,
		U:     phi / s.PhiMax,
		V:     1 - theta/math.Pi,
	}
	hit.SetFaceNormal(ray, point.Multiply(1/s.Radius))
	return hit, true
}

// validate applies the interval and clipping checks to a candidate root.
func (s *Sphere) validate(ray core.Ray, t, tMin, tMax float64) (float64, core.Vec3, bool) {
	if !inOpenInterval(t, tMin, tMax) {
		return 0, core.Vec3{}, false
	}
	point := ray.At(t)
	if point.Z < s.ZMin || point.Z > s.ZMax {
		return 0, core.Vec3{}, false
	}
	if sweepAngle(point) > s.PhiMax {
		return 0, core.Vec3{}, false
	}
	return t, point, true
}

// sweepAngle returns the azimuthal angle of a point in [0, 2*pi).
func sweepAngle(p core.Vec3) float64 {
	phi := math.Atan2(p.Y, p.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return phi
}
