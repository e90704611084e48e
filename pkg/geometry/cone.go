package geometry

import (
	"fmt"
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// Cone is a cone with its base circle of the given radius in the z=0
// plane and its apex on the z axis at z=Height, optionally clipped to a
// sweep angle.
type Cone struct {
	Radius float64
	Height float64
	PhiMax float64

	k float64 // (Radius/Height)², cached slope term
}

// NewCone creates a new cone
func NewCone(radius, height float64) (*Cone, error) {
	return NewPartialCone(radius, height, 2*math.Pi)
}

// NewPartialCone creates a cone clipped to a sweep angle in radians.
func NewPartialCone(radius, height, phiMax float64) (*Cone, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("cone radius must be positive, got %f", radius)
	}
	if height <= 0 {
		return nil, fmt.Errorf("cone height must be positive, got %f", height)
	}
	slope := radius / height
	return &Cone{
		Radius: radius,
		Height: height,
		PhiMax: core.Clamp(phiMax, 0, 2*math.Pi),
		k:      slope * slope,
	}, nil
}

// Hit tests if a ray intersects with the cone surface. The implicit
// equation x² + y² = k·(z - h)² also describes the shadow cone above the
// apex; the z-range check in validate rejects that nappe.
func (c *Cone) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	o := ray.Origin
	d := ray.Direction
	oz := o.Z - c.Height

	a := d.X*d.X + d.Y*d.Y - c.k*d.Z*d.Z
	b := 2 * (o.X*d.X + o.Y*d.Y - c.k*d.Z*oz)
	cc := o.X*o.X + o.Y*o.Y - c.k*oz*oz

	t0, t1, ok := core.SolveQuadratic(a, b, cc)
	if !ok {
		return nil, false
	}

	t, point, valid := c.validate(ray, t0, tMin, tMax)
	if !valid {
		t, point, valid = c.validate(ray, t1, tMin, tMax)
		if !valid {
			return nil, false
		}
	}

	phi := sweepAngle(point)
	hit := &HitRecord{
		T:     t,
		Point: point,
		U:     phi / c.PhiMax,
		V:     point.Z / c.Height,
	}

	// Implicit-surface gradient, halved: (x, y, -k·(z-h)).
	normal := core.NewVec3(point.X, point.Y, -c.k*(point.Z-c.Height)).Normalize()
	hit.SetFaceNormal(ray, normal)
	return hit, true
}

func (c *Cone) validate(ray core.Ray, t, tMin, tMax float64) (float64, core.Vec3, bool) {
	if !inOpenInterval(t, tMin, tMax) {
		return 0, core.Vec3{}, false
	}
	point := ray.At(t)
	if point.Z < 0 || point.Z > c.Height {
		return 0, core.Vec3{}, false
	}
	if sweepAngle(point) > c.PhiMax {
		return 0, core.Vec3{}, false
	}
	return t, point, true
}
