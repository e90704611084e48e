package geometry

import (
	"fmt"
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// Cylinder is an open-ended cylinder around the local z axis between ZMin
// and ZMax, optionally clipped to a sweep angle.
type Cylinder struct {
	Radius float64
	ZMin   float64
	ZMax   float64
	PhiMax float64
}

// NewCylinder creates a new cylinder
func NewCylinder(radius, zMin, zMax float64) (*Cylinder, error) {
	return NewPartialCylinder(radius, zMin, zMax, 2*math.Pi)
}

// NewPartialCylinder creates a cylinder clipped to a sweep angle in radians.
func NewPartialCylinder(radius, zMin, zMax, phiMax float64) (*Cylinder, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("cylinder radius must be positive, got %f", radius)
	}
	if zMin >= zMax {
		return nil, fmt.Errorf("cylinder z range is empty: [%f, %f]", zMin, zMax)
	}
	return &Cylinder{
		Radius: radius,
		ZMin:   zMin,
		ZMax:   zMax,
		PhiMax: core.Clamp(phiMax, 0, 2*math.Pi),
	}, nil
}

// Hit tests if a ray intersects with the cylinder body
func (c *Cylinder) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	o := ray.Origin
	d := ray.Direction

	// Quadratic in the xy projection: the z component does not affect the
	// radial distance.
	a := d.X*d.X + d.Y*d.Y
	b := 2 * (o.X*d.X + o.Y*d.Y)
	cc := o.X*o.X + o.Y*o.Y - c.Radius*c.Radius

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
		V:     (point.Z - c.ZMin) / (c.ZMax - c.ZMin),
	}
	hit.SetFaceNormal(ray, core.NewVec3(point.X/c.Radius, point.Y/c.Radius, 0))
	return hit, true
}

func (c *Cylinder) validate(ray core.Ray, t, tMin, tMax float64) (float64, core.Vec3, bool) {
	if !inOpenInterval(t, tMin, tMax) {
		return 0, core.Vec3{}, false
	}
	point := ray.At(t)
	if point.Z < c.ZMin || point.Z > c.ZMax {
		return 0, core.Vec3{}, false
	}
	if sweepAngle(point) > c.PhiMax {
		return 0, core.Vec3{}, false
	}
	return t, point, true
}
