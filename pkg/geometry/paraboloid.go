package geometry

import (
	"fmt"
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// Paraboloid is the surface z = ZMax·(x² + y²)/Radius² around the local z
// axis, opening toward +z with its apex at the origin, clipped to
// [ZMin, ZMax] and optionally to a sweep angle.
type Paraboloid struct {
	Radius float64
	ZMin   float64
	ZMax   float64
	PhiMax float64

	k float64 // ZMax/Radius², cached curvature term
}

// NewParaboloid creates a new paraboloid
func NewParaboloid(radius, zMin, zMax float64) (*Paraboloid, error) {
	return NewPartialParaboloid(radius, zMin, zMax, 2*math.Pi)
}

// NewPartialParaboloid creates a paraboloid clipped to a sweep angle in
// radians.
func NewPartialParaboloid(radius, zMin, zMax, phiMax float64) (*Paraboloid, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("paraboloid radius must be positive, got %f", radius)
	}
	if zMax <= 0 {
		return nil, fmt.Errorf("paraboloid zMax must be positive, got %f", zMax)
	}
	if zMin < 0 || zMin >= zMax {
		return nil, fmt.Errorf("paraboloid z range [%f, %f] must satisfy 0 <= zMin < zMax", zMin, zMax)
	}
	return &Paraboloid{
		Radius: radius,
		ZMin:   zMin,
		ZMax:   zMax,
		PhiMax: core.Clamp(phiMax, 0, 2*math.Pi),
		k:      zMax / (radius * radius),
	}, nil
}

// Hit tests if a ray intersects with the paraboloid
func (p *Paraboloid) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	o := ray.Origin
	d := ray.Direction

	// Implicit equation k·(x² + y²) - z = 0.
	a := p.k * (d.X*d.X + d.Y*d.Y)
	b := 2*p.k*(o.X*d.X+o.Y*d.Y) - d.Z
	c := p.k*(o.X*o.X+o.Y*o.Y) - o.Z

	t0, t1, ok := core.SolveQuadratic(a, b, c)
	if !ok {
		return nil, false
	}

	t, point, valid := p.validate(ray, t0, tMin, tMax)
	if !valid {
		t, point, valid = p.validate(ray, t1, tMin, tMax)
		if !valid {
			return nil, false
		}
	}

	phi := sweepAngle(point)
	hit := &HitRecord{
		T:     t,
		Point: point,
		U:     phi / p.PhiMax,
		V:     (point.Z - p.ZMin) / (p.ZMax - p.ZMin),
	}

	// Gradient of the implicit surface: (2kx, 2ky, -1).
	normal := core.NewVec3(2*p.k*point.X, 2*p.k*point.Y, -1).Normalize()
	hit.SetFaceNormal(ray, normal)
	return hit, true
}

func (p *Paraboloid) validate(ray core.Ray, t, tMin, tMax float64) (float64, core.Vec3, bool) {
	if !inOpenInterval(t, tMin, tMax) {
		return 0, core.Vec3{}, false
	}
	point := ray.At(t)
	if point.Z < p.ZMin || point.Z > p.ZMax {
		return 0, core.Vec3{}, false
	}
	if sweepAngle(point) > p.PhiMax {
		return 0, core.Vec3{}, false
	}
	return t, point, true
}
