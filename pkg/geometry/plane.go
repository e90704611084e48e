package geometry

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// Plane is an infinite plane through a point with the given unit normal.
type Plane struct {
	Point  core.Vec3
	Normal core.Vec3
}

// NewPlane creates a plane; the normal is normalized here
func NewPlane(point, normal core.Vec3) *Plane {
	return &Plane{Point: point, Normal: normal.Normalize()}
}

// Hit tests if a ray intersects with the plane. A ray parallel to the
// plane (|denominator| below epsilon) is a miss.
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	denom := ray.Direction.Dot(p.Normal)
	if math.Abs(denom) < core.Epsilon {
		return nil, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denom
	if !inOpenInterval(t, tMin, tMax) {
		return nil, false
	}

	hit := &HitRecord{
		T:     t,
		Point: ray.At(t),
	}
	hit.SetFaceNormal(ray, p.Normal)
	return hit, true
}
