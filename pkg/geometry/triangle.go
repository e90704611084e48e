package geometry

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// triangleDetEpsilon rejects rays nearly parallel to the triangle plane.
// The threshold matches the original renderer's behavior.
const triangleDetEpsilon = 1e-4

// Triangle is a single triangle given by its three vertices.
type Triangle struct {
	V0, V1, V2 core.Vec3
}

// NewTriangle creates a new triangle
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	return &Triangle{V0: v0, V1: v1, V2: v2}
}

// Hit tests if a ray intersects the triangle using the Möller-Trumbore
// algorithm. The barycentric coordinates of the hit are stored in U and V.
func (tr *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	edge1 := tr.V1.Subtract(tr.V0)
	edge2 := tr.V2.Subtract(tr.V0)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)
	if math.Abs(det) < triangleDetEpsilon {
		// Ray parallel to the triangle plane, or degenerate triangle
		return nil, false
	}

	invDet := 1 / det
	s := ray.Origin.Subtract(tr.V0)
	u := s.Dot(h) * invDet
	if u < 0 || u > 1 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := ray.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return nil, false
	}

	t := edge2.Dot(q) * invDet
	if !inOpenInterval(t, tMin, tMax) {
		return nil, false
	}

	hit := &HitRecord{
		T:     t,
		Point: ray.At(t),
		U:     u,
		V:     v,
	}
	hit.SetFaceNormal(ray, edge1.Cross(edge2).Normalize())
	return hit, true
}
