package geometry

import (
	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/material"
)

// HitRecord contains information about a ray-shape intersection
type HitRecord struct {
	Point     core.Vec3         // Point of intersection
	Normal    core.Vec3         // Surface normal at intersection
	T         float64           // Parameter t along the ray
	U, V      float64           // Surface parameterization at the hit
	FrontFace bool              // Whether ray hit the front face
	Material  material.Material // Material of the hit shape, set by the scene
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Shape is anything a ray can hit. Hit returns the closest intersection
// with tMin < t < tMax; the interval is open, so boundary hits are
// misses. The no-hit sentinel is (nil, false): callers must check the
// flag before touching the record.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool)
}

// inOpenInterval reports whether t is a valid hit parameter.
func inOpenInterval(t, tMin, tMax float64) bool {
	return t > tMin && t < tMax
}
