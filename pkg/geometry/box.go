package geometry

import (
	"fmt"
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// Box is an axis-aligned rectangular cuboid between two corner points.
type Box struct {
	Min, Max core.Vec3
}

// NewBox creates a box, validating that the corners span a volume.
func NewBox(min, max core.Vec3) (*Box, error) {
	if min.X >= max.X || min.Y >= max.Y || min.Z >= max.Z {
		return nil, fmt.Errorf("box corners do not span a volume: min %v, max %v", min, max)
	}
	return &Box{Min: min, Max: max}, nil
}

// Hit tests if a ray intersects with the box using the slab method. The
// reciprocal direction handles negative components without branching on
// direction signs: a swapped entry/exit pair is fixed by the swap below,
// and infinities from zero components resolve the parallel cases.
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	entryAxis := -1
	exitAxis := -1

	bounds := [2]core.Vec3{b.Min, b.Max}
	origin := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	dir := [3]float64{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}
	lo := [3]float64{bounds[0].X, bounds[0].Y, bounds[0].Z}
	hi := [3]float64{bounds[1].X, bounds[1].Y, bounds[1].Z}

	for axis := 0; axis < 3; axis++ {
		invD := 1 / dir[axis]
		t0 := (lo[axis] - origin[axis]) * invD
		t1 := (hi[axis] - origin[axis]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tNear {
			tNear = t0
			entryAxis = axis
		}
		if t1 < tFar {
			tFar = t1
			exitAxis = axis
		}
		if tNear > tFar {
			return nil, false
		}
	}

	// Prefer the entry point; fall back to the exit point when the ray
	// starts inside the box.
	t := tNear
	faceAxis := entryAxis
	if !inOpenInterval(t, tMin, tMax) {
		t = tFar
		faceAxis = exitAxis
		if !inOpenInterval(t, tMin, tMax) {
			return nil, false
		}
	}

	point := ray.At(t)
	hit := &HitRecord{
		T:     t,
		Point: point,
	}
	hit.SetFaceNormal(ray, b.normalAt(point, faceAxis))
	return hit, true
}

// normalAt returns the outward normal of the face containing the point.
func (b *Box) normalAt(p core.Vec3, faceAxis int) core.Vec3 {
	center := b.Min.Add(b.Max).Multiply(0.5)
	half := b.Max.Subtract(b.Min).Multiply(0.5)
	rel := p.Subtract(center)

	switch faceAxis {
	case 0:
		return core.NewVec3(math.Copysign(1, rel.X), 0, 0)
	case 1:
		return core.NewVec3(0, math.Copysign(1, rel.Y), 0)
	case 2:
		return core.NewVec3(0, 0, math.Copysign(1, rel.Z))
	}

	// No slab constrained the interval: choose the axis with the largest
	// relative offset.
	rx := math.Abs(rel.X) / half.X
	ry := math.Abs(rel.Y) / half.Y
	rz := math.Abs(rel.Z) / half.Z
	switch {
	case rx >= ry && rx >= rz:
		return core.NewVec3(math.Copysign(1, rel.X), 0, 0)
	case ry >= rz:
		return core.NewVec3(0, math.Copysign(1, rel.Y), 0)
	default:
		return core.NewVec3(0, 0, math.Copysign(1, rel.Z))
	}
}
