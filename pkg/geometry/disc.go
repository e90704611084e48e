package geometry

import (
	"fmt"
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// Disc is an annulus in the z = Height plane, centered on the z axis,
// optionally clipped to a sweep angle.
type Disc struct {
	Height      float64
	InnerRadius float64
	OuterRadius float64
	PhiMax      float64
}

// NewDisc creates a full disc of the given radius at height z
func NewDisc(height, radius float64) *Disc {
	return &Disc{Height: height, OuterRadius: radius, PhiMax: 2 * math.Pi}
}

// NewAnnulus creates a disc with an inner hole and a sweep angle in radians.
func NewAnnulus(height, innerRadius, outerRadius, phiMax float64) (*Disc, error) {
	if outerRadius <= 0 {
		return nil, fmt.Errorf("disc outer radius must be positive, got %f", outerRadius)
	}
	if innerRadius < 0 || innerRadius >= outerRadius {
		return nil, fmt.Errorf("disc inner radius %f must be in [0, %f)", innerRadius, outerRadius)
	}
	return &Disc{
		Height:      height,
		InnerRadius: innerRadius,
		OuterRadius: outerRadius,
		PhiMax:      core.Clamp(phiMax, 0, 2*math.Pi),
	}, nil
}

// Hit tests if a ray intersects with the disc
func (d *Disc) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	if math.Abs(ray.Direction.Z) < core.Epsilon {
		// Parallel to the disc plane
		return nil, false
	}

	t := (d.Height - ray.Origin.Z) / ray.Direction.Z
	if !inOpenInterval(t, tMin, tMax) {
		return nil, false
	}

	point := ray.At(t)
	distSq := point.X*point.X + point.Y*point.Y
	if distSq > d.OuterRadius*d.OuterRadius || distSq < d.InnerRadius*d.InnerRadius {
		return nil, false
	}

	phi := sweepAngle(point)
	if phi > d.PhiMax {
		return nil, false
	}

	rHit := math.Sqrt(distSq)
	var v float64
	if d.OuterRadius > d.InnerRadius {
		v = (d.OuterRadius - rHit) / (d.OuterRadius - d.InnerRadius)
	}

	hit := &HitRecord{
		T:     t,
		Point: point,
		U:     phi / d.PhiMax,
		V:     v,
	}
	hit.SetFaceNormal(ray, core.NewVec3(0, 0, 1))
	return hit, true
}
