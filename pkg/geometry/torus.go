package geometry

import (
	"fmt"
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// Torus is a ring torus around the local z axis: MajorRadius is the distance
// from the axis to the center of the tube, MinorRadius the tube radius.
type Torus struct {
	MajorRadius float64
	MinorRadius float64
}

// NewTorus creates a new torus
func NewTorus(majorRadius, minorRadius float64) (*Torus, error) {
	if majorRadius <= 0 {
		return nil, fmt.Errorf("torus major radius must be positive, got %f", majorRadius)
	}
	if minorRadius <= 0 {
		return nil, fmt.Errorf("torus minor radius must be positive, got %f", minorRadius)
	}
	if minorRadius >= majorRadius {
		return nil, fmt.Errorf("torus minor radius %f must be smaller than major radius %f", minorRadius, majorRadius)
	}
	return &Torus{MajorRadius: majorRadius, MinorRadius: minorRadius}, nil
}

// Hit tests if a ray intersects with the torus. The implicit equation
// (|p|² + R² - r²)² = 4R²(x² + y²) expands to a quartic in t.
func (tr *Torus) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	o := ray.Origin
	d := ray.Direction
	r2 := tr.MajorRadius * tr.MajorRadius

	m := d.Dot(d)
	n := o.Dot(d)
	k := o.Dot(o) + r2 - tr.MinorRadius*tr.MinorRadius

	a := m * m
	b := 4 * m * n
	c := 2*m*k + 4*n*n - 4*r2*(d.X*d.X+d.Y*d.Y)
	e := 4*n*k - 8*r2*(o.X*d.X+o.Y*d.Y)
	f := k*k - 4*r2*(o.X*o.X+o.Y*o.Y)

	roots := core.SolveQuartic(a, b, c, e, f)
	if len(roots) == 0 {
		return nil, false
	}

	// Roots come back ascending; take the first one inside the interval.
	t := math.Inf(1)
	found := false
	for _, root := range roots {
		if inOpenInterval(root, tMin, tMax) {
			t = root
			found = true
			break
		}
	}
	if !found {
		return nil, false
	}

	point := ray.At(t)
	hit := &HitRecord{
		T:     t,
		Point: point,
		U:     sweepAngle(point) / (2 * math.Pi),
	}

	// Angle around the tube cross-section, measured from the outer equator.
	ringDist := math.Sqrt(point.X*point.X + point.Y*point.Y)
	theta := math.Atan2(point.Z, ringDist-tr.MajorRadius)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	hit.V = theta / (2 * math.Pi)

	// Gradient of the implicit surface, with the common factor dropped.
	g := point.Dot(point) + r2 - tr.MinorRadius*tr.MinorRadius
	normal := core.NewVec3(
		point.X*(g-2*r2),
		point.Y*(g-2*r2),
		point.Z*g,
	).Normalize()
	hit.SetFaceNormal(ray, normal)
	return hit, true
}
