package geometry

import (
	"fmt"

	"github.com/lumen-render/lumen/pkg/core"
)

// Transformed places a local-space shape in the world via an object-to-world
// matrix. The inverse is computed once at construction.
type Transformed struct {
	Shape         Shape
	objectToWorld core.Matrix4x4
	worldToObject core.Matrix4x4
}

// NewTransformed wraps a shape with an object-to-world transform. Fails if
// the matrix is not invertible.
func NewTransformed(shape Shape, objectToWorld core.Matrix4x4) (*Transformed, error) {
	if shape == nil {
		return nil, fmt.Errorf("transformed shape must not be nil")
	}
	inverse, err := objectToWorld.Inverse()
	if err != nil {
		return nil, fmt.Errorf("transformed shape: %w", err)
	}
	return &Transformed{
		Shape:         shape,
		objectToWorld: objectToWorld,
		worldToObject: inverse,
	}, nil
}

// ObjectToWorld returns the placement matrix.
func (tr *Transformed) ObjectToWorld() core.Matrix4x4 {
	return tr.objectToWorld
}

// Hit transforms the ray into object space, intersects the wrapped shape,
// and maps the hit back to world space. The ray direction is deliberately
// not renormalized so that parameter values carry over unchanged.
func (tr *Transformed) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	localRay := tr.worldToObject.TransformRay(ray)

	hit, ok := tr.Shape.Hit(localRay, tMin, tMax)
	if !ok {
		return nil, false
	}

	hit.Point = tr.objectToWorld.TransformPoint(hit.Point)
	// Normals map through the inverse transpose to stay perpendicular
	// under non-uniform scale.
	hit.Normal = tr.worldToObject.TransformNormal(hit.Normal).Normalize()
	return hit, true
}
