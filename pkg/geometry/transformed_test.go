package geometry

import (
	"math"
	"testing"

	"github.com/lumen-render/lumen/pkg/core"
)

func TestTransformed_Hit_Translated(t *testing.T) {
	sphere := NewSphere(1.0)
	transformed, err := NewTransformed(sphere, core.Translate(3, 0, 0))
	if err != nil {
		t.Fatalf("NewTransformed failed: %v", err)
	}

	ray := core.NewRay(core.NewVec3(3, 0, 5), core.NewVec3(0, 0, -1))
	hit, isHit := transformed.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-4.0) > 1e-9 {
		t.Errorf("Expected t=4.0, got t=%f", hit.T)
	}

	expectedPoint := core.NewVec3(3, 0, 1)
	if hit.Point.Subtract(expectedPoint).Length() > 1e-9 {
		t.Errorf("Expected world hit point %v, got %v", expectedPoint, hit.Point)
	}
}

func TestTransformed_Hit_ScaledKeepsWorldParameter(t *testing.T) {
	sphere := NewSphere(1.0)
	transformed, err := NewTransformed(sphere, core.Scale(2, 2, 2))
	if err != nil {
		t.Fatalf("NewTransformed failed: %v", err)
	}

	// The scaled sphere has radius 2, so the surface sits at z=2. The
	// unnormalized local ray keeps t in world units.
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	hit, isHit := transformed.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected t=3.0, got t=%f", hit.T)
	}
}

func TestTransformed_Hit_NonUniformScaleNormal(t *testing.T) {
	sphere := NewSphere(1.0)
	transformed, err := NewTransformed(sphere, core.Scale(2, 1, 1))
	if err != nil {
		t.Fatalf("NewTransformed failed: %v", err)
	}

	// Hit the squashed sphere off axis; the world normal must stay unit
	// length and perpendicular to the ellipsoid, which a plain rotation of
	// the local normal would not give.
	ray := core.NewRay(core.NewVec3(5, 0.5, 0), core.NewVec3(-1, 0, 0))
	hit, isHit := transformed.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.Normal.Length()-1.0) > 1e-9 {
		t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
	}

	// Implicit ellipsoid (x/2)² + y² + z² = 1 has gradient (x/2, 2y, 2z).
	p := hit.Point
	expected := core.NewVec3(p.X/2, 2*p.Y, 2*p.Z).Normalize()
	if hit.Normal.Subtract(expected).Length() > 1e-6 {
		t.Errorf("Expected normal %v, got %v", expected, hit.Normal)
	}
}

func TestTransformed_Hit_RotatedCylinder(t *testing.T) {
	cylinder, err := NewCylinder(1.0, -1.0, 1.0)
	if err != nil {
		t.Fatalf("NewCylinder failed: %v", err)
	}
	// Rotate the local z axis onto the world y axis.
	transformed, err := NewTransformed(cylinder, core.RotateX(-math.Pi/2))
	if err != nil {
		t.Fatalf("NewTransformed failed: %v", err)
	}

	// A world ray along -y now runs down the cylinder axis and misses the
	// open-ended side surface.
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
	if hit, isHit := transformed.Hit(ray, 0.001, 1000.0); isHit {
		t.Errorf("Expected axial miss, got hit at t=%f", hit.T)
	}

	// A ray along -x hits the rotated side surface at world x=1.
	ray = core.NewRay(core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0))
	hit, isHit := transformed.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected side hit, but got miss")
	}
	if math.Abs(hit.T-4.0) > 1e-9 {
		t.Errorf("Expected t=4.0, got t=%f", hit.T)
	}
}

func TestNewTransformed_SingularMatrix(t *testing.T) {
	sphere := NewSphere(1.0)
	if _, err := NewTransformed(sphere, core.Scale(1, 1, 0)); err == nil {
		t.Error("Expected error for a singular transform")
	}

	if _, err := NewTransformed(nil, core.Identity()); err == nil {
		t.Error("Expected error for a nil shape")
	}
}
