package geometry

import (
	"math"
	"testing"

	"github.com/lumen-render/lumen/pkg/core"
)

func TestCone_Hit_SideHit(t *testing.T) {
	// Base radius 1 at z=0, apex at z=2; radius at z=1 is 0.5.
	cone, err := NewCone(1.0, 2.0)
	if err != nil {
		t.Fatalf("NewCone failed: %v", err)
	}

	ray := core.NewRay(core.NewVec3(5, 0, 1), core.NewVec3(-1, 0, 0))
	hit, isHit := cone.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-4.5) > 1e-9 {
		t.Errorf("Expected t=4.5, got t=%f", hit.T)
	}

	expectedPoint := core.NewVec3(0.5, 0, 1)
	if hit.Point.Subtract(expectedPoint).Length() > 1e-9 {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}

	// Gradient (0.5, 0, 0.25) normalized.
	expectedNormal := core.NewVec3(2, 0, 1).Normalize()
	if hit.Normal.Subtract(expectedNormal).Length() > 1e-9 {
		t.Errorf("Expected normal %v, got %v", expectedNormal, hit.Normal)
	}

	if math.Abs(hit.V-0.5) > 1e-9 {
		t.Errorf("Expected V=0.5, got V=%f", hit.V)
	}
}

func TestCone_Hit_ShadowNappeRejected(t *testing.T) {
	cone, err := NewCone(1.0, 2.0)
	if err != nil {
		t.Fatalf("NewCone failed: %v", err)
	}

	// The mirror cone above the apex satisfies the implicit equation but
	// lies outside the z range.
	ray := core.NewRay(core.NewVec3(5, 0, 3), core.NewVec3(-1, 0, 0))
	hit, isHit := cone.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss on the shadow nappe, got hit at t=%f", hit.T)
	}
}

func TestCone_Hit_BelowBaseRejected(t *testing.T) {
	cone, err := NewCone(1.0, 2.0)
	if err != nil {
		t.Fatalf("NewCone failed: %v", err)
	}

	ray := core.NewRay(core.NewVec3(5, 0, -1), core.NewVec3(-1, 0, 0))
	hit, isHit := cone.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss below the base, got hit at t=%f", hit.T)
	}
}

func TestCone_Hit_PhiClipping(t *testing.T) {
	cone, err := NewPartialCone(1.0, 2.0, math.Pi/2)
	if err != nil {
		t.Fatalf("NewPartialCone failed: %v", err)
	}

	// Near hit at x=-0.5 has phi=pi and is clipped; far hit at x=0.5 has
	// phi=0 and survives.
	ray := core.NewRay(core.NewVec3(-5, 0, 1), core.NewVec3(1, 0, 0))
	hit, isHit := cone.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-5.5) > 1e-9 {
		t.Errorf("Expected t=5.5, got t=%f", hit.T)
	}
}

func TestNewCone_Validation(t *testing.T) {
	if _, err := NewCone(0, 1); err == nil {
		t.Error("Expected error for zero radius")
	}
	if _, err := NewCone(1, 0); err == nil {
		t.Error("Expected error for zero height")
	}
}
