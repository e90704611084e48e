package geometry

import (
	"math"
	"testing"

	"github.com/lumen-render/lumen/pkg/core"
)

func TestDisc_Hit(t *testing.T) {
	disc := NewDisc(0, 1.0)

	ray := core.NewRay(core.NewVec3(0.5, 0, 2), core.NewVec3(0, 0, -1))
	hit, isHit := disc.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-2.0) > 1e-9 {
		t.Errorf("Expected t=2.0, got t=%f", hit.T)
	}

	expectedNormal := core.NewVec3(0, 0, 1)
	if hit.Normal.Subtract(expectedNormal).Length() > 1e-9 {
		t.Errorf("Expected normal %v, got %v", expectedNormal, hit.Normal)
	}

	// Halfway from rim to center.
	if math.Abs(hit.V-0.5) > 1e-9 {
		t.Errorf("Expected V=0.5, got V=%f", hit.V)
	}
}

func TestDisc_Hit_OutsideRadius(t *testing.T) {
	disc := NewDisc(0, 1.0)

	ray := core.NewRay(core.NewVec3(1.5, 0, 2), core.NewVec3(0, 0, -1))
	hit, isHit := disc.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss outside the radius, got hit at t=%f", hit.T)
	}
}

func TestDisc_Hit_AnnulusHole(t *testing.T) {
	annulus, err := NewAnnulus(0, 0.5, 1.0, 2*math.Pi)
	if err != nil {
		t.Fatalf("NewAnnulus failed: %v", err)
	}

	// Through the hole.
	ray := core.NewRay(core.NewVec3(0.25, 0, 2), core.NewVec3(0, 0, -1))
	hit, isHit := annulus.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss through the hole, got hit at t=%f", hit.T)
	}

	// On the ring.
	ray = core.NewRay(core.NewVec3(0.75, 0, 2), core.NewVec3(0, 0, -1))
	hit, isHit = annulus.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected ring hit, but got miss")
	}
	if math.Abs(hit.V-0.5) > 1e-9 {
		t.Errorf("Expected V=0.5, got V=%f", hit.V)
	}
}

func TestDisc_Hit_PhiClipping(t *testing.T) {
	disc, err := NewAnnulus(0, 0, 1.0, math.Pi/2)
	if err != nil {
		t.Fatalf("NewAnnulus failed: %v", err)
	}

	// phi=pi is outside the sweep.
	ray := core.NewRay(core.NewVec3(-0.5, 0, 2), core.NewVec3(0, 0, -1))
	hit, isHit := disc.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss outside the sweep, got hit at t=%f", hit.T)
	}

	// phi=pi/4 is inside.
	ray = core.NewRay(core.NewVec3(0.5, 0.5, 2), core.NewVec3(0, 0, -1))
	if _, isHit = disc.Hit(ray, 0.001, 1000.0); !isHit {
		t.Error("Expected hit inside the sweep, but got miss")
	}
}

func TestDisc_Hit_ParallelRay(t *testing.T) {
	disc := NewDisc(0, 1.0)

	ray := core.NewRay(core.NewVec3(-2, 0, 0), core.NewVec3(1, 0, 0))
	hit, isHit := disc.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss for in-plane ray, got hit at t=%f", hit.T)
	}
}
