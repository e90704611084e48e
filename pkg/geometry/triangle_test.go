package geometry

import (
	"math"
	"testing"

	"github.com/lumen-render/lumen/pkg/core"
)

func unitTriangle() *Triangle {
	return NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	)
}

func TestTriangle_Hit_Centroid(t *testing.T) {
	triangle := unitTriangle()

	// Aim at the centroid from above.
	ray := core.NewRay(core.NewVec3(1.0/3, 1.0/3, 2), core.NewVec3(0, 0, -1))
	hit, isHit := triangle.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-2.0) > 1e-9 {
		t.Errorf("Expected t=2.0, got t=%f", hit.T)
	}

	// Barycentric coordinates of the centroid.
	if math.Abs(hit.U-1.0/3) > 1e-9 || math.Abs(hit.V-1.0/3) > 1e-9 {
		t.Errorf("Expected barycentric (1/3, 1/3), got (%f, %f)", hit.U, hit.V)
	}

	expectedNormal := core.NewVec3(0, 0, 1)
	if hit.Normal.Subtract(expectedNormal).Length() > 1e-9 {
		t.Errorf("Expected normal %v, got %v", expectedNormal, hit.Normal)
	}
	if !hit.FrontFace {
		t.Error("Expected front face hit")
	}
}

func TestTriangle_Hit_BackFace(t *testing.T) {
	triangle := unitTriangle()

	ray := core.NewRay(core.NewVec3(0.25, 0.25, -2), core.NewVec3(0, 0, 1))
	hit, isHit := triangle.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.FrontFace {
		t.Error("Expected back face hit")
	}

	expectedNormal := core.NewVec3(0, 0, -1)
	if hit.Normal.Subtract(expectedNormal).Length() > 1e-9 {
		t.Errorf("Expected flipped normal %v, got %v", expectedNormal, hit.Normal)
	}
}

func TestTriangle_Hit_OutsideEdges(t *testing.T) {
	triangle := unitTriangle()

	tests := []struct {
		name   string
		target core.Vec3
	}{
		{"outside u<0", core.NewVec3(-0.1, 0.5, 0)},
		{"outside v<0", core.NewVec3(0.5, -0.1, 0)},
		{"outside hypotenuse", core.NewVec3(0.6, 0.6, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origin := tt.target.Add(core.NewVec3(0, 0, 2))
			ray := core.NewRay(origin, core.NewVec3(0, 0, -1))
			hit, isHit := triangle.Hit(ray, 0.001, 1000.0)
			if isHit {
				t.Errorf("Expected miss, got hit at t=%f", hit.T)
			}
		})
	}
}

func TestTriangle_Hit_ParallelRay(t *testing.T) {
	triangle := unitTriangle()

	ray := core.NewRay(core.NewVec3(-1, 0.25, 0), core.NewVec3(1, 0, 0))
	hit, isHit := triangle.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss for in-plane ray, got hit at t=%f", hit.T)
	}
}
