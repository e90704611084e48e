package renderer

import (
	"math"
	"testing"

	"github.com/lumen-render/lumen/pkg/core"
)

func TestCamera_GenerateRay_CenterAimsAtTarget(t *testing.T) {
	config := CameraConfig{
		Eye:    core.NewVec3(0, -8, 2),
		Target: core.NewVec3(0, 0, 2),
		Up:     core.NewVec3(0, 0, 1),
		FOV:    45,
		Width:  100,
		Height: 100,
	}
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	// Center of the middle pixel row/column with the -0.5 jitter that
	// cancels the half-pixel offset lands exactly on the image center.
	ray := camera.GenerateRay(50, 50, -0.5, -0.5)

	if ray.Origin != config.Eye {
		t.Errorf("Expected ray origin at the eye, got %v", ray.Origin)
	}

	want := config.Target.Subtract(config.Eye).Normalize()
	if ray.Direction.Subtract(want).Length() > 1e-9 {
		t.Errorf("Expected center ray toward the target %v, got %v", want, ray.Direction)
	}
}

func TestCamera_GenerateRay_CornersSpread(t *testing.T) {
	camera, err := NewCamera(DefaultCameraConfig(200, 100))
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	topLeft := camera.GenerateRay(0, 0, 0, 0)
	bottomRight := camera.GenerateRay(199, 99, 0, 0)

	if topLeft.Direction.Subtract(bottomRight.Direction).Length() < 0.1 {
		t.Error("Expected corner rays to diverge")
	}

	if math.Abs(topLeft.Direction.Length()-1) > 1e-9 {
		t.Errorf("Expected unit direction, got length %f", topLeft.Direction.Length())
	}
}

func TestCamera_GenerateRay_JitterStaysInPixel(t *testing.T) {
	camera, err := NewCamera(DefaultCameraConfig(100, 100))
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	center := camera.GenerateRay(50, 50, 0, 0)
	jittered := camera.GenerateRay(50, 50, 0.49, -0.49)
	neighbor := camera.GenerateRay(52, 50, 0, 0)

	dJitter := center.Direction.Subtract(jittered.Direction).Length()
	dNeighbor := center.Direction.Subtract(neighbor.Direction).Length()
	if dJitter == 0 {
		t.Error("Expected jitter to perturb the ray")
	}
	if dJitter >= dNeighbor {
		t.Errorf("Expected sub-pixel jitter (%f) below the two-pixel step (%f)", dJitter, dNeighbor)
	}
}

func TestNewCamera_Validation(t *testing.T) {
	base := DefaultCameraConfig(100, 100)

	bad := base
	bad.Width = 0
	if _, err := NewCamera(bad); err == nil {
		t.Error("Expected error for zero width")
	}

	bad = base
	bad.FOV = 180
	if _, err := NewCamera(bad); err == nil {
		t.Error("Expected error for degenerate fov")
	}

	bad = base
	bad.Target = bad.Eye
	if _, err := NewCamera(bad); err == nil {
		t.Error("Expected error for coincident eye and target")
	}
}
