package film

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/lumen-render/lumen/pkg/core"
)

func TestFilm_WriteEXR_RoundTrip(t *testing.T) {
	f := mustNew(t, 4, 2)
	c := core.NewColor(0.5, 0.25, 0.125)
	f.AddSample(2, 1, c, 1.0, 1.0)

	path := filepath.Join(t.TempDir(), "out.exr")
	if err := f.WriteEXR(path); err != nil {
		t.Fatalf("WriteEXR failed: %v", err)
	}

	img, err := exr.DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 4 || bounds.Dy() != 2 {
		t.Fatalf("Expected 4x2 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	// Half-float storage plus the XYZ round trip costs precision.
	r, g, b, a := img.RGBA(2, 1)
	tolerance := 1e-2
	if math.Abs(float64(r)-c.R) > tolerance ||
		math.Abs(float64(g)-c.G) > tolerance ||
		math.Abs(float64(b)-c.B) > tolerance {
		t.Errorf("Expected pixel near %v, got (%f, %f, %f)", c, r, g, b)
	}
	if a != 1 {
		t.Errorf("Expected alpha 1, got %f", a)
	}
}

func TestFilm_WriteEXR_BadPath(t *testing.T) {
	f := mustNew(t, 1, 1)
	if err := f.WriteEXR(filepath.Join(t.TempDir(), "missing", "out.exr")); err == nil {
		t.Error("Expected error for unwritable path")
	}
}
