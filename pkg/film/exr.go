package film

import (
	"fmt"
	"image"

	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/lumen-render/lumen/pkg/core"
)

// WriteEXR saves the film's linear radiance to an OpenEXR file. No tone
// mapping or gamma is applied; EXR is the HDR archive format.
func (f *Film) WriteEXR(path string) error {
	img := exr.NewRGBAImage(image.Rect(0, 0, f.width, f.height))

	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			p := &f.pixels[y*f.width+x]
			rgb := core.ColorFromXYZ(
				p.XYZ[0]+p.SplatXYZ[0]*f.splatScale,
				p.XYZ[1]+p.SplatXYZ[1]*f.splatScale,
				p.XYZ[2]+p.SplatXYZ[2]*f.splatScale,
			)
			img.SetRGBA(x, y, float32(rgb.R), float32(rgb.G), float32(rgb.B), 1)
		}
	}

	if err := exr.EncodeFile(path, img); err != nil {
		return fmt.Errorf("write exr %s: %w", path, err)
	}
	return nil
}
