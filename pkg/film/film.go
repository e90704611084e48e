package film

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync/atomic"

	"github.com/lumen-render/lumen/pkg/core"
)

// Pixel holds the accumulation state for one image position. XYZ is a
// running filter-weighted average; SplatXYZ is a plain sum that bypasses
// the pixel filter and is only scaled at readout.
type Pixel struct {
	XYZ             [3]float64
	SplatXYZ        [3]float64
	FilterWeightSum float64
	SampleCount     int

	// Luminance moments for per-pixel convergence estimates.
	LuminanceAccum   float64
	LuminanceSqAccum float64
}

// Film is the per-pixel accumulation buffer that integrates many noisy
// samples into a displayable image. Pixels live in a flat row-major
// arena. Writers must be partitioned so that at most one goroutine
// touches a pixel during a pass; readout between passes is safe.
type Film struct {
	width  int
	height int
	pixels []Pixel

	splatScale float64

	// Clear requests are latched here and only applied at a pass
	// boundary, so an in-flight pass is never torn.
	clearPending atomic.Bool
}

// New creates a zeroed film of the given dimensions.
func New(width, height int) (*Film, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("film dimensions must be positive, got %dx%d", width, height)
	}
	return &Film{
		width:      width,
		height:     height,
		pixels:     make([]Pixel, width*height),
		splatScale: 1.0,
	}, nil
}

// Width returns the film width in pixels
func (f *Film) Width() int { return f.width }

// Height returns the film height in pixels
func (f *Film) Height() int { return f.height }

// Pixel returns a pointer to the accumulation state at (x, y).
func (f *Film) Pixel(x, y int) *Pixel {
	return &f.pixels[f.offset(x, y)]
}

// offset converts coordinates to an arena index. Out-of-range access is
// a caller bug and panics rather than being tolerated.
func (f *Film) offset(x, y int) int {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		panic(fmt.Sprintf("film: pixel (%d, %d) out of range for %dx%d image", x, y, f.width, f.height))
	}
	return y*f.width + x
}

// AddSample folds one radiance sample into the running estimate at
// (x, y) using an incremental weighted moving average, which stays
// numerically stable as the sample count grows. The caller must discard
// non-finite colors before calling; a NaN here would permanently corrupt
// the pixel's average.
func (f *Film) AddSample(x, y int, c core.Color, sampleWeight, filterWeight float64) {
	p := &f.pixels[f.offset(x, y)]

	cx, cy, cz := c.ToXYZ()
	contribution := [3]float64{cx * sampleWeight, cy * sampleWeight, cz * sampleWeight}

	p.FilterWeightSum += filterWeight
	blend := filterWeight / p.FilterWeightSum
	for k := 0; k < 3; k++ {
		p.XYZ[k] += (contribution[k] - p.XYZ[k]) * blend
	}

	// XYZ Y is luminance.
	p.LuminanceAccum += contribution[1]
	p.LuminanceSqAccum += contribution[1] * contribution[1]
	p.SampleCount++
}

// Variance returns the sample variance of the luminance at (x, y), used
// as a convergence estimate. Zero until at least one sample has landed.
func (f *Film) Variance(x, y int) float64 {
	p := &f.pixels[f.offset(x, y)]
	if p.SampleCount == 0 {
		return 0
	}
	n := float64(p.SampleCount)
	mean := p.LuminanceAccum / n
	meanSq := p.LuminanceSqAccum / n
	return math.Max(0, meanSq-mean*mean)
}

// AddSplat adds a contribution outside the normal per-sample filtering
// path. Splats are never divided by the sample count; SetSplatScale
// controls their weight at readout.
func (f *Film) AddSplat(x, y int, c core.Color) {
	p := &f.pixels[f.offset(x, y)]
	cx, cy, cz := c.ToXYZ()
	p.SplatXYZ[0] += cx
	p.SplatXYZ[1] += cy
	p.SplatXYZ[2] += cz
}

// SetSplatScale sets the factor applied to splat accumulators at
// readout, typically 1/totalSamples.
func (f *Film) SetSplatScale(scale float64) {
	f.splatScale = scale
}

// RequestClear latches a clear request. The accumulators are untouched
// until ApplyPendingClear runs at the next pass boundary.
func (f *Film) RequestClear() {
	f.clearPending.Store(true)
}

// ApplyPendingClear zeroes every pixel if a clear was requested and
// reports whether it did. Must only be called between passes.
func (f *Film) ApplyPendingClear() bool {
	if !f.clearPending.CompareAndSwap(true, false) {
		return false
	}
	for i := range f.pixels {
		f.pixels[i] = Pixel{}
	}
	return true
}

// At returns the displayable color at (x, y): accumulated XYZ plus the
// scaled splat sum, converted to RGB, tone mapped and gamma encoded.
// Reading never mutates the accumulators, so repeated readouts of an
// unchanged film give identical results.
func (f *Film) At(x, y int, toneMapper ToneMapper) core.Color {
	p := &f.pixels[f.offset(x, y)]

	rgb := core.ColorFromXYZ(
		p.XYZ[0]+p.SplatXYZ[0]*f.splatScale,
		p.XYZ[1]+p.SplatXYZ[1]*f.splatScale,
		p.XYZ[2]+p.SplatXYZ[2]*f.splatScale,
	)
	if toneMapper != nil {
		rgb = toneMapper(rgb)
	}
	return rgb.Clamp(0, 1).GammaEncode(2.2)
}

// Image renders the current accumulation state to an 8-bit RGBA image.
func (f *Film) Image(toneMapper ToneMapper) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			c := f.At(x, y, toneMapper)
			img.Set(x, y, color.RGBA{
				R: uint8(c.R*255 + 0.5),
				G: uint8(c.G*255 + 0.5),
				B: uint8(c.B*255 + 0.5),
				A: 255,
			})
		}
	}
	return img
}

// Planar returns the linear (untonemapped, ungamma'd) RGB values as a
// packed float32 buffer, three values per pixel in row-major order.
func (f *Film) Planar() []float32 {
	buf := make([]float32, 0, f.width*f.height*3)
	for i := range f.pixels {
		p := &f.pixels[i]
		rgb := core.ColorFromXYZ(
			p.XYZ[0]+p.SplatXYZ[0]*f.splatScale,
			p.XYZ[1]+p.SplatXYZ[1]*f.splatScale,
			p.XYZ[2]+p.SplatXYZ[2]*f.splatScale,
		)
		buf = append(buf, float32(rgb.R), float32(rgb.G), float32(rgb.B))
	}
	return buf
}
