package film

import "github.com/lumen-render/lumen/pkg/core"

// ToneMapper compresses linear HDR radiance into displayable range.
// Implementations must be pure so that film readout stays idempotent.
type ToneMapper func(core.Color) core.Color

// Linear passes radiance through unchanged; values above 1 clip later.
func Linear(c core.Color) core.Color {
	return c
}

// Reinhard applies the classic luminance-based operator L/(1+L).
func Reinhard(c core.Color) core.Color {
	l := c.Luminance()
	if l <= 0 {
		return c
	}
	return c.Multiply(1 / (1 + l))
}

// ACESFilmic is the Narkowicz rational fit of the ACES filmic curve,
// applied per channel.
func ACESFilmic(c core.Color) core.Color {
	const (
		a = 2.51
		b = 0.03
		cc = 2.43
		d = 0.59
		e = 0.14
	)
	fit := func(x float64) float64 {
		return core.Saturate((x * (a*x + b)) / (x*(cc*x+d) + e))
	}
	return core.NewColor(fit(c.R), fit(c.G), fit(c.B))
}

// WithExposure scales linear radiance by the given factor before handing
// it to the wrapped mapper.
func WithExposure(scale float64, mapper ToneMapper) ToneMapper {
	return func(c core.Color) core.Color {
		return mapper(c.Multiply(scale))
	}
}
