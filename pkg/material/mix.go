package material

import (
	"github.com/lumen-render/lumen/pkg/core"
)

// MixBSDF combines multiple reflectance lobes. Sampling picks a lobe by a
// discrete probability; the returned PDF is the choice-weighted average
// over every lobe that could have produced the direction, which keeps the
// result compatible with multiple importance sampling.
type MixBSDF struct {
	lobes   []Material
	weights []float64 // normalized discrete lobe probabilities
}

// NewMixBSDF creates a lobe mixture. Weights need not be pre-normalized;
// lobes and weights must have equal nonzero length.
func NewMixBSDF(lobes []Material, weights []float64) *MixBSDF {
	if len(lobes) == 0 || len(lobes) != len(weights) {
		panic("material: MixBSDF requires matching non-empty lobes and weights")
	}
	var total float64
	for _, w := range weights {
		total += w
	}
	normalized := make([]float64, len(weights))
	for i, w := range weights {
		if total > 0 {
			normalized[i] = w / total
		} else {
			normalized[i] = 1 / float64(len(weights))
		}
	}
	return &MixBSDF{lobes: lobes, weights: normalized}
}

// Lobes returns the mixture's component materials.
func (m *MixBSDF) Lobes() []Material { return m.lobes }

// Weights returns the normalized discrete lobe probabilities.
func (m *MixBSDF) Weights() []float64 { return m.weights }

// Evaluate returns the weighted sum of every lobe's reflectance.
func (m *MixBSDF) Evaluate(wo, wi, normal core.Vec3) core.Color {
	result := core.Black
	for i, lobe := range m.lobes {
		result = result.Add(lobe.Evaluate(wo, wi, normal).Multiply(m.weights[i]))
	}
	return result
}

// Sample picks a lobe by its discrete probability and samples it; the
// returned PDF is the mixture PDF, not the chosen lobe's alone.
func (m *MixBSDF) Sample(wo, normal core.Vec3, sample core.Vec2) (core.Vec3, float64, bool) {
	// Remap sample.X to pick the lobe, then stretch the remainder back to
	// [0,1) for the lobe's own use.
	choice := sample.X
	index := len(m.lobes) - 1
	for i, w := range m.weights {
		if choice < w || i == len(m.weights)-1 {
			index = i
			if w > 0 {
				sample.X = core.Clamp(choice/w, 0, 0.99999999)
			}
			break
		}
		choice -= w
	}

	wi, _, ok := m.lobes[index].Sample(wo, normal, sample)
	if !ok {
		return core.Vec3{}, 0, false
	}

	pdf := m.PDF(wo, wi, normal)
	if pdf <= 0 {
		return core.Vec3{}, 0, false
	}
	return wi, pdf, true
}

// PDF returns the discrete-choice-weighted average of the lobes' PDFs.
func (m *MixBSDF) PDF(wo, wi, normal core.Vec3) float64 {
	var pdf float64
	for i, lobe := range m.lobes {
		pdf += m.weights[i] * lobe.PDF(wo, wi, normal)
	}
	return pdf
}
