package core

import "sort"

// Distribution1D is a piecewise-constant 1D probability distribution over
// [0,1], built once from a function table and read-only afterwards, so it
// is safe for concurrent queries.
type Distribution1D struct {
	Func    []float64 // function values per bin
	CDF     []float64 // cumulative distribution, len(Func)+1 entries
	FuncInt float64   // integral of the function over [0,1]
}

// NewDistribution1D builds the cumulative distribution for a non-negative
// function table. An all-zero table degrades to a uniform distribution.
func NewDistribution1D(f []float64) *Distribution1D {
	n := len(f)
	d := &Distribution1D{
		Func: append([]float64(nil), f...),
		CDF:  make([]float64, n+1),
	}

	for i := 1; i <= n; i++ {
		d.CDF[i] = d.CDF[i-1] + d.Func[i-1]/float64(n)
	}

	d.FuncInt = d.CDF[n]
	if d.FuncInt == 0 {
		// Degenerate all-zero function: fall back to uniform.
		for i := 1; i <= n; i++ {
			d.CDF[i] = float64(i) / float64(n)
		}
	} else {
		for i := 1; i <= n; i++ {
			d.CDF[i] /= d.FuncInt
		}
	}
	return d
}

// Count returns the number of bins
func (d *Distribution1D) Count() int {
	return len(d.Func)
}

// findInterval locates the CDF bin bracketing u via binary search.
func (d *Distribution1D) findInterval(u float64) int {
	// Largest index with CDF[i] <= u.
	i := sort.Search(len(d.CDF), func(i int) bool { return d.CDF[i] > u }) - 1
	if i < 0 {
		i = 0
	}
	if i > len(d.Func)-1 {
		i = len(d.Func) - 1
	}
	return i
}

// SampleContinuous maps a canonical sample u to a continuous value in
// [0,1] distributed according to the function, returning the value, its
// PDF and the bin index. SampleContinuous(0) returns the domain minimum
// and SampleContinuous(1) the domain maximum.
func (d *Distribution1D) SampleContinuous(u float64) (x, pdf float64, offset int) {
	offset = d.findInterval(u)

	// Interpolate within the bracketing interval.
	du := u - d.CDF[offset]
	if width := d.CDF[offset+1] - d.CDF[offset]; width > 0 {
		du /= width
	}

	if d.FuncInt > 0 {
		pdf = d.Func[offset] / d.FuncInt
	}

	x = (float64(offset) + du) / float64(d.Count())
	return x, pdf, offset
}

// SampleDiscrete maps a canonical sample u to a bin index with its
// discrete probability, without sub-bin interpolation.
func (d *Distribution1D) SampleDiscrete(u float64) (offset int, pdf float64) {
	offset = d.findInterval(u)
	return offset, d.DiscretePDF(offset)
}

// DiscretePDF returns the probability of choosing bin i with SampleDiscrete.
func (d *Distribution1D) DiscretePDF(i int) float64 {
	if d.FuncInt == 0 {
		return 1 / float64(d.Count())
	}
	return d.Func[i] / (d.FuncInt * float64(d.Count()))
}

// Distribution2D composes a marginal distribution over rows with one
// conditional distribution per row, for importance sampling 2D domains
// such as environment maps.
type Distribution2D struct {
	conditional []*Distribution1D // p(u|v), one per row
	marginal    *Distribution1D   // p(v)
}

// NewDistribution2D builds a 2D distribution from a row-major function
// table with the given width per row.
func NewDistribution2D(f []float64, width, height int) *Distribution2D {
	d := &Distribution2D{
		conditional: make([]*Distribution1D, height),
	}
	marginalFunc := make([]float64, height)
	for v := 0; v < height; v++ {
		d.conditional[v] = NewDistribution1D(f[v*width : (v+1)*width])
		marginalFunc[v] = d.conditional[v].FuncInt
	}
	d.marginal = NewDistribution1D(marginalFunc)
	return d
}

// SampleContinuous draws the marginal coordinate first, then the
// conditional coordinate from that row, producing an importance-sampled
// (u,v) pair and its joint PDF.
func (d *Distribution2D) SampleContinuous(sample Vec2) (Vec2, float64) {
	v, pdfV, row := d.marginal.SampleContinuous(sample.Y)
	u, pdfU, _ := d.conditional[row].SampleContinuous(sample.X)
	return NewVec2(u, v), pdfU * pdfV
}

// PDF returns the joint probability density at a (u,v) point in [0,1]².
func (d *Distribution2D) PDF(p Vec2) float64 {
	width := d.conditional[0].Count()
	height := len(d.conditional)
	u := int(Clamp(p.X*float64(width), 0, float64(width-1)))
	v := int(Clamp(p.Y*float64(height), 0, float64(height-1)))
	if d.marginal.FuncInt == 0 {
		return 0
	}
	return d.conditional[v].Func[u] / d.marginal.FuncInt
}
