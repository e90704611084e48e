package renderer

import "time"

// RenderStats summarizes one executed pass.
type RenderStats struct {
	PassNumber      int
	SamplesPerPixel int
	TotalSamples    int
	PrimaryRays     int
	Discarded       int // non-finite radiance samples dropped before accumulation
	Duration        time.Duration
}

// merge folds a worker's partial counters into the pass totals.
func (rs *RenderStats) merge(other RenderStats) {
	rs.TotalSamples += other.TotalSamples
	rs.PrimaryRays += other.PrimaryRays
	rs.Discarded += other.Discarded
}

// SamplesPerSecond returns the pass throughput.
func (rs RenderStats) SamplesPerSecond() float64 {
	if rs.Duration <= 0 {
		return 0
	}
	return float64(rs.TotalSamples) / rs.Duration.Seconds()
}
