package renderer

import (
	"runtime"
	"sync"
	"time"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/film"
)

// Pass identifies one progressive refinement round.
type Pass struct {
	Number  int
	Samples int // samples per pixel this pass
}

// PassExecutor runs one full pass over the film. Implementations must
// partition the image so no two workers ever write the same pixel; the
// driver guarantees no concurrent ExecutePass calls on one film.
type PassExecutor interface {
	ExecutePass(pass Pass, f *film.Film) (RenderStats, error)
}

// Tile is a rectangular pixel range, max-exclusive.
type Tile struct {
	X0, Y0, X1, Y1 int
}

// tileGrid splits an image into tiles of at most tileSize on a side.
func tileGrid(width, height, tileSize int) []Tile {
	var tiles []Tile
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			tiles = append(tiles, Tile{
				X0: x,
				Y0: y,
				X1: min(x+tileSize, width),
				Y1: min(y+tileSize, height),
			})
		}
	}
	return tiles
}

// TileExecutor renders passes on the CPU with a pool of workers pulling
// tiles from a queue. Each tile gets a deterministic RNG seed so renders
// reproduce regardless of scheduling order.
type TileExecutor struct {
	raytracer *Raytracer
	camera    *Camera
	tiles     []Tile
	workers   int
	seed      int64
}

// NewTileExecutor creates a CPU tile executor. workers <= 0 uses one
// worker per logical CPU.
func NewTileExecutor(raytracer *Raytracer, camera *Camera, tileSize, workers int, seed int64) *TileExecutor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	return &TileExecutor{
		raytracer: raytracer,
		camera:    camera,
		tiles:     tileGrid(camera.Width(), camera.Height(), tileSize),
		workers:   workers,
		seed:      seed,
	}
}

type tileResult struct {
	stats RenderStats
}

// ExecutePass renders every tile once at the pass's sample count.
func (te *TileExecutor) ExecutePass(pass Pass, f *film.Film) (RenderStats, error) {
	start := time.Now()

	taskQueue := make(chan int, len(te.tiles))
	resultQueue := make(chan tileResult, len(te.tiles))

	var wg sync.WaitGroup
	for w := 0; w < te.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tileIndex := range taskQueue {
				stats := te.renderTile(te.tiles[tileIndex], tileIndex, pass, f)
				resultQueue <- tileResult{stats: stats}
			}
		}()
	}

	for i := range te.tiles {
		taskQueue <- i
	}
	close(taskQueue)
	wg.Wait()
	close(resultQueue)

	stats := RenderStats{PassNumber: pass.Number, SamplesPerPixel: pass.Samples}
	for result := range resultQueue {
		stats.merge(result.stats)
	}
	stats.Duration = time.Since(start)
	return stats, nil
}

// renderTile samples every pixel in the tile. The tile owns its pixels
// exclusively for the duration of the pass.
func (te *TileExecutor) renderTile(tile Tile, tileIndex int, pass Pass, f *film.Film) RenderStats {
	sampler := core.NewRandomSampler(te.passSeed(tileIndex, pass.Number))

	var stats RenderStats
	for py := tile.Y0; py < tile.Y1; py++ {
		for px := tile.X0; px < tile.X1; px++ {
			samplePixel(te.raytracer, te.camera, f, px, py, pass.Samples, sampler, &stats)
		}
	}
	return stats
}

// passSeed derives a deterministic seed per tile and pass.
func (te *TileExecutor) passSeed(tileIndex, passNumber int) int64 {
	return te.seed + int64(passNumber)*1_000_003 + int64(tileIndex)
}

// samplePixel takes the pass's samples for one pixel, discarding
// non-finite radiance before it can corrupt the running average.
func samplePixel(rt *Raytracer, camera *Camera, f *film.Film, px, py, samples int, sampler core.Sampler, stats *RenderStats) {
	for s := 0; s < samples; s++ {
		jitter := sampler.Get2D()
		ray := camera.GenerateRay(px, py, jitter.X-0.5, jitter.Y-0.5)
		stats.PrimaryRays++

		color := rt.RayColor(ray, sampler)
		if !color.IsFinite() {
			stats.Discarded++
			continue
		}
		f.AddSample(px, py, color, 1.0, 1.0)
		stats.TotalSamples++
	}
}

// ArrayExecutor renders passes over a flattened pixel index space split
// into contiguous ranges, the layout a GPU kernel dispatch would use.
// It exists alongside TileExecutor as the second pass-executor variant;
// both share the per-pixel sampling kernel.
type ArrayExecutor struct {
	raytracer *Raytracer
	camera    *Camera
	workers   int
	seed      int64
}

// NewArrayExecutor creates a flat-range executor. workers <= 0 uses one
// worker per logical CPU.
func NewArrayExecutor(raytracer *Raytracer, camera *Camera, workers int, seed int64) *ArrayExecutor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &ArrayExecutor{
		raytracer: raytracer,
		camera:    camera,
		workers:   workers,
		seed:      seed,
	}
}

// ExecutePass renders the image as one flat array of pixels, each worker
// owning a contiguous index range.
func (ae *ArrayExecutor) ExecutePass(pass Pass, f *film.Film) (RenderStats, error) {
	start := time.Now()
	width := ae.camera.Width()
	pixelCount := width * ae.camera.Height()
	chunk := (pixelCount + ae.workers - 1) / ae.workers

	results := make([]RenderStats, ae.workers)
	var wg sync.WaitGroup
	for w := 0; w < ae.workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, pixelCount)
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(worker, lo, hi int) {
			defer wg.Done()
			sampler := core.NewRandomSampler(ae.seed + int64(pass.Number)*1_000_003 + int64(worker))
			for index := lo; index < hi; index++ {
				samplePixel(ae.raytracer, ae.camera, f, index%width, index/width, pass.Samples, sampler, &results[worker])
			}
		}(w, lo, hi)
	}
	wg.Wait()

	stats := RenderStats{PassNumber: pass.Number, SamplesPerPixel: pass.Samples}
	for _, r := range results {
		stats.merge(r)
	}
	stats.Duration = time.Since(start)
	return stats, nil
}
