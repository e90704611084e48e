package renderer

import (
	"context"
	"fmt"
	"image"

	"github.com/lumen-render/lumen/log"
	"github.com/lumen-render/lumen/pkg/film"
	"github.com/lumen-render/lumen/pkg/scene"
)

// Config controls a progressive render.
type Config struct {
	Width          int
	Height         int
	Passes         int
	SamplesPerPass int
	TileSize       int
	Workers        int
	Seed           int64
	ToneMapper     film.ToneMapper
	UseArrayLayout bool // select ArrayExecutor instead of tiles
}

// DefaultConfig returns sensible settings for an interactive render.
func DefaultConfig() Config {
	return Config{
		Width:          800,
		Height:         450,
		Passes:         16,
		SamplesPerPass: 4,
		TileSize:       64,
		Workers:        0, // one per CPU
		Seed:           1,
		ToneMapper:     film.ACESFilmic,
	}
}

// PassResult reports one completed pass with a displayable snapshot.
type PassResult struct {
	Pass    int
	IsLast  bool
	Image   *image.RGBA
	Stats   RenderStats
	Cleared bool // a latched clear was applied before this pass
}

// Progressive refines a film over multiple passes. Passes run fork-join:
// all workers finish pass N before the snapshot is read and pass N+1
// starts, so the moving-average state is never observed mid-write.
type Progressive struct {
	config   Config
	film     *film.Film
	executor PassExecutor
	logger   log.Logger
}

// NewProgressive wires a scene and camera into a progressive renderer.
func NewProgressive(s *scene.Scene, camera *Camera, config Config, logger log.Logger) (*Progressive, error) {
	if config.Passes <= 0 {
		return nil, fmt.Errorf("render needs at least one pass, got %d", config.Passes)
	}
	if config.SamplesPerPass <= 0 {
		return nil, fmt.Errorf("render needs at least one sample per pass, got %d", config.SamplesPerPass)
	}

	f, err := film.New(camera.Width(), camera.Height())
	if err != nil {
		return nil, err
	}

	raytracer := NewRaytracer(s)
	var executor PassExecutor
	if config.UseArrayLayout {
		executor = NewArrayExecutor(raytracer, camera, config.Workers, config.Seed)
	} else {
		executor = NewTileExecutor(raytracer, camera, config.TileSize, config.Workers, config.Seed)
	}

	return &Progressive{
		config:   config,
		film:     f,
		executor: executor,
		logger:   logger,
	}, nil
}

// Film exposes the accumulation buffer for readout and clear requests.
func (p *Progressive) Film() *film.Film {
	return p.film
}

// RequestClear asks for a restart; it takes effect at the next pass
// boundary, never mid-pass.
func (p *Progressive) RequestClear() {
	p.film.RequestClear()
}

// RenderProgressive runs the configured passes, emitting one PassResult
// per pass. Cancellation is honored between passes; an in-flight pass
// always runs to completion. Both channels close when rendering ends.
func (p *Progressive) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	results := make(chan PassResult, 1)
	errs := make(chan error, 1)

	go func() {
		defer close(results)
		defer close(errs)

		for pass := 1; pass <= p.config.Passes; pass++ {
			select {
			case <-ctx.Done():
				p.logger.Noticef("render cancelled before pass %d", pass)
				return
			default:
			}

			cleared := p.film.ApplyPendingClear()
			if cleared {
				p.logger.Info("applied pending clear, restarting accumulation")
			}

			stats, err := p.executor.ExecutePass(Pass{Number: pass, Samples: p.config.SamplesPerPass}, p.film)
			if err != nil {
				errs <- fmt.Errorf("pass %d: %w", pass, err)
				return
			}

			p.logger.Infof("pass %d/%d: %d samples in %v (%.0f samples/s)",
				pass, p.config.Passes, stats.TotalSamples, stats.Duration, stats.SamplesPerSecond())

			results <- PassResult{
				Pass:    pass,
				IsLast:  pass == p.config.Passes,
				Image:   p.film.Image(p.config.ToneMapper),
				Stats:   stats,
				Cleared: cleared,
			}
		}
	}()

	return results, errs
}

// Render runs all passes synchronously and returns the final image.
func (p *Progressive) Render(ctx context.Context) (*image.RGBA, []RenderStats, error) {
	results, errs := p.RenderProgressive(ctx)

	var img *image.RGBA
	var stats []RenderStats
	for result := range results {
		img = result.Image
		stats = append(stats, result.Stats)
	}
	if err := <-errs; err != nil {
		return nil, stats, err
	}
	if img == nil {
		return nil, stats, ctx.Err()
	}
	return img, stats, nil
}
