package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/lumen-render/lumen/pkg/film"
	"github.com/lumen-render/lumen/pkg/renderer"
	"github.com/lumen-render/lumen/pkg/scene"
)

var renderFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "width",
		Value: 800,
		Usage: "frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Value: 450,
		Usage: "frame height",
	},
	cli.IntFlag{
		Name:  "passes",
		Value: 16,
		Usage: "number of progressive passes",
	},
	cli.IntFlag{
		Name:  "spp",
		Value: 4,
		Usage: "samples per pixel per pass",
	},
	cli.IntFlag{
		Name:  "tile-size",
		Value: 64,
		Usage: "tile edge length in pixels",
	},
	cli.IntFlag{
		Name:  "workers",
		Value: 0,
		Usage: "worker count, 0 for one per cpu",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: 1,
		Usage: "random seed for reproducible renders",
	},
	cli.StringFlag{
		Name:  "tone",
		Value: "aces",
		Usage: "tone mapper: linear, reinhard or aces",
	},
	cli.Float64Flag{
		Name:  "exposure",
		Value: 1.0,
		Usage: "linear exposure multiplier applied before tone mapping",
	},
	cli.BoolFlag{
		Name:  "array-layout",
		Usage: "use the flat array pass executor instead of tiles",
	},
	cli.StringFlag{
		Name:  "out",
		Value: "out.png",
		Usage: "png output path",
	},
	cli.StringFlag{
		Name:  "exr",
		Usage: "additionally write linear radiance to this exr path",
	},
}

// loadScene resolves the scene argument: a built-in name, or a path to a
// compiled scene cache.
func loadScene(arg string) (*scene.Scene, error) {
	if arg == "" {
		arg = "default"
	}
	if _, err := os.Stat(arg); err == nil {
		logger.Infof("loading compiled scene %s", arg)
		return scene.LoadFile(arg)
	}
	return scene.Build(arg)
}

func toneMapper(name string) (film.ToneMapper, error) {
	switch strings.ToLower(name) {
	case "linear":
		return film.Linear, nil
	case "reinhard":
		return film.Reinhard, nil
	case "aces":
		return film.ACESFilmic, nil
	default:
		return nil, fmt.Errorf("unknown tone mapper %q", name)
	}
}

func renderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	mapper, err := toneMapper(ctx.String("tone"))
	if err != nil {
		return err
	}
	if exposure := ctx.Float64("exposure"); exposure != 1.0 {
		mapper = film.WithExposure(exposure, mapper)
	}

	config := renderer.Config{
		Width:          ctx.Int("width"),
		Height:         ctx.Int("height"),
		Passes:         ctx.Int("passes"),
		SamplesPerPass: ctx.Int("spp"),
		TileSize:       ctx.Int("tile-size"),
		Workers:        ctx.Int("workers"),
		Seed:           ctx.Int64("seed"),
		ToneMapper:     mapper,
		UseArrayLayout: ctx.Bool("array-layout"),
	}

	camera, err := renderer.NewCamera(renderer.DefaultCameraConfig(config.Width, config.Height))
	if err != nil {
		return err
	}

	prog, err := renderer.NewProgressive(sc, camera, config, logger)
	if err != nil {
		return err
	}

	// Ctrl-C stops cleanly at the next pass boundary.
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, stats, err := prog.Render(runCtx)
	if err != nil {
		return err
	}

	if err := writePNG(ctx.String("out"), img); err != nil {
		return err
	}
	logger.Noticef("wrote %s", ctx.String("out"))

	if exrPath := ctx.String("exr"); exrPath != "" {
		if err := prog.Film().WriteEXR(exrPath); err != nil {
			return err
		}
		logger.Noticef("wrote %s", exrPath)
	}

	displayRenderStats(stats)
	return nil
}

func writePNG(path string, img *image.RGBA) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write png %s: %w", path, err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("write png %s: %w", path, err)
	}
	return nil
}

func displayRenderStats(stats []renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pass", "Samples", "Discarded", "Samples/s", "Render time"})

	var totalSamples int
	for _, stat := range stats {
		totalSamples += stat.TotalSamples
		table.Append([]string{
			fmt.Sprintf("%d", stat.PassNumber),
			fmt.Sprintf("%d", stat.TotalSamples),
			fmt.Sprintf("%d", stat.Discarded),
			fmt.Sprintf("%.0f", stat.SamplesPerSecond()),
			stat.Duration.String(),
		})
	}
	table.SetFooter([]string{"", fmt.Sprintf("%d", totalSamples), "", "", "TOTAL"})

	table.Render()
	logger.Noticef("render statistics\n%s", buf.String())
}
