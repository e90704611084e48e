package main

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/urfave/cli"

	"github.com/lumen-render/lumen/pkg/renderer"
)

var viewFlags = []cli.Flag{
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
		Value: 64,
		Usage: "number of progressive passes",
	},
	cli.IntFlag{
		Name:  "spp",
		Value: 2,
		Usage: "samples per pixel per pass",
	},
	cli.IntFlag{
		Name:  "workers",
		Value: 0,
		Usage: "worker count, 0 for one per cpu",
	},
	cli.StringFlag{
		Name:  "tone",
		Value: "aces",
		Usage: "tone mapper: linear, reinhard or aces",
	},
	cli.StringFlag{
		Name:  "out",
		Value: "view.png",
		Usage: "path used by the save button",
	},
}

func viewScene(cliCtx *cli.Context) error {
	setupLogging(cliCtx)

	sc, err := loadScene(cliCtx.Args().First())
	if err != nil {
		return err
	}

	mapper, err := toneMapper(cliCtx.String("tone"))
	if err != nil {
		return err
	}

	config := renderer.DefaultConfig()
	config.Width = cliCtx.Int("width")
	config.Height = cliCtx.Int("height")
	config.Passes = cliCtx.Int("passes")
	config.SamplesPerPass = cliCtx.Int("spp")
	config.Workers = cliCtx.Int("workers")
	config.ToneMapper = mapper

	camera, err := renderer.NewCamera(renderer.DefaultCameraConfig(config.Width, config.Height))
	if err != nil {
		return err
	}

	prog, err := renderer.NewProgressive(sc, camera, config, logger)
	if err != nil {
		return err
	}

	a := app.New()
	w := a.NewWindow("lumen")

	imgCanvas := canvas.NewImageFromImage(prog.Film().Image(mapper))
	imgCanvas.FillMode = canvas.ImageFillContain
	imgCanvas.SetMinSize(fyne.NewSize(float32(config.Width), float32(config.Height)))

	status := widget.NewLabel("starting")

	renderCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	restart := widget.NewButton("Restart", func() {
		prog.RequestClear()
		status.SetText("clear requested, applies at next pass")
	})
	save := widget.NewButton("Save PNG", func() {
		if err := writePNG(cliCtx.String("out"), prog.Film().Image(mapper)); err != nil {
			status.SetText(err.Error())
			return
		}
		status.SetText(fmt.Sprintf("saved %s", cliCtx.String("out")))
	})

	w.SetContent(container.NewBorder(
		nil,
		container.NewHBox(restart, save, status),
		nil, nil,
		imgCanvas,
	))

	results, errs := prog.RenderProgressive(renderCtx)
	go func() {
		for result := range results {
			imgCanvas.Image = result.Image
			imgCanvas.Refresh()
			status.SetText(fmt.Sprintf("pass %d/%d, %.0f samples/s",
				result.Pass, config.Passes, result.Stats.SamplesPerSecond()))
		}
		if err := <-errs; err != nil {
			logger.Error(err)
			status.SetText(err.Error())
		}
	}()

	w.ShowAndRun()
	return nil
}
