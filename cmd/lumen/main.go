package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/lumen-render/lumen/log"
)

var logger = log.New("lumen")

func main() {
	app := cli.NewApp()
	app.Name = "lumen"
	app.Usage = "progressive physically-based renderer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "render",
			Usage:     "render a scene to an image file",
			ArgsUsage: "[scene name or compiled scene file]",
			Flags:     renderFlags,
			Action:    renderScene,
		},
		{
			Name:  "compile",
			Usage: "compile a built-in scene into a binary compressed cache",
			Description: `
Build one of the built-in scenes and write it to a compressed binary
cache file which can be supplied to the render and view commands.`,
			ArgsUsage: "[scene name] output_file.lsc",
			Action:    compileScene,
		},
		{
			Name:      "view",
			Usage:     "render a scene progressively in an interactive window",
			ArgsUsage: "[scene name or compiled scene file]",
			Flags:     viewFlags,
			Action:    viewScene,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
