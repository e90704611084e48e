package main

import (
	"errors"

	"github.com/urfave/cli"

	"github.com/lumen-render/lumen/pkg/scene"
)

func compileScene(ctx *cli.Context) error {
	setupLogging(ctx)

	name := "default"
	var out string
	switch ctx.NArg() {
	case 1:
		out = ctx.Args().Get(0)
	case 2:
		name = ctx.Args().Get(0)
		out = ctx.Args().Get(1)
	default:
		return errors.New("usage: compile [scene] output_file.lsc")
	}

	sc, err := scene.Build(name)
	if err != nil {
		return err
	}

	if err := sc.SaveFile(out); err != nil {
		return err
	}

	logger.Noticef("compiled scene %q with %d primitives to %s",
		name, len(sc.Primitives), out)
	return nil
}
