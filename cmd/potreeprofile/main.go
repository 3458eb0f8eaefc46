// Package main is the CLI command itself.
package main

import (
	"log"
	"os"

	"github.com/edaniels/golog"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"go.viam.com/potree-profile/dispatch"
)

func main() {
	var logger golog.Logger

	app := &cli.App{
		Name:      "potreeprofile",
		Usage:     "extract an elevation profile from a Potree dataset",
		ArgsUsage: "<dataset-root>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:     "coordinates",
				Required: true,
				Usage:    "polyline literal: {x,y},{x,y},...",
			},
			&cli.Float64Flag{
				Name:     "width",
				Required: true,
				Usage:    "corridor width, world units",
			},
			&cli.IntFlag{
				Name:  "min-level",
				Value: 0,
				Usage: "minimum octree level to emit points from",
			},
			&cli.IntFlag{
				Name:  "max-level",
				Value: 1<<31 - 1,
				Usage: "maximum octree level to traverse",
			},
			&cli.PathFlag{
				Name:  "o",
				Usage: "output file (binary)",
			},
			&cli.BoolFlag{
				Name:  "stdout",
				Usage: "write to standard output (binary mode)",
			},
			&cli.StringFlag{
				Name:  "output-format",
				Value: "POTREE",
				Usage: "POTREE, LAS, or CSV",
			},
			&cli.StringSliceFlag{
				Name:  "output-attributes",
				Usage: "override attribute schema",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				logger = golog.NewDebugLogger("potreeprofile")
			} else {
				logger = zap.NewNop().Sugar()
			}
			return nil
		},
		Action: func(c *cli.Context) error {
			return dispatch.Run(c, logger)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
