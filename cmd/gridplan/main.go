// Package main is gridplan, a command line tool that plans a path across an occupancy image to a
// goal region described in any frame of a frame tree.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/navplan/motionplan/globalplanner"
	"go.viam.com/navplan/motionplan/goalconstraint"
	"go.viam.com/navplan/referenceframe"
)

const (
	// Flags.
	flagMap             = "map"
	flagMapConfig       = "map-config"
	flagResolution      = "resolution"
	flagOriginX         = "origin-x"
	flagOriginY         = "origin-y"
	flagInscribedRadius = "inscribed-radius"
	flagInflationRadius = "inflation-radius"
	flagFrames          = "frames"
	flagGlobalFrame     = "global-frame"
	flagConstraint      = "constraint"
	flagConstraintFrame = "constraint-frame"
	flagEvaluator       = "evaluator"
	flagStartX          = "start-x"
	flagStartY          = "start-y"
	flagStartYaw        = "start-yaw"
	flagStartFrame      = "start-frame"
	flagConfig          = "config"
	flagPlot            = "plot"
	flagDebug           = "debug"
	flagLogFile         = "log-file"
	flagLogLevel        = "log-level"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "gridplan",
		Usage:     "plan a path across an occupancy image to a frame relative goal region",
		UsageText: "gridplan --map FILE --constraint EXPR [other options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagMap,
				Aliases: []string{"m"},
				Usage:   "occupancy image `FILE`; dark pixels are occupied",
			},
			&cli.StringFlag{
				Name:  flagMapConfig,
				Usage: "yaml `FILE` with resolution, origin, thresholds and inflation of the map",
			},
			&cli.Float64Flag{
				Name:  flagResolution,
				Usage: "map resolution in meters per pixel, overrides the map config",
			},
			&cli.Float64Flag{
				Name:  flagOriginX,
				Usage: "world x of the bottom left corner of the map, overrides the map config",
			},
			&cli.Float64Flag{
				Name:  flagOriginY,
				Usage: "world y of the bottom left corner of the map, overrides the map config",
			},
			&cli.Float64Flag{
				Name:  flagInscribedRadius,
				Usage: "robot inscribed radius in meters, overrides the map config",
			},
			&cli.Float64Flag{
				Name:  flagInflationRadius,
				Usage: "distance in meters over which obstacle costs decay, overrides the map config",
			},
			&cli.StringFlag{
				Name:  flagFrames,
				Usage: "yaml `FILE` describing the frame tree",
			},
			&cli.StringFlag{
				Name:  flagGlobalFrame,
				Value: "map",
				Usage: "frame the map is expressed in",
			},
			&cli.StringFlag{
				Name:    flagConstraint,
				Aliases: []string{"c"},
				Usage:   "goal region, e.g. \"hypot(x, y) < 1 and x > 0\"",
			},
			&cli.StringFlag{
				Name:  flagConstraintFrame,
				Usage: "frame the goal region is described in, defaults to the global frame",
			},
			&cli.StringFlag{
				Name:  flagEvaluator,
				Usage: fmt.Sprintf("goal region language, one of %v", goalconstraint.RegisteredEvaluators()),
			},
			&cli.Float64Flag{
				Name:  flagStartX,
				Usage: "start x in the start frame",
			},
			&cli.Float64Flag{
				Name:  flagStartY,
				Usage: "start y in the start frame",
			},
			&cli.Float64Flag{
				Name:  flagStartYaw,
				Usage: "start heading in degrees",
			},
			&cli.StringFlag{
				Name:  flagStartFrame,
				Usage: "frame the start pose is given in, defaults to the global frame",
			},
			&cli.StringFlag{
				Name:  flagConfig,
				Usage: "json `FILE` with global planner attributes",
			},
			&cli.StringFlag{
				Name:  flagPlot,
				Usage: "write a picture of the plan to `FILE` (png, svg or pdf)",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "also write logs to `FILE`, rotated every 10MB",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Value: "info",
				Usage: "one of debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Action: runPlan,
		Commands: []*cli.Command{
			{
				Name:  "evaluators",
				Usage: "list the goal region languages",
				Action: func(c *cli.Context) error {
					for _, name := range goalconstraint.RegisteredEvaluators() {
						fmt.Fprintln(c.App.Writer, name)
					}
					return nil
				},
			},
			{
				Name:  "schema",
				Usage: "print the json schema of the planner config file",
				Action: func(c *cli.Context) error {
					data, err := json.MarshalIndent(globalplanner.ConfigSchema(), "", "  ")
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, string(data))
					return nil
				},
			},
			{
				Name:      "frames",
				Usage:     "print a frame tree file",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return errors.New("expected exactly one frame tree file")
					}
					ft, err := loadFrames(c.Args().First())
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, ft.String())
					return nil
				},
			},
		},
	}
}

func loadFrames(path string) (*referenceframe.FrameTree, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return referenceframe.LoadFrameTreeYAML(path, f)
}
