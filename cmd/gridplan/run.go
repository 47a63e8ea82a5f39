package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"go.viam.com/navplan/costmap"
	"go.viam.com/navplan/logging"
	"go.viam.com/navplan/motionplan/globalplanner"
	"go.viam.com/navplan/motionplan/goalconstraint"
	"go.viam.com/navplan/referenceframe"
	"go.viam.com/navplan/spatialmath"
)

func runPlan(c *cli.Context) error {
	if c.String(flagMap) == "" || c.String(flagConstraint) == "" {
		return errors.New("both --map and --constraint are required")
	}

	logger := logging.NewLogger("gridplan")
	level, err := logging.LevelFromString(c.String(flagLogLevel))
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if c.Bool(flagDebug) {
		logger.SetLevel(logging.DEBUG)
		ctx = logging.EnableDebugMode(ctx, "")
	}
	if path := c.String(flagLogFile); path != "" {
		appender := logging.NewFileAppender(path, 10, 3)
		logger.AddAppender(appender)
		defer func() {
			if err := appender.Close(); err != nil {
				fmt.Fprintln(c.App.ErrWriter, err)
			}
		}()
	}

	grid, err := loadMap(c)
	if err != nil {
		return err
	}
	globalFrame := c.String(flagGlobalFrame)

	frames := referenceframe.NewFrameTree("gridplan")
	if path := c.String(flagFrames); path != "" {
		if frames, err = loadFrames(path); err != nil {
			return err
		}
	}
	if _, err := frames.Parent(globalFrame); err != nil && globalFrame != referenceframe.World {
		if err := frames.AddFrame(globalFrame, referenceframe.World, nil, time.Time{}); err != nil {
			return err
		}
	}
	logger.Debugf("frames:\n%s", frames)

	cfg, err := loadPlannerConfig(c)
	if err != nil {
		return err
	}
	planner, err := globalplanner.New(logger, cfg)
	if err != nil {
		return err
	}
	if err := planner.Initialize("gridplan", frames, costmap.NewStaticProvider(globalFrame, grid)); err != nil {
		return err
	}

	startFrame := c.String(flagStartFrame)
	if startFrame == "" {
		startFrame = globalFrame
	}
	start := referenceframe.NewPoseInFrame(startFrame, spatialmath.NewPose2D(
		c.Float64(flagStartX), c.Float64(flagStartY), spatialmath.DegToRad(c.Float64(flagStartYaw))))
	constraint := goalconstraint.GoalConstraint{
		Frame:      c.String(flagConstraintFrame),
		Constraint: c.String(flagConstraint),
	}

	began := time.Now()
	plan, err := planner.MakePlan(ctx, start, constraint)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "planned %d poses to %d goal cells in %v (fallback: %t)\n",
		len(plan.Poses), len(plan.GoalPositions), time.Since(began).Round(time.Microsecond), plan.UsedFallback)
	summary, err := summarizeCosts(grid, plan.Cells)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "path length %.2fm, cell cost mean %.1f max %.0f\n",
		pathLength(plan), summary.Mean, summary.Max)
	fmt.Fprintln(c.App.Writer, planTable(plan))

	if out := c.String(flagPlot); out != "" {
		if err := savePlot(out, grid, plan); err != nil {
			return err
		}
		logger.Infof("wrote plan picture to %s", out)
	}
	return nil
}

func loadMap(c *cli.Context) (*costmap.Grid, error) {
	cfg := costmap.DefaultImageConfig()
	if path := c.String(flagMapConfig); path != "" {
		//nolint:gosec
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "cannot parse map config %q", path)
		}
	}
	if c.IsSet(flagResolution) {
		cfg.Resolution = c.Float64(flagResolution)
	}
	if c.IsSet(flagOriginX) {
		cfg.OriginX = c.Float64(flagOriginX)
	}
	if c.IsSet(flagOriginY) {
		cfg.OriginY = c.Float64(flagOriginY)
	}
	if c.IsSet(flagInscribedRadius) {
		cfg.Inflation.InscribedRadius = c.Float64(flagInscribedRadius)
	}
	if c.IsSet(flagInflationRadius) {
		cfg.Inflation.InflationRadius = c.Float64(flagInflationRadius)
		if cfg.Inflation.CostScalingFactor == 0 {
			cfg.Inflation.CostScalingFactor = 10
		}
	}
	return costmap.LoadImage(c.String(flagMap), cfg)
}

func loadPlannerConfig(c *cli.Context) (globalplanner.Config, error) {
	attributes := map[string]interface{}{}
	if path := c.String(flagConfig); path != "" {
		//nolint:gosec
		data, err := os.ReadFile(path)
		if err != nil {
			return globalplanner.Config{}, err
		}
		if err := json.Unmarshal(data, &attributes); err != nil {
			return globalplanner.Config{}, errors.Wrapf(err, "cannot parse planner config %q", path)
		}
	}
	if c.IsSet(flagEvaluator) {
		attributes["evaluator"] = c.String(flagEvaluator)
	}
	return globalplanner.NewConfigFromAttributes(attributes)
}

func planTable(plan *globalplanner.Plan) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Cell", "X", "Y", "Yaw (deg)"})
	for i, pose := range plan.Poses {
		pt := pose.Pose().Point()
		t.AppendRow(table.Row{
			i,
			plan.Cells[i].String(),
			fmt.Sprintf("%.3f", pt.X),
			fmt.Sprintf("%.3f", pt.Y),
			fmt.Sprintf("%.1f", spatialmath.RadToDeg(spatialmath.Yaw(pose.Pose().Orientation()))),
		})
	}
	return t.Render()
}
