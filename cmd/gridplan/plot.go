package main

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"go.viam.com/navplan/costmap"
	"go.viam.com/navplan/motionplan/globalplanner"
)

var (
	obstacleColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	goalColor     = color.RGBA{G: 160, B: 60, A: 255}
	pathColor     = color.RGBA{R: 220, G: 30, B: 30, A: 255}
)

// savePlot draws the grid's obstacles, the goal cells and the plan, in world coordinates.
func savePlot(path string, grid costmap.Costmap, plan *globalplanner.Plan) error {
	p := plot.New()
	p.Title.Text = "global plan"
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	obstacles := plotter.XYs{}
	for y := 0; y < grid.SizeY(); y++ {
		for x := 0; x < grid.SizeX(); x++ {
			c := costmap.Cell{X: x, Y: y}
			if !costmap.IsImpassable(grid.Cost(c)) {
				continue
			}
			wx, wy := grid.MapToWorld(c)
			obstacles = append(obstacles, plotter.XY{X: wx, Y: wy})
		}
	}
	if len(obstacles) > 0 {
		scatter, err := plotter.NewScatter(obstacles)
		if err != nil {
			return errors.Wrap(err, "cannot plot obstacles")
		}
		scatter.GlyphStyle.Color = obstacleColor
		scatter.GlyphStyle.Shape = draw.BoxGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(scatter)
		p.Legend.Add("obstacles", scatter)
	}

	goals := make(plotter.XYs, 0, len(plan.GoalPositions))
	for _, pt := range plan.GoalPositions {
		goals = append(goals, plotter.XY{X: pt.X, Y: pt.Y})
	}
	if len(goals) > 0 {
		scatter, err := plotter.NewScatter(goals)
		if err != nil {
			return errors.Wrap(err, "cannot plot goal cells")
		}
		scatter.GlyphStyle.Color = goalColor
		scatter.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(scatter)
		p.Legend.Add("goal region", scatter)
	}

	route := make(plotter.XYs, 0, len(plan.Poses))
	for _, pose := range plan.Poses {
		pt := pose.Pose().Point()
		route = append(route, plotter.XY{X: pt.X, Y: pt.Y})
	}
	line, err := plotter.NewLine(route)
	if err != nil {
		return errors.Wrap(err, "cannot plot path")
	}
	line.Color = pathColor
	line.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add("path", line)
	p.Legend.Top = true

	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}
