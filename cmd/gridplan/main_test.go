package main

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"go.viam.com/test"

	"go.viam.com/navplan/costmap"
)

// writeMap saves a 20x20 free image with a wall across the middle column, leaving a gap at the
// top row of pixels.
func writeMap(t *testing.T) string {
	t.Helper()
	img := imaging.New(20, 20, color.White)
	for row := 1; row < 20; row++ {
		img.Set(10, row, color.Black)
	}
	path := filepath.Join(t.TempDir(), "map.png")
	test.That(t, imaging.Save(img, path), test.ShouldBeNil)
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	out := &bytes.Buffer{}
	app.Writer = out
	app.ErrWriter = out
	err := app.Run(append([]string{"gridplan"}, args...))
	return out.String(), err
}

func TestPlanAcrossWall(t *testing.T) {
	mapPath := writeMap(t)
	plotPath := filepath.Join(t.TempDir(), "plan.png")

	out, err := runApp(t,
		"--map", mapPath,
		"--resolution", "0.5",
		"--constraint", "x > 9 and y < 1",
		"--start-x", "0.25",
		"--start-y", "0.25",
		"--plot", plotPath,
	)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "planned")
	test.That(t, out, test.ShouldContainSubstring, "(0,0)")

	info, err := os.Stat(plotPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)
}

func TestPlanInAnotherFrame(t *testing.T) {
	mapPath := writeMap(t)
	framesPath := filepath.Join(t.TempDir(), "frames.yaml")
	frames := `
frames:
  - name: map
  - name: dock
    parent: map
    translation: {x: 8, y: 2}
    yaw_degrees: 90
`
	test.That(t, os.WriteFile(framesPath, []byte(frames), 0o600), test.ShouldBeNil)

	out, err := runApp(t,
		"--map", mapPath,
		"--resolution", "0.5",
		"--frames", framesPath,
		"--evaluator", "region",
		"--constraint-frame", "dock",
		"--constraint", "{type: circle, radius: 0.5}",
		"--start-x", "1",
		"--start-y", "1",
	)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "planned")

	out, err = runApp(t, "frames", framesPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "dock")
}

func TestPlanErrors(t *testing.T) {
	mapPath := writeMap(t)

	_, err := runApp(t, "--map", mapPath)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = runApp(t, "--map", mapPath, "--resolution", "0.5", "--constraint", "x > 100")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no goal cell")

	_, err = runApp(t, "--map", mapPath, "--resolution", "0.5", "--constraint", "x > 1", "--start-x", "-4")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "off the map")

	_, err = runApp(t, "--map", filepath.Join(t.TempDir(), "missing.png"), "--constraint", "x > 1")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestListEvaluators(t *testing.T) {
	out, err := runApp(t, "evaluators")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "expression")
	test.That(t, out, test.ShouldContainSubstring, "region")
}

func TestSummarizeCosts(t *testing.T) {
	grid, err := costmap.NewGrid(4, 1, 1, 0, 0)
	test.That(t, err, test.ShouldBeNil)
	grid.SetCost(costmap.Cell{X: 1, Y: 0}, 100)
	grid.SetCost(costmap.Cell{X: 2, Y: 0}, 200)

	summary, err := summarizeCosts(grid, []costmap.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, summary.Mean, test.ShouldAlmostEqual, 100)
	test.That(t, summary.Median, test.ShouldAlmostEqual, 100)
	test.That(t, summary.Max, test.ShouldEqual, 200)

	_, err = summarizeCosts(grid, nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestLogLevelFlag(t *testing.T) {
	_, err := runApp(t, "--map", writeMap(t), "--resolution", "0.5", "--constraint", "x > 9 and y < 1",
		"--start-x", "0.25", "--start-y", "0.25", "--log-level", "loud")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown log level")
}

func TestSchemaAndLogFile(t *testing.T) {
	out, err := runApp(t, "schema")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "lookahead_cells")

	logPath := filepath.Join(t.TempDir(), "gridplan.log")
	_, err = runApp(t, "--map", writeMap(t), "--resolution", "0.5", "--constraint", "x > 9 and y < 1",
		"--start-x", "0.25", "--start-y", "0.25", "--log-file", logPath)
	test.That(t, err, test.ShouldBeNil)
	contents, err := os.ReadFile(logPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(contents), test.ShouldContainSubstring, "generated global plan")
}
