package globalplanner

import (
	"math"
	"testing"
	"time"

	"go.viam.com/test"

	"go.viam.com/navplan/costmap"
	"go.viam.com/navplan/spatialmath"
)

func TestMaterialize(t *testing.T) {
	grid, err := costmap.NewGrid(8, 8, 0.5, -1, -1)
	test.That(t, err, test.ShouldBeNil)
	stamp := time.Unix(1700000000, 0)

	// an L: four cells along +x, then three along +y
	cells := []costmap.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: 3}}

	t.Run("round trip", func(t *testing.T) {
		poses := materialize(grid, cells, "map", stamp, 5)
		test.That(t, poses, test.ShouldHaveLength, len(cells))
		for i, pose := range poses {
			test.That(t, pose.Parent(), test.ShouldEqual, "map")
			test.That(t, pose.Stamp(), test.ShouldEqual, stamp)
			pt := pose.Pose().Point()
			cell, ok := grid.WorldToMap(pt.X, pt.Y)
			test.That(t, ok, test.ShouldBeTrue)
			test.That(t, cell, test.ShouldResemble, cells[i])
		}
	})

	t.Run("lookahead headings", func(t *testing.T) {
		poses := materialize(grid, cells, "map", stamp, 5)
		test.That(t, spatialmath.Yaw(poses[0].Pose().Orientation()), test.ShouldAlmostEqual, math.Atan2(2, 3))
		test.That(t, spatialmath.Yaw(poses[1].Pose().Orientation()), test.ShouldAlmostEqual, math.Atan2(3, 2))
		for _, pose := range poses[2:] {
			test.That(t, spatialmath.Yaw(pose.Pose().Orientation()), test.ShouldAlmostEqual, math.Atan2(3, 2))
		}
	})

	t.Run("short lookahead", func(t *testing.T) {
		poses := materialize(grid, cells, "map", stamp, 1)
		test.That(t, spatialmath.Yaw(poses[0].Pose().Orientation()), test.ShouldAlmostEqual, 0)
		test.That(t, spatialmath.Yaw(poses[3].Pose().Orientation()), test.ShouldAlmostEqual, math.Pi/2)
		test.That(t, spatialmath.Yaw(poses[6].Pose().Orientation()), test.ShouldAlmostEqual, math.Pi/2)
	})

	t.Run("path no longer than the lookahead", func(t *testing.T) {
		for _, n := range []int{1, 3, 5} {
			poses := materialize(grid, cells[:n], "map", stamp, 5)
			test.That(t, poses, test.ShouldHaveLength, n)
			for _, pose := range poses {
				test.That(t, spatialmath.OrientationAlmostEqual(pose.Pose().Orientation(), spatialmath.NewZeroOrientation()),
					test.ShouldBeTrue)
			}
		}
	})

	t.Run("empty", func(t *testing.T) {
		test.That(t, materialize(grid, nil, "map", stamp, 5), test.ShouldBeEmpty)
	})
}
