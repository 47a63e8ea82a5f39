package globalplanner

import (
	"time"

	"github.com/golang/geo/r3"

	"go.viam.com/navplan/costmap"
	"go.viam.com/navplan/referenceframe"
	"go.viam.com/navplan/spatialmath"
)

// materialize turns a cell path into stamped poses in frame. Each pose faces the cell lookahead
// steps further along the path. Poses too close to the end keep the heading of the pose before
// them, unless the whole path is shorter than the lookahead, in which case headings are zero.
func materialize(
	cm costmap.Costmap,
	cells []costmap.Cell,
	frame string,
	stamp time.Time,
	lookahead int,
) []*referenceframe.PoseInFrame {
	if len(cells) == 0 {
		return nil
	}
	points := make([]r3.Vector, len(cells))
	for i, c := range cells {
		wx, wy := cm.MapToWorld(c)
		points[i] = r3.Vector{X: wx, Y: wy}
	}

	poses := make([]*referenceframe.PoseInFrame, len(cells))
	for i, pt := range points {
		var o spatialmath.Orientation
		switch {
		case i+lookahead < len(points):
			ahead := points[i+lookahead]
			o = spatialmath.NewYawOrientation(spatialmath.HeadingBetween(pt.X, pt.Y, ahead.X, ahead.Y))
		case len(points) > lookahead:
			o = poses[i-1].Pose().Orientation()
		default:
			o = spatialmath.NewZeroOrientation()
		}
		poses[i] = referenceframe.NewStampedPoseInFrame(frame, spatialmath.NewPose(pt, o), stamp)
	}
	return poses
}
