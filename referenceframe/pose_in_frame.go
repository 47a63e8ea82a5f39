package referenceframe

import (
	"fmt"
	"time"

	"go.viam.com/navplan/spatialmath"
)

// PoseInFrame is a data structure that packages a pose with the name of the frame in which it
// was observed and the time of the observation.
type PoseInFrame struct {
	parent string
	pose   spatialmath.Pose
	stamp  time.Time
}

// NewPoseInFrame generates a new PoseInFrame with a zero timestamp.
func NewPoseInFrame(frame string, pose spatialmath.Pose) *PoseInFrame {
	return &PoseInFrame{parent: frame, pose: pose}
}

// NewStampedPoseInFrame generates a new PoseInFrame observed at stamp.
func NewStampedPoseInFrame(frame string, pose spatialmath.Pose, stamp time.Time) *PoseInFrame {
	return &PoseInFrame{parent: frame, pose: pose, stamp: stamp}
}

// Parent returns the name of the frame in which the pose was observed.
func (pF *PoseInFrame) Parent() string {
	return pF.parent
}

// Pose returns the pose that was observed.
func (pF *PoseInFrame) Pose() spatialmath.Pose {
	return pF.pose
}

// Stamp returns the time of the observation.
func (pF *PoseInFrame) Stamp() time.Time {
	return pF.stamp
}

// AlmostEqual reports whether both poses are in the same frame and approximately coincide.
func (pF *PoseInFrame) AlmostEqual(other *PoseInFrame) bool {
	return pF.parent == other.parent && spatialmath.PoseAlmostEqual(pF.pose, other.pose)
}

func (pF *PoseInFrame) String() string {
	return fmt.Sprintf("%s@%s", pF.parent, pF.pose)
}
