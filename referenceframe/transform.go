// Package referenceframe tracks named coordinate frames and the rigid transforms between them.
package referenceframe

import (
	"time"

	"go.viam.com/navplan/spatialmath"
)

// World is the string "world", the root of every frame tree.
const World = "world"

// TransformProvider supplies rigid transforms between named frames.
type TransformProvider interface {
	// LookupTransform returns the transform that maps points expressed in the source frame into the
	// target frame, as known at time at. The zero time means the latest available transform.
	// Failures are returned as a *TransformError.
	LookupTransform(target, source string, at time.Time) (spatialmath.Pose, error)
}

// TransformPoseInFrame expresses pif in the target frame.
func TransformPoseInFrame(tf TransformProvider, pif *PoseInFrame, target string) (*PoseInFrame, error) {
	if pif.Parent() == target {
		return pif, nil
	}
	xform, err := tf.LookupTransform(target, pif.Parent(), time.Time{})
	if err != nil {
		return nil, err
	}
	return NewStampedPoseInFrame(target, spatialmath.Compose(xform, pif.Pose()), pif.Stamp()), nil
}
