// Package spatialmath defines spatial mathematical operations: poses, orientations and the
// rigid transforms used to move points between coordinate frames.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose represents a 6dof pose, position and orientation, with respect to the origin.
// A Pose doubles as the rigid transform that maps points expressed in the posed frame into
// the frame the pose is expressed in.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

type basicPose struct {
	point r3.Vector
	q     quat.Number
}

// NewZeroPose returns a pose at (0,0,0) with no rotation.
func NewZeroPose() Pose {
	return &basicPose{q: quat.Number{Real: 1}}
}

// NewPoseFromPoint makes a new Pose at the given point with no rotation.
func NewPoseFromPoint(point r3.Vector) Pose {
	return &basicPose{point: point, q: quat.Number{Real: 1}}
}

// NewPose makes a new Pose from a point and an orientation. A nil orientation is treated as
// no rotation.
func NewPose(point r3.Vector, o Orientation) Pose {
	if o == nil {
		return NewPoseFromPoint(point)
	}
	return &basicPose{point: point, q: Normalize(o.Quaternion())}
}

// NewPose2D makes a new planar Pose at (x, y) heading yaw radians about Z.
func NewPose2D(x, y, yaw float64) Pose {
	return NewPose(r3.Vector{X: x, Y: y}, NewYawOrientation(yaw))
}

func (p *basicPose) Point() r3.Vector {
	return p.point
}

func (p *basicPose) Orientation() Orientation {
	q := quaternion(p.q)
	return &q
}

func (p *basicPose) String() string {
	return fmt.Sprintf("{X:%.3f Y:%.3f Z:%.3f Yaw:%.3f}", p.point.X, p.point.Y, p.point.Z, Yaw(p.Orientation()))
}

// Compose treats Poses as transforms and composes them: the result maps points from b's
// frame through a into a's parent frame.
func Compose(a, b Pose) Pose {
	aq := a.Orientation().Quaternion()
	return &basicPose{
		point: a.Point().Add(rotateVector(aq, b.Point())),
		q:     Normalize(quat.Mul(aq, b.Orientation().Quaternion())),
	}
}

// PoseInverse returns the inverse of a pose, such that Compose(p, PoseInverse(p)) is the zero pose.
func PoseInverse(p Pose) Pose {
	inv := quat.Conj(p.Orientation().Quaternion())
	return &basicPose{
		point: rotateVector(inv, p.Point()).Mul(-1),
		q:     inv,
	}
}

// PoseBetween returns the transform that takes a to b, i.e. Compose(a, PoseBetween(a, b)) == b.
func PoseBetween(a, b Pose) Pose {
	return Compose(PoseInverse(a), b)
}

// TransformPoint maps pt, expressed in the frame described by p, into p's parent frame.
func TransformPoint(p Pose, pt r3.Vector) r3.Vector {
	return p.Point().Add(rotateVector(p.Orientation().Quaternion(), pt))
}

// PoseAlmostEqual will return a bool describing whether 2 poses are approximately the same.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostEqualEps(a, b, 1e-6)
}

// PoseAlmostEqualEps will return a bool describing whether 2 poses are approximately the same
// within the given epsilon for the position component.
func PoseAlmostEqualEps(a, b Pose, epsilon float64) bool {
	return PoseAlmostCoincidentEps(a, b, epsilon) && OrientationAlmostEqual(a.Orientation(), b.Orientation())
}

// PoseAlmostCoincidentEps will return a bool describing whether 2 poses approximately are at the
// same 3D coordinate location within the given epsilon.
func PoseAlmostCoincidentEps(a, b Pose, epsilon float64) bool {
	return R3VectorAlmostEqual(a.Point(), b.Point(), epsilon)
}

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}
