package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Orientation is an interface used to express the different parameterizations of the orientation
// of a rigid object or a frame of reference. Planning happens on the ground plane, so most
// orientations here are rotations about Z, but the full 3D representation is kept so poses can
// be composed with arbitrary frames.
type Orientation interface {
	Quaternion() quat.Number
	EulerAngles() *EulerAngles
	AxisAngles() *R4AA
}

// NewZeroOrientation returns an orientation which signifies no rotation.
func NewZeroOrientation() Orientation {
	return &quaternion{1, 0, 0, 0}
}

// NewYawOrientation returns a rotation of yaw radians about the Z axis.
func NewYawOrientation(yaw float64) Orientation {
	return &quaternion{math.Cos(yaw / 2), 0, 0, math.Sin(yaw / 2)}
}

// OrientationAlmostEqual will return a bool describing whether 2 poses have approximately the same orientation.
func OrientationAlmostEqual(o1, o2 Orientation) bool {
	return QuaternionAlmostEqual(o1.Quaternion(), o2.Quaternion(), 1e-5)
}

// OrientationBetween returns the orientation representing the difference between the two given Orientations.
func OrientationBetween(o1, o2 Orientation) Orientation {
	q := quaternion(quat.Mul(o2.Quaternion(), quat.Conj(o1.Quaternion())))
	return &q
}

// Yaw returns the heading of the orientation about the Z axis, in radians in (-pi, pi].
func Yaw(o Orientation) float64 {
	return o.EulerAngles().Yaw
}
