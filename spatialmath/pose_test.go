package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestZeroPose(t *testing.T) {
	zero := NewZeroPose()
	test.That(t, zero.Point(), test.ShouldResemble, r3.Vector{})
	test.That(t, zero.Orientation().Quaternion(), test.ShouldResemble, quat.Number{Real: 1})
	test.That(t, Yaw(zero.Orientation()), test.ShouldAlmostEqual, 0)
}

func TestYawRoundTrip(t *testing.T) {
	for _, yaw := range []float64{0, math.Pi / 4, math.Pi / 2, -math.Pi / 3, 3} {
		o := NewYawOrientation(yaw)
		test.That(t, Yaw(o), test.ShouldAlmostEqual, yaw)
		test.That(t, o.EulerAngles().Roll, test.ShouldAlmostEqual, 0)
		test.That(t, o.EulerAngles().Pitch, test.ShouldAlmostEqual, 0)
		ea := &EulerAngles{Yaw: yaw}
		test.That(t, OrientationAlmostEqual(o, ea), test.ShouldBeTrue)
		aa := &R4AA{Theta: yaw, RZ: 1}
		test.That(t, OrientationAlmostEqual(o, aa), test.ShouldBeTrue)
	}
}

func TestComposeAndInverse(t *testing.T) {
	// a frame 2m along X and rotated 90 degrees
	p := NewPose2D(2, 0, math.Pi/2)

	pt := TransformPoint(p, r3.Vector{X: 1})
	test.That(t, pt.X, test.ShouldAlmostEqual, 2)
	test.That(t, pt.Y, test.ShouldAlmostEqual, 1)

	back := TransformPoint(PoseInverse(p), pt)
	test.That(t, R3VectorAlmostEqual(back, r3.Vector{X: 1}, 1e-9), test.ShouldBeTrue)

	identity := Compose(p, PoseInverse(p))
	test.That(t, PoseAlmostEqual(identity, NewZeroPose()), test.ShouldBeTrue)

	q := NewPose2D(1, 1, -math.Pi/4)
	composed := Compose(p, q)
	test.That(t, R3VectorAlmostEqual(
		TransformPoint(composed, r3.Vector{X: 3, Y: -1}),
		TransformPoint(p, TransformPoint(q, r3.Vector{X: 3, Y: -1})),
		1e-9,
	), test.ShouldBeTrue)
	test.That(t, Yaw(composed.Orientation()), test.ShouldAlmostEqual, math.Pi/4)

	between := PoseBetween(p, composed)
	test.That(t, PoseAlmostEqual(between, q), test.ShouldBeTrue)
}

func TestOrientationBetween(t *testing.T) {
	a := NewYawOrientation(0.2)
	b := NewYawOrientation(0.7)
	test.That(t, Yaw(OrientationBetween(a, b)), test.ShouldAlmostEqual, 0.5)
}

func TestHeadingBetween(t *testing.T) {
	test.That(t, HeadingBetween(0, 0, 1, 1), test.ShouldAlmostEqual, math.Pi/4)
	test.That(t, HeadingBetween(1, 1, 0, 1), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(DegToRad(37)), test.ShouldAlmostEqual, 37)
}
