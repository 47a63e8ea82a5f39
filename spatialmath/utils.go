package spatialmath

import "math"

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// HeadingBetween returns the planar heading, in radians, of the displacement from (x0, y0) to (x1, y1).
func HeadingBetween(x0, y0, x1, y1 float64) float64 {
	return math.Atan2(y1-y0, x1-x0)
}
