// SPDX-License-Identifier: EPL-2.0

package utils

// Float is the set of sample types the interpolation helpers accept.
type Float interface {
	~float32 | ~float64
}

// CubicInterpolate evaluates a Catmull-Rom spline through four consecutive
// points. x is the fractional position between y1 and y2 (0 <= x <= 1).
func CubicInterpolate[T Float](y0, y1, y2, y3, x T) T {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	return ((a0*x+a1)*x+a2)*x + y1
}

// LinearInterpolate blends a and b by x (0 <= x <= 1).
func LinearInterpolate[T Float](a, b, x T) T {
	return a + (b-a)*x
}
