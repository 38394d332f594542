// SPDX-License-Identifier: MIT

package geometry

import "math"

// DegenerateEps is the threshold below which a squared norm or a determinant
// is treated as zero.
const DegenerateEps = 1e-10

// Vec3 is a point or direction in 3D space.
type Vec3 struct {
	X, Y, Z float64
}

// Vec2 is a point or direction in the plane.
type Vec2 struct {
	X, Y float64
}

// Dot returns v·w.
func (v Vec3) Dot(w Vec3) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Norm2 returns ‖v‖².
func (v Vec3) Norm2() float64 { return v.Dot(v) }

// Norm returns ‖v‖.
func (v Vec3) Norm() float64 { return math.Sqrt(v.Norm2()) }

// Scale returns k·v.
func (v Vec3) Scale(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// Cross returns v×w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Normalize returns v/‖v‖, or the zero vector when ‖v‖ < DegenerateEps.
func (v Vec3) Normalize() Vec3 {
	n := v.Norm()
	if n < DegenerateEps {
		return Vec3{}
	}

	return v.Scale(1 / n)
}

// ApproxEqual reports component-wise equality within tol.
func (v Vec3) ApproxEqual(w Vec3, tol float64) bool {
	return math.Abs(v.X-w.X) <= tol && math.Abs(v.Y-w.Y) <= tol && math.Abs(v.Z-w.Z) <= tol
}

// ApproxEqual reports component-wise equality within tol.
func (v Vec2) ApproxEqual(w Vec2, tol float64) bool {
	return math.Abs(v.X-w.X) <= tol && math.Abs(v.Y-w.Y) <= tol
}

// det3 is the determinant of the 3×3 matrix with rows r0, r1, r2.
func det3(r0, r1, r2 Vec3) float64 {
	return r0.Dot(r1.Cross(r2))
}
