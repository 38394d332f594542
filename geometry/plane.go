// SPDX-License-Identifier: MIT

package geometry

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rowtrace/notation"
)

// PlaneParams describes a·x + b·y + c·z = d for a renderer.
type PlaneParams struct {
	Normal   Vec3    `json:"normal"`
	Constant float64 `json:"constant"`
	Color    string  `json:"color"`
	Equation string  `json:"equation"`
}

// RowToPlaneParams reads a row laid out as [a, b, c, d].
// Only three-variable rows are accepted: a two-variable row [a, b, d] would
// put the constant into the normal's z component.
//
// Errors:
//   - ErrNotThreeVariables when len(row) != 4.
func RowToPlaneParams(row []float64, color string) (PlaneParams, error) {
	if len(row) != 4 {
		return PlaneParams{}, fmt.Errorf("%w: row has %d entries", ErrNotThreeVariables, len(row))
	}

	return PlaneParams{
		Normal:   Vec3{X: row[0], Y: row[1], Z: row[2]},
		Constant: row[3],
		Color:    color,
		Equation: notation.Equation(row),
	}, nil
}

// PlanePosition returns the point of the plane n·p = d closest to the origin,
// (d/‖n‖²)·n, or the origin for a degenerate normal.
func PlanePosition(normal Vec3, constant float64) Vec3 {
	n2 := normal.Norm2()
	if n2 < DegenerateEps {
		return Vec3{}
	}

	return normal.Scale(constant / n2)
}

// Orientation rotates the reference normal (0,0,1) onto a target normal:
// first by Elevation about the Y axis, then by Azimuth about the vertical Z axis.
// The zero value is the identity.
type Orientation struct {
	Elevation float64 `json:"elevation"` // φ ∈ [0, π]
	Azimuth   float64 `json:"azimuth"`   // θ ∈ (-π, π]
}

// Quat is a unit quaternion (W + Xi + Yj + Zk).
type Quat struct {
	W, X, Y, Z float64
}

// PlaneOrientation derives φ = acos(clamp(n̂z, -1, 1)) and θ = atan2(n̂y, n̂x)
// from the normalized normal. Degenerate normals give the identity.
func PlaneOrientation(normal Vec3) Orientation {
	if normal.Norm() < DegenerateEps {
		return Orientation{}
	}
	u := normal.Normalize()

	return Orientation{
		Elevation: math.Acos(clamp(u.Z, -1, 1)),
		Azimuth:   math.Atan2(u.Y, u.X),
	}
}

// IsIdentity reports whether o leaves every vector unchanged.
func (o Orientation) IsIdentity() bool { return o.Elevation == 0 && o.Azimuth == 0 }

// Rotate applies Rz(θ)·Ry(φ) to v.
func (o Orientation) Rotate(v Vec3) Vec3 {
	sp, cp := math.Sincos(o.Elevation)
	st, ct := math.Sincos(o.Azimuth)
	// about Y by φ
	x1 := v.X*cp + v.Z*sp
	y1 := v.Y
	z1 := -v.X*sp + v.Z*cp

	// about Z by θ
	return Vec3{
		X: x1*ct - y1*st,
		Y: x1*st + y1*ct,
		Z: z1,
	}
}

// Quaternion returns q = qz(θ)·qy(φ), the same rotation as Rotate.
func (o Orientation) Quaternion() Quat {
	sy, cy := math.Sincos(o.Elevation / 2)
	sz, cz := math.Sincos(o.Azimuth / 2)

	return Quat{
		W: cz * cy,
		X: -sz * sy,
		Y: cz * sy,
		Z: sz * cy,
	}
}

// Rotate applies q·v·q* to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	// t = 2·(q.xyz × v); v' = v + w·t + q.xyz × t
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	c := u.Cross(t)

	return Vec3{
		X: v.X + q.W*t.X + c.X,
		Y: v.Y + q.W*t.Y + c.Y,
		Z: v.Z + q.W*t.Z + c.Z,
	}
}

// FindIntersectionPoint solves the 3×3 system formed by the first three planes
// with Cramer's rule. ok is false with fewer than three planes or when
// |det| < DegenerateEps (parallel or dependent planes).
func FindIntersectionPoint(planes []PlaneParams) (p Vec3, ok bool) {
	if len(planes) < 3 {
		return Vec3{}, false
	}
	n0, n1, n2 := planes[0].Normal, planes[1].Normal, planes[2].Normal
	d := Vec3{planes[0].Constant, planes[1].Constant, planes[2].Constant}

	det := det3(n0, n1, n2)
	if math.Abs(det) < DegenerateEps {
		return Vec3{}, false
	}

	// Replace column k of [n0; n1; n2] with d.
	dx := det3(Vec3{d.X, n0.Y, n0.Z}, Vec3{d.Y, n1.Y, n1.Z}, Vec3{d.Z, n2.Y, n2.Z})
	dy := det3(Vec3{n0.X, d.X, n0.Z}, Vec3{n1.X, d.Y, n1.Z}, Vec3{n2.X, d.Z, n2.Z})
	dz := det3(Vec3{n0.X, n0.Y, d.X}, Vec3{n1.X, n1.Y, d.Y}, Vec3{n2.X, n2.Y, d.Z})

	return Vec3{X: dx / det, Y: dy / det, Z: dz / det}, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
