// SPDX-License-Identifier: MIT

package geometry

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rowtrace/notation"
)

// LineParams describes a·x + b·y = d for a renderer.
type LineParams struct {
	A        float64 `json:"a"`
	B        float64 `json:"b"`
	Constant float64 `json:"constant"`
	Color    string  `json:"color"`
	Equation string  `json:"equation"`
}

// RowToLineParams reads a row laid out as [a, b, d].
//
// Errors:
//   - ErrNotTwoVariables when len(row) != 3.
func RowToLineParams(row []float64, color string) (LineParams, error) {
	if len(row) != 3 {
		return LineParams{}, fmt.Errorf("%w: row has %d entries", ErrNotTwoVariables, len(row))
	}

	return LineParams{
		A:        row[0],
		B:        row[1],
		Constant: row[2],
		Color:    color,
		Equation: notation.Equation(row),
	}, nil
}

// LinePosition is the 2D analogue of PlanePosition: (d/(a²+b²))·(a, b),
// or the origin for a degenerate line.
func LinePosition(l LineParams) Vec2 {
	n2 := l.A*l.A + l.B*l.B
	if n2 < DegenerateEps {
		return Vec2{}
	}
	k := l.Constant / n2

	return Vec2{X: l.A * k, Y: l.B * k}
}

// LineAngle returns the direction angle of the line in radians,
// measured from the x axis; the direction vector is (-b, a).
func LineAngle(l LineParams) float64 {
	return math.Atan2(l.A, -l.B)
}

// FindLineIntersection solves the first two lines with Cramer's rule.
// ok is false with fewer than two lines or when |det| < DegenerateEps.
func FindLineIntersection(lines []LineParams) (p Vec2, ok bool) {
	if len(lines) < 2 {
		return Vec2{}, false
	}
	l0, l1 := lines[0], lines[1]
	det := l0.A*l1.B - l0.B*l1.A
	if math.Abs(det) < DegenerateEps {
		return Vec2{}, false
	}

	return Vec2{
		X: (l0.Constant*l1.B - l0.B*l1.Constant) / det,
		Y: (l0.A*l1.Constant - l0.Constant*l1.A) / det,
	}, true
}
