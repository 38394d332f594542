// SPDX-License-Identifier: MIT

package geometry

import (
	"errors"

	"github.com/katalvlaran/rowtrace/matrix"
)

var (
	// ErrNotThreeVariables is returned when the plane path gets a row that is not [a, b, c, d].
	ErrNotThreeVariables = errors.New("geometry: plane params need exactly three variables")

	// ErrNotTwoVariables is returned when the line path gets a row that is not [a, b, d].
	ErrNotTwoVariables = errors.New("geometry: line params need exactly two variables")
)

// Palette holds one color per possible row; colors repeat past MaxRows.
var Palette = [matrix.MaxRows]string{
	"#e6194b",
	"#3cb44b",
	"#4363d8",
	"#f58231",
	"#911eb4",
	"#42d4f4",
}

// ColorFor returns the palette color for row i.
func ColorFor(i int) string {
	if i < 0 {
		i = -i
	}

	return Palette[i%len(Palette)]
}

// Projection is the renderer-facing geometry of one matrix state.
// Exactly one of Planes (3 variables) or Lines (2 variables) is populated;
// a 1-variable system has no geometry.
type Projection struct {
	Planes []PlaneParams `json:"planes,omitempty"`
	Lines  []LineParams  `json:"lines,omitempty"`
}

// Project derives the geometry of every row of m, picking the 3D path for
// three variables and the 2D path for two.
func Project(m matrix.Augmented) Projection {
	var p Projection
	rows := m.Data()
	switch m.Vars() {
	case 3:
		p.Planes = make([]PlaneParams, 0, len(rows))
		for i, row := range rows {
			pl, err := RowToPlaneParams(row, ColorFor(i))
			if err != nil {
				continue
			}
			p.Planes = append(p.Planes, pl)
		}
	case 2:
		p.Lines = make([]LineParams, 0, len(rows))
		for i, row := range rows {
			l, err := RowToLineParams(row, ColorFor(i))
			if err != nil {
				continue
			}
			p.Lines = append(p.Lines, l)
		}
	}

	return p
}

// Clone returns a copy that shares no slices with p.
func (p Projection) Clone() Projection {
	out := Projection{}
	if p.Planes != nil {
		out.Planes = append([]PlaneParams(nil), p.Planes...)
	}
	if p.Lines != nil {
		out.Lines = append([]LineParams(nil), p.Lines...)
	}

	return out
}

// Intersection returns the common point of the projected planes or lines,
// lifted to 3D with Z = 0 for lines.
func (p Projection) Intersection() (Vec3, bool) {
	if len(p.Planes) > 0 {
		return FindIntersectionPoint(p.Planes)
	}
	if pt, ok := FindLineIntersection(p.Lines); ok {
		return Vec3{X: pt.X, Y: pt.Y}, true
	}

	return Vec3{}, false
}
