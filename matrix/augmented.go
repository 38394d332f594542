// SPDX-License-Identifier: MIT

// Package matrix - Augmented storage (row-major) & safe accessors.
//
// Purpose:
//   - Hold an augmented system [A | b] in a flat row-major buffer (offset = i*cols + j).
//   - Guarantee immutability at the public surface: no exported method hands out
//     the backing buffer, every transforming primitive returns a new value.
//   - Guarantee safety: At/Row return errors instead of panicking.
//
// Complexity quicksheet:
//   - New: O(r*c) validate + copy; At: O(1); Row/Data/Clone: O(r*c) or O(c).

package matrix

import (
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-json"
)

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
	_fmtBar      = " | "
)

// Augmented is an immutable augmented matrix: every row holds the coefficients
// of one equation followed by its constant.
//   - r,c hold dimensions (rows, cols), c includes the constant column.
//   - data is a flat buffer of length r*c in row-major order.
//
// The zero value is an empty matrix that fails validation; construct values
// with New or MustNew.
type Augmented struct {
	r, c int
	data []float64
}

var (
	_ fmt.Stringer     = Augmented{}
	_ json.Marshaler   = Augmented{}
	_ json.Unmarshaler = (*Augmented)(nil)
)

// New validates rows and returns an Augmented holding a deep copy of them.
//
// Implementation:
//   - Stage 1: Validate(rows); a non-OK status maps to its sentinel.
//   - Stage 2: copy every entry into a fresh row-major buffer.
//
// Errors:
//   - ErrTooFewRows, ErrTooFewColumns, ErrNotRectangular, ErrNonNumericEntry.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func New(rows [][]float64) (Augmented, error) {
	if st := Validate(rows); st != StatusOK {
		return Augmented{}, matrixErrorf(opNew, st.Err())
	}

	r, c := len(rows), len(rows[0])
	buf := make([]float64, 0, r*c)
	for _, row := range rows {
		buf = append(buf, row...)
	}

	return Augmented{r: r, c: c, data: buf}, nil
}

// MustNew is New for literals known to be valid. It panics on invalid input.
func MustNew(rows [][]float64) Augmented {
	m, err := New(rows)
	if err != nil {
		panic(err)
	}

	return m
}

// Rows returns the number of equations.
func (m Augmented) Rows() int { return m.r }

// Cols returns the number of columns including the constant column.
func (m Augmented) Cols() int { return m.c }

// Vars returns the number of variables (coefficient columns).
func (m Augmented) Vars() int {
	if m.c == 0 {
		return 0
	}

	return m.c - 1
}

// IsEmpty reports whether m is the zero value.
func (m Augmented) IsEmpty() bool { return m.r == 0 || m.c == 0 }

// At returns the entry at (row, col).
func (m Augmented) At(row, col int) (float64, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, fmt.Errorf("Augmented.At(%d,%d): %w", row, col, ErrOutOfRange)
	}

	return m.data[row*m.c+col], nil
}

// Row returns a copy of row i.
func (m Augmented) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, fmt.Errorf("Augmented.Row(%d): %w", i, ErrRowOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// Data returns a deep copy of all rows.
func (m Augmented) Data() [][]float64 {
	out := make([][]float64, m.r)
	for i := 0; i < m.r; i++ {
		row := make([]float64, m.c)
		copy(row, m.data[i*m.c:(i+1)*m.c])
		out[i] = row
	}

	return out
}

// Equal reports exact, entry-wise equality (including shape).
func (m Augmented) Equal(o Augmented) bool {
	if m.r != o.r || m.c != o.c {
		return false
	}
	for k := range m.data {
		if m.data[k] != o.data[k] {
			return false
		}
	}

	return true
}

// ApproxEqual reports entry-wise equality within tol (same shape required).
func (m Augmented) ApproxEqual(o Augmented, tol float64) bool {
	if m.r != o.r || m.c != o.c {
		return false
	}
	for k := range m.data {
		if math.Abs(m.data[k]-o.data[k]) > tol {
			return false
		}
	}

	return true
}

// String renders one bracketed row per line with the constant after a bar.
func (m Augmented) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			if j == m.c-1 && j > 0 {
				sb.WriteString(_fmtBar)
			} else if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}

// MarshalJSON encodes m as a nested array of rows.
func (m Augmented) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Data())
}

// UnmarshalJSON decodes a nested array of rows and validates it.
func (m *Augmented) UnmarshalJSON(b []byte) error {
	var rows [][]float64
	if err := json.Unmarshal(b, &rows); err != nil {
		return fmt.Errorf("matrix: decode rows: %w", err)
	}
	v, err := New(rows)
	if err != nil {
		return err
	}
	*m = v

	return nil
}

// rowView returns a non-copy view of row i for package-internal kernels.
func (m Augmented) rowView(i int) []float64 {
	return m.data[i*m.c : (i+1)*m.c]
}

// withData returns a matrix sharing m's shape but owning buf.
func (m Augmented) withData(buf []float64) Augmented {
	return Augmented{r: m.r, c: m.c, data: buf}
}
