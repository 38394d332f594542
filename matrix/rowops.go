// SPDX-License-Identifier: MIT

// Package matrix - elementary row operations.
//
// Purpose:
//   - Provide the three elementary row operations as pure functions over Augmented.
//   - Provide zero checks and cleaning under a single tolerance policy.
//
// Contract:
//   - Inputs are read-only; every function returns a freshly allocated matrix.
//   - On error the returned matrix is the zero value and the input is untouched.
//   - Fixed loop orders: identical inputs give bit-identical outputs.

package matrix

import (
	"fmt"
	"math"
)

// Clone returns a deep copy of m.
// Complexity: O(r*c).
func Clone(m Augmented) Augmented {
	buf := make([]float64, len(m.data))
	copy(buf, m.data)

	return m.withData(buf)
}

// SwapRows returns a copy of m with rows i and j exchanged.
// When i == j the result is a plain clone.
//
// Errors:
//   - ErrRowOutOfRange when i or j is outside [0, Rows()).
func SwapRows(m Augmented, i, j int) (Augmented, error) {
	if err := validateRow(m, i); err != nil {
		return Augmented{}, matrixErrorf(opSwapRows, err)
	}
	if err := validateRow(m, j); err != nil {
		return Augmented{}, matrixErrorf(opSwapRows, err)
	}

	out := Clone(m)
	if i == j {
		return out, nil
	}
	ri, rj := out.rowView(i), out.rowView(j)
	for c := range ri {
		ri[c], rj[c] = rj[c], ri[c]
	}

	return out, nil
}

// ScaleRow returns a copy of m with every entry of row i multiplied by k.
//
// Implementation:
//   - Stage 1: validate i, finiteness of k, and |k| ≥ tolerance.
//   - Stage 2: clone and scale row i in column order.
//
// Errors:
//   - ErrRowOutOfRange, ErrNonFiniteScalar, ErrScalarZero (|k| < tolerance, including exact 0).
func ScaleRow(m Augmented, i int, k float64, opts ...Option) (Augmented, error) {
	if err := (Scale{Row: i, Scalar: k}).Validate(m.r, opts...); err != nil {
		return Augmented{}, matrixErrorf(opScaleRow, err)
	}

	out := Clone(m)
	row := out.rowView(i)
	for c := range row {
		row[c] *= k
	}

	return out, nil
}

// AddMultipleOfRow returns a copy of m with target[c] += k*source[c] for every column c.
// target == source is accepted and scales the row by (1+k); policy on that
// case belongs to callers.
//
// Errors:
//   - ErrRowOutOfRange, ErrNonFiniteScalar.
func AddMultipleOfRow(m Augmented, target, source int, k float64) (Augmented, error) {
	if err := (AddMultiple{Target: target, Source: source, Scalar: k}).Validate(m.r); err != nil {
		return Augmented{}, matrixErrorf(opAddMultiple, err)
	}

	out := Clone(m)
	dst := out.rowView(target)
	// Read the source from the untouched input so target == source doubles
	// against the original values rather than a half-updated row.
	src := m.rowView(source)
	for c := range dst {
		dst[c] += k * src[c]
	}

	return out, nil
}

// Apply dispatches op to the matching primitive.
//
// Errors:
//   - whatever the primitive returns; ErrUnknownOperation for nil or foreign values.
func Apply(m Augmented, op RowOperation, opts ...Option) (Augmented, error) {
	switch o := op.(type) {
	case Swap:
		return SwapRows(m, o.Row1, o.Row2)
	case Scale:
		return ScaleRow(m, o.Row, o.Scalar, opts...)
	case AddMultiple:
		return AddMultipleOfRow(m, o.Target, o.Source, o.Scalar)
	default:
		return Augmented{}, matrixErrorf(opApply, fmt.Errorf("%T: %w", op, ErrUnknownOperation))
	}
}

// IsZeroRow reports whether every |row[c]| < tol.
func IsZeroRow(row []float64, tol float64) bool {
	for _, v := range row {
		if !isNearZero(v, tol) {
			return false
		}
	}

	return true
}

// CleanMatrix returns a copy of m with every entry of magnitude below tol
// replaced by exactly 0 (negative zero included), so rounding residue never
// turns into a spurious pivot.
func CleanMatrix(m Augmented, tol float64) Augmented {
	out := Clone(m)
	for k, v := range out.data {
		if isNearZero(v, tol) {
			out.data[k] = 0
		}
	}

	return out
}

// IsNearZero reports |v| < tol.
func IsNearZero(v, tol float64) bool { return isNearZero(v, tol) }

func isNearZero(v, tol float64) bool {
	return math.Abs(v) < tol
}
