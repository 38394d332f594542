// SPDX-License-Identifier: MIT

// Package solution classifies a reduced augmented matrix and, when the
// solution is unique, reads it off.
//
// Classification rules (applied in order):
//  1. Inconsistency: a row whose coefficients are all ≈0 while its constant
//     is not means no solution (None). This check wins over everything else.
//  2. Effective rank: count rows that are not entirely ≈0 (coefficients and
//     constant). rank ≥ vars means Unique, otherwise Infinite.
//
// The rules assume a matrix already reduced by elimination. On an unreduced
// matrix the rank count is an upper bound and the result may be optimistic.
package solution

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/rowtrace/matrix"
)

// Kind is the solution type of a linear system.
type Kind int

const (
	// Unique means exactly one solution.
	Unique Kind = iota + 1
	// Infinite means a free variable remains.
	Infinite
	// None means the system is inconsistent.
	None
)

// String returns "unique", "infinite" or "none".
func (k Kind) String() string {
	switch k {
	case Unique:
		return "unique"
	case Infinite:
		return "infinite"
	case None:
		return "none"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var (
	// ErrNotUnique is returned by ExtractSolution when Classify is not Unique.
	ErrNotUnique = errors.New("solution: system has no unique solution")

	// ErrEmptyMatrix is returned for the zero-value matrix.
	ErrEmptyMatrix = errors.New("solution: empty matrix")
)

// Classify applies the rules above with matrix.DefaultTolerance.
func Classify(m matrix.Augmented) Kind {
	return ClassifyTol(m, matrix.DefaultTolerance)
}

// ClassifyTol is Classify under an explicit tolerance.
// The zero-value matrix classifies as Infinite (no constraints at all).
//
// Complexity: O(r*c).
func ClassifyTol(m matrix.Augmented, tol float64) Kind {
	rows := m.Data()
	vars := m.Vars()

	// Stage 1: inconsistency has the highest priority.
	for _, row := range rows {
		if matrix.IsZeroRow(row[:vars], tol) && !matrix.IsNearZero(row[vars], tol) {
			return None
		}
	}

	// Stage 2: effective rank.
	rank := 0
	for _, row := range rows {
		if !matrix.IsZeroRow(row, tol) {
			rank++
		}
	}
	if rank >= vars && vars > 0 {
		return Unique
	}

	return Infinite
}

// Rank returns the number of rows that are not entirely ≈0.
func Rank(m matrix.Augmented, tol float64) int {
	rank := 0
	for _, row := range m.Data() {
		if !matrix.IsZeroRow(row, tol) {
			rank++
		}
	}

	return rank
}

// ExtractSolution reads m[i][last] as the value of variable i.
//
// This reads the diagonal layout of a fully reduced RREF with contiguous
// pivots. It does NOT locate pivots: when elimination skipped a column and a
// later column still produced a pivot, row i no longer holds variable i.
// Use PivotAligned to detect that case.
//
// Errors:
//   - ErrEmptyMatrix, ErrNotUnique.
func ExtractSolution(m matrix.Augmented) ([]float64, error) {
	if m.IsEmpty() {
		return nil, ErrEmptyMatrix
	}
	if k := Classify(m); k != Unique {
		return nil, fmt.Errorf("%w: %s", ErrNotUnique, k)
	}

	vars := m.Vars()
	out := make([]float64, vars)
	for i := 0; i < vars; i++ {
		v, err := m.At(i, vars)
		if err != nil {
			return nil, fmt.Errorf("solution: read variable %d: %w", i, err)
		}
		out[i] = v
	}

	return out, nil
}
