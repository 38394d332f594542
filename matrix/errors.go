// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All primitives MUST return these sentinels (optionally wrapped with
// an operation tag) and tests MUST check them via errors.Is. No primitive
// panics on user-triggered error conditions.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & GROUPING
// -------------------------
// Every message is prefixed with "matrix: ...". Concrete sentinels wrap one of
// the two family sentinels so callers can match either the precise kind
// (errors.Is(err, ErrScalarZero)) or the whole family
// (errors.Is(err, ErrInvalidOperation)).
//
// ERROR PRIORITY (documented, enforced in tests):
// shape -> non-finite entry -> input bounds -> row index -> scalar.

var (
	// ErrValidation is the family of input-shape and entry violations.
	// It is surfaced before any computation begins.
	ErrValidation = errors.New("matrix: validation failed")

	// ErrInvalidOperation is the family of rejected row operations.
	// A rejected operation never produces a partially transformed matrix.
	ErrInvalidOperation = errors.New("matrix: invalid operation")
)

var (
	// ErrNotRectangular indicates rows of differing length.
	ErrNotRectangular = fmt.Errorf("%w: rows differ in length", ErrValidation)

	// ErrTooFewRows indicates a matrix without rows.
	ErrTooFewRows = fmt.Errorf("%w: at least one row is required", ErrValidation)

	// ErrTooFewColumns indicates fewer than two columns (one coefficient plus the constant).
	ErrTooFewColumns = fmt.Errorf("%w: at least two columns are required", ErrValidation)

	// ErrNonNumericEntry indicates a NaN or ±Inf entry.
	ErrNonNumericEntry = fmt.Errorf("%w: entry is NaN or Inf", ErrValidation)

	// ErrTooManyRows indicates an input system with more than MaxRows equations.
	ErrTooManyRows = fmt.Errorf("%w: too many rows", ErrValidation)

	// ErrTooManyColumns indicates an input system with more than MaxCols columns.
	ErrTooManyColumns = fmt.Errorf("%w: too many columns", ErrValidation)
)

var (
	// ErrScalarZero is returned by ScaleRow when the scalar is zero within tolerance.
	ErrScalarZero = fmt.Errorf("%w: scalar is zero", ErrInvalidOperation)

	// ErrRowOutOfRange indicates a row index outside [0, Rows()).
	ErrRowOutOfRange = fmt.Errorf("%w: row index out of range", ErrInvalidOperation)

	// ErrNonFiniteScalar indicates a NaN or ±Inf scalar; applying it would
	// break the finite-entry invariant.
	ErrNonFiniteScalar = fmt.Errorf("%w: scalar is NaN or Inf", ErrInvalidOperation)

	// ErrUnknownOperation is returned for a RowOperation value outside the closed set.
	ErrUnknownOperation = fmt.Errorf("%w: unknown row operation", ErrInvalidOperation)

	// ErrOutOfRange indicates an (row, col) accessor index outside bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")
)

// Operation name constants for unified error wrapping.
const (
	opSwapRows    = "SwapRows"
	opScaleRow    = "ScaleRow"
	opAddMultiple = "AddMultipleOfRow"
	opApply       = "Apply"
	opNew         = "New"
)

// matrixErrorf wraps err with an operation tag, preserving the sentinel via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
