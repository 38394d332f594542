// SPDX-License-Identifier: MIT

// Package matrix - centralized validators.
//
// Purpose:
//   - Classify raw [][]float64 input before any computation (Validate, never fails).
//   - Enforce the input bounds of the interactive solver (ValidateInput).
//   - Check row indices and scalars for row operations.
//
// Contract:
//   - Validators are pure and deterministic; they never mutate inputs.
//   - The first violated check wins, in the documented priority order.

package matrix

import (
	"fmt"
	"math"
)

// Status is the outcome of Validate.
type Status int

const (
	// StatusOK means the input is a well-formed augmented matrix.
	StatusOK Status = iota
	// StatusNotRectangular means rows differ in length.
	StatusNotRectangular
	// StatusTooFewRows means there are no rows.
	StatusTooFewRows
	// StatusTooFewColumns means rows have fewer than two entries.
	StatusTooFewColumns
	// StatusNonNumericEntry means an entry is NaN or ±Inf.
	StatusNonNumericEntry
)

var statusNames = [...]string{
	StatusOK:              "OK",
	StatusNotRectangular:  "NotRectangular",
	StatusTooFewRows:      "TooFewRows",
	StatusTooFewColumns:   "TooFewColumns",
	StatusNonNumericEntry: "NonNumericEntry",
}

// String returns the status name.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}

	return statusNames[s]
}

// Err maps a status to its sentinel; StatusOK maps to nil.
func (s Status) Err() error {
	switch s {
	case StatusOK:
		return nil
	case StatusNotRectangular:
		return ErrNotRectangular
	case StatusTooFewRows:
		return ErrTooFewRows
	case StatusTooFewColumns:
		return ErrTooFewColumns
	case StatusNonNumericEntry:
		return ErrNonNumericEntry
	default:
		return ErrValidation
	}
}

// Validate classifies raw input. It never fails.
//
// Priority: TooFewRows -> TooFewColumns (first row) -> NotRectangular -> NonNumericEntry.
//
// Complexity: O(r*c).
func Validate(rows [][]float64) Status {
	if len(rows) < MinRows {
		return StatusTooFewRows
	}
	width := len(rows[0])
	if width < MinCols {
		return StatusTooFewColumns
	}
	for _, row := range rows[1:] {
		if len(row) != width {
			return StatusNotRectangular
		}
	}
	for _, row := range rows {
		for _, v := range row {
			if !isFinite(v) {
				return StatusNonNumericEntry
			}
		}
	}

	return StatusOK
}

// ValidateInput is Validate plus the solver input bounds
// (MinRows..MaxRows rows, MinCols..MaxCols columns).
func ValidateInput(rows [][]float64) error {
	if err := Validate(rows).Err(); err != nil {
		return err
	}
	if len(rows) > MaxRows {
		return fmt.Errorf("%w: %d > %d", ErrTooManyRows, len(rows), MaxRows)
	}
	if len(rows[0]) > MaxCols {
		return fmt.Errorf("%w: %d > %d", ErrTooManyColumns, len(rows[0]), MaxCols)
	}

	return nil
}

// CheckBounds applies the solver input bounds to an already valid matrix.
func CheckBounds(m Augmented) error {
	if m.IsEmpty() {
		return ErrTooFewRows
	}
	if m.r > MaxRows {
		return fmt.Errorf("%w: %d > %d", ErrTooManyRows, m.r, MaxRows)
	}
	if m.c > MaxCols {
		return fmt.Errorf("%w: %d > %d", ErrTooManyColumns, m.c, MaxCols)
	}

	return nil
}

// validateRow checks 0 ≤ i < m.Rows().
func validateRow(m Augmented, i int) error {
	if i < 0 || i >= m.r {
		return fmt.Errorf("row %d of %d: %w", i, m.r, ErrRowOutOfRange)
	}

	return nil
}

// validateScalar rejects NaN/±Inf scalars.
func validateScalar(k float64) error {
	if !isFinite(k) {
		return ErrNonFiniteScalar
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
