// Package matrix provides the augmented-matrix value and the elementary row
// operations every other rowtrace package builds on.
//
// The matrix package provides:
//
//   - Augmented: an immutable, validated, row-major [A | b] matrix.
//   - RowOperation: the closed set Swap / Scale / AddMultiple.
//   - Pure primitives (SwapRows, ScaleRow, AddMultipleOfRow, Apply) that
//     always return a new matrix and never mutate their input.
//   - Validate / ValidateInput for raw [][]float64 input, and CleanMatrix /
//     IsZeroRow under the DefaultTolerance numeric policy.
//
// Errors are package sentinels grouped under ErrValidation and
// ErrInvalidOperation; match them with errors.Is.
package matrix
