// SPDX-License-Identifier: MIT

// Package matrix: numeric policy and functional options.
//
// Design goals:
//   - Deterministic behavior: no global mutable state, no implicit randomness.
//   - Single source of truth for the tolerance used by zero checks and cleaning.
//   - Safe by construction: option constructors panic only on nonsensical values.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTolerance is the threshold below which a value is treated as zero.
	// Replays are bit-identical only under the same tolerance.
	DefaultTolerance = 1e-10

	// MaxRows bounds the number of equations accepted as input.
	MaxRows = 6

	// MaxCols bounds the number of columns (variables + constant) accepted as input.
	MaxCols = 4

	// MinRows and MinCols are the structural minimums of an augmented matrix.
	MinRows = 1
	MinCols = 2
)

const panicToleranceInvalid = "matrix: WithTolerance: tolerance must be finite, non-negative"

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*Options)

// Options stores the effective numeric policy after applying Option setters.
type Options struct {
	tol float64 // >= 0; DefaultTolerance
}

// Tolerance returns the resolved zero threshold.
func (o Options) Tolerance() float64 { return o.tol }

// WithTolerance overrides the zero threshold.
// Panics when tol is negative, NaN or Inf (programmer error).
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// NewOptions resolves opts on top of the defaults.
// Nil options are skipped.
func NewOptions(opts ...Option) Options {
	o := Options{tol: DefaultTolerance}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
