// SPDX-License-Identifier: MIT

package timeline

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/rowtrace/matrix"
	"github.com/katalvlaran/rowtrace/metrics"
	"github.com/katalvlaran/rowtrace/notation"
)

var (
	// ErrSameRow rejects AddMultiple with Target == Source under WithStrictAddMultiple.
	ErrSameRow = fmt.Errorf("%w: add_multiple target equals source", matrix.ErrInvalidOperation)
	// ErrCursorOutOfRange is returned by Replay for a cursor outside the replayed timeline.
	ErrCursorOutOfRange = errors.New("timeline: cursor out of range")
	// ErrNilOperation is returned by Apply for a nil operation.
	ErrNilOperation = fmt.Errorf("%w: nil operation", matrix.ErrUnknownOperation)
)

// Option configures a Machine.
type Option func(*options)

type options struct {
	log       *zap.Logger
	rec       *metrics.Recorder
	explainer *notation.Explainer
	strict    bool
	tol       float64
}

func gatherOptions(opts []Option) options {
	o := options{
		log:       zap.NewNop(),
		explainer: notation.Default(),
		tol:       matrix.DefaultTolerance,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithLogger logs accepted and rejected actions at Debug level.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMetrics counts operations and history actions.
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *options) { o.rec = r }
}

// WithExplainer renders snapshot explanations in the explainer's locale.
func WithExplainer(e *notation.Explainer) Option {
	return func(o *options) {
		if e != nil {
			o.explainer = e
		}
	}
}

// WithStrictAddMultiple rejects AddMultiple operations whose target and
// source are the same row.
func WithStrictAddMultiple() Option {
	return func(o *options) { o.strict = true }
}

// WithTolerance sets the zero threshold used for scalar checks and for
// cleaning each new matrix. Panics if tol is negative or not finite.
func WithTolerance(tol float64) Option {
	matrix.WithTolerance(tol) // validates
	return func(o *options) { o.tol = tol }
}
