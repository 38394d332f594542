// SPDX-License-Identifier: MIT

package elimination

import (
	"errors"

	"go.uber.org/zap"

	"github.com/katalvlaran/rowtrace/metrics"
	"github.com/katalvlaran/rowtrace/notation"
)

// ErrUnknownMode is returned by ParseMode.
var ErrUnknownMode = errors.New("elimination: unknown mode")

// Option configures observability and text rendering; none of them changes
// the produced operations.
type Option func(*options)

type options struct {
	log       *zap.Logger
	rec       *metrics.Recorder
	explainer *notation.Explainer
}

func gatherOptions(opts []Option) options {
	o := options{
		log:       zap.NewNop(),
		explainer: notation.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithLogger logs every emitted step at Debug level.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMetrics counts emitted steps by phase.
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *options) { o.rec = r }
}

// WithExplainer renders explanations in the explainer's locale.
func WithExplainer(e *notation.Explainer) Option {
	return func(o *options) {
		if e != nil {
			o.explainer = e
		}
	}
}
