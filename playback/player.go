// SPDX-License-Identifier: MIT

package playback

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/rowtrace/elimination"
	"github.com/katalvlaran/rowtrace/matrix"
)

// DefaultInterval is the cadence used when none is configured.
const DefaultInterval = 800 * time.Millisecond

// ErrInvalidInterval is returned by New for a non-positive interval.
var ErrInvalidInterval = errors.New("playback: interval must be positive")

// Applier receives the row operations of a sequence. *timeline.Machine
// satisfies it.
type Applier interface {
	Apply(op matrix.RowOperation) error
}

// ApplierFunc adapts a function to Applier.
type ApplierFunc func(op matrix.RowOperation) error

// Apply implements Applier.
func (f ApplierFunc) Apply(op matrix.RowOperation) error { return f(op) }

// Option configures a Player.
type Option func(*Player)

// WithLogger logs each applied step at Debug level.
func WithLogger(l *zap.Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.log = l
		}
	}
}

// WithOnStep registers fn to be called after each step is handled,
// including the initial and complete steps.
func WithOnStep(fn func(elimination.Step)) Option {
	return func(p *Player) { p.onStep = fn }
}

// Player paces a step sequence.
type Player struct {
	interval time.Duration
	log      *zap.Logger
	onStep   func(elimination.Step)
}

// New returns a Player that applies one operation per interval.
func New(interval time.Duration, opts ...Option) (*Player, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}
	p := &Player{interval: interval, log: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p, nil
}

// Run applies every operation of steps to a, waiting one interval before
// each. It returns the number of operations applied.
//
// Errors: ctx.Err() when cancelled, or the first Apply error wrapped with
// the step index. Either way, operations applied before the error stay.
func (p *Player) Run(ctx context.Context, a Applier, steps iter.Seq[elimination.Step]) (int, error) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	return p.consume(a, steps, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			return nil
		}
	})
}

// Drain applies every operation of steps to a without pacing.
func (p *Player) Drain(a Applier, steps iter.Seq[elimination.Step]) (int, error) {
	return p.consume(a, steps, func() error { return nil })
}

// Drain applies steps to a without pacing using a default Player.
func Drain(a Applier, steps iter.Seq[elimination.Step]) (int, error) {
	p := &Player{interval: DefaultInterval, log: zap.NewNop()}
	return p.Drain(a, steps)
}

func (p *Player) consume(a Applier, steps iter.Seq[elimination.Step], wait func() error) (int, error) {
	applied := 0
	for s := range steps {
		if s.Operation != nil {
			if err := wait(); err != nil {
				p.log.Debug("playback stopped", zap.Int("applied", applied), zap.Error(err))
				return applied, err
			}
			if err := a.Apply(s.Operation); err != nil {
				return applied, fmt.Errorf("playback: step %d: %w", s.Index, err)
			}
			applied++
			p.log.Debug("step applied", zap.Int("index", s.Index), zap.String("formula", s.Formula))
		}
		if p.onStep != nil {
			p.onStep(s)
		}
	}

	return applied, nil
}
