// SPDX-License-Identifier: MIT

package timeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/rowtrace/geometry"
	"github.com/katalvlaran/rowtrace/matrix"
	"github.com/katalvlaran/rowtrace/metrics"
	"github.com/katalvlaran/rowtrace/notation"
	"github.com/katalvlaran/rowtrace/solution"
)

// Machine is the undo/redo state machine of one session.
// It is not safe for concurrent use.
type Machine struct {
	opts    options
	initial matrix.Augmented
	hist    History
}

// New validates m and starts a timeline whose only snapshot is m.
//
// Errors: matrix.ErrTooFewRows, matrix.ErrTooManyRows,
// matrix.ErrTooManyColumns or another matrix.ErrValidation member.
func New(m matrix.Augmented, opts ...Option) (*Machine, error) {
	mc := &Machine{opts: gatherOptions(opts)}
	if err := mc.reset(m); err != nil {
		return nil, err
	}

	return mc, nil
}

// NewFromRows validates raw rows and calls New.
func NewFromRows(rows [][]float64, opts ...Option) (*Machine, error) {
	m, err := matrix.New(rows)
	if err != nil {
		return nil, err
	}

	return New(m, opts...)
}

// Apply performs op on the present matrix. On success the old present
// moves to Past and Future is cleared. On failure nothing changes.
func (mc *Machine) Apply(op matrix.RowOperation) error {
	if op == nil {
		mc.opts.rec.Operation("nil", metrics.OutcomeRejected)
		return ErrNilOperation
	}
	if am, ok := op.(matrix.AddMultiple); ok && mc.opts.strict && am.Target == am.Source {
		mc.reject(op, ErrSameRow)
		return ErrSameRow
	}

	next, err := matrix.Apply(mc.hist.Present.Matrix, op, matrix.WithTolerance(mc.opts.tol))
	if err != nil {
		mc.reject(op, err)
		return fmt.Errorf("timeline: apply %s: %w", op.Kind(), err)
	}

	snap := mc.snapshot(matrix.CleanMatrix(next, mc.opts.tol), op)
	mc.hist.Past = append(mc.hist.Past, mc.hist.Present)
	mc.hist.Present = snap
	mc.hist.Future = nil

	mc.opts.rec.Operation(op.Kind().String(), metrics.OutcomeOK)
	mc.opts.rec.HistoryAction(metrics.ActionApply, metrics.OutcomeOK)
	mc.opts.log.Debug("operation applied",
		zap.Stringer("operation", op),
		zap.String("formula", snap.Formula),
		zap.Int("position", mc.hist.Position()))

	return nil
}

func (mc *Machine) reject(op matrix.RowOperation, err error) {
	mc.opts.rec.Operation(op.Kind().String(), metrics.OutcomeRejected)
	mc.opts.rec.HistoryAction(metrics.ActionApply, metrics.OutcomeRejected)
	mc.opts.log.Debug("operation rejected", zap.Stringer("operation", op), zap.Error(err))
}

// Undo moves the cursor one snapshot back. It reports false, changing
// nothing, when Past is empty.
func (mc *Machine) Undo() bool {
	n := len(mc.hist.Past)
	if n == 0 {
		mc.opts.rec.HistoryAction(metrics.ActionUndo, metrics.OutcomeNoop)
		return false
	}

	prev := mc.hist.Past[n-1]
	mc.hist.Future = append([]Snapshot{mc.hist.Present}, mc.hist.Future...)
	mc.hist.Past = mc.hist.Past[:n-1:n-1]
	mc.hist.Present = prev
	mc.moved(metrics.ActionUndo)

	return true
}

// Redo moves the cursor one snapshot forward. It reports false, changing
// nothing, when Future is empty.
func (mc *Machine) Redo() bool {
	if len(mc.hist.Future) == 0 {
		mc.opts.rec.HistoryAction(metrics.ActionRedo, metrics.OutcomeNoop)
		return false
	}

	next := mc.hist.Future[0]
	mc.hist.Past = append(mc.hist.Past, mc.hist.Present)
	mc.hist.Future = mc.hist.Future[1:]
	if len(mc.hist.Future) == 0 {
		mc.hist.Future = nil
	}
	mc.hist.Present = next
	mc.moved(metrics.ActionRedo)

	return true
}

// JumpTo moves the cursor to index i of History.Flatten. An index outside
// [0, Len) is a no-op and reports false; jumping to the current position
// reports true and changes nothing.
func (mc *Machine) JumpTo(i int) bool {
	if i < 0 || i >= mc.hist.Len() {
		mc.opts.rec.HistoryAction(metrics.ActionJump, metrics.OutcomeNoop)
		mc.opts.log.Debug("jump out of range", zap.Int("index", i), zap.Int("len", mc.hist.Len()))
		return false
	}
	if i == mc.hist.Position() {
		mc.opts.rec.HistoryAction(metrics.ActionJump, metrics.OutcomeNoop)
		return true
	}

	all := mc.hist.Flatten()
	mc.hist.Past = all[:i:i]
	mc.hist.Present = all[i]
	mc.hist.Future = nil
	if i+1 < len(all) {
		mc.hist.Future = all[i+1:]
	}
	mc.moved(metrics.ActionJump)

	return true
}

func (mc *Machine) moved(action string) {
	mc.opts.rec.HistoryAction(action, metrics.OutcomeOK)
	mc.opts.log.Debug("cursor moved",
		zap.String("action", action),
		zap.Int("position", mc.hist.Position()),
		zap.Int("len", mc.hist.Len()))
}

// Reset discards the whole timeline and starts over from m.
// When m is invalid the timeline is left unchanged.
func (mc *Machine) Reset(m matrix.Augmented) error {
	if err := mc.reset(m); err != nil {
		mc.opts.rec.HistoryAction(metrics.ActionReset, metrics.OutcomeRejected)
		return err
	}
	mc.opts.rec.HistoryAction(metrics.ActionReset, metrics.OutcomeOK)
	mc.opts.log.Debug("timeline reset", zap.Int("rows", m.Rows()), zap.Int("cols", m.Cols()))

	return nil
}

func (mc *Machine) reset(m matrix.Augmented) error {
	if err := matrix.ValidateInput(m.Data()); err != nil {
		return err
	}
	mc.initial = m
	mc.hist = History{Present: mc.snapshot(m, nil)}

	return nil
}

func (mc *Machine) snapshot(m matrix.Augmented, op matrix.RowOperation) Snapshot {
	s := Snapshot{
		Matrix:     m,
		Operation:  op,
		Projection: geometry.Project(m),
	}
	if op == nil {
		s.Explanation = mc.opts.explainer.Initial()
		return s
	}
	s.Explanation = mc.opts.explainer.Operation(op)
	s.Formula = notation.Formula(op)

	return s
}

// State returns a deep copy of the history.
func (mc *Machine) State() History { return mc.hist.clone() }

// Present returns a copy of the snapshot at the cursor.
func (mc *Machine) Present() Snapshot { return mc.hist.Present.clone() }

// Position is the cursor index into History.Flatten.
func (mc *Machine) Position() int { return mc.hist.Position() }

// Len is the number of snapshots on the timeline.
func (mc *Machine) Len() int { return mc.hist.Len() }

// CanUndo reports whether Undo would move the cursor.
func (mc *Machine) CanUndo() bool { return len(mc.hist.Past) > 0 }

// CanRedo reports whether Redo would move the cursor.
func (mc *Machine) CanRedo() bool { return len(mc.hist.Future) > 0 }

// Initial returns the matrix the timeline starts from.
func (mc *Machine) Initial() matrix.Augmented { return mc.initial }

// Operations returns the operations along the whole timeline, Future
// included, in order. Replay(Initial(), Operations(), Position()) rebuilds
// this Machine.
func (mc *Machine) Operations() []matrix.RowOperation {
	ops := make([]matrix.RowOperation, 0, mc.hist.Len()-1)
	for _, s := range mc.hist.Flatten() {
		if s.Operation != nil {
			ops = append(ops, s.Operation)
		}
	}

	return ops
}

// Status classifies the present matrix.
func (mc *Machine) Status() solution.Report {
	r := solution.Analyze(mc.hist.Present.Matrix)
	mc.opts.rec.Classification(r.Kind.String())

	return r
}

// Explainer returns the explainer snapshots are rendered with.
func (mc *Machine) Explainer() *notation.Explainer { return mc.opts.explainer }
