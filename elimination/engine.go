// SPDX-License-Identifier: MIT

package elimination

import (
	"iter"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/rowtrace/geometry"
	"github.com/katalvlaran/rowtrace/matrix"
	"github.com/katalvlaran/rowtrace/notation"
)

// Tolerance is the pivot threshold: a candidate with |value| below it is no pivot.
const Tolerance = matrix.DefaultTolerance

// Steps returns the lazy elimination sequence for m under cfg.
//
// Algorithm (column-major, pivotRow starts at 0):
//  1. Emit an initial step holding m.
//  2. For each coefficient column c while pivotRow < rows:
//     a. Pivot selection. With partial pivoting, scan rows pivotRow..rows-1 for
//     the largest |m[r][c]| (first wins on ties). Below Tolerance the column
//     is skipped and pivotRow stays. Otherwise swap the best row into
//     pivotRow when they differ. Without partial pivoting the column is
//     skipped when |m[pivotRow][c]| < Tolerance.
//     b. Normalize. Scale pivotRow by 1/pivot unless the pivot is already ≈1.
//     c. Eliminate. For every row in range (below pivotRow for REF, every other
//     row for RREF) with |m[r][c]| ≥ Tolerance, add -m[r][c] times pivotRow.
//     d. Advance pivotRow.
//  3. Emit a complete step naming the achieved form.
//
// Every operation is followed by CleanMatrix and emits one step.
//
// Behavior highlights:
//   - Each call starts from scratch; identical (m, cfg) give identical steps.
//   - The sequence holds no resources: breaking out of a range loop is safe.
//
// Complexity:
//   - Time O(r²·c) operations plus O(r·c) per emitted step for copies and projection.
func Steps(m matrix.Augmented, cfg Config, opts ...Option) iter.Seq[Step] {
	o := gatherOptions(opts)

	return func(yield func(Step) bool) {
		r := &runner{cfg: cfg, opts: o, yield: yield, cur: m}
		r.run()
	}
}

// Solve drains Steps into a Trace.
func Solve(m matrix.Augmented, cfg Config, opts ...Option) Trace {
	o := gatherOptions(opts)
	start := time.Now()

	t := Trace{Config: cfg}
	for s := range Steps(m, cfg, opts...) {
		t.Steps = append(t.Steps, s)
	}
	o.rec.ObserveTrace(time.Since(start).Seconds())

	return t
}

// runner carries the state of one pass.
type runner struct {
	cfg   Config
	opts  options
	yield func(Step) bool
	cur   matrix.Augmented
	index int

	done   bool // consumer stopped ranging
	failed bool // an operation was rejected
}

func (r *runner) run() {
	if !r.emit(PhaseInitial, nil, r.opts.explainer.Initial(), "") {
		return
	}

	rows, cols := r.cur.Rows(), r.cur.Cols()
	pivotRow := 0
	for c := 0; c <= cols-2 && pivotRow < rows; c++ {
		found := r.selectPivot(c, pivotRow)
		if r.halted() {
			break
		}
		if !found {
			r.opts.log.Debug("column has no usable pivot", zap.Int("column", c), zap.Int("pivot_row", pivotRow))
			continue
		}
		r.normalize(c, pivotRow)
		if r.halted() {
			break
		}
		r.eliminate(c, pivotRow)
		if r.halted() {
			break
		}
		pivotRow++
	}
	if r.done {
		return
	}

	reduced := r.cfg.Mode == RREF
	r.emit(PhaseComplete, nil, r.opts.explainer.Complete(reduced), r.cfg.Mode.String())
}

// halted reports whether the consumer stopped or an operation was rejected.
func (r *runner) halted() bool { return r.done || r.failed }

// selectPivot reports whether column c has a pivot and brings it into pivotRow.
func (r *runner) selectPivot(c, pivotRow int) bool {
	if !r.cfg.PartialPivoting {
		return math.Abs(r.at(pivotRow, c)) >= Tolerance
	}

	best, bestAbs := pivotRow, math.Abs(r.at(pivotRow, c))
	for i := pivotRow + 1; i < r.cur.Rows(); i++ {
		if v := math.Abs(r.at(i, c)); v > bestAbs {
			best, bestAbs = i, v
		}
	}
	if bestAbs < Tolerance {
		return false
	}
	if best != pivotRow {
		r.apply(matrix.Swap{Row1: pivotRow, Row2: best})
	}

	return true
}

func (r *runner) normalize(c, pivotRow int) {
	pivot := r.at(pivotRow, c)
	if math.Abs(pivot) < Tolerance || math.Abs(pivot-1) < Tolerance {
		return
	}
	r.apply(matrix.Scale{Row: pivotRow, Scalar: 1 / pivot})
}

func (r *runner) eliminate(c, pivotRow int) {
	start := pivotRow + 1
	if r.cfg.Mode == RREF {
		start = 0
	}
	for i := start; i < r.cur.Rows(); i++ {
		if i == pivotRow {
			continue
		}
		entry := r.at(i, c)
		if math.Abs(entry) < Tolerance {
			continue
		}
		if !r.apply(matrix.AddMultiple{Target: i, Source: pivotRow, Scalar: -entry}) {
			return
		}
	}
}

// apply performs op, cleans, and emits an intermediate step. It returns
// false once the run is halted. A rejection is only possible for a pivot
// whose reciprocal falls below Tolerance; the run then jumps to the
// complete step with the matrix as it stands.
func (r *runner) apply(op matrix.RowOperation) bool {
	next, err := matrix.Apply(r.cur, op)
	if err != nil {
		r.failed = true
		r.opts.log.Warn("elimination stopped: operation rejected",
			zap.Stringer("operation", op),
			zap.Error(err))
		return false
	}
	r.cur = matrix.CleanMatrix(next, Tolerance)

	return r.emit(PhaseIntermediate, op, r.opts.explainer.Operation(op), notation.Formula(op))
}

func (r *runner) emit(phase Phase, op matrix.RowOperation, explanation, formula string) bool {
	if r.done {
		return false
	}
	s := Step{
		Index:       r.index,
		Phase:       phase,
		Matrix:      r.cur,
		Operation:   op,
		Explanation: explanation,
		Formula:     formula,
		Projection:  geometry.Project(r.cur),
	}
	r.index++
	r.opts.rec.Step(phase.String())
	r.opts.log.Debug("step",
		zap.Int("index", s.Index),
		zap.Stringer("phase", phase),
		zap.String("formula", formula))

	if !r.yield(s) {
		r.done = true
		return false
	}

	return true
}

// at reads an entry whose indices the loops above already bound.
func (r *runner) at(i, j int) float64 {
	v, _ := r.cur.At(i, j)
	return v
}
