// SPDX-License-Identifier: MIT
package timeline_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/katalvlaran/rowtrace/elimination"
	"github.com/katalvlaran/rowtrace/matrix"
	"github.com/katalvlaran/rowtrace/metrics"
	"github.com/katalvlaran/rowtrace/notation"
	"github.com/katalvlaran/rowtrace/solution"
	"github.com/katalvlaran/rowtrace/timeline"
)

var system3 = [][]float64{{1, 2, 3, 14}, {2, 5, 6, 30}, {3, 1, 1, 8}}

func newMachine(t *testing.T, rows [][]float64, opts ...timeline.Option) *timeline.Machine {
	t.Helper()
	mc, err := timeline.NewFromRows(rows, opts...)
	require.NoError(t, err)

	return mc
}

var ops = []matrix.RowOperation{
	matrix.Swap{Row1: 0, Row2: 2},
	matrix.Scale{Row: 0, Scalar: 1.0 / 3},
	matrix.AddMultiple{Target: 1, Source: 0, Scalar: -2},
	matrix.AddMultiple{Target: 2, Source: 0, Scalar: -1},
}

func applyAll(t *testing.T, mc *timeline.Machine, list []matrix.RowOperation) {
	t.Helper()
	for _, op := range list {
		require.NoError(t, mc.Apply(op), "%v", op)
	}
}

func TestNew_InitialSnapshot(t *testing.T) {
	mc := newMachine(t, system3)
	h := mc.State()

	assert.Empty(t, h.Past)
	assert.Empty(t, h.Future)
	assert.Nil(t, h.Present.Operation)
	assert.Empty(t, h.Present.Formula)
	assert.Equal(t, "Initial augmented matrix.", h.Present.Explanation)
	assert.Len(t, h.Present.Projection.Planes, 3)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Position())
	assert.False(t, mc.CanUndo())
	assert.False(t, mc.CanRedo())
	assert.True(t, mc.Initial().Equal(matrix.MustNew(system3)))
}

func TestNew_RejectsInvalid(t *testing.T) {
	_, err := timeline.New(matrix.Augmented{})
	assert.ErrorIs(t, err, matrix.ErrTooFewRows)

	_, err = timeline.NewFromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrValidation)

	_, err = timeline.NewFromRows([][]float64{{1, 2, 3, 4, 5}})
	assert.ErrorIs(t, err, matrix.ErrTooManyColumns)
}

func TestApply_SnapshotText(t *testing.T) {
	mc := newMachine(t, system3)
	require.NoError(t, mc.Apply(matrix.AddMultiple{Target: 2, Source: 0, Scalar: -2}))

	p := mc.Present()
	assert.Equal(t, "R3 → R3 - 2R1", p.Formula)
	assert.Equal(t, "Subtract 2 times row 1 from row 3.", p.Explanation)
	assert.Equal(t, matrix.AddMultiple{Target: 2, Source: 0, Scalar: -2}, p.Operation)
	assert.Equal(t, "x - 3y - 5z = -20", p.Projection.Planes[2].Equation)
}

func TestApply_AtomicOnFailure(t *testing.T) {
	mc := newMachine(t, system3)
	applyAll(t, mc, ops[:2])
	require.True(t, mc.Undo())
	before := mc.State()

	for _, bad := range []matrix.RowOperation{
		matrix.Scale{Row: 0, Scalar: 0},
		matrix.Swap{Row1: 0, Row2: 7},
		matrix.AddMultiple{Target: -1, Source: 0, Scalar: 1},
	} {
		err := mc.Apply(bad)
		require.Error(t, err, "%v", bad)
		assert.ErrorIs(t, err, matrix.ErrInvalidOperation)
		assert.Equal(t, before, mc.State(), "state after %v", bad)
	}

	assert.ErrorIs(t, mc.Apply(nil), timeline.ErrNilOperation)
	assert.Equal(t, before, mc.State())
}

func TestApply_ScaleZeroNamesCause(t *testing.T) {
	mc := newMachine(t, system3)
	err := mc.Apply(matrix.Scale{Row: 0, Scalar: 0})
	assert.ErrorIs(t, err, matrix.ErrScalarZero)
	assert.True(t, mc.Present().Matrix.Equal(matrix.MustNew(system3)))
}

func TestApply_CutsFuture(t *testing.T) {
	mc := newMachine(t, system3)
	applyAll(t, mc, ops)
	require.True(t, mc.Undo())
	require.True(t, mc.Undo())
	require.True(t, mc.CanRedo())

	require.NoError(t, mc.Apply(matrix.Swap{Row1: 1, Row2: 2}))
	h := mc.State()
	assert.Empty(t, h.Future)
	assert.False(t, mc.CanRedo())
	assert.Equal(t, 3, h.Position())
	assert.Equal(t, 4, h.Len())
	assert.False(t, mc.Redo())
}

func TestUndo_AllTheWayBack(t *testing.T) {
	mc := newMachine(t, system3)
	initial := mc.Present()
	applyAll(t, mc, ops)

	for range ops {
		require.True(t, mc.Undo())
	}
	assert.Equal(t, initial, mc.Present())
	assert.False(t, mc.Undo(), "empty past is a no-op")
	assert.Equal(t, initial, mc.Present())
	assert.Len(t, mc.State().Future, len(ops))
}

func TestRedo_Restores(t *testing.T) {
	mc := newMachine(t, system3)
	applyAll(t, mc, ops)
	want := mc.State()

	for range ops {
		require.True(t, mc.Undo())
	}
	for range ops {
		require.True(t, mc.Redo())
	}
	got := mc.State()
	assert.Equal(t, want.Flatten(), got.Flatten())
	assert.Equal(t, want.Position(), got.Position())
	assert.False(t, mc.Redo(), "empty future is a no-op")
}

func TestUndoRedo_Transitions(t *testing.T) {
	mc := newMachine(t, system3)
	applyAll(t, mc, ops[:3])
	full := mc.State().Flatten()

	require.True(t, mc.Undo())
	h := mc.State()
	assert.Equal(t, full[:2], h.Past)
	assert.Equal(t, full[2], h.Present)
	assert.Equal(t, full[3:], h.Future, "old present becomes the next redo target")

	require.True(t, mc.Undo())
	h = mc.State()
	assert.Equal(t, full[2:], h.Future, "future runs nearest first")

	require.True(t, mc.Redo())
	h = mc.State()
	assert.Equal(t, full[:2], h.Past)
	assert.Equal(t, full[2], h.Present)
	assert.Equal(t, full[3:], h.Future)
}

func TestJumpTo(t *testing.T) {
	mc := newMachine(t, system3)
	applyAll(t, mc, ops)
	full := mc.State().Flatten()

	require.True(t, mc.JumpTo(1))
	h := mc.State()
	assert.Equal(t, full[:1], h.Past)
	assert.Equal(t, full[1], h.Present)
	assert.Equal(t, full[2:], h.Future)
	assert.Equal(t, full, h.Flatten(), "jumping never changes the timeline")

	require.True(t, mc.JumpTo(1))
	assert.Equal(t, h, mc.State(), "second jump is idempotent")

	require.True(t, mc.JumpTo(len(full)-1))
	assert.Empty(t, mc.State().Future)
	require.True(t, mc.JumpTo(0))
	assert.Empty(t, mc.State().Past)
	assert.Equal(t, full, mc.State().Flatten())
}

func TestJumpTo_OutOfRangeIsNoop(t *testing.T) {
	mc := newMachine(t, system3)
	applyAll(t, mc, ops[:2])
	before := mc.State()

	assert.False(t, mc.JumpTo(-1))
	assert.False(t, mc.JumpTo(3))
	assert.Equal(t, before, mc.State())
}

func TestReset(t *testing.T) {
	mc := newMachine(t, system3)
	applyAll(t, mc, ops)
	require.True(t, mc.Undo())

	next := matrix.MustNew([][]float64{{1, 1, 2}, {2, 2, 4}})
	require.NoError(t, mc.Reset(next))
	h := mc.State()
	assert.Empty(t, h.Past)
	assert.Empty(t, h.Future)
	assert.True(t, h.Present.Matrix.Equal(next))
	assert.Len(t, h.Present.Projection.Lines, 2)
	assert.True(t, mc.Initial().Equal(next))

	before := mc.State()
	assert.ErrorIs(t, mc.Reset(matrix.Augmented{}), matrix.ErrTooFewRows)
	assert.Equal(t, before, mc.State(), "invalid reset keeps the timeline")
}

func TestState_IsACopy(t *testing.T) {
	mc := newMachine(t, system3)
	applyAll(t, mc, ops[:1])

	h := mc.State()
	h.Present.Projection.Planes[0].Color = "#000000"
	h.Past[0].Projection.Planes[0].Equation = "tampered"
	h.Past = append(h.Past, h.Present)

	again := mc.State()
	assert.NotEqual(t, "#000000", again.Present.Projection.Planes[0].Color)
	assert.NotEqual(t, "tampered", again.Past[0].Projection.Planes[0].Equation)
	assert.Len(t, again.Past, 1)
}

func TestPresent_CopiesLines(t *testing.T) {
	mc := newMachine(t, [][]float64{{2, 1, 5}, {1, -1, 1}})
	p := mc.Present()
	require.Len(t, p.Projection.Lines, 2)
	p.Projection.Lines[1].Equation = "tampered"

	assert.Equal(t, "x - y = 1", mc.Present().Projection.Lines[1].Equation)
}

func TestStrictAddMultiple(t *testing.T) {
	self := matrix.AddMultiple{Target: 1, Source: 1, Scalar: 1}

	lax := newMachine(t, system3)
	require.NoError(t, lax.Apply(self))
	row, err := lax.Present().Matrix.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 10, 12, 60}, row)

	strict := newMachine(t, system3, timeline.WithStrictAddMultiple())
	err = strict.Apply(self)
	assert.ErrorIs(t, err, timeline.ErrSameRow)
	assert.ErrorIs(t, err, matrix.ErrInvalidOperation)
	assert.False(t, strict.CanUndo())
}

func TestOperationsAndReplay(t *testing.T) {
	mc := newMachine(t, system3)
	applyAll(t, mc, ops)
	require.True(t, mc.Undo())
	require.True(t, mc.Undo())

	assert.Equal(t, ops, mc.Operations(), "future operations are part of the timeline")

	rp, err := timeline.Replay(mc.Initial(), mc.Operations(), mc.Position())
	require.NoError(t, err)
	want, got := mc.State(), rp.State()
	assert.Equal(t, want.Flatten(), got.Flatten(), "replay is bit-identical")
	assert.Equal(t, want.Position(), got.Position())
}

func TestReplay_Errors(t *testing.T) {
	m := matrix.MustNew(system3)

	_, err := timeline.Replay(m, ops, len(ops)+1)
	assert.ErrorIs(t, err, timeline.ErrCursorOutOfRange)
	_, err = timeline.Replay(m, ops, -1)
	assert.ErrorIs(t, err, timeline.ErrCursorOutOfRange)

	bad := append(append([]matrix.RowOperation{}, ops[:2]...), matrix.Scale{Row: 9, Scalar: 2})
	_, err = timeline.Replay(m, bad, 0)
	assert.ErrorIs(t, err, matrix.ErrRowOutOfRange)
	assert.Contains(t, err.Error(), "operation 2")
}

func TestFollowsElimination(t *testing.T) {
	m := matrix.MustNew(system3)
	mc, err := timeline.New(m)
	require.NoError(t, err)

	tr := elimination.Solve(m, elimination.DefaultConfig())
	for _, s := range tr.Steps {
		if s.Operation == nil {
			continue
		}
		require.NoError(t, mc.Apply(s.Operation))
		p := mc.Present()
		assert.True(t, p.Matrix.Equal(s.Matrix), "step %d", s.Index)
		assert.Equal(t, s.Formula, p.Formula)
		assert.Equal(t, s.Explanation, p.Explanation)
		assert.Equal(t, s.Projection.Planes, p.Projection.Planes)
	}

	st := mc.Status()
	assert.Equal(t, solution.Unique, st.Kind)
	assert.InDeltaSlice(t, []float64{1, 2, 3}, st.Solution, 1e-9)
}

func TestIndependentMachines(t *testing.T) {
	a := newMachine(t, system3)
	b := newMachine(t, system3)
	require.NoError(t, a.Apply(ops[0]))

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 1, b.Len())
}

func TestWithExplainer(t *testing.T) {
	es, err := notation.NewExplainer(language.Spanish)
	require.NoError(t, err)

	mc := newMachine(t, system3, timeline.WithExplainer(es))
	require.NoError(t, mc.Apply(matrix.Swap{Row1: 0, Row2: 1}))

	assert.Equal(t, "Intercambiar la fila 1 y la fila 2.", mc.Present().Explanation)
	assert.Equal(t, "R1 ↔ R2", mc.Present().Formula)
	assert.Equal(t, language.Spanish, mc.Explainer().Locale())
}

func TestWithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	mc := newMachine(t, system3, timeline.WithMetrics(metrics.NewRecorder(reg)))

	require.NoError(t, mc.Apply(ops[0]))
	require.Error(t, mc.Apply(matrix.Scale{Row: 0, Scalar: 0}))
	mc.Undo()
	mc.Undo()
	mc.Status()

	n, err := testutil.GatherAndCount(reg, "rowtrace_timeline_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "swap ok and scale rejected")

	n, err = testutil.GatherAndCount(reg, "rowtrace_timeline_history_actions_total")
	require.NoError(t, err)
	assert.Equal(t, 4, n, "apply ok, apply rejected, undo ok, undo noop")

	n, err = testutil.GatherAndCount(reg, "rowtrace_solution_classifications_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWithTolerance(t *testing.T) {
	rows := [][]float64{{1, 2, 3}, {1, 2.000001, 3}}
	sub := matrix.AddMultiple{Target: 1, Source: 0, Scalar: -1}

	loose := newMachine(t, rows, timeline.WithTolerance(1e-5))
	assert.ErrorIs(t, loose.Apply(matrix.Scale{Row: 0, Scalar: 1e-6}), matrix.ErrScalarZero)
	require.NoError(t, loose.Apply(sub))
	v, err := loose.Present().Matrix.At(1, 1)
	require.NoError(t, err)
	assert.Zero(t, v, "residue below the tolerance is cleaned")
	assert.Equal(t, solution.Infinite, loose.Status().Kind)

	strict := newMachine(t, rows)
	require.NoError(t, strict.Apply(matrix.Scale{Row: 0, Scalar: 1e-6}))
	require.True(t, strict.Undo())
	require.NoError(t, strict.Apply(sub))
	v, err = strict.Present().Matrix.At(1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1e-6, v, 1e-9, "default tolerance keeps the residue")
}

func TestWithTolerance_Panics(t *testing.T) {
	assert.Panics(t, func() { timeline.WithTolerance(-1) })
	assert.NotPanics(t, func() { timeline.WithTolerance(1e-8) })
}
