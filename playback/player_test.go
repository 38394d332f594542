// SPDX-License-Identifier: MIT
package playback_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rowtrace/elimination"
	"github.com/katalvlaran/rowtrace/matrix"
	"github.com/katalvlaran/rowtrace/playback"
	"github.com/katalvlaran/rowtrace/timeline"
)

var system3 = [][]float64{{1, 2, 3, 14}, {2, 5, 6, 30}, {3, 1, 1, 8}}

func TestNew_RejectsInterval(t *testing.T) {
	_, err := playback.New(0)
	assert.ErrorIs(t, err, playback.ErrInvalidInterval)
	_, err = playback.New(-time.Second)
	assert.ErrorIs(t, err, playback.ErrInvalidInterval)
}

func TestRun_AppliesEveryOperation(t *testing.T) {
	m := matrix.MustNew(system3)
	mc, err := timeline.New(m)
	require.NoError(t, err)

	var phases []elimination.Phase
	p, err := playback.New(time.Millisecond, playback.WithOnStep(func(s elimination.Step) {
		phases = append(phases, s.Phase)
	}))
	require.NoError(t, err)

	steps := elimination.Steps(m, elimination.DefaultConfig())
	n, err := p.Run(context.Background(), mc, steps)
	require.NoError(t, err)

	tr := elimination.Solve(m, elimination.DefaultConfig())
	assert.Equal(t, len(tr.Operations()), n)
	assert.Equal(t, n+1, mc.Len())

	final, _ := tr.Final()
	assert.True(t, mc.Present().Matrix.Equal(final.Matrix))
	require.Len(t, phases, len(tr.Steps))
	assert.Equal(t, elimination.PhaseInitial, phases[0])
	assert.Equal(t, elimination.PhaseComplete, phases[len(phases)-1])
}

func TestRun_Cancelled(t *testing.T) {
	m := matrix.MustNew(system3)
	mc, err := timeline.New(m)
	require.NoError(t, err)

	p, err := playback.New(time.Hour)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, err := p.Run(ctx, mc, elimination.Steps(m, elimination.DefaultConfig()))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
	assert.Equal(t, 1, mc.Len(), "nothing applied")
}

func TestRun_StopsMidway(t *testing.T) {
	m := matrix.MustNew(system3)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []matrix.RowOperation
	a := playback.ApplierFunc(func(op matrix.RowOperation) error {
		got = append(got, op)
		if len(got) == 2 {
			cancel()
		}
		return nil
	})

	p, err := playback.New(time.Millisecond)
	require.NoError(t, err)
	n, err := p.Run(ctx, a, elimination.Steps(m, elimination.DefaultConfig()))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, n)
	assert.Len(t, got, 2)
}

func TestDrain_ApplyError(t *testing.T) {
	m := matrix.MustNew(system3)
	boom := errors.New("boom")
	calls := 0
	a := playback.ApplierFunc(func(matrix.RowOperation) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})

	n, err := playback.Drain(a, elimination.Steps(m, elimination.DefaultConfig()))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "step 2")
	assert.Equal(t, 1, n)
}

func TestDrain_MatchesSolve(t *testing.T) {
	m := matrix.MustNew([][]float64{{1, 1, 2}, {2, 2, 4}})
	mc, err := timeline.New(m)
	require.NoError(t, err)

	n, err := playback.Drain(mc, elimination.Steps(m, elimination.DefaultConfig()))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, elimination.Solve(m, elimination.DefaultConfig()).Operations(), mc.Operations())
}
