// SPDX-License-Identifier: MIT
// Package matrix_test - shared helpers for row-operation tests.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/rowtrace/matrix"
	"github.com/stretchr/testify/require"
)

// MustAugmented builds a validated matrix or fails the test.
func MustAugmented(t *testing.T, rows [][]float64) matrix.Augmented {
	t.Helper()
	m, err := matrix.New(rows)
	require.NoError(t, err, "matrix.New(%v)", rows)

	return m
}

// MustAt reads (i,j) or fails the test.
func MustAt(t *testing.T, m matrix.Augmented, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// CompareApprox asserts m equals want entry-wise within tol.
func CompareApprox(t *testing.T, want [][]float64, m matrix.Augmented, tol float64) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "row count")
	for i := range want {
		require.Equal(t, len(want[i]), m.Cols(), "col count in row %d", i)
		for j := range want[i] {
			got := MustAt(t, m, i, j)
			if math.Abs(got-want[i][j]) > tol {
				t.Fatalf("[%d,%d]: got %v, want %v (tol %g)", i, j, got, want[i][j], tol)
			}
		}
	}
}

// RandomRows returns r×c finite entries in [-10,10) from a fixed seed.
func RandomRows(seed int64, r, c int) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = rng.Float64()*20 - 10
		}
	}

	return out
}
