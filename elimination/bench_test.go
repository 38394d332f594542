// SPDX-License-Identifier: MIT
package elimination_test

import (
	"testing"

	"github.com/katalvlaran/rowtrace/elimination"
	"github.com/katalvlaran/rowtrace/matrix"
)

func BenchmarkSolve_6x4(b *testing.B) {
	m := matrix.MustNew(matrixRows(matrix.MaxRows, matrix.MaxCols))
	cfg := elimination.DefaultConfig()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = elimination.Solve(m, cfg)
	}
}

func BenchmarkSteps_FirstOnly(b *testing.B) {
	m := matrix.MustNew(matrixRows(matrix.MaxRows, matrix.MaxCols))
	cfg := elimination.DefaultConfig()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for range elimination.Steps(m, cfg) {
			break
		}
	}
}
