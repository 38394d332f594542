// SPDX-License-Identifier: MIT

package solution

import "github.com/katalvlaran/rowtrace/matrix"

// NoPivot marks a row without a nonzero coefficient.
const NoPivot = -1

// PivotColumns returns, for each row, the first coefficient column whose
// entry is not ≈0, or NoPivot.
func PivotColumns(m matrix.Augmented, tol float64) []int {
	rows := m.Data()
	vars := m.Vars()
	out := make([]int, len(rows))
	for i, row := range rows {
		out[i] = NoPivot
		for j := 0; j < vars; j++ {
			if !matrix.IsNearZero(row[j], tol) {
				out[i] = j
				break
			}
		}
	}

	return out
}

// PivotAligned reports whether row i is the unit row for variable i for every
// variable: entry (i,i) ≈1 and every other coefficient of row i ≈0. Only then
// does ExtractSolution read the correct values.
func PivotAligned(m matrix.Augmented, tol float64) bool {
	vars := m.Vars()
	if m.Rows() < vars {
		return false
	}
	rows := m.Data()
	for i := 0; i < vars; i++ {
		for j := 0; j < vars; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if !matrix.IsNearZero(rows[i][j]-want, tol) {
				return false
			}
		}
	}

	return true
}

// Report bundles everything a status display needs.
type Report struct {
	Kind     Kind
	Rank     int
	Solution []float64 // set only when Kind == Unique
	Aligned  bool      // PivotAligned at the time of the report
}

// Analyze classifies m and extracts the solution when unique.
func Analyze(m matrix.Augmented) Report {
	r := Report{
		Kind:    Classify(m),
		Rank:    Rank(m, matrix.DefaultTolerance),
		Aligned: PivotAligned(m, matrix.DefaultTolerance),
	}
	if r.Kind == Unique {
		r.Solution, _ = ExtractSolution(m)
	}

	return r
}
