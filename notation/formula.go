// SPDX-License-Identifier: MIT

package notation

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/rowtrace/matrix"
)

// VariableNames are the symbols used for coefficient columns, in order.
var VariableNames = [...]string{"x", "y", "z"}

// Formula renders the compact, language-neutral notation of op with 1-based rows:
//
//	Swap{0,1}               R1 ↔ R2
//	Scale{0, 1/2}           R1 → (1/2)R1
//	AddMultiple{2, 0, -2}   R3 → R3 - 2R1
//
// Unknown operations render as "?".
func Formula(op matrix.RowOperation) string {
	switch o := op.(type) {
	case matrix.Swap:
		return fmt.Sprintf("R%d ↔ R%d", o.Row1+1, o.Row2+1)
	case matrix.Scale:
		return fmt.Sprintf("R%d → %sR%d", o.Row+1, coefficient(o.Scalar), o.Row+1)
	case matrix.AddMultiple:
		sign := "+"
		if o.Scalar < 0 {
			sign = "-"
		}
		return fmt.Sprintf("R%d → R%d %s %sR%d", o.Target+1, o.Target+1, sign, coefficient(math.Abs(o.Scalar)), o.Source+1)
	default:
		return "?"
	}
}

// Equation renders one augmented row as "2x + 3y - z = 5".
// Zero coefficients are omitted; a row with no nonzero coefficient renders as "0 = d".
// Columns beyond len(VariableNames) are named x4, x5, ...
func Equation(row []float64) string {
	if len(row) == 0 {
		return ""
	}
	coeffs, constant := row[:len(row)-1], row[len(row)-1]

	var sb strings.Builder
	for j, a := range coeffs {
		if matrix.IsNearZero(a, matrix.DefaultTolerance) {
			continue
		}
		name := variableName(j)
		if sb.Len() == 0 {
			sb.WriteString(coefficient(a))
		} else if a < 0 {
			sb.WriteString(" - ")
			sb.WriteString(coefficient(-a))
		} else {
			sb.WriteString(" + ")
			sb.WriteString(coefficient(a))
		}
		sb.WriteString(name)
	}
	if sb.Len() == 0 {
		sb.WriteString("0")
	}
	sb.WriteString(" = ")
	sb.WriteString(FormatScalar(constant))

	return sb.String()
}

func variableName(j int) string {
	if j < len(VariableNames) {
		return VariableNames[j]
	}

	return fmt.Sprintf("x%d", j+1)
}
