// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/rowtrace/elimination"
	"github.com/katalvlaran/rowtrace/matrix"
	"github.com/katalvlaran/rowtrace/notation"
	"github.com/katalvlaran/rowtrace/solution"
	"github.com/katalvlaran/rowtrace/timeline"
)

// writeMatrix prints m with aligned columns and a bar before the constants.
func writeMatrix(w io.Writer, m matrix.Augmented, indent string) {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	for _, row := range m.Data() {
		var sb strings.Builder
		sb.WriteString(indent + "[\t")
		for j, v := range row {
			if j == len(row)-1 {
				sb.WriteString("|\t")
			}
			sb.WriteString(notation.FormatScalar(v) + "\t")
		}
		sb.WriteString("]\t\n")
		fmt.Fprint(tw, sb.String())
	}
	_ = tw.Flush()
}

func writeStep(w io.Writer, s elimination.Step) {
	head := fmt.Sprintf("Step %d (%s)", s.Index, s.Phase)
	if s.Phase == elimination.PhaseIntermediate {
		head += ": " + s.Formula
	}
	fmt.Fprintln(w, head)
	fmt.Fprintln(w, "  "+s.Explanation)
	writeMatrix(w, s.Matrix, "  ")
}

func writeSnapshot(w io.Writer, pos, n int, s timeline.Snapshot) {
	fmt.Fprintf(w, "Position %d of %d", pos, n-1)
	if s.Formula != "" {
		fmt.Fprintf(w, ": %s", s.Formula)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  "+s.Explanation)
	writeMatrix(w, s.Matrix, "  ")
}

func writeReport(w io.Writer, e *notation.Explainer, r solution.Report) {
	fmt.Fprintln(w, e.Outcome(r.Kind))
	if r.Kind == solution.Unique {
		parts := make([]string, len(r.Solution))
		for i, v := range r.Solution {
			name := fmt.Sprintf("x%d", i+1)
			if i < len(notation.VariableNames) {
				name = notation.VariableNames[i]
			}
			parts[i] = name + " = " + notation.FormatScalar(v)
		}
		fmt.Fprintln(w, "  "+strings.Join(parts, ", "))
	}
	if !r.Aligned && r.Kind == solution.Unique {
		fmt.Fprintln(w, "  (pivot rows are not aligned with variables; values may be misassigned)")
	}
}
