// SPDX-License-Identifier: MIT

package elimination

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/rowtrace/geometry"
	"github.com/katalvlaran/rowtrace/matrix"
)

// Mode selects the target form.
//
//   - REF : eliminate below each pivot only (row echelon form).
//   - RREF: eliminate above and below each pivot (reduced row echelon form).
type Mode int

const (
	// RREF is the default: Gauss-Jordan to reduced row echelon form.
	RREF Mode = iota
	// REF stops at row echelon form.
	REF
)

// String returns "REF" or "RREF".
func (m Mode) String() string {
	switch m {
	case REF:
		return "REF"
	case RREF:
		return "RREF"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "ref" or "rref" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "REF":
		return REF, nil
	case "RREF":
		return RREF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Phase tags the position of a step in the sequence.
type Phase int

const (
	// PhaseInitial is the first step: the input, no operation.
	PhaseInitial Phase = iota
	// PhaseIntermediate is one elementary row operation.
	PhaseIntermediate
	// PhaseComplete is the last step: the achieved form, no operation.
	PhaseComplete
)

// String returns "initial", "intermediate" or "complete".
func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseIntermediate:
		return "intermediate"
	case PhaseComplete:
		return "complete"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Config configures one elimination run.
//
// Fields:
//   - PartialPivoting: pick the largest |entry| in the column as pivot
//     (ties go to the earliest row). When false, the entry already in the
//     pivot row is used or the column is skipped.
//   - Mode           : REF or RREF.
type Config struct {
	PartialPivoting bool
	Mode            Mode
}

// DefaultConfig returns partial pivoting on, RREF.
func DefaultConfig() Config {
	return Config{PartialPivoting: true, Mode: RREF}
}

// Step is one element of the elimination sequence.
// Operation is nil for the initial and complete steps.
type Step struct {
	Index       int
	Phase       Phase
	Matrix      matrix.Augmented
	Operation   matrix.RowOperation
	Explanation string
	Formula     string
	Projection  geometry.Projection
}

// Trace is a fully drained elimination sequence.
type Trace struct {
	Config Config
	Steps  []Step
}

// Final returns the complete step, or false for an empty trace.
func (t Trace) Final() (Step, bool) {
	if len(t.Steps) == 0 {
		return Step{}, false
	}

	return t.Steps[len(t.Steps)-1], true
}

// Operations returns the row operations of the intermediate steps, in order.
// Replaying them from the initial matrix reproduces every step.
func (t Trace) Operations() []matrix.RowOperation {
	ops := make([]matrix.RowOperation, 0, len(t.Steps))
	for _, s := range t.Steps {
		if s.Operation != nil {
			ops = append(ops, s.Operation)
		}
	}

	return ops
}
