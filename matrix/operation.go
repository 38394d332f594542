// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// OpKind tags the three elementary row operations.
type OpKind int

const (
	// OpSwap exchanges two rows.
	OpSwap OpKind = iota + 1
	// OpScale multiplies one row by a nonzero scalar.
	OpScale
	// OpAddMultiple adds a multiple of a source row to a target row.
	OpAddMultiple
)

// String returns the stable wire name used by serializers.
func (k OpKind) String() string {
	switch k {
	case OpSwap:
		return "swap"
	case OpScale:
		return "scale"
	case OpAddMultiple:
		return "add_multiple"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// ParseOpKind is the inverse of OpKind.String.
func ParseOpKind(s string) (OpKind, error) {
	switch s {
	case "swap":
		return OpSwap, nil
	case "scale":
		return OpScale, nil
	case "add_multiple":
		return OpAddMultiple, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, s)
	}
}

// RowOperation is the closed set {Swap, Scale, AddMultiple}. The unexported
// marker keeps other packages from adding cases; consumers switch on the
// concrete type and treat anything else as ErrUnknownOperation.
type RowOperation interface {
	fmt.Stringer
	Kind() OpKind
	// Validate checks indices against a matrix of the given row count and
	// the scalar against the numeric policy.
	Validate(rows int, opts ...Option) error
	rowOperation()
}

// Swap exchanges Row1 and Row2 (0-based).
type Swap struct {
	Row1, Row2 int
}

// Scale multiplies Row by Scalar (Scalar ≠ 0).
type Scale struct {
	Row    int
	Scalar float64
}

// AddMultiple performs Target += Scalar * Source.
type AddMultiple struct {
	Target, Source int
	Scalar         float64
}

var (
	_ RowOperation = Swap{}
	_ RowOperation = Scale{}
	_ RowOperation = AddMultiple{}
)

func (Swap) rowOperation()        {}
func (Scale) rowOperation()       {}
func (AddMultiple) rowOperation() {}

// Kind implements RowOperation.
func (Swap) Kind() OpKind { return OpSwap }

// Kind implements RowOperation.
func (Scale) Kind() OpKind { return OpScale }

// Kind implements RowOperation.
func (AddMultiple) Kind() OpKind { return OpAddMultiple }

// Validate implements RowOperation.
func (op Swap) Validate(rows int, _ ...Option) error {
	if err := checkIndex(op.Row1, rows); err != nil {
		return err
	}

	return checkIndex(op.Row2, rows)
}

// Validate implements RowOperation.
func (op Scale) Validate(rows int, opts ...Option) error {
	if err := checkIndex(op.Row, rows); err != nil {
		return err
	}
	if err := validateScalar(op.Scalar); err != nil {
		return err
	}
	if isNearZero(op.Scalar, NewOptions(opts...).tol) {
		return ErrScalarZero
	}

	return nil
}

// Validate implements RowOperation.
func (op AddMultiple) Validate(rows int, _ ...Option) error {
	if err := checkIndex(op.Target, rows); err != nil {
		return err
	}
	if err := checkIndex(op.Source, rows); err != nil {
		return err
	}

	return validateScalar(op.Scalar)
}

// String renders a compact debug form, e.g. "Scale(R1, 0.5)" (0-based indices).
func (op Swap) String() string { return fmt.Sprintf("Swap(%d, %d)", op.Row1, op.Row2) }

// String renders a compact debug form.
func (op Scale) String() string { return fmt.Sprintf("Scale(%d, %g)", op.Row, op.Scalar) }

// String renders a compact debug form.
func (op AddMultiple) String() string {
	return fmt.Sprintf("AddMultiple(%d, %d, %g)", op.Target, op.Source, op.Scalar)
}

func checkIndex(i, rows int) error {
	if i < 0 || i >= rows {
		return fmt.Errorf("row %d of %d: %w", i, rows, ErrRowOutOfRange)
	}

	return nil
}
