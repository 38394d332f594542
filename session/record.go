// SPDX-License-Identifier: MIT

package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/katalvlaran/rowtrace/matrix"
)

// ErrDecode is returned for a payload that is not a valid Record.
var ErrDecode = errors.New("session: decode record")

// Record is the persisted form of one session.
type Record struct {
	ID         string
	Initial    matrix.Augmented
	Operations []matrix.RowOperation
	Cursor     int
	Locale     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// wireOp is the tagged JSON form of a RowOperation.
type wireOp struct {
	Kind   string  `json:"kind"`
	Row1   int     `json:"row1,omitempty"`
	Row2   int     `json:"row2,omitempty"`
	Row    int     `json:"row,omitempty"`
	Target int     `json:"target,omitempty"`
	Source int     `json:"source,omitempty"`
	Scalar float64 `json:"scalar,omitempty"`
}

type wireRecord struct {
	ID         string           `json:"id"`
	Initial    matrix.Augmented `json:"initial"`
	Operations []wireOp         `json:"operations"`
	Cursor     int              `json:"cursor"`
	Locale     string           `json:"locale,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// EncodeOperation returns the wire form of op.
func EncodeOperation(op matrix.RowOperation) (json.RawMessage, error) {
	w, err := toWire(op)
	if err != nil {
		return nil, err
	}

	return json.Marshal(w)
}

// DecodeOperation parses one wire operation.
func DecodeOperation(b []byte) (matrix.RowOperation, error) {
	var w wireOp
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("%w: operation: %w", ErrDecode, err)
	}

	return fromWire(w)
}

func toWire(op matrix.RowOperation) (wireOp, error) {
	switch o := op.(type) {
	case matrix.Swap:
		return wireOp{Kind: o.Kind().String(), Row1: o.Row1, Row2: o.Row2}, nil
	case matrix.Scale:
		return wireOp{Kind: o.Kind().String(), Row: o.Row, Scalar: o.Scalar}, nil
	case matrix.AddMultiple:
		return wireOp{Kind: o.Kind().String(), Target: o.Target, Source: o.Source, Scalar: o.Scalar}, nil
	default:
		return wireOp{}, fmt.Errorf("session: encode %T: %w", op, matrix.ErrUnknownOperation)
	}
}

func fromWire(w wireOp) (matrix.RowOperation, error) {
	kind, err := matrix.ParseOpKind(w.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	switch kind {
	case matrix.OpSwap:
		return matrix.Swap{Row1: w.Row1, Row2: w.Row2}, nil
	case matrix.OpScale:
		return matrix.Scale{Row: w.Row, Scalar: w.Scalar}, nil
	default:
		return matrix.AddMultiple{Target: w.Target, Source: w.Source, Scalar: w.Scalar}, nil
	}
}

// MarshalRecord encodes r as JSON.
func MarshalRecord(r Record) ([]byte, error) {
	w := wireRecord{
		ID:         r.ID,
		Initial:    r.Initial,
		Operations: make([]wireOp, 0, len(r.Operations)),
		Cursor:     r.Cursor,
		Locale:     r.Locale,
		CreatedAt:  r.CreatedAt.UTC(),
		UpdatedAt:  r.UpdatedAt.UTC(),
	}
	for _, op := range r.Operations {
		wo, err := toWire(op)
		if err != nil {
			return nil, err
		}
		w.Operations = append(w.Operations, wo)
	}

	return json.Marshal(w)
}

// UnmarshalRecord decodes a payload written by MarshalRecord. The initial
// matrix is validated; operations are checked only for a known kind, since
// replaying them is what proves them valid.
func UnmarshalRecord(b []byte) (Record, error) {
	var w wireRecord
	if err := json.Unmarshal(b, &w); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	r := Record{
		ID:         w.ID,
		Initial:    w.Initial,
		Operations: make([]matrix.RowOperation, 0, len(w.Operations)),
		Cursor:     w.Cursor,
		Locale:     w.Locale,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
	for i, wo := range w.Operations {
		op, err := fromWire(wo)
		if err != nil {
			return Record{}, fmt.Errorf("operation %d: %w", i, err)
		}
		r.Operations = append(r.Operations, op)
	}

	return r, nil
}
