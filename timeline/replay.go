// SPDX-License-Identifier: MIT

package timeline

import (
	"fmt"

	"github.com/katalvlaran/rowtrace/matrix"
)

// Replay rebuilds a Machine by applying ops to initial in order and then
// moving the cursor to position cursor of the resulting timeline
// (0 ≤ cursor ≤ len(ops)).
//
// Errors: validation errors from New, the first rejected operation wrapped
// with its index, or ErrCursorOutOfRange.
func Replay(initial matrix.Augmented, ops []matrix.RowOperation, cursor int, opts ...Option) (*Machine, error) {
	if cursor < 0 || cursor > len(ops) {
		return nil, fmt.Errorf("%w: %d of %d", ErrCursorOutOfRange, cursor, len(ops))
	}

	mc, err := New(initial, opts...)
	if err != nil {
		return nil, err
	}
	for i, op := range ops {
		if err = mc.Apply(op); err != nil {
			return nil, fmt.Errorf("timeline: replay operation %d: %w", i, err)
		}
	}
	mc.JumpTo(cursor)

	return mc, nil
}
