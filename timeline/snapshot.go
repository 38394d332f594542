// SPDX-License-Identifier: MIT

package timeline

import (
	"github.com/tiendc/go-deepcopy"

	"github.com/katalvlaran/rowtrace/geometry"
	"github.com/katalvlaran/rowtrace/matrix"
)

// Snapshot is one point of the timeline. Operation is nil only for the
// snapshot built from the initial (or reset) matrix.
type Snapshot struct {
	Matrix      matrix.Augmented
	Operation   matrix.RowOperation
	Explanation string
	Formula     string
	Projection  geometry.Projection
}

// clone returns a copy that shares no slices with s. Matrix is immutable
// and is shared as is.
func (s Snapshot) clone() Snapshot {
	out := s
	out.Projection = geometry.Projection{}
	if err := deepcopy.Copy(&out.Projection, &s.Projection); err != nil {
		// Projection holds only numbers, strings and slices of them.
		panic("timeline: copy projection: " + err.Error())
	}

	return out
}

// History is the timeline seen from the cursor.
//
//   - Past   : snapshots before the cursor, oldest first.
//   - Present: the snapshot at the cursor.
//   - Future : snapshots after the cursor, next redo target first.
type History struct {
	Past    []Snapshot
	Present Snapshot
	Future  []Snapshot
}

// Flatten returns Past ++ [Present] ++ Future.
func (h History) Flatten() []Snapshot {
	out := make([]Snapshot, 0, h.Len())
	out = append(out, h.Past...)
	out = append(out, h.Present)

	return append(out, h.Future...)
}

// Len is the number of snapshots on the timeline.
func (h History) Len() int { return len(h.Past) + 1 + len(h.Future) }

// Position is the cursor index into Flatten.
func (h History) Position() int { return len(h.Past) }

// clone deep-copies every snapshot.
func (h History) clone() History {
	return History{
		Past:    cloneAll(h.Past),
		Present: h.Present.clone(),
		Future:  cloneAll(h.Future),
	}
}

func cloneAll(in []Snapshot) []Snapshot {
	if in == nil {
		return nil
	}
	out := make([]Snapshot, len(in))
	for i, s := range in {
		out[i] = s.clone()
	}

	return out
}
