// Package timeline keeps the undo/redo history of one solving session.
//
// A Machine owns a History: the snapshots behind the cursor (Past, oldest
// first), the current snapshot (Present) and the snapshots ahead of it
// (Future, next redo first). Applying a row operation appends the old
// present to Past and cuts Future; Undo, Redo and JumpTo only move the
// cursor along the existing timeline.
//
// A Machine has no internal locking. It expects a single writer, so owners
// that share one across goroutines serialize access themselves (see the
// session package).
//
// Replay rebuilds a Machine from its initial matrix, the ordered operations
// of its timeline and a cursor. Replay is deterministic: the same inputs
// always produce the same snapshots.
package timeline
