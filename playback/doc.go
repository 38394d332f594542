// Package playback feeds an elimination sequence into a timeline at a fixed
// cadence, one row operation per tick, so a renderer can animate between
// successive snapshots. The sequence is pulled lazily; cancelling the
// context stops playback after the current step and leaves whatever was
// already applied in place.
package playback
