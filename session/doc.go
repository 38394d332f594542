// Package session keeps many independent solving sessions, each a
// timeline.Machine behind its own mutex, and persists them as Records.
//
// A Record is the initial matrix, the ordered operations of the whole
// timeline and the cursor position. Loading a Record replays the
// operations, which rebuilds the exact snapshots that were saved.
//
// Manager bounds the number of sessions held in memory with an LRU cache.
// A session pushed out of the cache is written to the Store first and is
// transparently loaded again on its next use.
package session
