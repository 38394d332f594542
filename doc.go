// SPDX-License-Identifier: MIT

// Package rowtrace solves small systems of linear equations one elementary
// row operation at a time.
//
// The module is split by concern:
//
//	matrix       augmented matrices, row operations, validation, cleaning
//	elimination  lazy partial-pivoting Gauss-Jordan steps (REF or RREF)
//	solution     unique / infinite / none classification and solution readout
//	geometry     planes and lines of each equation, their intersection
//	notation     formulas, scalar formatting, localized explanations
//	timeline     undo/redo/jump history with branch cut on a new operation
//	playback     paced application of an elimination sequence to a timeline
//	session      many concurrent timelines, LRU cache, SQLite persistence
//	config       ROWTRACE_* environment configuration
//	logger       zap logger construction
//	metrics      Prometheus collectors
//
// The rowtrace command in cmd/rowtrace wires them together:
//
//	rowtrace solve '[[1,2,3,14],[2,5,6,30],[3,1,1,8]]'
//	rowtrace solve --save '[[2,1,5],[1,-1,1]]'
//	rowtrace apply <id> add 3 1 -2
//	rowtrace undo <id>
//
// All numeric decisions share one tolerance, matrix.DefaultTolerance (1e-10),
// so a recorded sequence of operations replays to identical matrices.
package rowtrace
