// Package elimination runs partial-pivoting Gauss-Jordan elimination and
// reports it as a sequence of steps, one per elementary row operation,
// framed by an initial and a complete step.
//
// Steps returns an iter.Seq that computes lazily, so a caller may drain it
// at once (Solve) or pull one step per timer tick for playback. Each call
// is independent and deterministic: the same matrix and Config always give
// the same steps, bit for bit.
//
// Example:
//
//	m := matrix.MustNew([][]float64{{2, 1, 5}, {1, -1, 1}})
//	for s := range elimination.Steps(m, elimination.DefaultConfig()) {
//	  fmt.Println(s.Index, s.Formula, s.Explanation)
//	}
package elimination
