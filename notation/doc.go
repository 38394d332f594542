// Package notation turns row operations and matrix rows into text for an
// explanation-rendering collaborator.
//
// Two registers are produced for every operation:
//
//   - a plain-language explanation ("Subtract 2 times row 1 from row 3."),
//     localized through golang.org/x/text catalogs (English, Spanish);
//   - a compact, language-neutral formula ("R3 → R3 - 2R1").
//
// Rows are numbered from 1 in all output. Scalars prefer a reduced fraction
// with denominator ≤ 12 and otherwise fall back to four decimals.
package notation
