// Package classify sniffs algorithm source text and decides which canned
// animation fits it.
//
// Classification is a keyword heuristic, not a parser:
//
//   - [Classify]: source text to a [Category] tag, always total
//   - [Structure]: the dominant data structure the text manipulates
//   - [Complexity]: a rough Big-O estimate with a short explanation
//
// All three are pure functions of their input. The same text always yields
// the same answer.
package classify
