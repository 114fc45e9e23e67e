// Package frames holds the immutable animation data played back by the
// controller.
//
//   - [Frame]: one rendering snapshot plus optional narration
//   - [Sequence]: an ordered, non-empty, read-only list of frames
//   - [Registry]: category to generator mapping, see [Materialize]
//
// The canned generators reproduce a fixed walk-through for each category.
// They are hand-authored, not derived from running the submitted code.
// Sequences can also be read from and written to YAML or JSON documents
// (see [Decode] and [Encode]).
package frames
