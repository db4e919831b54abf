// Package layout implements the keyboard layout conversion core: the set
// of supported layout identifiers, the hand-authored substitution tables
// between the qwerty hub layout and each peripheral layout, the derivation
// of the complete pairwise keymap table (by inversion and hub-mediated
// composition), and the transcoder that applies a table to input text,
// sequentially or in parallel chunks.
//
// The package has no dependencies beyond the standard library. The keymap
// table is built once, is immutable afterwards, and is safe for concurrent
// use by reference.
package layout
