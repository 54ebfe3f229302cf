// Package tree provides the in-memory content tree that caretjar edits.
//
// A tree is made of two kinds of nodes:
//
//   - Text leaves hold a run of characters.
//   - Elements are containers with a tag, attributes, and ordered children.
//
// The editor never owns a tree. Hosts build one (or adapt their own node
// structure onto it), hand its root to the editor through a Surface, and keep
// rendering it however they like. Highlighters rebuild element structure
// freely as long as the concatenated text of all leaves is preserved.
//
// # Offsets
//
// All offsets inside text leaves are character (rune) offsets. For element
// endpoints the offset is a child index, matching DOM range semantics:
//
//	tree.Point{Node: leaf, Offset: 3}  // after the third character of leaf
//	tree.Point{Node: el, Offset: 0}    // before el's first child
//
// # Normalization
//
// Normalize merges adjacent text leaves and drops empty ones. Selection
// points passed to Normalize are carried along the way a live DOM range is,
// so a caret never points at a node that was removed.
package tree
