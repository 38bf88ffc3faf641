// Package index implements the index builder (§4.6): it turns the flat
// stream of raw.Entry values plus a fully-evaluated style.State into the
// hierarchical, sorted, letter-grouped, range-collapsed Index the
// markup renderer walks.
package index

import "github.com/xindygo/xindy/locref"

// Warning is a non-fatal condition raised while building: an entry
// skipped for failing to match any location class, or similar (§4.8).
type Warning struct {
	Position int
	Message  string
}

// Range collapses a contiguous run of same-class, same-attribute
// locrefs (§4.6 step 9) into a single start/end pair. Start and End are
// non-owning references into the owning Node's Locrefs slice.
type Range struct {
	Attribute string
	Class     *locref.LayeredLocationClass
	Start     *locref.LayeredLocationReference
	End       *locref.LayeredLocationReference
}

// Node is one level of the hierarchy tree: the frozen display spelling
// for this key level, the locrefs/crossrefs attached directly to it (as
// opposed to its children), and any numeric ranges collapsed from those
// locrefs.
type Node struct {
	// Display is the spelling frozen from the first raw entry whose
	// canonical key reached this node (§4.6 step 3).
	Display string

	// Canonical is the keyword-merge-rule output identifying this node;
	// two raw entries producing the same Canonical at the same depth
	// share this Node.
	Canonical string

	// SortTuple is the multi-run sort-rule tuple frozen alongside
	// Display, used to order this node among its siblings (§4.5, §4.6
	// step 6).
	SortTuple []string

	// FirstPosition is the stream position of the raw entry that created
	// this node, the final sibling-order tie-breaker.
	FirstPosition int

	// Attribute is the attribute of the entry that first reached this
	// node exactly at this depth (only meaningful for leaves, but the
	// reference builder sets it unconditionally the first time a node is
	// touched, so it's kept at every depth).
	Attribute string

	Children []*Node

	// Locrefs are the matched location references and crossrefs attached
	// directly to this node, deduplicated by (locref_string, attribute).
	Locrefs []locref.LocationReference

	// Ranges are numeric runs collapsed out of Locrefs (§4.6 step 9).
	// A locref covered by a range is still present in Locrefs (so
	// de-duplication keeps working) but Covered marks it suppressed from
	// standalone rendering.
	Ranges []*Range

	// Covered marks, by identity, which entries of Locrefs a Range has
	// absorbed and should not be rendered standalone.
	Covered map[locref.LocationReference]bool

	// DroppedOrdnums records, per source attribute, the ordinal strings
	// of locrefs suppressed because a merge-dropped virtual locref
	// became part of a range covering them (§4.6 step 9).
	DroppedOrdnums map[string][]string

	childIndex map[string]*Node
	seenLocref map[string]bool
}

func newNode(display, canonical string, sortTuple []string, position int) *Node {
	return &Node{
		Display:        display,
		Canonical:      canonical,
		SortTuple:      sortTuple,
		FirstPosition:  position,
		childIndex:     make(map[string]*Node),
		seenLocref:     make(map[string]bool),
		Covered:        make(map[locref.LocationReference]bool),
		DroppedOrdnums: make(map[string][]string),
	}
}

// LetterGroup is one labelled bucket of top-level nodes (§4.6 step 7).
type LetterGroup struct {
	Label string
	Nodes []*Node
}

// Index is the complete, ready-to-render result of building.
type Index struct {
	Groups          []LetterGroup
	TotalEntries    int
	ProgressMarkers []int
	Warnings        []Warning
}
