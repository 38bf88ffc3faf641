package index

import (
	"fmt"

	"github.com/xindygo/xindy/locref"
	"github.com/xindygo/xindy/raw"
	"github.com/xindygo/xindy/rules"
	"github.com/xindygo/xindy/style"
)

// builder holds the mutable state threaded through one Build call.
type builder struct {
	state        *style.State
	sortRuns     []rules.Run
	mergeRuns    []rules.Run
	locclasses   []*locref.LayeredLocationClass
	root         *Node
	warnings     []Warning
	dropEligible map[locref.LocationReference]bool
}

// Build runs the full §4.6 pipeline over entries (already read by
// xindy/raw) against the evaluated style state, in stream order.
func Build(state *style.State, entries []raw.Entry) (*Index, error) {
	if len(state.LocationClasses) == 0 {
		return nil, newBuilderError("no location classes defined in style")
	}

	sortRuns, err := rules.Compile(state.SortRules)
	if err != nil {
		return nil, err
	}

	mergeRuns, err := rules.Compile(state.KeywordMergeRules)
	if err != nil {
		return nil, err
	}

	locclasses := state.OrderedLocationClasses()
	for i, lc := range locclasses {
		if lc == nil {
			return nil, newBuilderError(fmt.Sprintf("unknown location class %q in location class order", state.LocationClassOrder[i]))
		}
	}

	b := &builder{
		state:        state,
		sortRuns:     sortRuns,
		mergeRuns:    mergeRuns,
		locclasses:   locclasses,
		root:         newNode("", "", nil, 0),
		dropEligible: make(map[locref.LocationReference]bool),
	}

	for i, entry := range entries {
		b.processEntry(i, entry)
	}

	sortChildren(b.root)

	groups := groupByLetter(b)

	for _, g := range groups {
		for _, n := range g.Nodes {
			detectRanges(n, b.dropEligible)
		}
	}

	return &Index{
		Groups:          groups,
		TotalEntries:    len(entries),
		ProgressMarkers: progressMarkers(len(entries)),
		Warnings:        b.warnings,
	}, nil
}

func (b *builder) warn(pos int, msg string) {
	b.warnings = append(b.warnings, Warning{Position: pos, Message: msg})
}

// levelInfo is the per-key-part data computed once from a raw.KeyPart:
// the canonical (merge-rule) token used for node identity, the frozen
// display spelling, and the multi-run sort-rule tuple used to order
// siblings (§4.5, §4.6 steps 3 and 6).
type levelInfo struct {
	canonical string
	display   string
	sortTuple []string
}

func (b *builder) computeLevels(key []raw.KeyPart) []levelInfo {
	levels := make([]levelInfo, len(key))

	for i, part := range key {
		canonical := part.Sort
		if len(b.mergeRuns) > 0 {
			canonical = rules.Apply(b.mergeRuns, part.Sort)
		}

		sortTuple := []string{part.Sort}
		if len(b.sortRuns) > 0 {
			sortTuple = rules.ApplyTuple(b.sortRuns, part.Sort)
		}

		levels[i] = levelInfo{canonical: canonical, display: part.Display, sortTuple: sortTuple}
	}

	return levels
}

// insertPath walks root's children, reusing a node whenever its
// Canonical token already matches, creating new ones (freezing their
// Display/SortTuple from this entry) otherwise (§4.6 step 3, step 8).
func insertPath(root *Node, levels []levelInfo, position int) *Node {
	current := root

	for _, lvl := range levels {
		child, ok := current.childIndex[lvl.canonical]
		if !ok {
			child = newNode(lvl.display, lvl.canonical, lvl.sortTuple, position)
			current.childIndex[lvl.canonical] = child
			current.Children = append(current.Children, child)
		}

		current = child
	}

	return current
}

func (b *builder) processEntry(pos int, entry raw.Entry) {
	if len(entry.Key) == 0 {
		return
	}

	base := entry.Attribute
	if base == "" {
		if def, ok := b.state.DefaultAttributeName(); ok {
			base = def
		}
	}

	levels := b.computeLevels(entry.Key)

	if len(entry.XrefTargets) > 0 {
		b.processCrossref(pos, entry, levels, base)
		return
	}

	if !entry.HasLocref {
		b.warn(pos, "entry lacks a required :locref")
		return
	}

	b.processLocref(pos, entry, levels, base)
}

func (b *builder) processCrossref(pos int, entry raw.Entry, levels []levelInfo, base string) {
	cls := b.resolveCrossrefClass(base)
	if cls == nil {
		b.warn(pos, "no crossref class available for entry")
		return
	}

	node := insertPath(b.root, levels, pos)

	for _, target := range entry.XrefTargets {
		ref := locref.CreateCrossReference(&cls.LocationClass, target, base)
		node.attach(ref)
	}
}

func (b *builder) resolveCrossrefClass(base string) *locref.CrossrefLocationClass {
	if base != "" {
		if cls, ok := b.state.CrossrefClasses[base]; ok {
			return cls
		}
	}

	cls, ok := b.state.FirstCrossrefClass()
	if !ok {
		return nil
	}

	return cls
}

func (b *builder) processLocref(pos int, entry raw.Entry, levels []levelInfo, base string) {
	emissions := expandAttributes(b.state.MergeRules, b.state.Attributes, base)
	if len(emissions) == 0 {
		return
	}

	var (
		node      *Node
		baseClass *locref.LayeredLocationClass
	)

	for _, em := range emissions {
		cat := b.state.ResolveAttribute(em.Attribute)

		var (
			ref   *locref.LayeredLocationReference
			class *locref.LayeredLocationClass
		)

		if em.Origin != "" && baseClass != nil {
			ref = locref.BuildLocationReference(baseClass, entry.Locref, cat, em.Attribute)
			class = baseClass
		} else {
			for _, lc := range b.locclasses {
				cand := locref.BuildLocationReference(lc, entry.Locref, cat, em.Attribute)
				if cand != nil {
					ref = cand
					class = lc

					break
				}
			}
		}

		if ref == nil {
			b.warn(pos, fmt.Sprintf("could not match locref %q against any location class for attribute %q", entry.Locref, em.Attribute))

			continue
		}

		if em.Origin == "" {
			baseClass = class
		} else {
			ref.Origin = em.Origin
		}

		switch {
		case entry.OpenRange:
			ref.State = "open-range"
		case entry.CloseRange:
			ref.State = "close-range"
		}

		if em.Drop {
			b.dropEligible[ref] = true
		}

		if node == nil {
			node = insertPath(b.root, levels, pos)
		}

		node.attach(ref)
	}
}

// attach appends ref to n.Locrefs unless an equal (attribute, locref
// string/target) pair was already attached (§4.6 step 5: "de-duplicating
// by (locref_string, attribute)").
func (n *Node) attach(ref locref.LocationReference) bool {
	key := ref.AttributeName() + "\x00" + locrefIdentity(ref)
	if n.seenLocref[key] {
		return false
	}

	n.seenLocref[key] = true
	n.Locrefs = append(n.Locrefs, ref)

	if n.Attribute == "" {
		n.Attribute = ref.AttributeName()
	}

	return true
}

func locrefIdentity(ref locref.LocationReference) string {
	switch r := ref.(type) {
	case *locref.LayeredLocationReference:
		return r.LocrefString
	case *locref.CrossrefLocationReference:
		return r.Target
	default:
		return ""
	}
}
