// Package style implements the style DSL's evaluator: the StyleState
// aggregate every define-* and markup-* form mutates, and the form-head
// dispatch table that walks a parsed style file applying those mutations.
package style

import (
	"github.com/xindygo/xindy/locref"
)

// MergeRule is one merge-to declaration: attribute source is also emitted
// under target (§4.6 step 1). With a Target, Drop marks that emission's
// locrefs drop-eligible; with no Target, Drop excludes the source itself
// when it is not a declared attribute.
type MergeRule struct {
	Source string
	Target string
	Drop   bool
}

// SortRule is one sort-rule/merge-rule clause: a regex pattern and its
// replacement, grouped by RunIndex (the :run n annotation) and the
// string orientation it applies in ("forward"/"backward", from
// sort-rule-orientations), plus whether it repeats to a fixed point
// (:again).
type SortRule struct {
	Pattern     string
	Replacement string
	RunIndex    int
	Backward    bool
	Again       bool
	IsBRE       bool // source was specified with :bregexp, needs BRE->ERE translation
}

// RuleSet groups sort rules under a name so styles can share a
// definition across multiple attributes via use-rule-set.
type RuleSet struct {
	Name       string
	Rules      []SortRule
	InheritsFrom []string
}

// MarkupOptions is the nested key->value store populated by the various
// markup-* forms. Each top-level key is a markup "kind" (e.g. "index",
// "locclass-list", "locref", "crossref-list"); each value is itself a
// map from a qualifier key (e.g. "depth=0,class=page", or "__default__"
// when no qualifier narrows the form) to that form's option map.
type MarkupOptions map[string]map[string]any

// Default fetches the "__default__" bucket for a markup kind, used when
// no more specific (depth/class/layer/attr) key is present.
func (m MarkupOptions) Default(kind string) (any, bool) {
	bucket, ok := m[kind]
	if !ok {
		return nil, false
	}

	v, ok := bucket["__default__"]

	return v, ok
}

// Lookup fetches a markup option, falling back to the default bucket.
func (m MarkupOptions) Lookup(kind, key string) (any, bool) {
	bucket, ok := m[kind]
	if !ok {
		return nil, false
	}

	if v, ok := bucket[key]; ok {
		return v, true
	}

	return m.Default(kind)
}

// State is the full mutable evaluation context for a style chain: every
// alphabet, enumeration, location class, attribute, rule, rule set, and
// markup option declared by the style file and everything it requires.
type State struct {
	Basetypes       map[string]locref.BaseType
	LocationClasses map[string]*locref.LayeredLocationClass // insertion order tracked via LocationClassOrder
	LocationClassOrder []string
	CrossrefClasses map[string]*locref.CrossrefLocationClass
	// CrossrefClassOrder tracks declaration order so the builder can pick
	// "the first declared crossref class" (§4.6 step 2) deterministically.
	CrossrefClassOrder []string
	Attributes      map[string]*locref.CategoryAttribute
	AttributeOrder  []string
	RuleSets        map[string]*RuleSet

	// SortRules is the flat, run-tagged list of sort-rule declarations
	// (plus whatever use-rule-set spliced in), applied by xindy/rules
	// when computing an entry's multi-run sort key (§4.5/§4.6 step 6).
	SortRules []SortRule

	// KeywordMergeRules is the separate merge-rule list: regex rewrites
	// applied to key strings themselves to compute the canonical key
	// used for grouping/equality (§4.6 step 3), distinct from SortRules.
	KeywordMergeRules []SortRule

	MergeRules      []MergeRule
	LetterGroups    []string
	MarkupOptions   MarkupOptions

	// SearchPath is the list of directories require resolves on-disk
	// modules against (bundled modules need no path), seeded from
	// XINDY_SEARCHPATH and extended by searchpath forms.
	SearchPath []string

	// Features is the reader-conditional feature set active while
	// evaluating this style (xindy.ParseFileWithFeatures consults it).
	Features map[string]bool

	// ModuleLoader resolves `require` forms; nil until the pipeline
	// entry point (xindy/modreq.New) wires one in.
	ModuleLoader Loader

	orientations *orientationState
}

// New returns a zero-valued State ready for evaluation.
func New() *State {
	return &State{
		Basetypes:       make(map[string]locref.BaseType),
		LocationClasses: make(map[string]*locref.LayeredLocationClass),
		CrossrefClasses: make(map[string]*locref.CrossrefLocationClass),
		Attributes:      make(map[string]*locref.CategoryAttribute),
		RuleSets:        make(map[string]*RuleSet),
		MarkupOptions:   make(MarkupOptions),
		Features:        make(map[string]bool),
	}
}

// DefaultAttributeName mirrors the builder's attribute-defaulting rule:
// prefer an attribute literally named "default", else the first declared
// attribute, else none.
func (s *State) DefaultAttributeName() (string, bool) {
	if _, ok := s.Attributes["default"]; ok {
		return "default", true
	}

	if len(s.AttributeOrder) > 0 {
		return s.AttributeOrder[0], true
	}

	return "", false
}

// ResolveAttribute returns the named CategoryAttribute, creating a
// default one (matching the builder's lazy-creation behaviour) if it was
// referenced in raw data but never declared via define-attributes.
func (s *State) ResolveAttribute(name string) *locref.CategoryAttribute {
	if cat, ok := s.Attributes[name]; ok {
		return cat
	}

	cat := locref.NewCategoryAttribute(name)
	s.Attributes[name] = cat
	s.AttributeOrder = append(s.AttributeOrder, name)

	return cat
}

// FirstCrossrefClass returns the earliest-declared crossref class, used
// when a crossref entry's attribute doesn't name one explicitly (§4.6
// step 2).
func (s *State) FirstCrossrefClass() (*locref.CrossrefLocationClass, bool) {
	if len(s.CrossrefClassOrder) == 0 {
		return nil, false
	}

	cls, ok := s.CrossrefClasses[s.CrossrefClassOrder[0]]

	return cls, ok
}

// OrderedLocationClasses returns location classes in LocationClassOrder:
// declaration order, unless define-location-class-order replaced it. This
// is the order index.Build tries them in when no explicit class is named
// on a raw entry (§4.6 step 4). A name with no declared class yields nil.
func (s *State) OrderedLocationClasses() []*locref.LayeredLocationClass {
	out := make([]*locref.LayeredLocationClass, 0, len(s.LocationClassOrder))
	for _, name := range s.LocationClassOrder {
		out = append(out, s.LocationClasses[name])
	}

	return out
}
