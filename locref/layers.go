package locref

// LayerElement is one element of a location class's layer sequence: a
// basetype slot (contributes an ordinal) or a literal separator
// (consumes text, contributes nothing to the sort key).
type LayerElement interface {
	PrefixMatch(text string) (MatchResult, bool)
}

// BaseTypeLayer wraps a BaseType (alphabet or enumeration) for use as a
// location-class layer.
type BaseTypeLayer struct {
	Base BaseType
}

func (l BaseTypeLayer) PrefixMatch(text string) (MatchResult, bool) {
	return l.Base.PrefixMatch(text)
}

// SeparatorLayer is a literal string (e.g. "." or "-") that must appear
// between ordinal layers but contributes no ordinal of its own.
type SeparatorLayer struct {
	Separator string
}

func (l SeparatorLayer) PrefixMatch(text string) (MatchResult, bool) {
	if len(text) < len(l.Separator) || text[:len(l.Separator)] != l.Separator {
		return MatchResult{}, false
	}

	return MatchResult{Matched: l.Separator, Rest: text[len(l.Separator):], IsSeparator: true}, true
}
