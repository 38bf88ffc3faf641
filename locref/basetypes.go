// Package locref implements the location-class matching machinery:
// alphabets, enumerations (radix and roman numeral matchers), separator
// layers, and the longest-prefix-wins algorithm that turns a raw locref
// string into matched layer text plus ordinal numbers.
package locref

import (
	"sort"
	"strings"
)

// MatchResult is the outcome of matching a prefix against one layer
// element. IsSeparator true means "this layer consumed text but
// contributes no ordinal" (a separator); Ordnum is then left at 0.
type MatchResult struct {
	Matched     string
	Rest        string
	Ordnum      int
	IsSeparator bool
}

// BaseType is shared behaviour for alphabets and enumerations: given the
// remaining locref text, try to consume a prefix.
type BaseType interface {
	Name() string
	BaseAlphabet() []rune
	PrefixMatch(text string) (MatchResult, bool)
}

// Alphabet is an ordered list of string symbols (e.g. single letters, or
// multi-character "digit" strings in more exotic numbering schemes).
// Matching picks the symbol with the longest matching prefix of text;
// ties go to the earliest-declared symbol.
type Alphabet struct {
	name         string
	symbols      []string
	baseAlphabet []rune
}

// NewAlphabet builds an Alphabet from its ordered symbol list. Symbols
// must be non-empty; the base alphabet (used for default letter-group
// fallback) is the sorted set of distinct runes appearing across them.
func NewAlphabet(name string, symbols []string) *Alphabet {
	return &Alphabet{name: name, symbols: symbols, baseAlphabet: calculateBaseAlphabet(symbols)}
}

func (a *Alphabet) Name() string         { return a.name }
func (a *Alphabet) BaseAlphabet() []rune { return a.baseAlphabet }

// Symbols returns the alphabet's declared symbols in declaration order,
// needed by define-alphabet* to merge a new symbol run into an existing
// alphabet rather than the derived (sorted, deduplicated) base alphabet.
func (a *Alphabet) Symbols() []string { return a.symbols }

// PrefixMatch implements the longest-prefix-wins rule: every symbol that
// text actually starts with is a candidate (a symbol must be consumed in
// full - a partial overlap with a longer symbol is not a match at all),
// the longest candidate wins, first declared symbol breaks ties.
func (a *Alphabet) PrefixMatch(text string) (MatchResult, bool) {
	var best MatchResult

	found := false

	for ordinal, symbol := range a.symbols {
		if symbol == "" || !strings.HasPrefix(text, symbol) {
			continue
		}

		length := len(symbol)

		if !found || length > len(best.Matched) {
			best = MatchResult{Matched: text[:length], Rest: text[length:], Ordnum: ordinal}
			found = true
		}
	}

	return best, found
}

// Enumeration wraps a matching function, e.g. radix-digit parsing or
// roman-numeral parsing, that does not enumerate discrete symbols.
type Enumeration struct {
	name         string
	baseAlphabet []rune
	match        func(text string) (matched, rest string, ordnum int, ok bool)
}

// NewEnumeration builds an Enumeration from a raw matcher function.
func NewEnumeration(name string, baseAlphabet []rune, match func(string) (string, string, int, bool)) *Enumeration {
	return &Enumeration{name: name, baseAlphabet: baseAlphabet, match: match}
}

func (e *Enumeration) Name() string         { return e.name }
func (e *Enumeration) BaseAlphabet() []rune { return e.baseAlphabet }

func (e *Enumeration) PrefixMatch(text string) (MatchResult, bool) {
	matched, rest, ordnum, ok := e.match(text)
	if !ok || matched == "" {
		return MatchResult{}, false
	}

	return MatchResult{Matched: matched, Rest: rest, Ordnum: ordnum}, true
}

// calculateBaseAlphabet computes the sorted distinct rune set across
// symbols, used as the fallback letter-group set when a style defines no
// explicit letter groups.
func calculateBaseAlphabet(symbols []string) []rune {
	set := make(map[rune]struct{})
	for _, symbol := range symbols {
		for _, r := range symbol {
			set[r] = struct{}{}
		}
	}

	runes := make([]rune, 0, len(set))
	for r := range set {
		runes = append(runes, r)
	}

	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	return runes
}
