package locref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphabetPrefixMatchLongestWins(t *testing.T) {
	alpha := NewAlphabet("roman-letters", []string{"a", "b", "aa", "z"})

	m, ok := alpha.PrefixMatch("aaX")
	require.True(t, ok)
	assert.Equal(t, "aa", m.Matched)
	assert.Equal(t, "X", m.Rest)
	assert.Equal(t, 2, m.Ordnum) // "aa" declared at index 2

	_, ok = alpha.PrefixMatch("qrs")
	assert.False(t, ok)
}

func TestAlphabetPrefixMatchTieBreaksOnDeclarationOrder(t *testing.T) {
	// Two symbols of equal matched length: earliest-declared wins.
	alpha := NewAlphabet("dup", []string{"a", "a"})

	m, ok := alpha.PrefixMatch("a")
	require.True(t, ok)
	assert.Equal(t, 0, m.Ordnum)
}

func TestAlphabetPrefixMatchRejectsPartialOverlapWithLongerSymbol(t *testing.T) {
	// "ab" is a strict prefix of no symbol here, and is itself not a
	// prefix of "ac" - only "a" actually matches. A naive common-prefix
	// comparison against "ab" would find 1 matching character and wrongly
	// report a match for "ab" with "a"'s correctly-matching ordinal lost
	// to tie-break order.
	alpha := NewAlphabet("ambiguous", []string{"ab", "a"})

	m, ok := alpha.PrefixMatch("ac")
	require.True(t, ok)
	assert.Equal(t, "a", m.Matched)
	assert.Equal(t, "c", m.Rest)
	assert.Equal(t, 1, m.Ordnum) // "a" declared at index 1

	m, ok = alpha.PrefixMatch("ab")
	require.True(t, ok)
	assert.Equal(t, "ab", m.Matched)
	assert.Equal(t, "", m.Rest)
	assert.Equal(t, 0, m.Ordnum) // full "ab" match wins over shorter "a"
}

func TestBaseAlphabetIsSortedDistinctRunes(t *testing.T) {
	alpha := NewAlphabet("letters", []string{"ba", "ab", "c"})
	assert.Equal(t, []rune{'a', 'b', 'c'}, alpha.BaseAlphabet())
}

func TestEnumerationPrefixMatch(t *testing.T) {
	enum := NewEnumeration("radix10", nil, PrefixMatchRadixNumbers(10))

	m, ok := enum.PrefixMatch("123abc")
	require.True(t, ok)
	assert.Equal(t, "123", m.Matched)
	assert.Equal(t, "abc", m.Rest)
	assert.Equal(t, 123, m.Ordnum)

	_, ok = enum.PrefixMatch("abc")
	assert.False(t, ok)
}
