package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xindygo/xindy/index"
	"github.com/xindygo/xindy/raw"
	"github.com/xindygo/xindy/style"
)

func TestBuildGroupsByDeclaredLetterGroups(t *testing.T) {
	s := newTestState(2)
	s.LetterGroups = []string{"A", "B"}

	entries := []raw.Entry{
		entry("apple", "1"),
		entry("banana", "3"),
		entry("avocado", "5"),
	}

	idx, err := index.Build(s, entries)
	require.NoError(t, err)
	require.Len(t, idx.Groups, 2)

	assert.Equal(t, "A", idx.Groups[0].Label)
	assert.Len(t, idx.Groups[0].Nodes, 2)
	assert.Equal(t, "B", idx.Groups[1].Label)
	assert.Len(t, idx.Groups[1].Nodes, 1)
}

func TestBuildGroupsFallBackToFirstDeclaredGroupWhenNoPrefixMatches(t *testing.T) {
	s := newTestState(2)
	s.LetterGroups = []string{"A", "B"}

	entries := []raw.Entry{
		entry("apple", "1"),
		entry("9lives", "3"), // matches neither "a" nor "b", falls back to the first group
	}

	idx, err := index.Build(s, entries)
	require.NoError(t, err)
	require.Len(t, idx.Groups, 1)

	assert.Equal(t, "A", idx.Groups[0].Label)
	assert.Len(t, idx.Groups[0].Nodes, 2)
}

func TestBuildStripsLeadingPunctuationForGroupLookup(t *testing.T) {
	s := style.New()
	s.LetterGroups = []string{"A"}
	lc := digitClass("page", 2)
	s.LocationClasses[lc.Name] = lc
	s.LocationClassOrder = []string{lc.Name}

	idx, err := index.Build(s, []raw.Entry{entry("\"apple\"", "1")})
	require.NoError(t, err)
	require.Len(t, idx.Groups, 1)
	assert.Equal(t, "A", idx.Groups[0].Label)
}
