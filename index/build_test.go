package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xindygo/xindy/index"
	"github.com/xindygo/xindy/locref"
	"github.com/xindygo/xindy/raw"
	"github.com/xindygo/xindy/style"
)

func digitClass(name string, minRangeLength int) *locref.LayeredLocationClass {
	digits := locref.BaseTypeLayer{Base: locref.NewEnumeration("arabic-numbers", nil, locref.PrefixMatchRadixNumbers(10))}
	lc := locref.NewStandardLocationClass(name, []locref.LayerElement{digits}, minRangeLength, 0)

	return &lc.LayeredLocationClass
}

func newTestState(minRangeLength int) *style.State {
	s := style.New()
	lc := digitClass("page", minRangeLength)
	s.LocationClasses[lc.Name] = lc
	s.LocationClassOrder = []string{lc.Name}

	return s
}

func entry(key, loc string) raw.Entry {
	return raw.Entry{Key: []raw.KeyPart{{Sort: key, Display: key}}, Locref: loc, HasLocref: true}
}

func TestBuildRejectsStyleWithNoLocationClasses(t *testing.T) {
	_, err := index.Build(style.New(), []raw.Entry{entry("alpha", "1")})
	require.Error(t, err)
}

func TestBuildGroupsSortsAndMatchesLocrefs(t *testing.T) {
	s := newTestState(2)

	entries := []raw.Entry{
		entry("banana", "4"),
		entry("apple", "1"),
		entry("cherry", "9"),
	}

	idx, err := index.Build(s, entries)
	require.NoError(t, err)
	require.Len(t, idx.Groups, 1)

	group := idx.Groups[0]
	require.Len(t, group.Nodes, 3)

	// sorted lexicographically by the (single-run, identity) sort tuple
	assert.Equal(t, "apple", group.Nodes[0].Display)
	assert.Equal(t, "banana", group.Nodes[1].Display)
	assert.Equal(t, "cherry", group.Nodes[2].Display)

	for _, n := range group.Nodes {
		require.Len(t, n.Locrefs, 1)
	}
}

func TestBuildWarnsOnUnmatchedLocref(t *testing.T) {
	s := newTestState(2)

	idx, err := index.Build(s, []raw.Entry{entry("alpha", "not-a-number")})
	require.NoError(t, err)
	require.Len(t, idx.Warnings, 1)
	assert.Empty(t, idx.Groups)
}

func TestBuildWarnsWhenLocrefMissing(t *testing.T) {
	s := newTestState(2)

	missing := raw.Entry{Key: []raw.KeyPart{{Sort: "alpha", Display: "alpha"}}}

	idx, err := index.Build(s, []raw.Entry{missing})
	require.NoError(t, err)
	require.Len(t, idx.Warnings, 1)
	assert.Contains(t, idx.Warnings[0].Message, "locref")
}

func TestBuildMergesSiblingKeysIntoOneNode(t *testing.T) {
	s := newTestState(2)

	entries := []raw.Entry{
		entry("alpha", "1"),
		entry("alpha", "2"),
	}

	idx, err := index.Build(s, entries)
	require.NoError(t, err)
	require.Len(t, idx.Groups[0].Nodes, 1)
	assert.Len(t, idx.Groups[0].Nodes[0].Locrefs, 2)
}

func TestBuildCollapsesContiguousRunIntoRange(t *testing.T) {
	s := newTestState(2)

	entries := []raw.Entry{
		entry("alpha", "1"),
		entry("alpha", "2"),
		entry("alpha", "3"),
	}

	idx, err := index.Build(s, entries)
	require.NoError(t, err)

	node := idx.Groups[0].Nodes[0]
	require.Len(t, node.Ranges, 1)
	assert.Len(t, node.Covered, 3)
}

func TestBuildDoesNotRangeAShortRun(t *testing.T) {
	s := newTestState(3)

	entries := []raw.Entry{
		entry("alpha", "1"),
		entry("alpha", "2"),
	}

	idx, err := index.Build(s, entries)
	require.NoError(t, err)

	node := idx.Groups[0].Nodes[0]
	assert.Empty(t, node.Ranges)
}

func TestBuildProgressMarkersAreDeciles(t *testing.T) {
	s := newTestState(2)

	entries := make([]raw.Entry, 10)
	for i := range entries {
		entries[i] = entry("alpha", "1")
	}

	idx, err := index.Build(s, entries)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, idx.ProgressMarkers)
}

func TestBuildCrossrefUsesFirstDeclaredCrossrefClass(t *testing.T) {
	s := newTestState(2)
	s.CrossrefClasses["see"] = locref.NewCrossrefLocationClass("see", "", true)
	s.CrossrefClassOrder = []string{"see"}

	xref := raw.Entry{
		Key:         []raw.KeyPart{{Sort: "alpha", Display: "alpha"}},
		XrefTargets: []string{"beta"},
	}

	idx, err := index.Build(s, []raw.Entry{xref})
	require.NoError(t, err)
	require.Len(t, idx.Groups[0].Nodes[0].Locrefs, 1)

	ref, ok := idx.Groups[0].Nodes[0].Locrefs[0].(*locref.CrossrefLocationReference)
	require.True(t, ok)
	assert.Equal(t, "beta", ref.Target)
}
