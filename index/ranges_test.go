package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xindygo/xindy/index"
	"github.com/xindygo/xindy/raw"
)

func rangedEntry(key, loc string, open, close bool) raw.Entry {
	e := entry(key, loc)
	e.OpenRange = open
	e.CloseRange = close

	return e
}

func TestBuildCollapsesExplicitOpenCloseMarkersIntoOneRange(t *testing.T) {
	s := newTestState(2)

	entries := []raw.Entry{
		rangedEntry("alpha", "3", true, false),
		rangedEntry("alpha", "7", false, true),
	}

	idx, err := index.Build(s, entries)
	require.NoError(t, err)

	node := idx.Groups[0].Nodes[0]
	require.Len(t, node.Ranges, 1)
	assert.Equal(t, "3", node.Ranges[0].Start.LocrefString)
	assert.Equal(t, "7", node.Ranges[0].End.LocrefString)
}

func TestBuildRevertsOpenCloseMarkersShorterThanMinRangeLength(t *testing.T) {
	s := newTestState(3)

	entries := []raw.Entry{
		rangedEntry("alpha", "3", true, false),
		rangedEntry("alpha", "4", false, true),
	}

	idx, err := index.Build(s, entries)
	require.NoError(t, err)

	node := idx.Groups[0].Nodes[0]
	assert.Empty(t, node.Ranges)
}
