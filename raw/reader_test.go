package raw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileParsesBasicEntry(t *testing.T) {
	src := `(indexentry :key ("apple") :attr "default" :locref "12")`

	entries, err := ReadFile("test.raw", []byte(src))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "default", e.Attribute)
	assert.Equal(t, "12", e.Locref)
	assert.True(t, e.HasLocref)
	require.Len(t, e.Key, 1)
	assert.Equal(t, "apple", e.Key[0].Sort)
}

func TestReadFileParsesTkeyAndXref(t *testing.T) {
	src := `(indexentry :tkey (("apple" "Apple")) :attr "default" :xref ("Fruit"))`

	entries, err := ReadFile("test.raw", []byte(src))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	require.Len(t, e.Key, 1)
	assert.Equal(t, "apple", e.Key[0].Sort)
	assert.Equal(t, "Apple", e.Key[0].Display)
	assert.Equal(t, []string{"Fruit"}, e.XrefTargets)
	assert.False(t, e.HasLocref)
}

func TestReadFileRejectsEmptyKeyPart(t *testing.T) {
	src := `(indexentry :key ("") :attr "default" :locref "1")`

	_, err := ReadFile("test.raw", []byte(src))
	assert.Error(t, err)
}

func TestReadFileRangeMarkers(t *testing.T) {
	src := `(indexentry :key ("apple") :attr "default" :locref "12" :open-range)`

	entries, err := ReadFile("test.raw", []byte(src))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].OpenRange)
	assert.False(t, entries[0].CloseRange)
}
