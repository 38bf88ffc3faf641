package locref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLocationReferenceReturnsNilOnFailure(t *testing.T) {
	digits := BaseTypeLayer{Base: &Enumeration{name: "num", match: PrefixMatchRadixNumbers(10)}}
	loc := NewStandardLocationClass("page", []LayerElement{digits}, 0, 0)
	cat := NewCategoryAttribute("default")

	ref := BuildLocationReference(&loc.LayeredLocationClass, "notanumber", cat, "default")
	assert.Nil(t, ref)
}

func TestBuildLocationReferenceSuccess(t *testing.T) {
	digits := BaseTypeLayer{Base: &Enumeration{name: "num", match: PrefixMatchRadixNumbers(10)}}
	loc := NewStandardLocationClass("page", []LayerElement{digits}, 0, 0)
	cat := NewCategoryAttribute("default")

	ref := BuildLocationReference(&loc.LayeredLocationClass, "42", cat, "default")
	require.NotNil(t, ref)
	assert.Equal(t, []int{42}, ref.Ordnums)
	assert.Equal(t, "42", ref.LocrefString)
}

func TestLocrefOrdnumLessShorterPrefixWinsOnTie(t *testing.T) {
	assert.True(t, LocrefOrdnumLess([]int{1}, []int{1, 2}))
	assert.False(t, LocrefOrdnumLess([]int{1, 2}, []int{1}))
	assert.True(t, LocrefOrdnumLess([]int{1, 2}, []int{1, 3}))
	assert.False(t, LocrefOrdnumLess([]int{1, 2}, []int{1, 2}))
}

func TestLocrefClassLessOrdersByDeclarationOrdnum(t *testing.T) {
	first := NewStandardLocationClass("page", nil, 0, 0)
	second := NewStandardLocationClass("section", nil, 0, 0)

	a := &LayeredLocationReference{Locclass: &first.LayeredLocationClass}
	b := &LayeredLocationReference{Locclass: &second.LayeredLocationClass}

	assert.True(t, LocrefClassLess(a, b))
}
