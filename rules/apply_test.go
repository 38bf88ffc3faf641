package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xindygo/xindy/style"
)

func TestApplySingleRunForward(t *testing.T) {
	runs, err := Compile([]style.SortRule{
		{Pattern: "^The ", Replacement: "", RunIndex: 0},
	})
	require.NoError(t, err)

	assert.Equal(t, "Hobbit, The", Apply(runs, "The Hobbit, The")) // only leading "The " is stripped
}

func TestApplyAgainRepeatsToFixedPoint(t *testing.T) {
	runs, err := Compile([]style.SortRule{
		{Pattern: "  ", Replacement: " ", RunIndex: 0, Again: true},
	})
	require.NoError(t, err)

	assert.Equal(t, "a b c", Apply(runs, "a     b  c"))
}

func TestApplyBackwardRunReversesAroundRules(t *testing.T) {
	runs, err := Compile([]style.SortRule{
		{Pattern: "^gni", Replacement: "", RunIndex: 0, Backward: true},
	})
	require.NoError(t, err)

	// "testing" reversed is "gnitset"; stripping its leading "gni" removes
	// the trailing "ing" of the original string once reversed back.
	assert.Equal(t, "test", Apply(runs, "testing"))
}

func TestApplyRunsInIndexOrder(t *testing.T) {
	runs, err := Compile([]style.SortRule{
		{Pattern: "b", Replacement: "x", RunIndex: 1},
		{Pattern: "a", Replacement: "b", RunIndex: 0},
	})
	require.NoError(t, err)

	// run 0 turns "a" into "b", then run 1 turns every "b" (including the
	// one just produced) into "x".
	assert.Equal(t, "x", Apply(runs, "a"))
}
