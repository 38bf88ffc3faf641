package xindy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStringLiteralEscapeRule exercises spec.md §4.1's escape rule: only
// `\"` and `\\` decode; any other `\X` sequence (notably `\(` and `\)`,
// the backslash usage a :bregexp pattern actually needs) passes through
// unchanged, backslash included.
func TestStringLiteralEscapeRule(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{name: "escaped quote", src: `"a\"b"`, want: `a"b`},
		{name: "escaped backslash", src: `"a\\b"`, want: `a\b`},
		{name: "unrecognized escape preserves backslash", src: `"\("`, want: `\(`},
		{name: "unrecognized escape preserves backslash close paren", src: `"\)"`, want: `\)`},
		{name: "unrecognized letter escape", src: `"\n"`, want: `\n`},
		{name: "plain string", src: `"abc"`, want: `abc`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			list, err := Parse([]byte("(f " + tc.src + ")"))
			require.NoError(t, err)
			require.Len(t, list.Items, 2)

			s, ok := list.Items[1].AsString()
			require.True(t, ok)
			assert.Equal(t, tc.want, s)
		})
	}
}

// TestStringLiteralEscapeRuleRoundTripsBREPattern guards the concrete
// motivating case: a :bregexp sort-rule pattern with literal \( ... \)
// group markers must survive the DSL string reader intact so
// translateBREtoERE (style/handlers_rules.go) sees the backslashes it
// expects to translate.
func TestStringLiteralEscapeRuleRoundTripsBREPattern(t *testing.T) {
	list, err := Parse([]byte(`(sort-rule "\(a\)" "$1")`))
	require.NoError(t, err)
	require.Len(t, list.Items, 3)

	pattern, ok := list.Items[1].AsString()
	require.True(t, ok)
	assert.Equal(t, `\(a\)`, pattern)
}
