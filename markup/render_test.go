package markup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xindygo/xindy/index"
	"github.com/xindygo/xindy/locref"
	"github.com/xindygo/xindy/markup"
	"github.com/xindygo/xindy/raw"
	"github.com/xindygo/xindy/style"
)

func pageClass() *locref.LayeredLocationClass {
	digits := locref.BaseTypeLayer{Base: locref.NewEnumeration("arabic-numbers", nil, locref.PrefixMatchRadixNumbers(10))}
	lc := locref.NewStandardLocationClass("page", []locref.LayerElement{digits}, 2, 0)

	return &lc.LayeredLocationClass
}

func buildState() *style.State {
	s := style.New()
	lc := pageClass()
	s.LocationClasses[lc.Name] = lc
	s.LocationClassOrder = []string{lc.Name}

	return s
}

func opt(kind, key string, options map[string]any) func(*style.State) {
	return func(s *style.State) {
		if s.MarkupOptions[kind] == nil {
			s.MarkupOptions[kind] = make(map[string]any)
		}

		s.MarkupOptions[kind][key] = options
	}
}

func withOptions(s *style.State, fns ...func(*style.State)) *style.State {
	for _, fn := range fns {
		fn(s)
	}

	return s
}

func buildIndex(t *testing.T, s *style.State, entries []raw.Entry) *index.Index {
	t.Helper()

	idx, err := index.Build(s, entries)
	require.NoError(t, err)

	return idx
}

func TestRenderWithNoMarkupOptionsUsesDefaults(t *testing.T) {
	s := buildState()
	idx := buildIndex(t, s, []raw.Entry{
		{Key: []raw.KeyPart{{Sort: "apple", Display: "apple"}}, Locref: "1", HasLocref: true},
	})

	out := markup.Render(s, idx)
	assert.Equal(t, "#apple 1", out) // "#" is the fallback letter-group label when none are declared
}

func TestRenderAppliesDeclaredTemplates(t *testing.T) {
	s := withOptions(buildState(),
		opt("index", "__default__", map[string]any{"open": "BEGIN\n", "close": "END\n"}),
		opt("indexentry", "depth=0", map[string]any{"open": "- ", "close": "\n"}),
		opt("locref", "__default__", map[string]any{"open": "(", "close": ")", "sep": "; "}),
	)

	idx := buildIndex(t, s, []raw.Entry{
		{Key: []raw.KeyPart{{Sort: "apple", Display: "apple"}}, Locref: "1", HasLocref: true},
	})

	out := markup.Render(s, idx)
	assert.Equal(t, "BEGIN\n#- apple (1)\nEND\n", out)
}

func TestRenderJoinsContiguousRunIntoRange(t *testing.T) {
	s := buildState()

	idx := buildIndex(t, s, []raw.Entry{
		{Key: []raw.KeyPart{{Sort: "apple", Display: "apple"}}, Locref: "1", HasLocref: true},
		{Key: []raw.KeyPart{{Sort: "apple", Display: "apple"}}, Locref: "2", HasLocref: true},
	})

	out := markup.Render(s, idx)
	assert.Equal(t, "#apple 1-2", out)
}

func TestRenderEmitsCrossrefWithUnverifiedSuffix(t *testing.T) {
	s := withOptions(buildState(),
		opt("crossref", "__default__", map[string]any{"unverified-suffix": "*"}),
	)
	s.CrossrefClasses["see"] = locref.NewCrossrefLocationClass("see", "", false)
	s.CrossrefClassOrder = []string{"see"}

	idx := buildIndex(t, s, []raw.Entry{
		{Key: []raw.KeyPart{{Sort: "apple", Display: "apple"}}, XrefTargets: []string{"fruit"}},
	})

	out := markup.Render(s, idx)
	assert.Equal(t, "#applefruit*", out)
}

func TestRenderDropsLowerPriorityAttributeOnSharedOrdinal(t *testing.T) {
	s := buildState()
	s.ResolveAttribute("primary")
	s.ResolveAttribute("secondary")
	s.Attributes["primary"].SortOrdnum = 0
	s.Attributes["secondary"].SortOrdnum = 1

	entries := []raw.Entry{
		{Key: []raw.KeyPart{{Sort: "apple", Display: "apple"}}, Locref: "1", HasLocref: true, Attribute: "primary"},
		{Key: []raw.KeyPart{{Sort: "apple", Display: "apple"}}, Locref: "1", HasLocref: true, Attribute: "secondary"},
	}

	idx := buildIndex(t, s, entries)

	out := markup.Render(s, idx)
	assert.Equal(t, "#apple 1", out) // the shared ordinal "1" is only emitted once
}
