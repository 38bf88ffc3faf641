// Package markup implements the index renderer (§4.7): a template-
// driven walk over a built index.Index, consulting style.MarkupOptions
// for the open/close/sep/prefix strings of each element and falling back
// to sensible defaults when a style declares none (§7's "RenderError
// never raised"). The range separator and the join between a locref's
// layers are a fixed "-"; range and locref-layer markup options are not
// consulted.
package markup

import (
	"sort"
	"strings"

	"github.com/xindygo/xindy/style"
)

// qualifierOrder must match style.evalMarkup's canonical ordering so a
// qualifier set built here always reconstructs the same lookup key a
// style's markup-* declaration produced.
var qualifierOrder = []string{"depth", "class", "layer", "attr"}

type quals map[string]string

func buildKey(q quals) string {
	if len(q) == 0 {
		return "__default__"
	}

	var parts []string

	for _, name := range qualifierOrder {
		if v, ok := q[name]; ok {
			parts = append(parts, name+"="+v)
		}
	}

	if len(parts) == 0 {
		return "__default__"
	}

	return strings.Join(parts, ",")
}

// options looks up a markup kind's option bucket for q, falling back to
// the kind's "__default__" bucket (style.MarkupOptions.Lookup already
// implements that fallback).
func options(mo style.MarkupOptions, kind string, q quals) map[string]any {
	v, ok := mo.Lookup(kind, buildKey(q))
	if !ok {
		return nil
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	return m
}

func str(mo style.MarkupOptions, kind string, q quals, option string) string {
	m := options(mo, kind, q)
	if m == nil {
		return ""
	}

	if s, ok := m[option].(string); ok {
		return s
	}

	return ""
}

// boolOpt reads a boolean/flag option, defaulting to def when the style
// never declared it.
func boolOpt(mo style.MarkupOptions, kind string, q quals, option string, def bool) bool {
	m := options(mo, kind, q)
	if m == nil {
		return def
	}

	v, ok := m[option]
	if !ok {
		return def
	}

	b, ok := v.(bool)
	if !ok {
		return def
	}

	return b
}

func intOpt(mo style.MarkupOptions, kind string, q quals, option string, def int) int {
	m := options(mo, kind, q)
	if m == nil {
		return def
	}

	v, ok := m[option]
	if !ok {
		return def
	}

	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	default:
		return def
	}
}

// mergedOption implements §4.7's "merged (locref[attr] over locref[default])
// format" rule: prefer the attribute-qualified bucket, fall back to the
// bare-default one, per option name independently.
func mergedOption(mo style.MarkupOptions, kind, attr, option string) string {
	if s := str(mo, kind, quals{"attr": attr}, option); s != "" {
		return s
	}

	return str(mo, kind, nil, option)
}

func sortedGroupOrdnums(groups map[int][]string) []int {
	ordnums := make([]int, 0, len(groups))
	for g := range groups {
		ordnums = append(ordnums, g)
	}

	sort.Ints(ordnums)

	return ordnums
}
