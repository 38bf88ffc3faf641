package style

import (
	"strconv"
	"strings"

	"github.com/xindygo/xindy"
)

// markupKinds lists every markup-* form the DSL defines. They all share
// a shape: a kind (the form name with "markup-" stripped), an optional
// set of qualifier keywords (:depth/:class/:layer/:attr) narrowing which
// node the template applies to, and a set of option keywords (:open,
// :close, :sep, :open-head, :close-head, :template, :capitalize, ...)
// whose values the renderer consults. A form with no qualifiers is
// stored under the "__default__" bucket MarkupOptions.Lookup falls back
// to.
var markupKinds = []string{
	"markup-index",
	"markup-letter-group-list",
	"markup-letter-group",
	"markup-indexentry",
	"markup-indexentry-list",
	"markup-locclass-list",
	"markup-locclass",
	"markup-locref-list",
	"markup-locref-layer",
	"markup-locref",
	"markup-range",
	"markup-crossref-list",
	"markup-crossref-layer-list",
	"markup-crossref",
	"markup-attribute-group-list",
	"markup-attribute-group",
	"markup-trunc",
}

func markupHandlers() []*Handler {
	handlers := make([]*Handler, 0, len(markupKinds))

	for _, name := range markupKinds {
		kind := strings.TrimPrefix(name, "markup-")
		handlers = append(handlers, &Handler{
			Name: name,
			Doc:  "Stores a markup template's option set under its (possibly qualified) key.",
			Run: func(s *State, args []*xindy.Value) error {
				return evalMarkup(s, kind, args)
			},
		})
	}

	return handlers
}

// qualifierKeywords are the keyword arguments that narrow *which* node a
// markup form targets rather than describing *how* to render it; they
// compose into the map key under which the option set is stored.
var qualifierKeywords = []string{"depth", "class", "layer", "attr"}

func evalMarkup(s *State, kind string, args []*xindy.Value) error {
	positional, kwargs, flags := splitKeywordArgs(args)

	// Qualifier parts are assembled in the fixed qualifierKeywords order
	// (not flags' iteration order, which Go leaves unspecified) so the
	// same (depth, class, layer, attr) combination always produces the
	// same lookup key, regardless of the order the style wrote them in.
	var parts []string

	for _, name := range qualifierKeywords {
		if !flags[name] {
			continue
		}

		val, hasVal := kwargs[name]
		text := ""

		if hasVal {
			text = valueText(val)
		}

		parts = append(parts, name+"="+text)
	}

	options := make(map[string]any, len(kwargs)+len(flags))

	for name, flag := range flags {
		if !flag || isQualifier(name) {
			continue
		}

		if val, hasVal := kwargs[name]; hasVal {
			options[name] = markupValue(val)
		} else {
			options[name] = true
		}
	}

	if len(positional) > 0 {
		options["template"] = markupValue(positional[0])
	}

	key := "__default__"
	if len(parts) > 0 {
		key = strings.Join(parts, ",")
	}

	if s.MarkupOptions[kind] == nil {
		s.MarkupOptions[kind] = make(map[string]any)
	}

	s.MarkupOptions[kind][key] = options

	return nil
}

func isQualifier(name string) bool {
	for _, q := range qualifierKeywords {
		if q == name {
			return true
		}
	}

	return false
}

func valueText(v *xindy.Value) string {
	if s, ok := v.AsString(); ok {
		return s
	}

	if s, ok := v.AsSymbol(); ok {
		return s
	}

	if v.Integer != nil {
		return strconv.FormatInt(*v.Integer, 10)
	}

	return v.String()
}

func markupValue(v *xindy.Value) any {
	if s, ok := v.AsString(); ok {
		return normalizeMarkupString(s)
	}

	if s, ok := v.AsSymbol(); ok {
		return s
	}

	if v.Integer != nil {
		return *v.Integer
	}

	return v.String()
}

// normalizeMarkupString applies §4.7's string normalisation rules to a
// markup template literal as it is stored: "~n" becomes a newline and
// "~~" becomes a literal tilde.
func normalizeMarkupString(s string) string {
	var b strings.Builder

	for i := 0; i < len(s); i++ {
		if s[i] == '~' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++

				continue
			case '~':
				b.WriteByte('~')
				i++

				continue
			}
		}

		b.WriteByte(s[i])
	}

	return b.String()
}
