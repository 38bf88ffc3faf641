package style

import (
	"strings"

	"github.com/xindygo/xindy"
	"github.com/xindygo/xindy/locref"
)

var defineLocationClassHandler = &Handler{
	Name: "define-location-class",
	Doc:  "Declares a location class from a layer specification; :var switches it to variable-depth.",
	Run: func(s *State, args []*xindy.Value) error {
		return evalDefineLocationClass(s, args)
	},
}

var defineLocationClassOrderHandler = &Handler{
	Name: "define-location-class-order",
	Doc:  "Declares the stable priority order the builder tries already-defined location classes in, overriding declaration order.",
	Run: func(s *State, args []*xindy.Value) error {
		var names []*xindy.Value
		if len(args) == 1 && args[0].IsList() {
			names = args[0].List.Items
		} else {
			names = args
		}

		order := make([]string, 0, len(names))

		for _, n := range names {
			name, ok := stringOrSymbol(n)
			if !ok {
				return newStyleError("define-location-class-order names must be strings or symbols", n)
			}

			order = append(order, name)
		}

		s.LocationClassOrder = order

		return nil
	},
}

func evalDefineLocationClass(s *State, args []*xindy.Value) error {
	if len(args) < 2 {
		return newStyleError("define-location-class requires a name and a layer spec", nil)
	}

	name, ok := args[0].AsString()
	if !ok {
		name, ok = args[0].AsSymbol()
	}

	if !ok {
		return newStyleError("define-location-class name must be a string or symbol", args[0])
	}

	if !args[1].IsList() {
		return newStyleError("define-location-class layer spec must be a list", args[1])
	}

	layers, hierdepth, err := parseLayerSpec(s, args[1].List.Items)
	if err != nil {
		return err
	}

	_, kwargs, flags := splitKeywordArgs(args[2:])

	variable := flags["var"]
	explicitHierdepth := hierdepth
	minRangeLength := 0

	if v, ok := kwargs["min-range-length"]; ok {
		minRangeLength, _ = intValue(v)
	} else if v, ok := kwargs["join-length"]; ok {
		minRangeLength, _ = intValue(v)
	}

	if v, ok := kwargs["hierdepth"]; ok {
		explicitHierdepth, _ = intValue(v)
	}

	if minRangeLength == 0 {
		// §4.2: default min-range-length is 3 when the class has a
		// non-trivial hierarchy prefix or includes a roman-numeral
		// layer, else 2.
		minRangeLength = 2
		if explicitHierdepth != 0 || hasRomanLayer(layers) {
			minRangeLength = 3
		}
	}

	var lc *locref.LayeredLocationClass
	if variable {
		lc = &locref.NewVarLocationClass(name, layers, minRangeLength, explicitHierdepth).LayeredLocationClass
	} else {
		lc = &locref.NewStandardLocationClass(name, layers, minRangeLength, explicitHierdepth).LayeredLocationClass
	}

	s.LocationClasses[name] = lc
	s.LocationClassOrder = append(s.LocationClassOrder, name)

	return nil
}

// parseLayerSpec reads a list like (:vcarg alphabet-name) (:sep ".")
// (:vcarg roman) into a LayerElement sequence, counting ordinal-
// contributing layers toward hierdepth (the default, when the style does
// not explicitly state one via :hierdepth).
func parseLayerSpec(s *State, items []*xindy.Value) ([]locref.LayerElement, int, error) {
	var layers []locref.LayerElement

	hierdepth := 0

	for _, item := range items {
		if !item.IsList() {
			return nil, 0, newStyleError("location class layer must be a (:kind ...) list", item)
		}

		kind, ok := item.Head()
		if !ok && len(item.List.Items) > 0 {
			if kw, isKw := item.List.Items[0].AsKeyword(); isKw {
				kind = ":" + kw
			}
		}

		switch kind {
		case ":sep", "sep":
			sepArgs := item.Args()
			if len(sepArgs) != 1 {
				return nil, 0, newStyleError(":sep requires one string argument", item)
			}

			text, ok := sepArgs[0].AsString()
			if !ok {
				return nil, 0, newStyleError(":sep argument must be a string", sepArgs[0])
			}

			layers = append(layers, locref.SeparatorLayer{Separator: text})
		case ":vcarg", "vcarg", ":base", "base":
			vArgs := item.Args()
			if len(vArgs) != 1 {
				return nil, 0, newStyleError(":vcarg requires one basetype name", item)
			}

			baseName, ok := vArgs[0].AsSymbol()
			if !ok {
				baseName, ok = vArgs[0].AsString()
			}

			if !ok {
				return nil, 0, newStyleError(":vcarg argument must name a basetype", vArgs[0])
			}

			base, ok := s.Basetypes[baseName]
			if !ok {
				return nil, 0, newStyleError("undefined basetype "+baseName, vArgs[0])
			}

			layers = append(layers, locref.BaseTypeLayer{Base: base})
			hierdepth++
		default:
			return nil, 0, newStyleError("unknown location class layer kind "+kind, item)
		}
	}

	return layers, hierdepth, nil
}

// hasRomanLayer reports whether any ordinal-contributing layer names a
// basetype whose own name suggests roman-numeral matching, the second
// half of §4.2's default min-range-length rule.
func hasRomanLayer(layers []locref.LayerElement) bool {
	for _, l := range layers {
		if btl, ok := l.(locref.BaseTypeLayer); ok && strings.Contains(strings.ToLower(btl.Base.Name()), "roman") {
			return true
		}
	}

	return false
}


var defineAttributesHandler = &Handler{
	Name: "define-attributes",
	Doc:  "Declares one or more category attribute groups, in priority order.",
	Run: func(s *State, args []*xindy.Value) error {
		groups := args
		if len(args) == 1 && args[0].IsList() && len(args[0].List.Items) > 0 && args[0].List.Items[0].IsList() {
			groups = args[0].List.Items
		}

		for grpOrdnum, group := range groups {
			if !group.IsList() {
				return newStyleError("define-attributes group must be a list of attribute names", group)
			}

			items := group.List.Items

			names := make([]string, 0, len(items))

			for _, nameVal := range items {
				name, ok := nameVal.AsString()
				if !ok {
					name, ok = nameVal.AsSymbol()
				}

				if !ok {
					return newStyleError("attribute name must be a string or symbol", nameVal)
				}

				names = append(names, name)
			}

			for sortOrdnum, name := range names {
				cat := s.ResolveAttribute(name)
				cat.CatattrGrpOrdnum = grpOrdnum
				cat.SortOrdnum = sortOrdnum
				cat.ProcessingOrdnum = len(s.AttributeOrder)

				if len(names) > 1 {
					cat.LastInGroup = names[len(names)-1]
				}
			}
		}

		return nil
	},
}

var defineCrossrefClassHandler = &Handler{
	Name: "define-crossref-class",
	Doc:  "Declares a crossref location class, optionally unverified.",
	Run: func(s *State, args []*xindy.Value) error {
		if len(args) < 1 {
			return newStyleError("define-crossref-class requires a name", nil)
		}

		name, ok := args[0].AsString()
		if !ok {
			name, ok = args[0].AsSymbol()
		}

		if !ok {
			return newStyleError("define-crossref-class name must be a string or symbol", args[0])
		}

		verified := true

		for _, opt := range args[1:] {
			if kw, ok := opt.AsKeyword(); ok && kw == "unverified" {
				verified = false
			}
		}

		if _, exists := s.CrossrefClasses[name]; !exists {
			s.CrossrefClassOrder = append(s.CrossrefClassOrder, name)
		}

		s.CrossrefClasses[name] = locref.NewCrossrefLocationClass(name, "", verified)

		return nil
	},
}

var defineLetterGroupHandler = &Handler{
	Name: "define-letter-group",
	Doc:  "Appends a single letter group label.",
	Run: func(s *State, args []*xindy.Value) error {
		positional, _, _ := splitKeywordArgs(args)

		for _, a := range positional {
			label, ok := a.AsString()
			if !ok {
				label, ok = a.AsSymbol()
			}

			if !ok {
				continue
			}

			s.LetterGroups = append(s.LetterGroups, label)

			break
		}

		return nil
	},
}

var defineLetterGroupsHandler = &Handler{
	Name: "define-letter-groups",
	Doc:  "Declares the full ordered list of letter group labels at once.",
	Run: func(s *State, args []*xindy.Value) error {
		s.LetterGroups = nil

		for _, a := range args {
			if a.IsList() {
				for _, inner := range a.Args() {
					label, ok := inner.AsString()
					if !ok {
						label, ok = inner.AsSymbol()
					}

					if ok {
						s.LetterGroups = append(s.LetterGroups, label)
					}
				}

				continue
			}

			label, ok := a.AsString()
			if !ok {
				label, ok = a.AsSymbol()
			}

			if ok {
				s.LetterGroups = append(s.LetterGroups, label)
			}
		}

		return nil
	},
}
