package style

import (
	"github.com/xindygo/xindy"
	"github.com/xindygo/xindy/locref"
)

var defineAlphabetHandler = &Handler{
	Name: "define-alphabet",
	Doc:  "Declares a named ordered symbol alphabet.",
	Run:  evalDefineAlphabet,
}

var defineAlphabetStarHandler = &Handler{
	Name: "define-alphabet*",
	Doc:  "Like define-alphabet, but merges into an existing alphabet of the same name instead of replacing it.",
	Run:  evalDefineAlphabetStar,
}

func evalDefineAlphabet(s *State, args []*xindy.Value) error {
	name, symbols, err := parseAlphabetArgs(args)
	if err != nil {
		return err
	}

	s.Basetypes[name] = locref.NewAlphabet(name, symbols)

	return nil
}

func evalDefineAlphabetStar(s *State, args []*xindy.Value) error {
	name, symbols, err := parseAlphabetArgs(args)
	if err != nil {
		return err
	}

	existing, ok := s.Basetypes[name]
	if !ok {
		s.Basetypes[name] = locref.NewAlphabet(name, symbols)

		return nil
	}

	prior, ok := existing.(*locref.Alphabet)
	if !ok {
		return newStyleError("define-alphabet* target is not an alphabet", nil)
	}

	s.Basetypes[name] = locref.NewAlphabet(name, append(prior.Symbols(), symbols...))

	return nil
}

func parseAlphabetArgs(args []*xindy.Value) (name string, symbols []string, err error) {
	if len(args) < 2 {
		return "", nil, newStyleError("define-alphabet requires a name and a symbol list", nil)
	}

	name, ok := args[0].AsString()
	if !ok {
		name, ok = args[0].AsSymbol()
	}

	if !ok {
		return "", nil, newStyleError("define-alphabet name must be a string or symbol", args[0])
	}

	if !args[1].IsList() {
		return "", nil, newStyleError("define-alphabet symbol list must be a list", args[1])
	}

	for _, item := range args[1].Args() {
		sym, ok := item.AsString()
		if !ok {
			sym, ok = item.AsSymbol()
		}

		if !ok {
			return "", nil, newStyleError("alphabet symbol must be a string or symbol", item)
		}

		symbols = append(symbols, sym)
	}

	return name, symbols, nil
}

var defineEnumerationHandler = &Handler{
	Name: "define-enumeration",
	Doc:  "Declares a named enumeration basetype (arabic numbers, roman numerals, or alphabetic letter sequences).",
	Run: func(s *State, args []*xindy.Value) error {
		if len(args) < 2 {
			return newStyleError("define-enumeration requires a name and a kind", nil)
		}

		name, ok := args[0].AsString()
		if !ok {
			name, ok = args[0].AsSymbol()
		}

		if !ok {
			return newStyleError("define-enumeration name must be a string or symbol", args[0])
		}

		kind, ok := args[1].AsSymbol()
		if !ok {
			kind, ok = args[1].AsKeyword()
		}

		if !ok {
			return newStyleError("define-enumeration kind must be a symbol or keyword", args[1])
		}

		enum, err := buildEnumeration(name, kind)
		if err != nil {
			return err
		}

		s.Basetypes[name] = enum

		return nil
	},
}

func buildEnumeration(name, kind string) (*locref.Enumeration, error) {
	switch kind {
	case "arabic-numbers", "numeric":
		return locref.NewEnumeration(name, []rune("0123456789"), locref.PrefixMatchRadixNumbers(10)), nil
	case "roman-numbers-lowercase", "roman-numbers-uppercase", "roman":
		return locref.NewEnumeration(name, []rune("ivxlcdmIVXLCDM"),
			func(text string) (string, string, int, bool) {
				return locref.PrefixMatchRomanNumbers(text)
			}), nil
	case "alpha-numbers":
		return locref.NewEnumeration(name, []rune("abcdefghijklmnopqrstuvwxyz"), prefixMatchAlpha), nil
	default:
		return nil, newStyleError("unknown enumeration kind "+kind, nil)
	}
}

// prefixMatchAlpha matches a single ASCII letter as a base-26 ordinal
// (a=1, b=2, ..., z=26), the classic "list item a., b., c." scheme.
func prefixMatchAlpha(text string) (string, string, int, bool) {
	if len(text) == 0 {
		return "", text, 0, false
	}

	c := text[0]

	var ordnum int

	switch {
	case c >= 'a' && c <= 'z':
		ordnum = int(c-'a') + 1
	case c >= 'A' && c <= 'Z':
		ordnum = int(c-'A') + 1
	default:
		return "", text, 0, false
	}

	return text[:1], text[1:], ordnum, true
}
