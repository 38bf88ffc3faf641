package style

import "github.com/xindygo/xindy"

// splitKeywordArgs implements §4.2's shared keyword-argument grammar: a
// leading run of non-keyword values is positional, after which each
// Keyword atom consumes the single following non-keyword value, or
// defaults to a boolean flag (true) if the next token is itself a
// keyword or the form ends. Every DSL handler that accepts :option
// values after its required positional arguments goes through this
// instead of re-parsing the flat argument list by hand.
func splitKeywordArgs(args []*xindy.Value) (positional []*xindy.Value, kwargs map[string]*xindy.Value, flags map[string]bool) {
	kwargs = make(map[string]*xindy.Value)
	flags = make(map[string]bool)

	i := 0
	for i < len(args) {
		if _, ok := args[i].AsKeyword(); ok {
			break
		}

		positional = append(positional, args[i])
		i++
	}

	for i < len(args) {
		kw, ok := args[i].AsKeyword()
		if !ok {
			i++
			continue
		}

		i++

		if i < len(args) {
			if _, isKw := args[i].AsKeyword(); !isKw {
				kwargs[kw] = args[i]
				flags[kw] = true
				i++

				continue
			}
		}

		flags[kw] = true
	}

	return positional, kwargs, flags
}

// stringOrSymbol reads v as a string or bare symbol, the two spellings
// the DSL accepts interchangeably for names almost everywhere.
func stringOrSymbol(v *xindy.Value) (string, bool) {
	if s, ok := v.AsString(); ok {
		return s, true
	}

	return v.AsSymbol()
}

// intValue reads v as an integer literal.
func intValue(v *xindy.Value) (int, bool) {
	if v == nil || v.Integer == nil {
		return 0, false
	}

	return int(*v.Integer), true
}
