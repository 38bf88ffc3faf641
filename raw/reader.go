// Package raw reads .raw index-entry files: S-expression forms of the
// shape (indexentry :key (...) :attr "..." :locref "..." ...).
package raw

import (
	"github.com/samber/oops"

	"github.com/xindygo/xindy"
)

// KeyPart is one level of a (possibly multi-level) sort/display key.
// Sort and Display differ only when the entry used :tkey to override the
// display spelling for that level independently of its sort spelling.
type KeyPart struct {
	Sort    string
	Display string
}

// Entry is a single parsed raw index entry.
type Entry struct {
	Key         []KeyPart
	Attribute   string
	Locref      string
	HasLocref   bool
	XrefTargets []string
	OpenRange   bool
	CloseRange  bool
}

// ReadFile parses every (indexentry ...) form in data.
func ReadFile(filename string, data []byte) ([]Entry, error) {
	forms, err := xindy.ParseFile(filename, data)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(forms))

	for _, form := range forms {
		head, ok := form.Head()
		if !ok || head != "indexentry" {
			continue
		}

		entry, err := parseEntry(form.Args())
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func parseEntry(args []*xindy.Value) (Entry, error) {
	var entry Entry

	i := 0
	for i < len(args) {
		kw, ok := args[i].AsKeyword()
		if !ok {
			return Entry{}, newRawError("expected a :keyword in indexentry form", args[i])
		}

		switch kw {
		case "key":
			if i+1 >= len(args) {
				return Entry{}, newRawError(":key requires a value", args[i])
			}

			parts, err := parseKey(args[i+1])
			if err != nil {
				return Entry{}, err
			}

			entry.Key = parts
			i += 2
		case "tkey":
			if i+1 >= len(args) {
				return Entry{}, newRawError(":tkey requires a value", args[i])
			}

			parts, err := parseTKey(args[i+1])
			if err != nil {
				return Entry{}, err
			}

			entry.Key = parts
			i += 2
		case "attr":
			if i+1 >= len(args) {
				return Entry{}, newRawError(":attr requires a value", args[i])
			}

			attr, ok := args[i+1].AsString()
			if !ok {
				attr, ok = args[i+1].AsSymbol()
			}

			if !ok {
				return Entry{}, newRawError(":attr must be a string or symbol", args[i+1])
			}

			entry.Attribute = attr
			i += 2
		case "locref":
			if i+1 >= len(args) {
				return Entry{}, newRawError(":locref requires a value", args[i])
			}

			loc, ok := args[i+1].AsString()
			if !ok {
				return Entry{}, newRawError(":locref must be a string", args[i+1])
			}

			entry.Locref = loc
			entry.HasLocref = true
			i += 2
		case "xref":
			if i+1 >= len(args) {
				return Entry{}, newRawError(":xref requires a value", args[i])
			}

			targets, err := parseXref(args[i+1])
			if err != nil {
				return Entry{}, err
			}

			entry.XrefTargets = targets
			i += 2
		case "open-range":
			entry.OpenRange = true
			i++
		case "close-range":
			entry.CloseRange = true
			i++
		default:
			// Unknown keywords are preserved-but-ignored in the reference
			// reader's "extras" bag; nothing downstream in SPEC_FULL.md
			// needs them, so they're simply skipped (with their value, if
			// the next token isn't itself a keyword).
			if i+1 < len(args) && !isKeywordValue(args[i+1]) {
				i += 2
			} else {
				i++
			}
		}
	}

	if len(entry.Key) == 0 {
		return Entry{}, newRawError("indexentry requires a non-empty :key", nil)
	}

	return entry, nil
}

func isKeywordValue(v *xindy.Value) bool {
	_, ok := v.AsKeyword()

	return ok
}

// parseKey reads a :key value, a list of per-level strings (or a single
// bare string for a one-level key).
func parseKey(v *xindy.Value) ([]KeyPart, error) {
	if !v.IsList() {
		text, ok := v.AsString()
		if !ok {
			return nil, newRawError(":key level must be a string", v)
		}

		if text == "" {
			return nil, newRawError(":key level must not be empty", v)
		}

		return []KeyPart{{Sort: text, Display: text}}, nil
	}

	items := v.List.Items

	parts := make([]KeyPart, 0, len(items))

	for _, item := range items {
		text, ok := item.AsString()
		if !ok {
			return nil, newRawError(":key level must be a string", item)
		}

		if text == "" {
			return nil, newRawError(":key level must not be empty", item)
		}

		parts = append(parts, KeyPart{Sort: text, Display: text})
	}

	return parts, nil
}

// parseTKey reads a :tkey value: a list of (sort display) pairs, one per
// key level, letting a level's display spelling diverge from the text
// used to compute its sort position.
func parseTKey(v *xindy.Value) ([]KeyPart, error) {
	if !v.IsList() {
		return nil, newRawError(":tkey must be a list of (sort display) pairs", v)
	}

	parts := make([]KeyPart, 0, len(v.List.Items))

	for _, level := range v.List.Items {
		if !level.IsList() || len(level.List.Items) != 2 {
			return nil, newRawError(":tkey level must be a (sort display) pair", level)
		}

		sort, ok := level.List.Items[0].AsString()
		if !ok {
			return nil, newRawError(":tkey sort spelling must be a string", level.List.Items[0])
		}

		display, ok := level.List.Items[1].AsString()
		if !ok {
			return nil, newRawError(":tkey display spelling must be a string", level.List.Items[1])
		}

		if sort == "" || display == "" {
			return nil, newRawError(":tkey level spellings must not be empty", level)
		}

		parts = append(parts, KeyPart{Sort: sort, Display: display})
	}

	return parts, nil
}

// parseXref reads a :xref value: a single string, or a list of strings
// (each naming a target entry's display key).
func parseXref(v *xindy.Value) ([]string, error) {
	if !v.IsList() {
		text, ok := v.AsString()
		if !ok {
			return nil, newRawError(":xref must be a string or a list of strings", v)
		}

		return []string{text}, nil
	}

	targets := make([]string, 0, len(v.List.Items))

	for _, item := range v.List.Items {
		text, ok := item.AsString()
		if !ok {
			return nil, newRawError("unsupported :xref list element", item)
		}

		targets = append(targets, text)
	}

	if len(targets) == 0 {
		return nil, newRawError(":xref list must not be empty", v)
	}

	return targets, nil
}

func newRawError(msg string, v *xindy.Value) error {
	b := oops.Code("StyleError")
	if v != nil {
		b = b.With("form", v.String())
	}

	return b.Errorf("%s", msg)
}
