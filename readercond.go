package xindy

import "strings"

// filterReaderConditionals implements the two distinct `#+FEATURE`
// behaviours the style DSL supports.
//
// At the top level of a file, a standalone `#+FEATURE` is a one-shot
// latch: it guards only the single form that follows it. If FEATURE is
// not active, that one form is dropped; the latch then clears regardless.
//
// As the first element of a list's body, `#+FEATURE` instead guards the
// entire remainder of that list: if FEATURE is not active, every
// remaining element of the list is dropped (the list survives, empty of
// those elements); if active, the guard marker is removed and the rest
// of the body is kept, filtered recursively.
//
// features is nil-safe: a nil map means no feature is active.
func filterReaderConditionals(forms []*Value, features map[string]bool) []*Value {
	out := make([]*Value, 0, len(forms))

	var pending string

	havePending := false

	for _, form := range forms {
		if form.ReaderCond != nil {
			pending = *form.ReaderCond
			havePending = true

			continue
		}

		if havePending {
			havePending = false

			if !featureActive(pending, features) {
				continue
			}
		}

		out = append(out, filterValue(form, features))
	}

	return out
}

// filterValue recurses into a form's list body, applying the list-head
// guard semantics to nested lists.
func filterValue(v *Value, features map[string]bool) *Value {
	if v.List == nil {
		return v
	}

	v.List.Items = filterListBody(v.List.Items, features)

	return v
}

func filterListBody(items []*Value, features map[string]bool) []*Value {
	if len(items) == 0 {
		return items
	}

	if items[0].ReaderCond != nil {
		feature := *items[0].ReaderCond
		if !featureActive(feature, features) {
			return nil
		}

		return filterListBody(items[1:], features)
	}

	out := make([]*Value, 0, len(items))
	for _, item := range items {
		out = append(out, filterValue(item, features))
	}

	return out
}

// featureActive evaluates a raw reader-conditional token (e.g. "#+html"
// or "#-html") against the active feature set.
func featureActive(token string, features map[string]bool) bool {
	negate := strings.HasPrefix(token, "#-")
	name := strings.TrimPrefix(strings.TrimPrefix(token, "#+"), "#-")

	active := features != nil && features[name]
	if negate {
		return !active
	}

	return active
}
