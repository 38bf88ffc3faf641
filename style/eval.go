package style

import (
	"fmt"

	"github.com/samber/oops"

	"github.com/xindygo/xindy"
)

// Handler evaluates one style form-head (e.g. "define-alphabet") against
// the running State, given the form's argument list. Inspired by the
// teacher's named-Rule-struct analysis registry: each form head gets a
// single named Handler instead of one large switch.
type Handler struct {
	// Name is the form head this handler responds to.
	Name string

	// Doc is a short human description, mirroring the analysis package's
	// per-rule Doc field.
	Doc string

	Run func(s *State, args []*xindy.Value) error
}

// Dispatch maps form-head symbol to its Handler. Built once from
// defaultHandlers.
var Dispatch = buildDispatch()

func buildDispatch() map[string]*Handler {
	handlers := defaultHandlers()
	table := make(map[string]*Handler, len(handlers))

	for _, h := range handlers {
		table[h.Name] = h
	}

	return table
}

func defaultHandlers() []*Handler {
	handlers := []*Handler{
		searchpathHandler,
		requireHandler,
		defineAlphabetHandler,
		defineAlphabetStarHandler,
		defineEnumerationHandler,
		defineLocationClassHandler,
		defineLocationClassOrderHandler,
		defineAttributesHandler,
		defineLetterGroupHandler,
		defineLetterGroupsHandler,
		defineSortRuleOrientationsHandler,
		sortRuleHandler,
		defineRuleSetHandler,
		useRuleSetHandler,
		mergeToHandler,
		mergeRuleHandler,
		defineCrossrefClassHandler,
		prognHandler,
		mapcHandler,
	}

	return append(handlers, markupHandlers()...)
}

// Eval evaluates a single top-level form against s, dispatching on its
// head symbol. Unknown heads are reported as a StyleError rather than
// silently ignored, matching the reference evaluator's strictness.
func Eval(s *State, form *xindy.Value) error {
	head, ok := form.Head()
	if !ok {
		return newStyleError("form is not a (head ...) list", form)
	}

	handler, ok := Dispatch[head]
	if !ok {
		return newStyleError(fmt.Sprintf("unknown style form %q", head), form)
	}

	return handler.Run(s, form.Args())
}

// EvalAll evaluates every form in order, stopping at the first error.
func EvalAll(s *State, forms []*xindy.Value) error {
	for _, form := range forms {
		if err := Eval(s, form); err != nil {
			return err
		}
	}

	return nil
}

func newStyleError(msg string, form *xindy.Value) error {
	b := oops.Code("StyleError")
	if form != nil {
		b = b.With("form", form.String())
	}

	return b.Errorf("%s", msg)
}

// progn and mapc are control forms, not declarations: progn evaluates
// its body in sequence (its only purpose is grouping, e.g. inside a
// reader-conditional guarded list); mapc applies a one-argument style
// form repeatedly, substituting each element of a literal list for the
// placeholder argument. Both let a style register a family of similar
// declarations compactly.

var prognHandler = &Handler{
	Name: "progn",
	Doc:  "Evaluates each argument as a top-level style form in sequence.",
	Run: func(s *State, args []*xindy.Value) error {
		for _, arg := range args {
			if err := Eval(s, arg); err != nil {
				return err
			}
		}

		return nil
	},
}

var mapcHandler = &Handler{
	Name: "mapc",
	Doc:  "Applies a form template to each element of a literal list argument.",
	Run: func(s *State, args []*xindy.Value) error {
		if len(args) != 2 {
			return newStyleError("mapc requires exactly 2 arguments: a form template and a list", nil)
		}

		template := args[0]
		list := args[1]

		if !list.IsList() {
			return newStyleError("mapc's second argument must be a list", list)
		}

		for _, elem := range list.Args() {
			substituted := substitutePlaceholder(template, elem)
			if err := Eval(s, substituted); err != nil {
				return err
			}
		}

		return nil
	},
}

// substitutePlaceholder replaces every bare symbol "%" in template with
// elem, returning a new Value tree (the original template is left
// untouched so it can be reused across iterations).
func substitutePlaceholder(template, elem *xindy.Value) *xindy.Value {
	if sym, ok := template.AsSymbol(); ok && sym == "%" {
		return elem
	}

	if !template.IsList() {
		return template
	}

	items := make([]*xindy.Value, len(template.Args())+1)
	items[0] = template.List.Items[0]

	for i, item := range template.Args() {
		items[i+1] = substitutePlaceholder(item, elem)
	}

	return &xindy.Value{List: &xindy.List{Items: items}}
}
