package style

import (
	"regexp"

	"github.com/xindygo/xindy"
)

// orientationState holds, by run index, whether that run's rules apply
// to the reversed string (§4.2 define-sort-rule-orientations, §4.5 step
// 1). Declared once per style, it's consulted when a sort-rule/use-
// rule-set form assigns a rule to a run.
type orientationState struct {
	backward []bool
}

func (o *orientationState) isBackward(run int) bool {
	if o == nil || run < 0 || run >= len(o.backward) {
		return false
	}

	return o.backward[run]
}

var defineSortRuleOrientationsHandler = &Handler{
	Name: "define-sort-rule-orientations",
	Doc:  "Declares, per run index (in order), whether that run's rules apply to the forward or reversed string. Defaults to forward for all 8 runs.",
	Run: func(s *State, args []*xindy.Value) error {
		backward := make([]bool, 0, len(args))

		for _, a := range args {
			dir, ok := stringOrSymbol(a)
			if !ok {
				dir, ok = a.AsKeyword()
			}

			backward = append(backward, ok && dir == "backward")
		}

		for len(backward) < 8 {
			backward = append(backward, false)
		}

		s.orientations = &orientationState{backward: backward}

		return nil
	},
}

var sortRuleHandler = &Handler{
	Name: "sort-rule",
	Doc:  "Appends a pattern/replacement sort rule, optionally scoped to a run index and repeated to a fixed point.",
	Run: func(s *State, args []*xindy.Value) error {
		rule, err := parseSortRule(args)
		if err != nil {
			return err
		}

		rule.Backward = s.orientations.isBackward(rule.RunIndex)
		s.SortRules = append(s.SortRules, rule)

		return nil
	},
}

// parseSortRule reads (sort-rule "pattern" "replacement" [:run n] [:again]
// [:bregexp]).
func parseSortRule(args []*xindy.Value) (SortRule, error) {
	return parseRuleForm(args, false)
}

// parseMergeRule reads (merge-rule "pattern" ["replacement"] [:string]
// [:bregexp] [:eregexp] [:again] [:run n]); unlike sort-rule the
// replacement is optional (defaults to "", deleting the match) and
// :string literalises the pattern via regexp.QuoteMeta instead of
// treating it as a regex.
func parseMergeRule(args []*xindy.Value) (SortRule, error) {
	return parseRuleForm(args, true)
}

func parseRuleForm(args []*xindy.Value, optionalReplacement bool) (SortRule, error) {
	if len(args) < 1 {
		return SortRule{}, newStyleError("rule requires at least a pattern", nil)
	}

	pattern, ok := args[0].AsString()
	if !ok {
		return SortRule{}, newStyleError("rule pattern must be a string", args[0])
	}

	rest := args[1:]

	replacement := ""
	if optionalReplacement {
		if len(rest) > 0 {
			if text, ok := rest[0].AsString(); ok {
				replacement = text
				rest = rest[1:]
			}
		}
	} else {
		if len(rest) == 0 {
			return SortRule{}, newStyleError("rule requires a replacement", nil)
		}

		text, ok := rest[0].AsString()
		if !ok {
			return SortRule{}, newStyleError("rule replacement must be a string", rest[0])
		}

		replacement = text
		rest = rest[1:]
	}

	rule := SortRule{Pattern: pattern, Replacement: replacement}

	_, kwargs, flags := splitKeywordArgs(rest)

	if v, ok := kwargs["run"]; ok {
		if n, ok := intValue(v); ok {
			rule.RunIndex = n
		}
	}

	rule.Again = flags["again"]
	asString := flags["string"]

	if flags["bregexp"] {
		rule.IsBRE = true
	}

	if flags["eregexp"] {
		rule.IsBRE = false
	}

	if asString {
		rule.Pattern = regexp.QuoteMeta(rule.Pattern)
	} else if rule.IsBRE {
		rule.Pattern = translateBREtoERE(rule.Pattern)
	}

	return rule, nil
}

// translateBREtoERE performs the literal substitution the style DSL's
// :bregexp option requires: POSIX basic-regex escaped grouping becomes
// unescaped (extended) grouping and vice versa, and curly braces (used
// unescaped for interval expressions in extended regex) are bracketed;
// BRE's escaped \{ \} interval braces become plain { }.
func translateBREtoERE(pattern string) string {
	const openPH, closePH = "\x00OPEN\x00", "\x00CLOSE\x00"
	const openBracePH, closeBracePH = "\x00LBRACE\x00", "\x00RBRACE\x00"

	// BRE group escapes move to placeholders first so the subsequent
	// literal-paren escaping pass doesn't re-touch them.
	out := pattern
	out = replaceAll(out, `\(`, openPH)
	out = replaceAll(out, `\)`, closePH)
	out = replaceAll(out, `(`, `\(`)
	out = replaceAll(out, `)`, `\)`)
	out = replaceAll(out, openPH, `(`)
	out = replaceAll(out, closePH, `)`)
	out = replaceAll(out, `\{`, openBracePH)
	out = replaceAll(out, `\}`, closeBracePH)
	out = replaceAll(out, `{`, `[{]`)
	out = replaceAll(out, `}`, `[}]`)
	out = replaceAll(out, openBracePH, `{`)
	out = replaceAll(out, closeBracePH, `}`)

	return out
}

func replaceAll(s, old, newStr string) string {
	if old == "" {
		return s
	}

	result := ""
	for {
		i := indexOf(s, old)
		if i < 0 {
			return result + s
		}

		result += s[:i] + newStr
		s = s[i+len(old):]
	}
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}

	return -1
}

var defineRuleSetHandler = &Handler{
	Name: "define-rule-set",
	Doc:  "Names an explicit :rules list of (pattern replacement [:again][:string]) clauses as a reusable set, optionally inheriting another set's rules via :inherit-from.",
	Run: func(s *State, args []*xindy.Value) error {
		if len(args) < 1 {
			return newStyleError("define-rule-set requires a name", nil)
		}

		name, ok := stringOrSymbol(args[0])
		if !ok {
			return newStyleError("define-rule-set name must be a string or symbol", args[0])
		}

		_, kwargs, _ := splitKeywordArgs(args[1:])

		rulesArg, ok := kwargs["rules"]
		if !ok || !rulesArg.IsList() {
			return newStyleError("define-rule-set requires a :rules list", nil)
		}

		rules, err := parseRuleSetEntries(rulesArg.List.Items)
		if err != nil {
			return err
		}

		set := &RuleSet{Name: name, Rules: rules}

		if inherit, ok := kwargs["inherit-from"]; ok {
			for _, parent := range inheritNames(inherit) {
				set.InheritsFrom = append(set.InheritsFrom, parent)
			}
		}

		resolved := resolveRuleSetInheritance(s, set)
		s.RuleSets[name] = resolved

		return nil
	},
}

// parseRuleSetEntries reads the :rules value's list of (pattern
// replacement [:again][:string][:bregexp][:eregexp]) clauses. Entries
// carry no run index of their own - use-rule-set assigns one uniformly
// to every rule it splices from a named set.
func parseRuleSetEntries(entries []*xindy.Value) ([]SortRule, error) {
	rules := make([]SortRule, 0, len(entries))

	for _, entry := range entries {
		if !entry.IsList() {
			return nil, newStyleError("rule-set entry must be a (pattern replacement ...) list", entry)
		}

		rule, err := parseMergeRule(entry.List.Items)
		if err != nil {
			return nil, err
		}

		rules = append(rules, rule)
	}

	return rules, nil
}

// inheritNames reads :inherit-from's value, a single name or a list of
// names.
func inheritNames(v *xindy.Value) []string {
	if v.IsList() {
		names := make([]string, 0, len(v.List.Items))

		for _, item := range v.List.Items {
			if name, ok := stringOrSymbol(item); ok {
				names = append(names, name)
			}
		}

		return names
	}

	if name, ok := stringOrSymbol(v); ok {
		return []string{name}
	}

	return nil
}

func resolveRuleSetInheritance(s *State, set *RuleSet) *RuleSet {
	if len(set.InheritsFrom) == 0 {
		return set
	}

	var merged []SortRule

	for _, parentName := range set.InheritsFrom {
		if parent, ok := s.RuleSets[parentName]; ok {
			merged = append(merged, parent.Rules...)
		}
	}

	merged = append(merged, set.Rules...)

	return &RuleSet{Name: set.Name, Rules: merged, InheritsFrom: set.InheritsFrom}
}

var useRuleSetHandler = &Handler{
	Name: "use-rule-set",
	Doc:  "Splices one or more named rule sets' rules into the style's flat SortRules list, tagged with the given :run index (default 0).",
	Run: func(s *State, args []*xindy.Value) error {
		_, kwargs, _ := splitKeywordArgs(args)

		setsArg, ok := kwargs["rule-set"]
		if !ok {
			return newStyleError("use-rule-set requires :rule-set", nil)
		}

		runIndex := 0
		if v, ok := kwargs["run"]; ok {
			runIndex, _ = intValue(v)
		}

		for _, name := range inheritNames(setsArg) {
			set, ok := s.RuleSets[name]
			if !ok {
				return newStyleError("use-rule-set: undefined rule set "+name, nil)
			}

			for _, rule := range set.Rules {
				rule.RunIndex = runIndex
				rule.Backward = s.orientations.isBackward(runIndex)
				s.SortRules = append(s.SortRules, rule)
			}
		}

		return nil
	},
}

var mergeToHandler = &Handler{
	Name: "merge-to",
	Doc:  "Declares that entries under one attribute are also emitted under another; (merge-to from :drop) drops an undeclared source, and a :drop after a target marks the merged emission drop-eligible.",
	Run: func(s *State, args []*xindy.Value) error {
		if len(args) < 2 {
			return newStyleError("merge-to requires a source and a target attribute", nil)
		}

		source, ok := args[0].AsString()
		if !ok {
			source, ok = args[0].AsSymbol()
		}

		if !ok {
			return newStyleError("merge-to source must be a string or symbol", args[0])
		}

		drop := false

		target := ""

		if kw, ok := args[1].AsKeyword(); ok && kw == "drop" {
			drop = true
		} else {
			target, ok = args[1].AsString()
			if !ok {
				target, ok = args[1].AsSymbol()
			}

			if !ok {
				return newStyleError("merge-to target must be a string, symbol, or :drop", args[1])
			}

			_, _, flags := splitKeywordArgs(args[2:])
			drop = flags["drop"]
		}

		s.MergeRules = append(s.MergeRules, MergeRule{Source: source, Target: target, Drop: drop})

		return nil
	},
}

var mergeRuleHandler = &Handler{
	Name: "merge-rule",
	Doc:  "Appends a key-string rewrite used to compute the canonical (grouping) key, distinct from SortRules used purely for ordering.",
	Run: func(s *State, args []*xindy.Value) error {
		rule, err := parseMergeRule(args)
		if err != nil {
			return err
		}

		rule.Backward = s.orientations.isBackward(rule.RunIndex)
		s.KeywordMergeRules = append(s.KeywordMergeRules, rule)

		return nil
	},
}
