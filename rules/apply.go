// Package rules applies the sort-rule/merge-rule regex transformations
// a style declares to a raw key string, grouped into numbered runs with
// per-run string orientation and optional fixed-point repetition.
package rules

import (
	"regexp"
	"sort"

	"github.com/samber/oops"
	"github.com/xindygo/xindy/style"
)

// Run is one numbered pass of rule application: every rule sharing a
// RunIndex is compiled once and applied in declaration order.
type Run struct {
	Index    int
	Backward bool
	Rules    []compiledRule
}

type compiledRule struct {
	re          *regexp.Regexp
	replacement string
	again       bool
}

// Compile groups a style's accumulated sort rules into ordered runs,
// compiling each rule's (already BRE->ERE-translated, if needed) pattern
// with Go's RE2 engine.
func Compile(rules []style.SortRule) ([]Run, error) {
	byIndex := make(map[int]*Run)

	for _, r := range rules {
		run, ok := byIndex[r.RunIndex]
		if !ok {
			run = &Run{Index: r.RunIndex, Backward: r.Backward}
			byIndex[r.RunIndex] = run
		}

		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, oops.Code("StyleError").
				With("pattern", r.Pattern).
				Wrap(err)
		}

		run.Rules = append(run.Rules, compiledRule{re: re, replacement: r.Replacement, again: r.Again})
	}

	runs := make([]Run, 0, len(byIndex))
	for _, run := range byIndex {
		runs = append(runs, *run)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Index < runs[j].Index })

	return runs, nil
}

// Apply runs every compiled run, in order, over key. A run's Backward
// flag reverses the string before applying its rules and reverses the
// result back afterward, so that run's patterns are matched against the
// reversed spelling of the key (a leading anchor then matches trailing
// context of the original).
func Apply(runs []Run, key string) string {
	out := key

	for _, run := range runs {
		out = applyRun(run, out)
	}

	return out
}

// ApplyTuple returns the multi-level sort key §4.5 describes: one
// element per run, where element i is the result of applying runs
// 0..i in ascending order. Comparing two keys' tuples component-wise
// lets an earlier run establish the primary ordering and a later run
// (e.g. one preserving case the earlier run folded away) break ties.
func ApplyTuple(runs []Run, key string) []string {
	tuple := make([]string, len(runs))
	out := key

	for i, run := range runs {
		out = applyRun(run, out)
		tuple[i] = out
	}

	return tuple
}

func applyRun(run Run, text string) string {
	working := text
	if run.Backward {
		working = reverseString(working)
	}

	for _, rule := range run.Rules {
		working = applyRule(rule, working)
	}

	if run.Backward {
		working = reverseString(working)
	}

	return working
}

// applyRule applies a single rule once, or repeatedly to a fixed point
// when :again was set, matching the reference evaluator's "apply until
// no further change" semantics.
func applyRule(rule compiledRule, text string) string {
	if !rule.again {
		return rule.re.ReplaceAllString(text, rule.replacement)
	}

	for {
		next := rule.re.ReplaceAllString(text, rule.replacement)
		if next == text {
			return next
		}

		text = next
	}
}

func reverseString(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}
