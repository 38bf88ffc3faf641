package index

import (
	"strings"
	"unicode"

	"github.com/xindygo/xindy/rules"
)

// groupByLetter partitions the already-sorted top-level nodes into
// labelled letter groups (§4.6 step 7), in declared-label order followed
// by any "extra" labels encountered in first-seen order, dropping empty
// buckets. If the style declares no letter groups at all, every node
// falls into a single "#" bucket.
func groupByLetter(b *builder) []LetterGroup {
	declared := b.state.LetterGroups

	buckets := make(map[string][]*Node, len(declared))
	for _, label := range declared {
		buckets[label] = nil
	}

	var extraLabels []string

	for _, node := range b.root.Children {
		label := letterLabelFor(node, declared, b.sortRuns)

		if _, ok := buckets[label]; !ok {
			buckets[label] = nil
			extraLabels = append(extraLabels, label)
		}

		buckets[label] = append(buckets[label], node)
	}

	ordered := make([]string, 0, len(declared)+len(extraLabels))
	ordered = append(ordered, declared...)
	ordered = append(ordered, extraLabels...)

	var groups []LetterGroup

	for _, label := range ordered {
		if nodes := buckets[label]; len(nodes) > 0 {
			groups = append(groups, LetterGroup{Label: label, Nodes: nodes})
		}
	}

	if len(groups) == 0 && len(b.root.Children) > 0 {
		fallback := "#"
		if len(declared) > 0 {
			fallback = declared[0]
		}

		groups = append(groups, LetterGroup{Label: fallback, Nodes: append([]*Node{}, b.root.Children...)})
	}

	return groups
}

// letterLabelFor computes a top-level node's bucket label: its
// canonical key, sort-rule transformed, with leading non-alphanumerics
// stripped and case folded, matched against the longest declared group
// label that is a case-insensitive prefix of it.
func letterLabelFor(node *Node, groups []string, sortRuns []rules.Run) string {
	text := node.Canonical
	if len(sortRuns) > 0 {
		text = rules.Apply(sortRuns, text)
	}

	normalized := stripLeadingNonAlnum(strings.ToLower(text))
	if normalized == "" {
		normalized = strings.ToLower(text)
	}

	best := -1
	bestLen := -1

	for i, g := range groups {
		gl := strings.ToLower(g)
		if len(gl) > bestLen && strings.HasPrefix(normalized, gl) {
			bestLen = len(gl)
			best = i
		}
	}

	if best >= 0 {
		return groups[best]
	}

	if len(groups) > 0 {
		return groups[0]
	}

	return "#"
}

func stripLeadingNonAlnum(s string) string {
	runes := []rune(s)

	i := 0
	for i < len(runes) && !unicode.IsLetter(runes[i]) && !unicode.IsDigit(runes[i]) {
		i++
	}

	return string(runes[i:])
}
