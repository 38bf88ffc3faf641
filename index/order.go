package index

import (
	"sort"
	"strings"
)

// sortChildren recursively orders every node's Children by the §4.6
// step 6 key: the frozen multi-run sort-rule tuple first, then the
// lowercased display spelling, then stream position as the final
// tie-breaker.
func sortChildren(n *Node) {
	sort.SliceStable(n.Children, func(i, j int) bool {
		return nodeLess(n.Children[i], n.Children[j])
	})

	for _, child := range n.Children {
		sortChildren(child)
	}
}

func nodeLess(a, b *Node) bool {
	n := len(a.SortTuple)
	if len(b.SortTuple) < n {
		n = len(b.SortTuple)
	}

	for i := 0; i < n; i++ {
		if a.SortTuple[i] != b.SortTuple[i] {
			return a.SortTuple[i] < b.SortTuple[i]
		}
	}

	if len(a.SortTuple) != len(b.SortTuple) {
		return len(a.SortTuple) < len(b.SortTuple)
	}

	la, lb := strings.ToLower(a.Display), strings.ToLower(b.Display)
	if la != lb {
		return la < lb
	}

	return a.FirstPosition < b.FirstPosition
}
