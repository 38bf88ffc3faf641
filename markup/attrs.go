package markup

import (
	"sort"

	"github.com/xindygo/xindy/style"
)

// attributeGroups returns attribute names grouped by CatattrGrpOrdnum (in
// ascending group order), each group's attributes ordered by SortOrdnum
// then ProcessingOrdnum (the declaration order define-attributes assigns,
// used to break ties among attributes that were never declared and so
// all share the zero-valued group/sort ordinals).
func attributeGroups(s *style.State) [][]string {
	byGroup := make(map[int][]string)

	for _, name := range s.AttributeOrder {
		cat, ok := s.Attributes[name]
		if !ok {
			continue
		}

		byGroup[cat.CatattrGrpOrdnum] = append(byGroup[cat.CatattrGrpOrdnum], name)
	}

	for g, names := range byGroup {
		sort.SliceStable(names, func(i, j int) bool {
			a, b := s.Attributes[names[i]], s.Attributes[names[j]]
			if a.SortOrdnum != b.SortOrdnum {
				return a.SortOrdnum < b.SortOrdnum
			}

			return a.ProcessingOrdnum < b.ProcessingOrdnum
		})

		byGroup[g] = names
	}

	groups := make([][]string, 0, len(byGroup))

	for _, g := range sortedGroupOrdnums(byGroup) {
		groups = append(groups, byGroup[g])
	}

	return groups
}
