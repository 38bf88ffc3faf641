package index

import (
	"github.com/xindygo/xindy/locref"
	"github.com/xindygo/xindy/style"
)

// emission is one (attribute, via-merge-to) expansion of a raw entry's
// declared attribute, per §4.6 step 1.
type emission struct {
	Attribute string
	Drop      bool
	Origin    string // "" for the base emission, else the source attribute
}

// expandAttributes computes the set of emissions a raw entry's attribute
// A produces: A itself (unless an undeclared-attribute pure-drop rule
// excludes it), plus one merged emission per merge-to edge sourced from
// A that names a target.
func expandAttributes(rules []style.MergeRule, declared map[string]*locref.CategoryAttribute, base string) []emission {
	excludeBase := false

	for _, r := range rules {
		if r.Source == base && r.Drop && r.Target == "" {
			if _, ok := declared[base]; !ok {
				excludeBase = true
			}
		}
	}

	var emissions []emission
	if !excludeBase {
		emissions = append(emissions, emission{Attribute: base})
	}

	for _, r := range rules {
		if r.Source == base && r.Target != "" {
			emissions = append(emissions, emission{Attribute: r.Target, Drop: r.Drop, Origin: base})
		}
	}

	return emissions
}
