package markup

import (
	"sort"
	"strconv"
	"strings"

	"github.com/xindygo/xindy/index"
	"github.com/xindygo/xindy/locref"
	"github.com/xindygo/xindy/style"
)

// locItem is one renderable unit within a (class, attribute) partition:
// either a bare scalar locref or an already-collapsed range.
type locItem struct {
	text     string
	firstOrd int
	isRange  bool
}

func droppedSet(node *index.Node, attr string) map[string]bool {
	set := make(map[string]bool, len(node.DroppedOrdnums[attr]))
	for _, s := range node.DroppedOrdnums[attr] {
		set[s] = true
	}

	return set
}

// classAttrPartitions groups node's non-crossref locrefs and ranges by
// (class, attribute), in class-ordnum order then first-seen attribute
// order, matching §4.6 step 9's own grouping key.
type partitionKey struct {
	class *locref.LayeredLocationClass
	attr  string
}

func classAttrPartitions(node *index.Node) ([]partitionKey, map[partitionKey][]*locref.LayeredLocationReference) {
	scalars := make(map[partitionKey][]*locref.LayeredLocationReference)

	var order []partitionKey

	seen := make(map[partitionKey]bool)

	for _, ref := range node.Locrefs {
		layered, ok := ref.(*locref.LayeredLocationReference)
		if !ok {
			continue
		}

		key := partitionKey{class: layered.Locclass, attr: layered.Attribute}
		if !seen[key] {
			seen[key] = true

			order = append(order, key)
		}

		scalars[key] = append(scalars[key], layered)
	}

	for _, rng := range node.Ranges {
		key := partitionKey{class: rng.Class, attr: rng.Attribute}
		if !seen[key] {
			seen[key] = true

			order = append(order, key)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].class.Ordnum < order[j].class.Ordnum
	})

	return order, scalars
}

func rangesFor(node *index.Node, key partitionKey) []*index.Range {
	var out []*index.Range

	for _, rng := range node.Ranges {
		if rng.Class == key.class && rng.Attribute == key.attr {
			out = append(out, rng)
		}
	}

	return out
}

// renderAttributeSegment renders every (class, attribute) partition
// belonging to attr, applying the group-wide ordinal priority-drop via
// claimed (§4.7 "Attribute ordering").
func renderAttributeSegment(mo style.MarkupOptions, node *index.Node, attr string, depth int, claimed map[int]bool) string {
	order, scalarsByKey := classAttrPartitions(node)
	dropped := droppedSet(node, attr)

	var segs []string

	for _, key := range order {
		if key.attr != attr {
			continue
		}

		seg := renderClassSegment(mo, node, key, scalarsByKey[key], rangesFor(node, key), dropped, depth, claimed)
		if seg != "" {
			segs = append(segs, seg)
		}
	}

	return strings.Join(segs, "")
}

func renderClassSegment(
	mo style.MarkupOptions,
	node *index.Node,
	key partitionKey,
	scalars []*locref.LayeredLocationReference,
	ranges []*index.Range,
	dropped map[string]bool,
	depth int,
	claimed map[int]bool,
) string {
	var items []locItem

	if key.class.Hierdepth > 1 {
		items = hierdepthItems(scalars, ranges, node, dropped)
	} else {
		items = flatItems(scalars, ranges, node, dropped)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].firstOrd != items[j].firstOrd {
			return items[i].firstOrd < items[j].firstOrd
		}

		return !items[i].isRange && items[j].isRange
	})

	var kept []string

	for _, it := range items {
		if claimed[it.firstOrd] {
			continue
		}

		claimed[it.firstOrd] = true

		kept = append(kept, it.text)
	}

	if len(kept) == 0 {
		return ""
	}

	sep := mergedOption(mo, "locref", key.attr, "sep")
	if sep == "" {
		sep = ", "
	}

	prefix := mergedOption(mo, "locref", key.attr, "prefix")
	open := mergedOption(mo, "locref", key.attr, "open")
	closeStr := mergedOption(mo, "locref", key.attr, "close")

	body := prefix + open + strings.Join(kept, sep) + closeStr

	listQuals := quals{"class": key.class.Name, "depth": strconv.Itoa(depth)}

	return str(mo, "locref-list", listQuals, "open") + body + str(mo, "locref-list", listQuals, "close")
}

func flatItems(scalars []*locref.LayeredLocationReference, ranges []*index.Range, node *index.Node, dropped map[string]bool) []locItem {
	var items []locItem

	for _, ref := range scalars {
		if node.Covered[ref] || dropped[ref.LocrefString] {
			continue
		}

		items = append(items, locItem{text: ref.LocrefString, firstOrd: lastOrdnum(ref)})
	}

	for _, rng := range ranges {
		sep := "-"
		if rng.Start != nil {
			items = append(items, locItem{
				text:     rng.Start.LocrefString + sep + rng.End.LocrefString,
				firstOrd: lastOrdnum(rng.Start),
				isRange:  true,
			})
		}
	}

	return items
}

// hierdepthItems handles classes whose hierdepth exceeds 1: the prefix
// layers (all but the final one) are joined with "-" ahead of the final
// layer's scalar or collapsed range, a simplified rendering of §4.7's
// "group by prefix layers ... render prefix layers joined by -" rule
// (full per-layer locref-layer templating is left at its default "-"
// join; see DESIGN.md).
func hierdepthItems(scalars []*locref.LayeredLocationReference, ranges []*index.Range, node *index.Node, dropped map[string]bool) []locItem {
	var items []locItem

	for _, ref := range scalars {
		if node.Covered[ref] || dropped[ref.LocrefString] {
			continue
		}

		items = append(items, locItem{text: strings.Join(ref.Layers, "-"), firstOrd: lastOrdnum(ref)})
	}

	for _, rng := range ranges {
		if rng.Start == nil {
			continue
		}

		prefix := ""
		if len(rng.Start.Layers) > 1 {
			prefix = strings.Join(rng.Start.Layers[:len(rng.Start.Layers)-1], "-") + "-"
		}

		startFinal := rng.Start.Layers[len(rng.Start.Layers)-1]
		endFinal := rng.End.Layers[len(rng.End.Layers)-1]

		items = append(items, locItem{
			text:     prefix + startFinal + "-" + endFinal,
			firstOrd: lastOrdnum(rng.Start),
			isRange:  true,
		})
	}

	return items
}

func lastOrdnum(ref *locref.LayeredLocationReference) int {
	if len(ref.Ordnums) == 0 {
		return 0
	}

	return ref.Ordnums[len(ref.Ordnums)-1]
}
