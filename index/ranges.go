package index

import (
	"sort"
	"strings"

	"github.com/xindygo/xindy/locref"
)

// groupKey partitions a node's locrefs for range detection: same
// attribute, same location class, same layers except the last (§4.6
// step 9).
type groupKey struct {
	attribute string
	class     *locref.LayeredLocationClass
	prefix    string
}

// detectRanges collapses contiguous numeric runs in n's locrefs into
// n.Ranges, recursing into children. A locref absorbed into a range is
// marked in n.Covered so the renderer can suppress its standalone
// emission (§4.6 step 9).
func detectRanges(n *Node, dropEligible map[locref.LocationReference]bool) {
	groups := make(map[groupKey][]*locref.LayeredLocationReference)

	var order []groupKey

	for _, ref := range n.Locrefs {
		layered, ok := ref.(*locref.LayeredLocationReference)
		if !ok || len(layered.Ordnums) == 0 {
			continue
		}

		key := groupKey{
			attribute: layered.Attribute,
			class:     layered.Locclass,
			prefix:    prefixKey(layered.Layers),
		}

		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}

		groups[key] = append(groups[key], layered)
	}

	for _, key := range order {
		minLen := minRangeLength(key.class)

		for _, r := range detectRangesInGroup(groups[key], minLen) {
			n.Ranges = append(n.Ranges, &Range{
				Attribute: key.attribute,
				Class:     key.class,
				Start:     r.start,
				End:       r.end,
			})

			for _, covered := range r.covered {
				n.Covered[covered] = true

				layered, ok := covered.(*locref.LayeredLocationReference)
				if ok && dropEligible[covered] && layered.Origin != "" {
					n.DroppedOrdnums[layered.Origin] = append(n.DroppedOrdnums[layered.Origin], layered.LocrefString)
				}
			}
		}
	}

	for _, child := range n.Children {
		detectRanges(child, dropEligible)
	}
}

func prefixKey(layers []string) string {
	if len(layers) <= 1 {
		return ""
	}

	return strings.Join(layers[:len(layers)-1], "\x1f")
}

func minRangeLength(class *locref.LayeredLocationClass) int {
	if class.MinRangeLength > 0 {
		return class.MinRangeLength
	}

	return 2
}

type rangeSpan struct {
	start, end *locref.LayeredLocationReference
	covered    []locref.LocationReference
	lo, hi     int
}

func finalOrdinal(r *locref.LayeredLocationReference) int {
	if len(r.Ordnums) == 0 {
		return 0
	}

	return r.Ordnums[len(r.Ordnums)-1]
}

func byOrdinal(refs []*locref.LayeredLocationReference) {
	sort.SliceStable(refs, func(i, j int) bool {
		return finalOrdinal(refs[i]) < finalOrdinal(refs[j])
	})
}

// detectRangesInGroup implements §4.6 step 9's two-pass algorithm for a
// single (attribute, class, prefix) bucket: explicit open/close markers
// first, then contiguous runs among whatever's left, then a merge pass
// over any ranges that ended up overlapping or adjacent (gap <= 1).
func detectRangesInGroup(refs []*locref.LayeredLocationReference, minLen int) []rangeSpan {
	var opens, closes, rest []*locref.LayeredLocationReference

	for _, r := range refs {
		switch r.State {
		case "open-range":
			opens = append(opens, r)
		case "close-range":
			closes = append(closes, r)
		default:
			rest = append(rest, r)
		}
	}

	byOrdinal(opens)
	byOrdinal(closes)

	consumed := make(map[*locref.LayeredLocationReference]bool)

	var spans []rangeSpan

	pairs := len(opens)
	if len(closes) < pairs {
		pairs = len(closes)
	}

	for i := 0; i < pairs; i++ {
		o, c := opens[i], closes[i]
		lo, hi := finalOrdinal(o), finalOrdinal(c)

		if hi < lo {
			lo, hi = hi, lo
			o, c = c, o
		}

		if hi-lo < minLen {
			continue
		}

		covered := collectCovered(refs, lo, hi, consumed)
		spans = append(spans, rangeSpan{start: o, end: c, covered: covered, lo: lo, hi: hi})
	}

	var pool []*locref.LayeredLocationReference

	for _, r := range refs {
		if !consumed[r] {
			pool = append(pool, r)
		}
	}

	byOrdinal(pool)

	i := 0
	for i < len(pool) {
		j := i
		for j+1 < len(pool) && finalOrdinal(pool[j+1]) == finalOrdinal(pool[j])+1 {
			j++
		}

		runLen := j - i + 1
		if runLen >= minLen {
			covered := make([]locref.LocationReference, 0, runLen)

			for k := i; k <= j; k++ {
				covered = append(covered, pool[k])
				consumed[pool[k]] = true
			}

			spans = append(spans, rangeSpan{
				start:   pool[i],
				end:     pool[j],
				covered: covered,
				lo:      finalOrdinal(pool[i]),
				hi:      finalOrdinal(pool[j]),
			})
		}

		i = j + 1
	}

	_ = rest // rest participates only via pool/consumed bookkeeping above

	return mergeSpans(spans)
}

func collectCovered(all []*locref.LayeredLocationReference, lo, hi int, consumed map[*locref.LayeredLocationReference]bool) []locref.LocationReference {
	var out []locref.LocationReference

	for _, r := range all {
		if consumed[r] {
			continue
		}

		v := finalOrdinal(r)
		if v >= lo && v <= hi {
			out = append(out, r)
			consumed[r] = true
		}
	}

	return out
}

// mergeSpans combines ranges whose numeric spans overlap or sit within
// one unit of each other, matching §4.6 step 9's "gap <= 1" rule.
func mergeSpans(spans []rangeSpan) []rangeSpan {
	if len(spans) <= 1 {
		return spans
	}

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].lo < spans[j].lo })

	merged := []rangeSpan{spans[0]}

	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]

		if s.lo-last.hi <= 1 {
			last.end = s.end
			if s.hi > last.hi {
				last.hi = s.hi
			}

			last.covered = append(last.covered, s.covered...)

			continue
		}

		merged = append(merged, s)
	}

	return merged
}
