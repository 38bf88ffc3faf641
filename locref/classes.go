package locref

import (
	"fmt"
	"sync/atomic"

	"github.com/samber/oops"
)

// ErrLocationMatch is the sentinel underlying every LocationMatchError,
// matching the §7 taxonomy.
type ErrLocationMatch struct {
	LocString string
	ClassName string
	Reason    string
}

func (e *ErrLocationMatch) Error() string {
	return fmt.Sprintf("xindy: could not match %q against location class %q: %s", e.LocString, e.ClassName, e.Reason)
}

func newLocationMatchError(locstring, className, reason string) error {
	return oops.Code("LocationMatchError").
		With("locstring", locstring).
		With("locclass", className).
		Wrap(&ErrLocationMatch{LocString: locstring, ClassName: className, Reason: reason})
}

// ordnumCounter is the process-global monotonic generator assigning each
// LocationClass a unique ordnum at creation time, mirroring the Python
// port's module-level _OrdnumGenerator singleton. Location classes are
// created once, during style evaluation, never per-match, so a plain
// atomic counter (rather than a mutex-guarded one) is sufficient even if
// a caller evaluates multiple styles from separate goroutines.
var ordnumCounter int64

func nextOrdnum() int {
	return int(atomic.AddInt64(&ordnumCounter, 1))
}

// LocationClass is the common header of every kind of location class:
// a name and the process-wide unique ordinal used to order locrefs by
// the class in which they were declared.
type LocationClass struct {
	Name   string
	Ordnum int
}

// LayeredLocationClass is a location class defined by a sequence of
// layers (alphabets/enumerations interleaved with separators).
// MinRangeLength is the minimum contiguous-run length (§4.2/§4.6 step 9)
// required before a locref run collapses into a displayed range; every
// location class carries one, standard or variable-depth alike.
type LayeredLocationClass struct {
	LocationClass
	Layers         []LayerElement
	Hierdepth      int
	MinRangeLength int
}

// StandardLocationClass is a location class whose trailing layers may be
// joined together when forming a displayed range (§4.6).
type StandardLocationClass struct {
	LayeredLocationClass
}

// VarLocationClass is a layered location class with variable depth -
// every layer contributes independently to hierarchy depth.
type VarLocationClass struct {
	LayeredLocationClass
}

// CrossrefLocationClass names a target index entry instead of a
// location; Verified is false when the style declared the class
// :unverified, which makes the renderer append its unverified suffix.
// Crossref targets are not checked for existence.
type CrossrefLocationClass struct {
	LocationClass
	Target   string
	Verified bool
}

// NewStandardLocationClass constructs a StandardLocationClass with a
// freshly assigned ordnum.
func NewStandardLocationClass(name string, layers []LayerElement, minRangeLength, hierdepth int) *StandardLocationClass {
	return &StandardLocationClass{
		LayeredLocationClass: LayeredLocationClass{
			LocationClass:  LocationClass{Name: name, Ordnum: nextOrdnum()},
			Layers:         layers,
			Hierdepth:      hierdepth,
			MinRangeLength: minRangeLength,
		},
	}
}

// NewVarLocationClass constructs a VarLocationClass with a freshly
// assigned ordnum.
func NewVarLocationClass(name string, layers []LayerElement, minRangeLength, hierdepth int) *VarLocationClass {
	return &VarLocationClass{
		LayeredLocationClass: LayeredLocationClass{
			LocationClass:  LocationClass{Name: name, Ordnum: nextOrdnum()},
			Layers:         layers,
			Hierdepth:      hierdepth,
			MinRangeLength: minRangeLength,
		},
	}
}

// NewCrossrefLocationClass constructs a CrossrefLocationClass with a
// freshly assigned ordnum.
func NewCrossrefLocationClass(name, target string, verified bool) *CrossrefLocationClass {
	return &CrossrefLocationClass{
		LocationClass: LocationClass{Name: name, Ordnum: nextOrdnum()},
		Target:        target,
		Verified:      verified,
	}
}

// PerformMatch walks a location class's layers against locstring left to
// right, consuming a prefix at each layer. Separator layers consume text
// but contribute no ordinal. Any unmatched layer, or leftover text after
// the last layer, is a failure.
func PerformMatch(locstring string, locclass *LayeredLocationClass) (layers []string, ordnums []int, err error) {
	rest := locstring

	for _, element := range locclass.Layers {
		result, ok := element.PrefixMatch(rest)
		if !ok {
			return nil, nil, newLocationMatchError(locstring, locclass.Name, fmt.Sprintf("no match at %q", rest))
		}

		rest = result.Rest

		if result.IsSeparator {
			continue
		}

		layers = append(layers, result.Matched)
		ordnums = append(ordnums, result.Ordnum)
	}

	if rest != "" {
		return nil, nil, newLocationMatchError(locstring, locclass.Name, fmt.Sprintf("unparsed remainder %q", rest))
	}

	return layers, ordnums, nil
}
