package locref

// CategoryAttribute describes one of a style's attribute categories
// (the things declared via define-attributes / markup-attribute-group),
// carrying the ordering and markup metadata the index builder and
// renderer both consult.
type CategoryAttribute struct {
	Name             string
	CatattrGrpOrdnum int
	SortOrdnum       int
	ProcessingOrdnum int
	LastInGroup      string
	Type             string
	Markup           string
}

// NewCategoryAttribute builds a CategoryAttribute defaulted as the style
// evaluator does when an attribute is referenced before being declared.
func NewCategoryAttribute(name string) *CategoryAttribute {
	return &CategoryAttribute{Name: name}
}

// LocationReference is the common shape of anything an index entry can
// point at: a layered (matched) location, or a crossref to another entry.
type LocationReference interface {
	Class() *LocationClass
	AttributeName() string
}

// LayeredLocationReference is a successfully matched location: the
// per-layer text, the per-layer ordinal numbers used for sorting, and
// state tracking used by range detection (§4.6 step 9).
type LayeredLocationReference struct {
	Locclass     *LayeredLocationClass
	Attribute    string
	Layers       []string
	LocrefString string
	Ordnums      []int
	Catattr      *CategoryAttribute
	State        string // "normal", "open-range", "close-range"
	Rangeattr    string
	Origin       string // attribute this reference was expanded from via merge-to, if any
	Subrefs      []*LayeredLocationReference
}

func (r *LayeredLocationReference) Class() *LocationClass { return &r.Locclass.LocationClass }
func (r *LayeredLocationReference) AttributeName() string { return r.Attribute }

// CrossrefLocationReference points to another index entry by its display
// key rather than a physical location.
type CrossrefLocationReference struct {
	Locclass  *LocationClass
	Attribute string
	Target    string
}

func (r *CrossrefLocationReference) Class() *LocationClass { return r.Locclass }
func (r *CrossrefLocationReference) AttributeName() string { return r.Attribute }

// BuildLocationReference attempts to match locrefStr against locclass,
// returning nil (not an error) on failure - callers try further location
// classes before giving up, per §4.6 step 4.
func BuildLocationReference(locclass *LayeredLocationClass, locrefStr string, category *CategoryAttribute, attribute string) *LayeredLocationReference {
	layers, ordnums, err := PerformMatch(locrefStr, locclass)
	if err != nil {
		return nil
	}

	return &LayeredLocationReference{
		Locclass:     locclass,
		Attribute:    attribute,
		Layers:       layers,
		LocrefString: locrefStr,
		Ordnums:      ordnums,
		Catattr:      category,
		State:        "normal",
	}
}

// CreateCrossReference builds a CrossrefLocationReference to target.
func CreateCrossReference(locclass *LocationClass, target, attribute string) *CrossrefLocationReference {
	return &CrossrefLocationReference{Locclass: locclass, Attribute: attribute, Target: target}
}

// LocrefClassLess orders two references by the ordnum of the class they
// were declared under (location classes sort in style-declaration order).
func LocrefClassLess(a, b LocationReference) bool {
	return a.Class().Ordnum < b.Class().Ordnum
}

// LocrefClassEqual reports whether a and b share the same location class.
func LocrefClassEqual(a, b LocationReference) bool {
	return a.Class() == b.Class()
}

// LocrefOrdnumLess implements the lexicographic comparison used for
// within-class sorting: component-wise comparison, shorter-prefix-wins
// on a tie (matching the Python port's locref_ordnum_lt exactly).
func LocrefOrdnumLess(a, b []int) bool {
	if ordnumEqual(a, b) {
		return false
	}

	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return len(a) < len(b)
}

// LocrefOrdnumEqual reports whether two ordinal sequences are identical.
func LocrefOrdnumEqual(a, b []int) bool {
	return ordnumEqual(a, b)
}

func ordnumEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
