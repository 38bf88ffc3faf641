package locref

import "strings"

// PrefixMatchRadixNumbers greedily consumes the longest run of digits
// valid in the given radix (2-36, matching strconv conventions) and
// returns the parsed value. Matches xindy/locref/basetypes.py's
// prefix_match_for_radix_numbers exactly: a maximal digit run, or no
// match at all if the string doesn't start with a valid digit.
func PrefixMatchRadixNumbers(radix int) func(text string) (string, string, int, bool) {
	return func(text string) (string, string, int, bool) {
		value := 0
		count := 0

		for _, r := range text {
			digit, ok := digitValue(r, radix)
			if !ok {
				break
			}

			value = value*radix + digit
			count++
		}

		if count == 0 {
			return "", text, 0, false
		}

		matched := text[:count]

		return matched, text[count:], value, true
	}
}

func digitValue(r rune, radix int) (int, bool) {
	var digit int

	switch {
	case r >= '0' && r <= '9':
		digit = int(r - '0')
	case r >= 'a' && r <= 'z':
		digit = int(r-'a') + 10
	case r >= 'A' && r <= 'Z':
		digit = int(r-'A') + 10
	default:
		return 0, false
	}

	if digit >= radix {
		return 0, false
	}

	return digit, true
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// toRoman renders the canonical (minimal-length, subtractive-notation)
// roman numeral for a positive value.
func toRoman(value int) string {
	var b strings.Builder

	for _, entry := range romanTable {
		for value >= entry.value {
			b.WriteString(entry.symbol)
			value -= entry.value
		}
	}

	return b.String()
}

// PrefixMatchRomanNumbers is original work: the reference Python port
// references a roman-numeral matcher (prefix_match_for_roman_numbers)
// from xindy/dsl/interpreter.py but never defines it. It is implemented
// here per the design notes: greedily consume the longest leading run of
// roman-numeral characters (case-insensitive), parse it permissively
// (allowing both subtractive and additive digit runs), then validate by
// re-encoding the parsed value to its canonical form and requiring an
// exact, case-normalized match. A run that fails that check is shortened
// to its longest canonical prefix, so "IIII" matches "III" and leaves "I"
// as the rest.
func PrefixMatchRomanNumbers(text string) (string, string, int, bool) {
	const digits = "IVXLCDM"

	count := 0

	for _, r := range text {
		upper := r
		if r >= 'a' && r <= 'z' {
			upper = r - ('a' - 'A')
		}

		if !strings.ContainsRune(digits, upper) {
			break
		}

		count++
	}

	if count == 0 {
		return "", text, 0, false
	}

	matched := text[:count]

	value, ok := parseRoman(strings.ToUpper(matched))
	if !ok {
		return "", text, 0, false
	}

	// Canonical round-trip: shrink the matched length until the text
	// re-encodes to its own canonical spelling (handles trailing
	// characters that look roman but aren't part of a valid numeral,
	// e.g. "XIQ" matching only "XI").
	for count > 0 {
		candidate := strings.ToUpper(text[:count])

		value, ok = parseRoman(candidate)
		if ok && toRoman(value) == candidate {
			return text[:count], text[count:], value, true
		}

		count--
	}

	return "", text, 0, false
}

// parseRoman accepts any run of roman digit characters and additively/
// subtractively evaluates it; validity of the *spelling* is left to the
// canonical-form check in the caller.
func parseRoman(s string) (int, bool) {
	values := map[byte]int{'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000}

	total := 0

	for i := 0; i < len(s); i++ {
		v, ok := values[s[i]]
		if !ok {
			return 0, false
		}

		if i+1 < len(s) {
			next, ok := values[s[i+1]]
			if ok && next > v {
				total -= v

				continue
			}
		}

		total += v
	}

	if total <= 0 {
		return 0, false
	}

	return total, true
}
