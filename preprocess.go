package xindy

import "regexp"

// adjacentStringLiterals matches two directly adjacent quoted strings
// with nothing but the closing/opening quotes between them, e.g.
// "foo""bar", which is merged into the single literal "foobar".
var adjacentStringLiterals = regexp.MustCompile(`"((?:\\.|[^"\\])*)""((?:\\.|[^"\\])*)"`)

// concatenateAdjacentStrings merges adjacent string literals until no
// further merge is possible, matching the original DSL's preprocessor
// pass (xindy/dsl/interpreter.py) exactly, including its fixed-point
// repetition: a single pass can expose a new adjacency at the merge seam.
func concatenateAdjacentStrings(src string) string {
	for {
		merged := adjacentStringLiterals.ReplaceAllString(src, `"$1$2"`)
		if merged == src {
			return merged
		}

		src = merged
	}
}
