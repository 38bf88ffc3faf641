package xindy

import (
	"github.com/alecthomas/participle/v2"
)

// sexprLexer is the custom lexer for the xindy style DSL.
var sexprLexer = newSexprLexer()

var parser = participle.MustBuild[List](
	participle.Lexer(sexprLexer),
	participle.Map(unquoteXindyString, "String"),
	participle.Elide("Whitespace", "Comment"),
)

// File parses to a synthetic top-level form so the existing List grammar
// (which expects surrounding parens) can also consume a flat sequence of
// top-level forms.
var fileParser = participle.MustBuild[fileForms](
	participle.Lexer(sexprLexer),
	participle.Map(unquoteXindyString, "String"),
	participle.Elide("Whitespace", "Comment"),
)

type fileForms struct {
	Forms []*Value `parser:"@@*"`
}

// Parse parses a single S-expression form, e.g. one `(define-alphabet ...)`.
func Parse(data []byte) (*List, error) {
	return parser.ParseBytes("", data)
}

// ParseFile parses a complete style or raw file: zero or more top-level
// forms, with adjacent string-literal concatenation and reader-conditional
// filtering already applied.
func ParseFile(filename string, data []byte) ([]*Value, error) {
	preprocessed := concatenateAdjacentStrings(string(data))

	parsed, err := fileParser.ParseBytes(filename, []byte(preprocessed))
	if err != nil {
		return nil, WrapSyntaxError(err, filename)
	}

	return filterReaderConditionals(parsed.Forms, nil), nil
}

// ParseFileWithFeatures is ParseFile parameterized on the set of reader
// features considered "active" (the bundled features plus any activated
// at evaluation time).
func ParseFileWithFeatures(filename string, data []byte, features map[string]bool) ([]*Value, error) {
	preprocessed := concatenateAdjacentStrings(string(data))

	parsed, err := fileParser.ParseBytes(filename, []byte(preprocessed))
	if err != nil {
		return nil, WrapSyntaxError(err, filename)
	}

	return filterReaderConditionals(parsed.Forms, features), nil
}
