// Package xindy implements the core S-expression reader for the xindy
// style DSL: tokenizer, recursive grammar, adjacent-string-literal
// preprocessing, and reader-conditional filtering.
package xindy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// NodeMeta contains position information common to all AST nodes.
// Participle populates these fields during parsing.
type NodeMeta struct {
	Pos    lexer.Position `parser:""`
	EndPos lexer.Position `parser:""`
}

// Span returns the source span of this node.
func (n *NodeMeta) Span() Span { return Span{Start: n.Pos, End: n.EndPos} }

// Span is a half-open source range used in diagnostics.
type Span struct {
	Start lexer.Position
	End   lexer.Position
}

// Value is the tagged union produced by the S-expression reader: exactly
// one of its fields is set. ReaderCond is not a literal the style DSL
// contains syntax for directly (it is produced for the `#+FEATURE`
// pseudo-form) but behaves like any other forest leaf until filtering.
type Value struct {
	NodeMeta
	Integer    *int64   `parser:"@Int"`
	Float      *float64 `parser:"| @Float"`
	Str        *string  `parser:"| @String"`
	Keyword    *string  `parser:"| @Keyword"`
	ReaderCond *string  `parser:"| @ReaderCond"`
	Symbol     *string  `parser:"| @Ident"`
	List       *List    `parser:"| @@"`
}

// List represents a parenthesized form: `(head arg1 arg2 ...)`.
type List struct {
	NodeMeta
	Items []*Value `parser:"'(' @@* ')'"`
}

// Kind classifies a Value for switch-free dispatch in callers that only
// care about the shape, not the payload.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindString
	KindKeyword
	KindSymbol
	KindList
	KindReaderCond
)

// Kind reports which variant of the union is populated.
func (v *Value) Kind() Kind {
	switch {
	case v.Integer != nil:
		return KindInteger
	case v.Float != nil:
		return KindFloat
	case v.Str != nil:
		return KindString
	case v.Keyword != nil:
		return KindKeyword
	case v.ReaderCond != nil:
		return KindReaderCond
	case v.List != nil:
		return KindList
	default:
		return KindSymbol
	}
}

// IsList reports whether this Value is a parenthesized form.
func (v *Value) IsList() bool { return v.List != nil }

// Head returns the symbol naming a list's operator position, and whether
// the list is non-empty and its first element is a bare symbol.
func (v *Value) Head() (string, bool) {
	if v.List == nil || len(v.List.Items) == 0 {
		return "", false
	}

	first := v.List.Items[0]
	if first.Symbol == nil {
		return "", false
	}

	return *first.Symbol, true
}

// Args returns a list's elements after the head, or nil if this Value is
// not a non-empty list.
func (v *Value) Args() []*Value {
	if v.List == nil || len(v.List.Items) == 0 {
		return nil
	}

	return v.List.Items[1:]
}

// AsSymbol returns the symbol text and true, or "" and false.
func (v *Value) AsSymbol() (string, bool) {
	if v.Symbol == nil {
		return "", false
	}

	return *v.Symbol, true
}

// AsKeyword returns the keyword text (without the leading colon) and
// true, or "" and false.
func (v *Value) AsKeyword() (string, bool) {
	if v.Keyword == nil {
		return "", false
	}

	return strings.TrimPrefix(*v.Keyword, ":"), true
}

// AsString returns the decoded string text and true, or "" and false.
func (v *Value) AsString() (string, bool) {
	if v.Str == nil {
		return "", false
	}

	return *v.Str, true
}

// String renders a Value back to DSL source text.
func (v *Value) String() string {
	switch {
	case v.Integer != nil:
		return strconv.FormatInt(*v.Integer, 10)
	case v.Float != nil:
		return strconv.FormatFloat(*v.Float, 'g', -1, 64)
	case v.Str != nil:
		return fmt.Sprintf("%q", *v.Str)
	case v.Keyword != nil:
		return *v.Keyword
	case v.ReaderCond != nil:
		return *v.ReaderCond
	case v.Symbol != nil:
		return *v.Symbol
	case v.List != nil:
		return v.listString()
	default:
		return "nil"
	}
}

func (v *Value) listString() string {
	parts := make([]string, len(v.List.Items))
	for i, item := range v.List.Items {
		parts[i] = item.String()
	}

	return "(" + strings.Join(parts, " ") + ")"
}
