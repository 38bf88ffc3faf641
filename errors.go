package xindy

import (
	"errors"

	"github.com/samber/oops"
)

// Sentinel errors so callers that only need to branch on kind can use
// errors.Is without inspecting oops codes.
var (
	ErrSyntax = errors.New("xindy: syntax error")
)

// WrapSyntaxError tags a participle parse failure with the SyntaxError
// taxonomy code and the file it occurred in, per the §7 error taxonomy.
func WrapSyntaxError(err error, filename string) error {
	return oops.
		Code("SyntaxError").
		With("file", filename).
		Wrap(errors.Join(ErrSyntax, err))
}
