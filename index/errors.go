package index

import "github.com/samber/oops"

// newBuilderError tags a fatal builder condition with the §7
// IndexBuilderError code: no location classes configured, or an
// explicitly named one that doesn't exist.
func newBuilderError(msg string) error {
	return oops.Code("IndexBuilderError").Errorf("%s", msg)
}
