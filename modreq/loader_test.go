package modreq

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xindygo/xindy/style"
)

func TestRequireIsIdempotentPerAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shared.xdy")

	require.NoError(t, os.WriteFile(path, []byte(`(define-alphabet "a" ("x" "y"))`), 0o644))

	loader := New(nil)
	s := style.New()
	s.ModuleLoader = loader

	require.NoError(t, loader.Require(s, path))
	require.NoError(t, loader.Require(s, path))

	assert.Len(t, s.Basetypes, 1)
}

func TestRequireSearchesSearchPathInOrder(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dirB, "mod.xdy"), []byte(`(define-alphabet "b" ("z"))`), 0o644))

	loader := New([]string{dirA, dirB})
	s := style.New()
	s.ModuleLoader = loader

	require.NoError(t, loader.Require(s, "mod"))
	assert.Contains(t, s.Basetypes, "b")
}

func TestRequireMissingModuleIsModuleNotFound(t *testing.T) {
	loader := New(nil)
	s := style.New()
	s.ModuleLoader = loader

	err := loader.Require(s, "does-not-exist")
	assert.Error(t, err)
}

func TestRequireBundledModule(t *testing.T) {
	loader := New(nil)
	s := style.New()
	s.ModuleLoader = loader

	require.NoError(t, loader.Require(s, "lang/general/utf8-lang"))
	assert.Contains(t, s.Basetypes, "utf8-lang-lowercase")
}
