// Package modreq resolves `require` forms: searching a style's search
// path for a named module file, parsing and evaluating it exactly once
// per absolute path, and merging its declarations into the requiring
// State. Grounded on the teacher's module/loader.go idempotent-cache
// design, adapted from loading scaf suites to loading xindy style files.
package modreq

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/samber/oops"

	"github.com/xindygo/xindy"
	"github.com/xindygo/xindy/style"
)

// ErrModuleNotFound is the sentinel for the §7 ModuleNotFound taxonomy
// entry.
var ErrModuleNotFound = fmt.Errorf("xindy: module not found")

// Loader resolves and caches required modules by absolute path, exactly
// like the reference interpreter's loaded_files set - requiring the same
// module twice (directly, or transitively through two different
// dependents) evaluates it only once.
type Loader struct {
	cache map[string]bool

	// SearchPath is consulted, in order, for a bare module name; entries
	// come from XINDY_SEARCHPATH (via xindy/config) and any searchpath
	// forms evaluated so far.
	SearchPath []string

	// Bundled maps a standard module name (e.g. "lang/general/utf8-lang")
	// directly to embedded source, for modules that ship with the engine
	// rather than being found on disk.
	Bundled map[string][]byte
}

// New returns a Loader with no modules cached yet.
func New(searchPath []string) *Loader {
	return &Loader{cache: make(map[string]bool), SearchPath: searchPath, Bundled: defaultBundledModules()}
}

// Require implements style.Loader: it resolves name to a module body
// (bundled or on disk), and if not already loaded, parses and evaluates
// it into s.
func (l *Loader) Require(s *style.State, name string) error {
	if bundled, ok := l.Bundled[name]; ok {
		return l.requireBody(s, "bundled:"+name, bundled)
	}

	for _, dir := range s.SearchPath {
		if !slices.Contains(l.SearchPath, dir) {
			l.SearchPath = append(slices.Clip(l.SearchPath), dir)
		}
	}

	path, err := l.resolve(name)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return wrapModuleNotFound(name, err)
	}

	return l.requireBody(s, path, data)
}

func (l *Loader) requireBody(s *style.State, cacheKey string, data []byte) error {
	if l.cache[cacheKey] {
		return nil
	}

	l.cache[cacheKey] = true

	forms, err := xindy.ParseFileWithFeatures(cacheKey, data, s.Features)
	if err != nil {
		return err
	}

	return style.EvalAll(s, forms)
}

// resolve searches l.SearchPath, in order, for name with or without a
// .xdy extension, local paths only (no remote fetch, per spec.md §1's
// Non-goals).
func (l *Loader) resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		return l.existingPath(name)
	}

	for _, dir := range l.SearchPath {
		candidate := filepath.Join(dir, name)
		if path, err := l.existingPath(candidate); err == nil {
			return path, nil
		}
	}

	if path, err := l.existingPath(name); err == nil {
		return path, nil
	}

	return "", wrapModuleNotFound(name, ErrModuleNotFound)
}

func (l *Loader) existingPath(path string) (string, error) {
	path = filepath.Clean(path)

	if _, err := os.Stat(path); err == nil {
		return filepath.Abs(path)
	}

	if filepath.Ext(path) == "" {
		withExt := path + ".xdy"
		if _, err := os.Stat(withExt); err == nil {
			return filepath.Abs(withExt)
		}
	}

	return "", ErrModuleNotFound
}

func wrapModuleNotFound(name string, cause error) error {
	return oops.Code("ModuleNotFound").
		With("module", name).
		Wrap(cause)
}

// Clear drops every cached module, letting the loader be reused across
// independent style chains (e.g. successive CLI invocations in a single
// process, or test cases).
func (l *Loader) Clear() {
	l.cache = make(map[string]bool)
}
