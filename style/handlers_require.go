package style

import (
	"github.com/xindygo/xindy"
)

var searchpathHandler = &Handler{
	Name: "searchpath",
	Doc:  "Appends one or more directories to the module search path.",
	Run: func(s *State, args []*xindy.Value) error {
		for _, a := range args {
			dir, ok := a.AsString()
			if !ok {
				continue
			}

			s.SearchPath = append(s.SearchPath, dir)
		}

		return nil
	},
}

// Loader is implemented by xindy/modreq.Loader; style keeps a narrow
// interface here so it never imports modreq directly (modreq already
// imports style to merge a loaded module's declarations back in, and a
// two-way package import would cycle).
type Loader interface {
	Require(s *State, name string) error
}

var requireHandler = &Handler{
	Name: "require",
	Doc:  "Loads a style module by name, merging its declarations into the current state (idempotent per absolute path).",
	Run: func(s *State, args []*xindy.Value) error {
		if s.ModuleLoader == nil {
			return newStyleError("require used with no module loader configured", nil)
		}

		for _, a := range args {
			name, ok := a.AsString()
			if !ok {
				name, ok = a.AsSymbol()
			}

			if !ok {
				return newStyleError("require argument must be a string or symbol", a)
			}

			if err := s.ModuleLoader.Require(s, name); err != nil {
				return err
			}
		}

		return nil
	},
}
