package modreq

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed bundled_modules.yaml
var bundledManifest []byte

// bundledModule is one entry of the bundled-module manifest: a name
// require forms can reference directly (without touching the search
// path) and the literal style-DSL source it expands to.
type bundledModule struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
}

// defaultBundledModules decodes the manifest embedded at build time.
// Using yaml.v3 here (rather than a Go literal map) keeps the manifest a
// data file that can be edited without touching Go source (a rebuild
// re-embeds it), matching the teacher's own config.go's yaml-decoding
// idiom.
func defaultBundledModules() map[string][]byte {
	var entries []bundledModule

	if err := yaml.Unmarshal(bundledManifest, &entries); err != nil {
		// The manifest is embedded at build time; a decode failure here
		// means the manifest itself is malformed, not a runtime input
		// error, so there is no caller-facing error path to return this
		// through.
		return map[string][]byte{}
	}

	out := make(map[string][]byte, len(entries))
	for _, e := range entries {
		out[e.Name] = []byte(e.Source)
	}

	return out
}
