// Package config resolves the engine's ambient options - search path
// roots, default codepage, bundled-module directory - from an optional
// YAML file plus environment overrides (spec.md §6), the way the
// teacher's own config.go resolves a .scaf.yaml, generalized to a
// layered koanf load instead of a single yaml.Unmarshal.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigNames are the filenames searched for, nearest-directory
// first, matching the teacher's DefaultConfigNames idiom.
var DefaultConfigNames = []string{".xindy.yaml", ".xindy.yml", "xindy.yaml", "xindy.yml"}

// Config is the engine's resolved ambient configuration.
type Config struct {
	// SearchPath is prepended to the style search path xindy/modreq
	// resolves `require`/`searchpath` forms against.
	SearchPath []string `koanf:"searchpath"`

	// Codepage names a default codepage (spec.md §6). It is resolved
	// here but not applied: styles and raw files are read as UTF-8.
	Codepage string `koanf:"codepage"`

	// ModuleDir names a bundled-module directory. It is resolved here but
	// not applied: xindy/modreq always uses its embedded manifest.
	ModuleDir string `koanf:"moduledir"`
}

// Load resolves a Config by walking up from dir looking for one of
// DefaultConfigNames (mirroring the teacher's FindConfig), then layering
// XINDY_-prefixed environment variables over whatever the file declared.
// A missing config file is not an error: env-only configuration is valid.
func Load(dir string) (*Config, error) {
	k := koanf.New(".")

	path, err := findConfigFile(dir)
	if err == nil {
		if loadErr := k.Load(file.Provider(path), yaml.Parser()); loadErr != nil {
			return nil, loadErr
		}
	}

	envProvider := env.Provider("XINDY_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "XINDY_"))
	})

	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	cfg.SearchPath = splitSearchPath(k.String("searchpath"))

	return &cfg, nil
}

// splitSearchPath implements spec.md §6's "path-separator-joined list"
// rule for XINDY_SEARCHPATH (and the equivalent YAML scalar form).
func splitSearchPath(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, string(os.PathListSeparator))

	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

func findConfigFile(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for d := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(d, name)
			if _, statErr := os.Stat(path); statErr == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(d)
		if parent == d {
			return "", os.ErrNotExist
		}

		d = parent
	}
}
