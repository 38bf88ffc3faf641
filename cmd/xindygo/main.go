// Command xindygo is the thin CLI wrapper around the xindy engine:
// read a raw index plus one or more style modules, build the sorted
// tree, and render it. Kept deliberately small per spec.md §1's
// Non-goals - the real work lives in the xindy/* packages; this file
// only wires flags to them, in the same bare Action-function idiom the
// teacher's cmd/scaf uses.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/xindygo/xindy"
	"github.com/xindygo/xindy/config"
	"github.com/xindygo/xindy/index"
	"github.com/xindygo/xindy/markup"
	"github.com/xindygo/xindy/modreq"
	"github.com/xindygo/xindy/raw"
	"github.com/xindygo/xindy/style"
)

func main() {
	app := &cli.Command{
		Name:      "xindygo",
		Usage:     "Build a formatted index from a raw index and a style",
		ArgsUsage: "<rawfile|->",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "module",
				Aliases: []string{"M"},
				Usage:   "style module to load (repeatable)",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output file (default: stdout)",
			},
			&cli.StringSliceFlag{
				Name:    "searchpath",
				Aliases: []string{"L"},
				Usage:   "directory to prepend to the style search path (repeatable)",
			},
			&cli.StringFlag{
				Name:    "codepage",
				Aliases: []string{"C"},
				Usage:   "input codepage (accepted but not applied; input is read as UTF-8)",
				Value:   "utf-8",
			},
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "external filter command for raw input (not implemented; external collaborator per spec.md §1)",
			},
			&cli.StringFlag{
				Name:    "log",
				Aliases: []string{"l"},
				Usage:   "log file for warnings (default: stderr)",
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "xindygo: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	rawArg := "-"
	if cmd.Args().Len() > 0 {
		rawArg = cmd.Args().Get(0)
	}

	if cmd.String("filter") != "" {
		return fmt.Errorf("-f/--filter is an external collaborator, not implemented by this engine")
	}

	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	searchPath := append(append([]string{}, cfg.SearchPath...), cmd.StringSlice("searchpath")...)

	logWriter, closeLog, err := openLog(cmd.String("log"))
	if err != nil {
		return err
	}
	defer closeLog()

	state := style.New()
	state.SearchPath = searchPath

	loader := modreq.New(searchPath)
	state.ModuleLoader = loader

	for _, mod := range cmd.StringSlice("module") {
		if err := loadStyleFile(state, loader, mod); err != nil {
			return err
		}
	}

	data, err := readInput(rawArg)
	if err != nil {
		return fmt.Errorf("reading raw input: %w", err)
	}

	entries, err := raw.ReadFile(rawArg, data)
	if err != nil {
		return fmt.Errorf("parsing raw input: %w", err)
	}

	idx, err := index.Build(state, entries)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	for _, w := range idx.Warnings {
		fmt.Fprintf(logWriter, "xindygo: warning: entry %d: %s\n", w.Position, w.Message)
	}

	output := markup.Render(state, idx)
	if output != "" && !strings.HasSuffix(output, "\n") {
		output += "\n"
	}

	return writeOutput(cmd.String("out"), output)
}

// loadStyleFile resolves name against the loader's search path (falling
// back to treating it as a direct filesystem path), exactly like a
// require form would, so -M behaves consistently with style-internal
// requires.
func loadStyleFile(s *style.State, loader *modreq.Loader, name string) error {
	if err := loader.Require(s, name); err == nil {
		return nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("loading style module %q: %w", name, err)
	}

	forms, err := xindy.ParseFileWithFeatures(name, data, s.Features)
	if err != nil {
		return err
	}

	return style.EvalAll(s, forms)
}

func readInput(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(arg)
}

func writeOutput(path string, content string) error {
	if path == "" || path == "-" {
		_, err := fmt.Fprint(os.Stdout, content)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !os.IsExist(err) {
		return err
	}

	return os.WriteFile(path, []byte(content), 0o644)
}

func openLog(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %q: %w", path, err)
	}

	return f, func() { f.Close() }, nil
}
