// Package cli implements the nestcut command-line interface: load a
// project file, run it through the optimizer, and write reports.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
)

// Root holds flags shared by every subcommand.
type Root struct {
	Verbose bool `short:"v" long:"verbose" description:"Enable debug-level logging"`
}

var root Root

// Run parses args and executes the selected subcommand.
func Run(args []string) error {
	parser := flags.NewParser(&root, flags.Default)
	parser.Name = filepath.Base(os.Args[0])
	prog := parser.Name

	if _, err := parser.AddCommand(
		"optimize",
		"Run a project through the optimizer and write reports",
		fmt.Sprintf(
			`Load a project file, search for a layout, write the solved project
back out, and emit any reports configured on it.

Examples:
  %s optimize project.json
  %s optimize project.json --algorithm nested --out solved.json`,
			prog, prog,
		),
		&CmdOptimize{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"validate",
		"Load and normalize a project file without optimizing",
		fmt.Sprintf(
			`Load a project file, merge its stock catalogue, expand its demand
pieces, and report any structural problems without running a search.

Examples:
  %s validate project.json`,
			prog,
		),
		&CmdValidate{},
	); err != nil {
		return err
	}

	_, err := parser.ParseArgs(args)
	if err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return nil
		}
		return err
	}

	return nil
}

// newLogger returns a slog.Logger writing to stderr at debug level when
// root.Verbose is set, info level otherwise.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if root.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
