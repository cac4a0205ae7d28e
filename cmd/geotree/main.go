// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later
// Package main implements the geotree CLI for browsing and editing a
// hierarchical collection of records stored as CSV files in a directory tree.
//
// Usage:
//
//	geotree init                    Create .geotree/project.yaml and the data root
//	geotree ls [--json]             List every record
//	geotree filter --name peru      Filter records
//	geotree stats                   Aggregate statistics
//	geotree shell                   Interactive numbered menu
package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/geotree/internal/errors"
	"github.com/kraklabs/geotree/internal/ui"
)

// Version information (set via ldflags during build)
var (
	version = "dev"     // Version string
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// GlobalFlags holds the flags accepted before the command name.
type GlobalFlags struct {
	ConfigPath  string
	DataDir     string
	JSON        bool
	NoColor     bool
	Debug       bool
	Quiet       bool
	MetricsFile string
	Version     bool
}

const usageText = `geotree - hierarchical CSV record store

geotree keeps records (name, population, area) in items.csv files whose
directory path encodes their classification, for example
datos_paises/America/Sur/Republica/items.csv.

Usage:
  geotree [global options] <command> [options]

Commands:
  init          Create .geotree/project.yaml and the data directory
  ls            List all records with their hierarchy path
  filter        Filter records by name, first level or population range
  sort          List records sorted by name, population or area
  stats         Show aggregate statistics
  add           Add a record under a hierarchy path
  edit          Change the name, population or area of a record
  rm            Delete a record
  status        Show data directory status and load diagnostics
  shell         Start the interactive menu
  completion    Generate shell completion script (bash|zsh|fish)

Global Options:
`

const usageFooter = `
Examples:
  geotree init -y                        Use all defaults
  geotree ls --json                      Output records as JSON
  geotree filter --level america --min 1000000
  geotree sort --by population --desc
  geotree add America Sur Republica --name Uruguay --population 3500000 --area 176215
  geotree edit Peru --pick 2 --population 34000000
  geotree rm Chile --yes

Environment Variables:
  GEOTREE_DATA_DIR   Data directory (overrides data_dir in project.yaml)
  GEOTREE_LOG_LEVEL  Log level: debug, info, warn, error

For detailed command help: geotree <command> --help
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run parses global flags, dispatches the command and returns the exit code.
func run(argv []string, stdin io.Reader, stdout io.Writer) int {
	globals, rest, err := parseGlobals(argv)
	if err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return errors.ExitSuccess
		}
		return errors.Report(errors.NewInputError("Invalid arguments", err.Error(),
			"Run 'geotree --help' for usage"), false)
	}

	if globals.NoColor {
		ui.InitColors(true)
	}
	restore := ui.SetOutput(stdout)
	defer restore()

	if globals.Version {
		fmt.Fprintf(stdout, "geotree version %s\n", version)
		fmt.Fprintf(stdout, "commit: %s\n", commit)
		fmt.Fprintf(stdout, "built: %s\n", date)
		return errors.ExitSuccess
	}

	if len(rest) == 0 {
		fmt.Fprint(os.Stderr, usageText)
		return errors.ExitInput
	}

	err = dispatch(rest[0], rest[1:], globals, stdin, stdout)
	if err == nil {
		err = writeMetrics(globals.MetricsFile, slog.Default())
	} else {
		// The command already failed; metrics are best effort.
		_ = writeMetrics(globals.MetricsFile, slog.Default())
	}
	if stderrors.Is(err, flag.ErrHelp) {
		return errors.ExitSuccess
	}
	return errors.Report(classify(err), globals.JSON)
}

func parseGlobals(argv []string) (GlobalFlags, []string, error) {
	var g GlobalFlags
	fs := flag.NewFlagSet("geotree", flag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&g.ConfigPath, "config", "", "Path to .geotree/project.yaml (default: ./.geotree/project.yaml)")
	fs.StringVar(&g.DataDir, "data-dir", "", "Data directory (overrides the configuration)")
	fs.BoolVar(&g.JSON, "json", false, "Output as JSON")
	fs.BoolVar(&g.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&g.Debug, "debug", false, "Enable debug logging")
	fs.BoolVarP(&g.Quiet, "quiet", "q", false, "Suppress progress output")
	fs.StringVar(&g.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
	fs.BoolVar(&g.Version, "version", false, "Show version and exit")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usageText)
		fs.PrintDefaults()
		fmt.Fprint(os.Stderr, usageFooter)
	}

	if err := fs.Parse(argv); err != nil {
		return g, nil, err
	}
	return g, fs.Args(), nil
}

func dispatch(command string, args []string, globals GlobalFlags, stdin io.Reader, stdout io.Writer) error {
	switch command {
	case "init":
		return runInit(args, globals, stdin, stdout)
	case "completion":
		return runCompletion(args, stdout)
	}

	handlers := map[string]func([]string, *app) error{
		"ls":     runList,
		"list":   runList,
		"filter": runFilter,
		"sort":   runSort,
		"stats":  runStats,
		"add":    runAdd,
		"edit":   runEdit,
		"rm":     runRemove,
		"status": runStatus,
		"shell":  runShell,
	}
	handler, ok := handlers[command]
	if !ok {
		return errors.NewInputError(
			fmt.Sprintf("Unknown command: %s", command),
			"",
			"Run 'geotree --help' to list the commands",
		)
	}

	a, err := newApp(globals, stdin, stdout)
	if err != nil {
		return err
	}
	return handler(args, a)
}

// classify turns any command error into a UserError.
func classify(err error) error {
	if err == nil {
		return nil
	}
	return errors.Classify("Command failed", err)
}
