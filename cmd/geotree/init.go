// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/geotree/internal/bootstrap"
	"github.com/kraklabs/geotree/internal/errors"
	"github.com/kraklabs/geotree/internal/ui"
	"github.com/kraklabs/geotree/pkg/catalog"
)

// initFlags holds parsed flags for the init command.
type initFlags struct {
	force, nonInteractive bool
	levels                []string
	leafFile              string
}

// runInit executes the 'init' command: writes .geotree/project.yaml and
// creates the data directory. The data directory comes from the global
// --data-dir flag or is asked for.
//
// Examples:
//
//	geotree init                                   Interactive setup
//	geotree init -y                                Use all defaults
//	geotree --data-dir paises init -y --levels continent,region
func runInit(args []string, globals GlobalFlags, stdin io.Reader, stdout io.Writer) error {
	f, err := parseInitFlags(args)
	if err != nil {
		return err
	}

	configPath := globals.ConfigPath
	if configPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return errors.NewInternalError("Cannot get current directory", err.Error(), "", err)
		}
		configPath = ConfigPath(cwd)
	}
	if _, err := os.Stat(configPath); err == nil && !f.force {
		return errors.NewConfigError(
			fmt.Sprintf("%s already exists", configPath),
			"",
			"Use --force to overwrite it",
			nil,
		)
	}

	cfg := DefaultConfig()
	if globals.DataDir != "" {
		cfg.DataDir = globals.DataDir
	}
	if len(f.levels) > 0 {
		cfg.Levels = f.levels
	}
	if f.leafFile != "" {
		cfg.LeafFile = f.leafFile
	}

	if !f.nonInteractive {
		if err := runInteractiveConfig(newReaderPrompter(stdin, stdout), stdout, cfg); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return errors.NewConfigError("Invalid configuration", err.Error(), "Check the values given to init", err)
	}

	if err := SaveConfig(cfg, configPath); err != nil {
		return errors.NewPermissionError("Cannot save configuration", err.Error(),
			"Check that the current directory is writable", err)
	}
	ui.Successf("Created %s", configPath)

	// The data directory sits next to .geotree/.
	cfg.baseDir = ConfigDirParent(configPath)
	info, err := bootstrap.InitRoot(bootstrap.RootConfig{DataDir: cfg.Root(), Schema: cfg.Schema()}, nil)
	if err != nil {
		return errors.Classify("Cannot create data directory", err)
	}
	if info.Created {
		ui.Successf("Created data directory %s", info.DataDir)
	} else {
		ui.Infof("Using existing data directory %s", info.DataDir)
	}

	printNextSteps(stdout)
	return nil
}

func parseInitFlags(args []string) (initFlags, error) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	var f initFlags
	fs.BoolVar(&f.force, "force", false, "Overwrite existing configuration")
	fs.BoolVarP(&f.nonInteractive, "yes", "y", false, "Non-interactive mode (use defaults)")
	fs.StringSliceVar(&f.levels, "levels", nil, "Hierarchy level names, outermost first (default continent,region,government)")
	fs.StringVar(&f.leafFile, "leaf-file", "", "Name of the CSV file in each leaf directory (default items.csv)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: geotree init [options]

Creates .geotree/project.yaml and the data directory.

Examples:
  geotree init -y
  geotree --data-dir paises init -y --levels continent,region

Options:
`)
		fs.PrintDefaults()
	}
	return f, parseFlags(fs, args)
}

func runInteractiveConfig(p Prompter, out io.Writer, cfg *Config) error {
	fmt.Fprintln(out, "geotree Project Configuration")
	fmt.Fprintln(out, "=============================")
	fmt.Fprintln(out)

	var err error
	if cfg.DataDir, err = askDefault(p, "Data directory", cfg.DataDir); err != nil {
		return promptError(err)
	}

	levels, err := askDefault(p, "Hierarchy levels (comma separated, outermost first)", strings.Join(cfg.Levels, ","))
	if err != nil {
		return promptError(err)
	}
	cfg.Levels = splitLevels(levels)

	if cfg.LeafFile, err = askDefault(p, "Leaf file name", cfg.LeafFile); err != nil {
		return promptError(err)
	}
	fmt.Fprintln(out)
	return nil
}

func splitLevels(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), catalog.DefaultSchema...)
	}
	return out
}

func promptError(err error) error {
	if isAbort(err) {
		return errors.NewInputError("Setup cancelled", "", "Run 'geotree init -y' to accept the defaults")
	}
	return errors.NewInternalError("Cannot read input", err.Error(), "", err)
}

// ConfigDirParent returns the project directory of a project.yaml path.
func ConfigDirParent(configPath string) string {
	return filepath.Dir(filepath.Dir(configPath))
}

func printNextSteps(out io.Writer) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Review and edit .geotree/project.yaml if needed")
	fmt.Fprintln(out, "  2. Add a record:  geotree add America Sur Republica --name Chile --population 19000000 --area 756102")
	fmt.Fprintln(out, "  3. Browse:        geotree ls   or   geotree shell")
}
