// SPDX-License-Identifier: AGPL-3.0-or-later

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
	"github.com/kraklabs/geotree/pkg/catalog"
	"github.com/kraklabs/geotree/pkg/ingestion"
	"github.com/kraklabs/geotree/pkg/mutation"
	"github.com/kraklabs/geotree/pkg/storage"
)

// maxDiagnostics is how many load problems are listed before summarizing.
const maxDiagnostics = 5

// app is what every command receives: resolved configuration, logger,
// streams and the CSV codec.
type app struct {
	globals GlobalFlags
	cfg     *Config
	logger  *slog.Logger
	in      io.Reader
	out     io.Writer
	store   *storage.CSV
}

func newApp(globals GlobalFlags, in io.Reader, out io.Writer) (*app, error) {
	cfg, err := LoadConfig(globals.ConfigPath)
	if err != nil {
		return nil, errors.NewConfigError(
			"Cannot load configuration",
			err.Error(),
			"Fix .geotree/project.yaml or recreate it with 'geotree init --force'",
			err,
		)
	}
	if globals.DataDir != "" {
		cfg.DataDir = globals.DataDir
		cfg.baseDir = ""
	}

	logger := newLogger(cfg.Log, globals.Debug, os.Stderr)
	slog.SetDefault(logger)

	store := storage.NewCSV(logger)
	store.Fields = catalog.DefaultFields

	return &app{
		globals: globals,
		cfg:     cfg,
		logger:  logger,
		in:      in,
		out:     out,
		store:   store,
	}, nil
}

func (a *app) schema() catalog.Schema { return a.cfg.Schema() }

func (a *app) root() string { return a.cfg.Root() }

// load walks the data root and returns a fresh collection.
func (a *app) load() (*catalog.Collection, *ingestion.LoadResult) {
	spinner := NewSpinner(NewProgressConfig(a.globals), "Loading records")
	loader := ingestion.NewLoader(a.store, a.logger, ingestion.Options{
		ExcludeGlobs: a.cfg.ExcludeGlobs(),
		OnFile: func(string) {
			if spinner != nil {
				_ = spinner.Add(1)
			}
		},
	})

	result := loader.Load(a.root(), a.schema())
	if spinner != nil {
		_ = spinner.Finish()
	}
	return catalog.NewCollection(result.Records), result
}

// reportLoad prints load problems in text mode. JSON consumers get them
// from 'geotree status --json'.
func (a *app) reportLoad(result *ingestion.LoadResult) {
	if a.globals.JSON {
		return
	}
	if result.RootMissing {
		ui.Warningf("Data directory %s does not exist yet (run 'geotree init' or add a record)", result.RootPath)
		return
	}
	problems := len(result.Diagnostics)
	if problems == 0 {
		return
	}
	ui.Warningf("%d problem(s) while loading %s", problems, result.RootPath)
	ui.Diagnostics(a.out, result.Diagnostics, maxDiagnostics)
}

func (a *app) coordinator(col *catalog.Collection) *mutation.Coordinator {
	return &mutation.Coordinator{
		Collection: col,
		Store:      a.store,
		Root:       a.root(),
		Schema:     a.schema(),
		LeafFile:   a.cfg.LeafFile,
		Logger:     a.logger,
	}
}

// resolve finds the record called name. pick is the 1-based choice among
// same-named records, 0 when none was given.
func resolve(col *catalog.Collection, schema catalog.Schema, out io.Writer, name string, pick int) (*catalog.Record, error) {
	r, err := col.Resolve(name)
	var amb *catalog.AmbiguousMatchError
	if !stderrors.As(err, &amb) {
		return r, err
	}
	if pick > 0 {
		return amb.Pick(pick)
	}
	ui.Candidates(out, amb.Candidates, schema)
	return nil, errors.NewInputError(
		fmt.Sprintf("Several records are named %q", name),
		"The name exists in more than one hierarchy branch",
		"Repeat the command with --pick N using a number from the list",
	)
}

// parseFlags parses command flags, turning parse failures into input errors.
// flag.ErrHelp is returned unchanged so --help exits successfully.
func parseFlags(fs *flag.FlagSet, args []string) error {
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return err
		}
		return errors.NewInputError("Invalid arguments", err.Error(),
			fmt.Sprintf("Run 'geotree %s --help' for usage", fs.Name()))
	}
	return nil
}
