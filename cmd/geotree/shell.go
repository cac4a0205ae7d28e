// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/kraklabs/geotree/internal/errors"
	"github.com/kraklabs/geotree/internal/ui"
	"github.com/kraklabs/geotree/internal/validate"
	"github.com/kraklabs/geotree/pkg/catalog"
	"github.com/kraklabs/geotree/pkg/mutation"
	"github.com/kraklabs/geotree/pkg/query"
)

const (
	optExit = iota
	optLoad
	optAdd
	optShow
	optFilter
	optModify
	optDelete
	optSort
	optStats
)

var menuEntries = []struct {
	option int
	label  string
}{
	{optLoad, "Load / reload data"},
	{optAdd, "Add record"},
	{optShow, "Show all records"},
	{optFilter, "Filter records"},
	{optModify, "Modify record"},
	{optDelete, "Delete record"},
	{optSort, "Sort records"},
	{optStats, "Statistics"},
	{optExit, "Exit"},
}

// Shell is the interactive numbered menu. It owns one collection for the
// whole session; options that read it are refused until a load happened,
// and every successful add, modify or delete asks for a reload.
type Shell struct {
	app    *app
	prompt Prompter
	out    io.Writer

	col    *catalog.Collection
	loaded bool
}

func newShell(a *app, p Prompter) *Shell {
	// Tables, never JSON, inside the shell.
	sa := *a
	sa.globals.JSON = false
	return &Shell{app: &sa, prompt: p, out: a.out, col: catalog.NewCollection(nil)}
}

// runShell executes the 'shell' command. On a terminal it uses line editing
// with history; otherwise it reads one answer per line from stdin, which
// makes sessions scriptable.
func runShell(args []string, a *app) error {
	fs := flag.NewFlagSet("shell", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: geotree shell

Starts the interactive menu. Option 1 loads the data directory; options 3
to 8 need loaded data. Ctrl-C cancels the current question, Ctrl-D exits.
`)
	}
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var p Prompter
	if f, ok := a.in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		p = newLinePrompter()
	} else {
		p = newReaderPrompter(a.in, a.out)
	}
	defer func() { _ = p.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	return newShell(a, p).Run(ctx)
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
// Errors of individual options are reported and the loop goes on.
func (s *Shell) Run(ctx context.Context) error {
	s.app.logger.Debug("shell.start", "data_dir", s.app.root())

	for ctx.Err() == nil {
		s.menu()
		opt, err := ask(s.prompt, "Select an option (0-8): ", func(v string) (int, error) {
			return validate.MenuOption(v, optExit, optStats)
		})
		if err != nil {
			if isAbort(err) {
				fmt.Fprintln(s.out)
				ui.Info("Bye!")
				return nil
			}
			return err
		}
		fmt.Fprintln(s.out)

		if opt == optExit {
			ui.Info("Bye!")
			return nil
		}
		if !s.loaded && opt != optLoad && opt != optAdd {
			ui.Warning("Load the data first (option 1).")
			continue
		}

		err = s.do(opt)
		switch {
		case err == nil:
		case stderrors.Is(err, liner.ErrPromptAborted):
			ui.Info("Cancelled.")
		case stderrors.Is(err, io.EOF):
			ui.Info("Bye!")
			return nil
		default:
			s.report(err)
		}
	}
	return nil
}

func (s *Shell) menu() {
	fmt.Fprintln(s.out)
	ui.Header("geotree - hierarchical data")
	for _, e := range menuEntries {
		fmt.Fprintf(s.out, "  [%d] %s\n", e.option, e.label)
	}
}

func (s *Shell) do(opt int) error {
	switch opt {
	case optLoad:
		return s.load()
	case optAdd:
		return s.add()
	case optShow:
		ui.RecordTable(s.out, s.col.Records(), s.app.schema())
		return nil
	case optFilter:
		return s.filter()
	case optModify:
		return s.modify()
	case optDelete:
		return s.delete()
	case optSort:
		return s.sort()
	case optStats:
		return s.stats()
	}
	return nil
}

func (s *Shell) report(err error) {
	fmt.Fprint(s.out, errors.Classify("Operation failed", err).Format(s.app.globals.NoColor))
}

func (s *Shell) load() error {
	ui.Infof("Reading data from %s...", s.app.root())
	col, result := s.app.load()
	s.col = col
	s.loaded = true
	s.app.reportLoad(result)
	ui.Successf("Loaded %d records from %d files.", col.Len(), result.FileCount)
	return nil
}

func (s *Shell) add() error {
	ui.SubHeader("Add record")
	schema := s.app.schema()
	nr := mutation.NewRecord{Levels: make([]string, len(schema))}

	var err error
	for i, level := range schema {
		if nr.Levels[i], err = ask(s.prompt, ui.Capitalize(level)+": ", validate.Alphabetic); err != nil {
			return err
		}
	}
	if nr.Name, err = ask(s.prompt, "Name: ", validate.Alphabetic); err != nil {
		return err
	}
	if nr.Population, err = ask(s.prompt, "Population: ", validate.PositiveInt); err != nil {
		return err
	}
	if nr.Area, err = ask(s.prompt, "Area: ", validate.PositiveFloat); err != nil {
		return err
	}

	path, err := s.app.coordinator(s.col).Create(nr)
	if err != nil {
		return err
	}
	s.loaded = false
	ui.Successf("Added %s to %s", nr.Name, path)
	ui.Info("Reload the data (option 1) to see it.")
	return nil
}

func (s *Shell) filter() error {
	ui.SubHeader("Filter records")
	schema := s.app.schema()
	fmt.Fprintln(s.out, "  [1] By name (partial)")
	fmt.Fprintf(s.out, "  [2] By %s\n", schema.First())
	fmt.Fprintln(s.out, "  [3] By population range")

	choice, err := ask(s.prompt, "Select a filter: ", func(v string) (int, error) {
		return validate.MenuOption(v, 1, 3)
	})
	if err != nil {
		return err
	}

	records := s.col.Records()
	var results []*catalog.Record
	switch choice {
	case 1:
		term, err := ask(s.prompt, "Name (or part of it): ", validate.NonEmpty)
		if err != nil {
			return err
		}
		results = query.ByName(records, term)
	case 2:
		value, err := ask(s.prompt, ui.Capitalize(schema.First())+": ", validate.Alphabetic)
		if err != nil {
			return err
		}
		results = query.ByFirstLevel(records, schema, value)
	case 3:
		minPop, err := ask(s.prompt, "Minimum population: ", validate.PositiveInt)
		if err != nil {
			return err
		}
		maxPop, err := ask(s.prompt, "Maximum population: ", validate.PositiveInt)
		if err != nil {
			return err
		}
		if results, err = query.ByPopulation(records, minPop, maxPop); err != nil {
			return err
		}
	}

	if len(results) == 0 {
		ui.Info("No records match the filter.")
		return nil
	}
	ui.Successf("%d result(s):", len(results))
	ui.RecordTable(s.out, results, schema)
	return nil
}

// pickRecord asks for an exact name and, when several records share it,
// for the position of the wanted one. It returns nil when nothing matches.
func (s *Shell) pickRecord() (*catalog.Record, error) {
	name, err := ask(s.prompt, "Exact name of the record: ", validate.NonEmpty)
	if err != nil {
		return nil, err
	}

	r, err := s.col.Resolve(name)
	var amb *catalog.AmbiguousMatchError
	switch {
	case err == nil:
		return r, nil
	case stderrors.Is(err, catalog.ErrNotFound):
		ui.Infof("No record named %q.", name)
		return nil, nil
	case !stderrors.As(err, &amb):
		return nil, err
	}

	ui.Candidates(s.out, amb.Candidates, s.app.schema())
	n, err := ask(s.prompt, "Select the record number: ", func(v string) (int, error) {
		return validate.MenuOption(v, 1, len(amb.Candidates))
	})
	if err != nil {
		return nil, err
	}
	return amb.Pick(n)
}

func (s *Shell) modify() error {
	ui.SubHeader("Modify record")
	r, err := s.pickRecord()
	if r == nil || err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Editing: %s (%s)\n", r.Name, s.app.schema().Path(r.Hierarchy))
	fmt.Fprintln(s.out, "  [1] Name\n  [2] Population\n  [3] Area")
	field, err := ask(s.prompt, "Select the attribute: ", func(v string) (int, error) {
		return validate.MenuOption(v, 1, 3)
	})
	if err != nil {
		return err
	}

	var ch catalog.Change
	switch field {
	case 1:
		v, err := ask(s.prompt, "New name: ", validate.Alphabetic)
		if err != nil {
			return err
		}
		ch = catalog.SetName(v)
	case 2:
		v, err := ask(s.prompt, "New population: ", validate.PositiveInt)
		if err != nil {
			return err
		}
		ch = catalog.SetPopulation(v)
	case 3:
		v, err := ask(s.prompt, "New area: ", validate.PositiveFloat)
		if err != nil {
			return err
		}
		ch = catalog.SetArea(v)
	}

	if err := s.app.coordinator(s.col).Update(r, ch); err != nil {
		if stderrors.Is(err, catalog.ErrDiverged) {
			s.loaded = false
		}
		return err
	}
	s.loaded = false
	ui.Successf("Saved %s to %s", r.Name, r.Source)
	return nil
}

func (s *Shell) delete() error {
	ui.SubHeader("Delete record")
	r, err := s.pickRecord()
	if r == nil || err != nil {
		return err
	}

	ok, err := ask(s.prompt, fmt.Sprintf("Delete '%s'? (S/N): ", r.Name), validate.YesNo)
	if err != nil {
		return err
	}
	if !ok {
		ui.Info("Cancelled. The record was not deleted.")
		return nil
	}

	if err := s.app.coordinator(s.col).Delete(r); err != nil {
		if stderrors.Is(err, catalog.ErrDiverged) {
			s.loaded = false
		}
		return err
	}
	s.loaded = false
	ui.Successf("Deleted %s from %s", r.Name, r.Source)
	return nil
}

func (s *Shell) sort() error {
	ui.SubHeader("Sort records")
	key, err := ask(s.prompt, "Sort by (N)ame, (P)opulation, (A)rea: ", func(v string) (string, error) {
		return validate.Choice(v, "N", "P", "A")
	})
	if err != nil {
		return err
	}
	order, err := ask(s.prompt, "Order (A)scending or (D)escending: ", func(v string) (string, error) {
		return validate.Choice(v, "A", "D")
	})
	if err != nil {
		return err
	}

	field := map[string]catalog.Field{
		"N": catalog.FieldName,
		"P": catalog.FieldPopulation,
		"A": catalog.FieldArea,
	}[key]
	sorted, err := query.Sort(s.col.Records(), field, order == "D")
	if err != nil {
		return err
	}
	ui.SortedTable(s.out, sorted, field)
	return nil
}

func (s *Shell) stats() error {
	stats, err := query.Summarize(s.col.Records(), s.app.schema())
	if err != nil {
		return err
	}
	ui.StatsReport(s.out, stats)
	return nil
}
