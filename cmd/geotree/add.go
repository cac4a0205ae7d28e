// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/geotree/internal/errors"
	"github.com/kraklabs/geotree/internal/output"
	"github.com/kraklabs/geotree/internal/ui"
	"github.com/kraklabs/geotree/internal/validate"
	"github.com/kraklabs/geotree/pkg/mutation"
)

// AddResult is the --json output of 'add'.
type AddResult struct {
	Path   string            `json:"path"`
	Record output.RecordJSON `json:"record"`
}

// runAdd executes the 'add' command. Hierarchy values are positional, one
// per configured level; attributes come from flags. Anything missing is
// asked for on stdin.
func runAdd(args []string, a *app) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	name := fs.String("name", "", "Record name")
	population := fs.String("population", "", "Population (integer greater than zero)")
	area := fs.String("area", "", "Area (number greater than zero)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: geotree add [options] [level values...]

Appends a record to the items file of the given hierarchy path, creating
the directories when needed. Missing values are prompted for.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  geotree add America Sur Republica --name Uruguay --population 3500000 --area 176215
  geotree add                             # prompts for everything
`)
	}
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	schema := a.schema()
	levels := fs.Args()
	if len(levels) > len(schema) {
		return errors.NewInputError(
			fmt.Sprintf("Too many hierarchy values: got %d, expected %d", len(levels), len(schema)),
			"",
			fmt.Sprintf("Give one value per level: %v", []string(schema)),
		)
	}

	p := newReaderPrompter(a.in, a.out)
	nr := mutation.NewRecord{Levels: make([]string, len(schema))}
	var err error
	for i, level := range schema {
		raw := ""
		if i < len(levels) {
			raw = levels[i]
		}
		if nr.Levels[i], err = field(p, raw, level, validate.Alphabetic); err != nil {
			return err
		}
	}
	if nr.Name, err = field(p, *name, "name", validate.Alphabetic); err != nil {
		return err
	}
	if nr.Population, err = field(p, *population, "population", validate.PositiveInt); err != nil {
		return err
	}
	if nr.Area, err = field(p, *area, "area", validate.PositiveFloat); err != nil {
		return err
	}

	path, err := a.coordinator(nil).Create(nr)
	if err != nil {
		return errors.Classify("Cannot add record", err)
	}

	if a.globals.JSON {
		rec := output.RecordJSON{
			Name:       nr.Name,
			Population: nr.Population,
			Area:       nr.Area,
			Hierarchy:  make(map[string]string, len(schema)),
			Path:       strings.Join(nr.Levels, " / "),
			Source:     path,
		}
		for i, level := range schema {
			rec.Hierarchy[level] = nr.Levels[i]
		}
		return output.JSONTo(a.out, AddResult{Path: path, Record: rec})
	}
	ui.Successf("Added %s to %s", nr.Name, path)
	return nil
}

// field validates a flag value, or prompts for it when the flag was empty.
// A bad flag value is an input error rather than a new prompt.
func field[T any](p Prompter, raw, label string, parse func(string) (T, error)) (T, error) {
	if raw != "" {
		v, err := parse(raw)
		if err != nil {
			var zero T
			return zero, errors.NewInputError(fmt.Sprintf("Invalid %s", label), err.Error(), "")
		}
		return v, nil
	}
	v, err := ask(p, ui.Capitalize(label)+": ", parse)
	if isAbort(err) {
		var zero T
		return zero, errors.NewInputError(fmt.Sprintf("Missing %s", label), "Input ended before a value was given",
			fmt.Sprintf("Pass the value as a flag or argument (%s)", label))
	}
	return v, err
}
