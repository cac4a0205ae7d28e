// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/geotree/internal/errors"
	"github.com/kraklabs/geotree/internal/output"
	"github.com/kraklabs/geotree/internal/ui"
	"github.com/kraklabs/geotree/internal/validate"
	"github.com/kraklabs/geotree/pkg/catalog"
)

// runEdit executes the 'edit' command.
func runEdit(args []string, a *app) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	newName := fs.String("name", "", "New name")
	population := fs.String("population", "", "New population (integer greater than zero)")
	area := fs.String("area", "", "New area (number greater than zero)")
	pick := fs.Int("pick", 0, "Choose among records sharing the name (1-based)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: geotree edit <name> [options]

Changes the name, population or area of one record and rewrites its items
file. The name is matched ignoring case and accents.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  geotree edit Chile --population 19500000
  geotree edit peru --pick 2 --name "Peru Norte"
`)
	}
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.NewInputError("Expected exactly one record name", "",
			"Quote names with spaces: geotree edit \"Costa Rica\" --area 51100")
	}

	changes, err := editChanges(*newName, *population, *area)
	if err != nil {
		return err
	}

	col, result := a.load()
	a.reportLoad(result)

	r, err := resolve(col, a.schema(), a.out, fs.Arg(0), *pick)
	if err != nil {
		return errors.Classify("Cannot edit record", err)
	}

	coord := a.coordinator(col)
	for _, ch := range changes {
		if err := coord.Update(r, ch); err != nil {
			return errors.Classify(fmt.Sprintf("Cannot apply %s", ch), err)
		}
	}

	if a.globals.JSON {
		return output.JSONTo(a.out, output.FromRecord(r, a.schema()))
	}
	ui.Successf("Updated %s (%s)", r.Name, a.schema().Path(r.Hierarchy))
	return nil
}

func editChanges(name, population, area string) ([]catalog.Change, error) {
	var changes []catalog.Change
	if name != "" {
		v, err := validate.Alphabetic(name)
		if err != nil {
			return nil, errors.NewInputError("Invalid name", err.Error(), "")
		}
		changes = append(changes, catalog.SetName(v))
	}
	if population != "" {
		v, err := validate.PositiveInt(population)
		if err != nil {
			return nil, errors.NewInputError("Invalid population", err.Error(), "")
		}
		changes = append(changes, catalog.SetPopulation(v))
	}
	if area != "" {
		v, err := validate.PositiveFloat(area)
		if err != nil {
			return nil, errors.NewInputError("Invalid area", err.Error(), "")
		}
		changes = append(changes, catalog.SetArea(v))
	}
	if len(changes) == 0 {
		return nil, errors.NewInputError("Nothing to change", "",
			"Pass at least one of --name, --population or --area")
	}
	return changes, nil
}
