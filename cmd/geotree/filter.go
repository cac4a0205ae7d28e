// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/geotree/internal/errors"
	"github.com/kraklabs/geotree/pkg/query"
)

// runFilter executes the 'filter' command. Criteria combine: a record is
// listed when it matches all of them.
func runFilter(args []string, a *app) error {
	fs := flag.NewFlagSet("filter", flag.ContinueOnError)
	name := fs.String("name", "", "Name contains this text (case and accent insensitive)")
	level := fs.String("level", "", "First hierarchy level equals this value (e.g. America)")
	minPop := fs.Int64("min", 0, "Minimum population (inclusive)")
	maxPop := fs.Int64("max", 0, "Maximum population (inclusive)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: geotree filter [options]

Lists the records matching every given criterion.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  geotree filter --name peru
  geotree filter --level america --min 20000000
  geotree filter --min 1000 --max 50000000
`)
	}
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	c := query.Criteria{Name: *name, FirstLevel: *level}
	if fs.Changed("min") {
		c.MinPopulation = minPop
	}
	if fs.Changed("max") {
		c.MaxPopulation = maxPop
	}
	if c.IsZero() {
		return errors.NewInputError(
			"No filter given",
			"",
			"Pass at least one of --name, --level, --min or --max",
		)
	}

	col, result := a.load()
	a.reportLoad(result)

	records, err := query.Filter(col.Records(), a.schema(), c)
	if err != nil {
		return errors.Classify("Invalid population range", err)
	}
	return a.printRecords(records)
}
