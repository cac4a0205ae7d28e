// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/geotree/internal/errors"
	"github.com/kraklabs/geotree/internal/output"
	"github.com/kraklabs/geotree/internal/ui"
	"github.com/kraklabs/geotree/pkg/catalog"
	"github.com/kraklabs/geotree/pkg/query"
)

// runSort executes the 'sort' command.
func runSort(args []string, a *app) error {
	fs := flag.NewFlagSet("sort", flag.ContinueOnError)
	by := fs.String("by", "name", "Sort key: name, population or area")
	desc := fs.Bool("desc", false, "Sort in descending order")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: geotree sort [options]

Lists the records ordered by one field. Records with equal keys keep
their load order.

Options:
`)
		fs.PrintDefaults()
	}
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	key, err := catalog.ParseField(*by)
	if err != nil {
		return errors.NewInputError(
			fmt.Sprintf("Cannot sort by %q", *by),
			err.Error(),
			"Use --by name, --by population or --by area",
		)
	}

	col, result := a.load()
	a.reportLoad(result)

	sorted, err := query.Sort(col.Records(), key, *desc)
	if err != nil {
		return err
	}
	if a.globals.JSON {
		return output.JSONTo(a.out, output.FromRecords(sorted, a.schema()))
	}
	ui.SortedTable(a.out, sorted, key)
	return nil
}
