// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/geotree/internal/output"
	"github.com/kraklabs/geotree/internal/ui"
	"github.com/kraklabs/geotree/pkg/catalog"
)

// runList executes the 'ls' command: every loaded record with its hierarchy
// path, in load order.
func runList(args []string, a *app) error {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: geotree ls

Lists every record found under the data directory, in load order.
Use the global --json flag for machine-readable output.
`)
		fs.PrintDefaults()
	}
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	col, result := a.load()
	a.reportLoad(result)
	return a.printRecords(col.Records())
}

func (a *app) printRecords(records []*catalog.Record) error {
	if a.globals.JSON {
		return output.JSONTo(a.out, output.FromRecords(records, a.schema()))
	}
	ui.RecordTable(a.out, records, a.schema())
	return nil
}
