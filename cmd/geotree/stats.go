// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/geotree/internal/errors"
	"github.com/kraklabs/geotree/internal/output"
	"github.com/kraklabs/geotree/internal/ui"
	"github.com/kraklabs/geotree/pkg/query"
)

// runStats executes the 'stats' command.
func runStats(args []string, a *app) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: geotree stats

Shows totals, means, extremes and the number of records per value of the
first hierarchy level.
`)
		fs.PrintDefaults()
	}
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	col, result := a.load()
	a.reportLoad(result)

	stats, err := query.Summarize(col.Records(), a.schema())
	if err != nil {
		return errors.Classify("No statistics available", err)
	}
	if a.globals.JSON {
		return output.JSONTo(a.out, output.FromStats(stats))
	}
	ui.StatsReport(a.out, stats)
	return nil
}
