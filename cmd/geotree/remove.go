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
)

// RemoveResult is the --json output of 'rm'.
type RemoveResult struct {
	Deleted bool              `json:"deleted"`
	Record  output.RecordJSON `json:"record"`
}

// runRemove executes the 'rm' command.
func runRemove(args []string, a *app) error {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	yes := fs.BoolP("yes", "y", false, "Do not ask for confirmation")
	pick := fs.Int("pick", 0, "Choose among records sharing the name (1-based)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: geotree rm <name> [options]

Deletes one record and rewrites its items file.

WARNING: This operation cannot be undone!

Options:
`)
		fs.PrintDefaults()
	}
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.NewInputError("Expected exactly one record name", "", "Example: geotree rm Chile --yes")
	}

	col, result := a.load()
	a.reportLoad(result)

	r, err := resolve(col, a.schema(), a.out, fs.Arg(0), *pick)
	if err != nil {
		return errors.Classify("Cannot delete record", err)
	}
	rec := output.FromRecord(r, a.schema())

	if !*yes {
		p := newReaderPrompter(a.in, a.out)
		label := fmt.Sprintf("Delete '%s' (%s)? (S/N): ", r.Name, rec.Path)
		ok, err := ask(p, label, validate.YesNo)
		if err != nil && !isAbort(err) {
			return err
		}
		if !ok {
			if a.globals.JSON {
				return output.JSONTo(a.out, RemoveResult{Deleted: false, Record: rec})
			}
			ui.Info("Deletion cancelled.")
			return nil
		}
	}

	if err := a.coordinator(col).Delete(r); err != nil {
		return errors.Classify("Cannot delete record", err)
	}

	if a.globals.JSON {
		return output.JSONTo(a.out, RemoveResult{Deleted: true, Record: rec})
	}
	ui.Successf("Deleted %s from %s", r.Name, r.Source)
	return nil
}
