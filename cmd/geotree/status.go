// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/geotree/internal/bootstrap"
	"github.com/kraklabs/geotree/internal/output"
	"github.com/kraklabs/geotree/internal/ui"
	"github.com/kraklabs/geotree/pkg/ingestion"
)

// StatusResult represents the data directory status for JSON output.
type StatusResult struct {
	DataDir     string                  `json:"data_dir"`
	Exists      bool                    `json:"exists"`
	Levels      []string                `json:"levels"`
	LeafFile    string                  `json:"leaf_file"`
	Branches    []string                `json:"branches"`
	Files       int                     `json:"files"`
	Records     int                     `json:"records"`
	SkipReasons map[string]int          `json:"skip_reasons"`
	Diagnostics []output.DiagnosticJSON `json:"diagnostics"`
	DurationMS  int64                   `json:"duration_ms"`
	Timestamp   time.Time               `json:"timestamp"`
}

// runStatus executes the 'status' command: what a load of the data
// directory finds, including every problem met on the way.
func runStatus(args []string, a *app) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: geotree status

Shows the data directory, its first-level branches, how many leaf files and
records were loaded and every problem met while loading.
`)
		fs.PrintDefaults()
	}
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	_, result := a.load()
	branches, err := bootstrap.ListBranches(a.root())
	if err != nil {
		a.logger.Warn("status.branches.error", "err", err)
	}

	status := &StatusResult{
		DataDir:     a.root(),
		Exists:      !result.RootMissing,
		Levels:      a.schema(),
		LeafFile:    a.cfg.LeafFile,
		Branches:    branches,
		Files:       result.FileCount,
		Records:     len(result.Records),
		SkipReasons: result.SkipReasons,
		Diagnostics: output.FromDiagnostics(result.Diagnostics),
		DurationMS:  result.Duration.Milliseconds(),
		Timestamp:   time.Now(),
	}
	if status.Branches == nil {
		status.Branches = []string{}
	}

	if a.globals.JSON {
		return output.JSONTo(a.out, status)
	}
	printStatus(a, status, result)
	return nil
}

func printStatus(a *app, s *StatusResult, result *ingestion.LoadResult) {
	ui.Header("geotree Status")
	fmt.Fprintf(a.out, "%s %s\n", ui.Label("Data Dir:"), s.DataDir)
	fmt.Fprintf(a.out, "%s %v\n", ui.Label("Levels:"), s.Levels)
	fmt.Fprintf(a.out, "%s %s\n", ui.Label("Leaf file:"), s.LeafFile)
	fmt.Fprintln(a.out)

	if !s.Exists {
		ui.Warning("Data directory does not exist yet. Run 'geotree init' or 'geotree add'.")
		return
	}

	fmt.Fprintf(a.out, "%s %v\n", ui.Label("Branches:"), s.Branches)
	fmt.Fprintf(a.out, "%s %s\n", ui.Label("Leaf files:"), ui.CountText(s.Files))
	fmt.Fprintf(a.out, "%s %s\n", ui.Label("Records:"), ui.CountText(s.Records))

	if len(s.SkipReasons) > 0 {
		reasons := make([]string, 0, len(s.SkipReasons))
		for k := range s.SkipReasons {
			reasons = append(reasons, k)
		}
		sort.Strings(reasons)
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, ui.Label("Skipped:"))
		for _, k := range reasons {
			fmt.Fprintf(a.out, "  %s: %d\n", k, s.SkipReasons[k])
		}
	}

	if len(result.Diagnostics) > 0 {
		fmt.Fprintln(a.out)
		ui.Warningf("%d problem(s) while loading:", len(result.Diagnostics))
		ui.Diagnostics(a.out, result.Diagnostics, 0)
		return
	}
	ui.Success("No problems found")
}
