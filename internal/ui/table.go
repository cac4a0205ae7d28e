// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kraklabs/geotree/pkg/catalog"
	"github.com/kraklabs/geotree/pkg/query"
)

// Column widths of the record table, in terminal cells.
const (
	pathWidth       = 35
	nameWidth       = 30
	populationWidth = 15
	areaWidth       = 18
)

// FormatPopulation renders a population with thousands separators.
func FormatPopulation(n int64) string {
	return humanize.Comma(n)
}

// FormatArea renders an area with thousands separators and two decimals.
func FormatArea(a float64) string {
	return humanize.FormatFloat("#,###.##", a)
}

func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

func left(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func right(s string, width int) string {
	return runewidth.FillLeft(runewidth.Truncate(s, width, "…"), width)
}

// RecordTable writes records as a table with the hierarchy path, name,
// population and area of each one. Levels without a value show as N/A.
//
// Example output:
//
//	| Continent / Region / Government     | Name                           |      Population |               Area |
//	---------------------------------------------------------------------------------------------------------------
//	| America / Sur / Republica           | Chile                          |      19,000,000 |         756,102.00 |
func RecordTable(w io.Writer, records []*catalog.Record, schema catalog.Schema) {
	if len(records) == 0 {
		toneInfo.fprint(w, "No records to show.")
		return
	}

	levels := make([]string, len(schema))
	for i, l := range schema {
		levels[i] = Capitalize(l)
	}

	header := fmt.Sprintf("| %s | %s | %s | %s |",
		left(strings.Join(levels, " / "), pathWidth),
		left("Name", nameWidth),
		right("Population", populationWidth),
		right("Area", areaWidth),
	)
	rule := strings.Repeat("-", displayWidth(header))

	_, _ = fmt.Fprintln(w)
	_, _ = bold.Fprintf(w, "%d records\n", len(records))
	_, _ = fmt.Fprintln(w, header)
	_, _ = fmt.Fprintln(w, rule)
	for _, r := range records {
		_, _ = fmt.Fprintf(w, "| %s | %s | %s | %s |\n",
			left(schema.Path(r.Hierarchy), pathWidth),
			left(r.Name, nameWidth),
			right(FormatPopulation(r.Population), populationWidth),
			right(FormatArea(r.Area), areaWidth),
		)
	}
	_, _ = fmt.Fprintln(w, rule)
}

// SortedTable writes a two-column table of name and the sort key value.
func SortedTable(w io.Writer, records []*catalog.Record, key catalog.Field) {
	if len(records) == 0 {
		toneInfo.fprint(w, "No records to show.")
		return
	}

	toneSuccess.fprintf(w, "Records sorted by %s:", key)
	header := fmt.Sprintf("| %s | %s |", left("Name", nameWidth+5), right(Capitalize(string(key)), 20))
	rule := strings.Repeat("-", displayWidth(header))
	_, _ = fmt.Fprintln(w, header)
	_, _ = fmt.Fprintln(w, rule)
	for _, r := range records {
		var value string
		switch key {
		case catalog.FieldPopulation:
			value = FormatPopulation(r.Population)
		case catalog.FieldArea:
			value = FormatArea(r.Area)
		default:
			value = r.Name
		}
		_, _ = fmt.Fprintf(w, "| %s | %s |\n", left(r.Name, nameWidth+5), right(value, 20))
	}
	_, _ = fmt.Fprintln(w, rule)
}

// StatsReport writes the aggregate statistics of a collection.
func StatsReport(w io.Writer, s *query.Statistics) {
	sep := strings.Repeat("-", 40)

	_, _ = fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, "Statistics")
	_, _ = fmt.Fprintf(w, "%s %s\n", Label("Records:"), CountText(s.Count))
	_, _ = fmt.Fprintln(w, sep)
	_, _ = fmt.Fprintf(w, "%s %s\n", Label("Mean population:"), humanize.FormatFloat("#,###.", s.MeanPopulation))
	_, _ = fmt.Fprintf(w, "%s %s km²\n", Label("Mean area:"), FormatArea(s.MeanArea))
	_, _ = fmt.Fprintf(w, "%s %s\n", Label("Total population:"), FormatPopulation(s.TotalPopulation))
	_, _ = fmt.Fprintf(w, "%s %s km²\n", Label("Total area:"), FormatArea(s.TotalArea))
	_, _ = fmt.Fprintln(w, sep)
	_, _ = fmt.Fprintf(w, "%s %s (%s)\n", Label("Most populous:"), s.MostPopulous.Name, FormatPopulation(s.MostPopulous.Population))
	_, _ = fmt.Fprintf(w, "%s %s (%s)\n", Label("Least populous:"), s.LeastPopulous.Name, FormatPopulation(s.LeastPopulous.Population))
	_, _ = fmt.Fprintf(w, "%s %s (%s km²)\n", Label("Largest:"), s.Largest.Name, FormatArea(s.Largest.Area))
	_, _ = fmt.Fprintln(w, sep)
	_, _ = fmt.Fprintf(w, "%s\n", Label("Records by "+s.Level+":"))
	for _, k := range s.Categories() {
		_, _ = fmt.Fprintf(w, "  - %s: %d\n", k, s.ByLevel[k])
	}
	_, _ = fmt.Fprintln(w, sep)
}

// Candidates lists the records sharing a name so the user can pick one by
// its 1-based index.
//
// Example output:
//
//	[1] Peru (America / Sur / Republica)
//	[2] Perú (Ficcion / Norte / Monarquia)
func Candidates(w io.Writer, candidates []*catalog.Record, schema catalog.Schema) {
	toneWarning.fprintf(w, "%d records share that name:", len(candidates))
	for i, r := range candidates {
		_, _ = fmt.Fprintf(w, "  [%s] %s (%s)\n", strconv.Itoa(i+1), r.Name, DimText(schema.Path(r.Hierarchy)))
	}
}

// Diagnostics writes one line per load diagnostic, up to limit lines
// (all of them when limit <= 0).
func Diagnostics(w io.Writer, diags []catalog.Diagnostic, limit int) {
	for i, d := range diags {
		if limit > 0 && i == limit {
			_, _ = faint.Fprintf(w, "  ... and %d more\n", len(diags)-limit)
			return
		}
		_, _ = fmt.Fprintf(w, "  %s %s\n", toneWarning.color.Sprintf("[%s]", d.Kind()), d.Error())
	}
}

var titleCaser = cases.Title(language.Und, cases.NoLower)

// Capitalize upper-cases the first letter of s, for level names used as headings.
func Capitalize(s string) string {
	return titleCaser.String(s)
}
