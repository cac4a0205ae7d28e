// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui renders geotree's terminal output: status messages, record
// tables and the statistics report.
//
// Messages carry a tone (success, warning, error, info) that picks their
// symbol and color. Colors follow the --no-color flag and NO_COLOR, and are
// dropped when the output is not a TTY. Everything printed without an
// explicit writer goes to Output, which the interactive shell and the tests
// redirect with SetOutput.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// Output receives every message printed by this package.
var Output io.Writer = color.Output

// SetOutput redirects messages to w and returns a function restoring the
// previous writer.
func SetOutput(w io.Writer) (restore func()) {
	prev := Output
	Output = w
	return func() { Output = prev }
}

// InitColors turns colored output off when noColor is set. Call it once the
// flags are parsed.
func InitColors(noColor bool) {
	color.NoColor = noColor
}

// tone is the kind of a one-line message.
type tone struct {
	symbol string
	color  *color.Color
}

var (
	toneSuccess = tone{"✓", color.New(color.FgGreen)}
	toneWarning = tone{"⚠", color.New(color.FgYellow)}
	toneError   = tone{"✗", color.New(color.FgRed)}
	toneInfo    = tone{"ℹ", color.New(color.FgCyan)}

	bold  = color.New(color.Bold)
	faint = color.New(color.Faint)
)

func (t tone) fprint(w io.Writer, msg string) {
	_, _ = t.color.Fprintln(w, t.symbol+" "+msg)
}

func (t tone) fprintf(w io.Writer, format string, args ...any) {
	t.fprint(w, fmt.Sprintf(format, args...))
}

// Success reports a completed operation, e.g. "✓ Record Chile added".
func Success(msg string) { toneSuccess.fprint(Output, msg) }

// Successf is Success with formatting.
func Successf(format string, args ...any) { toneSuccess.fprintf(Output, format, args...) }

// Warning reports something the user should look at, e.g. skipped rows.
func Warning(msg string) { toneWarning.fprint(Output, msg) }

// Warningf is Warning with formatting.
func Warningf(format string, args ...any) { toneWarning.fprintf(Output, format, args...) }

// Error reports a failed operation.
func Error(msg string) { toneError.fprint(Output, msg) }

// Errorf is Error with formatting.
func Errorf(format string, args ...any) { toneError.fprintf(Output, format, args...) }

// Info reports a neutral outcome, e.g. "ℹ No records match the filter".
func Info(msg string) { toneInfo.fprint(Output, msg) }

// Infof is Info with formatting.
func Infof(format string, args ...any) { toneInfo.fprintf(Output, format, args...) }

// Header prints a bold title underlined to its display width.
//
//	Data Tree Status
//	================
func Header(text string) {
	_, _ = bold.Fprintln(Output, text)
	_, _ = fmt.Fprintln(Output, strings.Repeat("=", displayWidth(text)))
}

// SubHeader prints a bold title without an underline.
func SubHeader(text string) {
	_, _ = bold.Fprintln(Output, text)
}

// Label returns text in bold, for "Label: value" lines.
func Label(text string) string {
	return bold.Sprint(text)
}

// DimText returns text faint, for hierarchy paths and other secondary details.
func DimText(text string) string {
	return faint.Sprint(text)
}

// CountText returns a record or file count with thousands separators.
func CountText(count int) string {
	return toneInfo.color.Sprint(humanize.Comma(int64(count)))
}
