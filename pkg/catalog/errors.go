// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy. Every failure produced by the core wraps one of these so
// callers can branch with errors.Is.
var (
	// ErrNotFound: missing root directory, vanished leaf file, or no record
	// matching a name.
	ErrNotFound = errors.New("not found")

	// ErrCorruptRow: a CSV row with a wrong column count or an unparseable
	// numeric field. Recoverable at row granularity.
	ErrCorruptRow = errors.New("corrupt row")

	// ErrIO: a directory or file could not be created, opened or written.
	ErrIO = errors.New("i/o failure")

	// ErrInvalidRange: population range filter with min > max.
	ErrInvalidRange = errors.New("invalid range: minimum is greater than maximum")

	// ErrNoData: statistics requested over an empty collection.
	ErrNoData = errors.New("no data")

	// ErrInvalidValue: a typed value violated its constraint (non-positive
	// population, empty name, bad hierarchy value, ...).
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidSelection: a 1-based disambiguation choice out of range.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrDiverged: the in-memory change was applied but the leaf file could
	// not be rewritten. Memory and disk disagree until the next reload.
	ErrDiverged = errors.New("in-memory state diverged from disk")
)

// AmbiguousMatchError is returned by Collection.Resolve when several records
// share the searched name. It is a flow rather than a failure: the caller
// presents Candidates and calls Pick with the user's choice.
type AmbiguousMatchError struct {
	Name       string
	Candidates []*Record
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("%d records named %q", len(e.Candidates), e.Name)
}

// Pick returns the candidate at the 1-based position n.
func (e *AmbiguousMatchError) Pick(n int) (*Record, error) {
	if n < 1 || n > len(e.Candidates) {
		return nil, fmt.Errorf("%w: %d (choose 1-%d)", ErrInvalidSelection, n, len(e.Candidates))
	}
	return e.Candidates[n-1], nil
}

// Diagnostic reports a recoverable problem met while loading: the load keeps
// going and the diagnostic is returned alongside the records collected.
type Diagnostic struct {
	Path string
	Line int // 1-based CSV line, 0 when not applicable
	Err  error
}

// Kind classifies the diagnostic by the taxonomy sentinel it wraps.
func (d Diagnostic) Kind() string {
	switch {
	case errors.Is(d.Err, ErrCorruptRow):
		return "corrupt_row"
	case errors.Is(d.Err, ErrNotFound):
		return "not_found"
	default:
		return "io_failure"
	}
}

func (d Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString(d.Path)
	if d.Line > 0 {
		fmt.Fprintf(&b, ":%d", d.Line)
	}
	b.WriteString(": ")
	if d.Err != nil {
		b.WriteString(d.Err.Error())
	}
	return b.String()
}

func (d Diagnostic) Unwrap() error { return d.Err }
