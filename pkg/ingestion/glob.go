// SPDX-License-Identifier: AGPL-3.0-or-later

package ingestion

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/kraklabs/geotree/pkg/catalog"
)

// DefaultExcludeGlobs skips hidden directories and files (".git", ".geotree",
// editor swap files) anywhere in the data tree.
var DefaultExcludeGlobs = []string{".*"}

// Exclude patterns come in three shapes, all matched against root-relative
// paths one component at a time:
//
//   - "name" (no slash): any component at any depth, e.g. ".*", "*.bak",
//     "Borradores".
//   - "a/b/c" (with slashes): anchored at the data root. "**" spans any
//     number of levels and a pattern matching a directory excludes its
//     whole subtree, e.g. "Ficcion/**", "America/*/Monarquia",
//     "**/tmp_*".
//   - "level=glob": the directory at that hierarchy level, e.g.
//     "region=Norte" or "government=Mon*".
//
// Within a component, "*", "?" and "[...]" work as in path.Match; "[!...]"
// is accepted as a negated class.
type excludeRule struct {
	pattern  string
	level    int      // hierarchy level index for level=glob rules, -1 otherwise
	segments []string // pattern components
	anchored bool
}

// excluder decides which entries of a data tree the loader skips.
type excluder struct {
	rules []excludeRule
}

// newExcluder compiles patterns against schema. Invalid patterns are
// returned as errors and left out of the result.
func newExcluder(patterns []string, schema catalog.Schema) (*excluder, []error) {
	ex := &excluder{}
	var errs []error
	for _, p := range patterns {
		rule, err := parseExclude(p, schema)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ex.rules = append(ex.rules, rule)
	}
	return ex, errs
}

// ValidateExcludes checks exclude patterns against schema, for
// configuration validation.
func ValidateExcludes(patterns []string, schema catalog.Schema) []error {
	_, errs := newExcluder(patterns, schema)
	return errs
}

func parseExclude(pattern string, schema catalog.Schema) (excludeRule, error) {
	p := strings.TrimSpace(filepath.ToSlash(pattern))
	if p == "" {
		return excludeRule{}, fmt.Errorf("exclude: empty pattern")
	}

	rule := excludeRule{pattern: pattern, level: -1}
	if level, glob, ok := strings.Cut(p, "="); ok && !strings.Contains(level, "/") {
		rule.level = indexOf(schema, strings.TrimSpace(level))
		if rule.level < 0 {
			return excludeRule{}, fmt.Errorf("exclude %q: unknown level %q (levels: %s)",
				pattern, level, strings.Join(schema, ", "))
		}
		p = strings.TrimSpace(glob)
		if p == "" || strings.Contains(p, "/") {
			return excludeRule{}, fmt.Errorf("exclude %q: a level rule takes one name pattern", pattern)
		}
	}

	rule.anchored = rule.level < 0 && strings.Contains(p, "/")
	rule.segments = strings.Split(strings.Trim(p, "/"), "/")
	for _, seg := range rule.segments {
		if seg == "**" {
			continue
		}
		if _, err := path.Match(classSyntax(seg), ""); err != nil {
			return excludeRule{}, fmt.Errorf("exclude %q: bad pattern %q", pattern, seg)
		}
	}
	return rule, nil
}

func indexOf(schema catalog.Schema, level string) int {
	for i, l := range schema {
		if l == level {
			return i
		}
	}
	return -1
}

// excluded reports whether the root-relative rel is skipped. isDir tells
// whether rel names a directory; level rules only look at directories.
func (e *excluder) excluded(rel string, isDir bool) bool {
	if e == nil {
		return false
	}
	comps := strings.Split(filepath.ToSlash(rel), "/")
	dirs := comps
	if !isDir {
		dirs = comps[:len(comps)-1]
	}

	for _, r := range e.rules {
		switch {
		case r.level >= 0:
			if r.level < len(dirs) && matchSegment(r.segments[0], dirs[r.level]) {
				return true
			}
		case r.anchored:
			for n := 1; n <= len(comps); n++ {
				if matchComponents(r.segments, comps[:n]) {
					return true
				}
			}
		default:
			for _, c := range comps {
				if matchSegment(r.segments[0], c) {
					return true
				}
			}
		}
	}
	return false
}

// matchComponents matches path components against pattern components,
// where "**" stands for zero or more components.
func matchComponents(pat, comps []string) bool {
	if len(pat) == 0 {
		return len(comps) == 0
	}
	if pat[0] == "**" {
		for i := 0; i <= len(comps); i++ {
			if matchComponents(pat[1:], comps[i:]) {
				return true
			}
		}
		return false
	}
	if len(comps) == 0 || !matchSegment(pat[0], comps[0]) {
		return false
	}
	return matchComponents(pat[1:], comps[1:])
}

// matchSegment matches one path component. Patterns path.Match rejects
// were filtered out by parseExclude, so a match error means no match.
func matchSegment(pattern, name string) bool {
	if pattern == "**" {
		return true
	}
	ok, err := path.Match(classSyntax(pattern), name)
	return err == nil && ok
}

// classSyntax rewrites the shell-style negated class "[!" to path.Match's "[^".
func classSyntax(pattern string) string {
	return strings.ReplaceAll(pattern, "[!", "[^")
}
