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

package ingestion

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kraklabs/geotree/pkg/catalog"
)

// leafSuffix selects leaf files. The comparison is case-sensitive.
const leafSuffix = ".csv"

// Skip reasons reported in LoadResult.SkipReasons.
const (
	SkipExcludedDir    = "excluded_dir"
	SkipExcluded       = "excluded"
	SkipUnreadableDir  = "unreadable_dir"
	SkipCorruptRow     = "corrupt_row"
	SkipMissingFile    = "missing_file"
	SkipUnreadableFile = "unreadable_file"
	SkipDepthMismatch  = "depth_mismatch"
	SkipBrokenLink     = "broken_link"
	SkipLinkLoop       = "link_loop"
)

// LeafReader decodes one leaf file. *storage.CSV implements it.
type LeafReader interface {
	Read(path string, h catalog.Hierarchy) ([]*catalog.Record, []catalog.Diagnostic)
}

// Options tunes a Loader.
type Options struct {
	// ExcludeGlobs are matched against root-relative paths (see
	// excludeRule for the syntax). Matching directories are not descended
	// into. Nil means DefaultExcludeGlobs; pass an empty non-nil slice to
	// load everything.
	ExcludeGlobs []string

	// OnFile, if set, is called with the root-relative path of each leaf
	// file before it is read.
	OnFile func(rel string)
}

// Loader rebuilds the record collection from a directory tree of leaf files.
type Loader struct {
	reader LeafReader
	logger *slog.Logger
	opts   Options
}

// NewLoader creates a new loader reading leaf files through reader.
func NewLoader(reader LeafReader, logger *slog.Logger, opts Options) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.ExcludeGlobs == nil {
		opts.ExcludeGlobs = DefaultExcludeGlobs
	}
	return &Loader{reader: reader, logger: logger, opts: opts}
}

// LoadResult contains everything collected from one walk of the tree.
type LoadResult struct {
	RootPath    string
	Records     []*catalog.Record
	Files       []FileInfo
	FileCount   int
	Diagnostics []catalog.Diagnostic
	SkipReasons map[string]int // Reason -> count (e.g., "excluded_dir", "corrupt_row")

	// RootMissing is set when the root directory does not exist. The result
	// is then empty apart from one not_found diagnostic.
	RootMissing bool
	Duration    time.Duration
}

// FileInfo describes one leaf file that was read.
type FileInfo struct {
	Path      string // Relative path from the data root
	FullPath  string
	Hierarchy catalog.Hierarchy
	Records   int
	Skipped   int
}

// Load walks root and returns every record found. It never fails: missing
// roots, unreadable subtrees and corrupt rows are reported in
// LoadResult.Diagnostics and the walk goes on with whatever is reachable.
//
// Records come back in walk order: directories and files in lexical order,
// depth first, rows in file order. Symlinks are followed, for the root as
// well as for branches and leaf files below it.
func (l *Loader) Load(root string, schema catalog.Schema) *LoadResult {
	ingMetrics.init()
	start := time.Now()

	result := &LoadResult{
		RootPath:    root,
		SkipReasons: make(map[string]int),
	}
	defer func() {
		result.FileCount = len(result.Files)
		result.Duration = time.Since(start)
		ingMetrics.loadDuration.Observe(result.Duration.Seconds())
	}()

	l.logger.Info("load.start", "root", root, "levels", len(schema))

	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		result.RootMissing = true
		result.Diagnostics = append(result.Diagnostics, catalog.Diagnostic{
			Path: root,
			Err:  fmt.Errorf("%w: data root %s does not exist", catalog.ErrNotFound, root),
		})
		l.logger.Info("load.root_missing", "root", root)
		return result
	case err != nil:
		l.diagnose(result, catalog.Diagnostic{Path: root, Err: fmt.Errorf("%w: %w", catalog.ErrIO, err)})
		return result
	case !info.IsDir():
		l.diagnose(result, catalog.Diagnostic{Path: root, Err: fmt.Errorf("%w: %s is not a directory", catalog.ErrIO, root)})
		return result
	}

	ex, invalid := newExcluder(l.opts.ExcludeGlobs, schema)
	for _, err := range invalid {
		l.logger.Warn("load.exclude.invalid", "err", err)
	}

	// WalkDir does not follow a symlinked root, so walk its target. Paths
	// handed out (Source, diagnostics) stay under root as given.
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		l.diagnose(result, catalog.Diagnostic{Path: root, Err: fmt.Errorf("%w: %w", catalog.ErrIO, err)})
		return result
	}
	l.walk(result, schema, ex, walkDir{root: root, dir: resolved, active: map[string]bool{resolved: true}})

	for _, f := range result.Files {
		ingMetrics.rowsLoaded.Add(float64(f.Records))
	}

	l.logger.Info("load.complete",
		"root", root,
		"files", len(result.Files),
		"records", len(result.Records),
		"diagnostics", len(result.Diagnostics),
		"skip_reasons", result.SkipReasons,
	)
	return result
}

// walkDir is one directory walked by the loader: the physical dir, its
// path relative to the data root and the resolved directories entered
// through symlinks on the way there.
type walkDir struct {
	root   string
	dir    string
	rel    string
	active map[string]bool
}

func (w walkDir) userPath(rel string) string {
	return filepath.Join(w.root, rel)
}

// walk loads every leaf file below w.dir in lexical, depth-first order.
// Symlinked directories are followed in place; a link back into a
// directory already on the current chain is skipped.
func (l *Loader) walk(result *LoadResult, schema catalog.Schema, ex *excluder, w walkDir) {
	_ = filepath.WalkDir(w.dir, func(path string, d fs.DirEntry, err error) error {
		sub, relErr := filepath.Rel(w.dir, path)
		if relErr != nil {
			return nil
		}
		relPath := filepath.Join(w.rel, sub)

		if err != nil {
			// Log but continue: the subtree is lost, siblings are not.
			l.logger.Warn("load.walk.error", "path", w.userPath(relPath), "err", err)
			result.SkipReasons[SkipUnreadableDir]++
			ingMetrics.subtreesSkipped.Inc()
			l.diagnose(result, catalog.Diagnostic{Path: w.userPath(relPath), Err: fmt.Errorf("%w: %w", catalog.ErrIO, err)})
			if d != nil && d.IsDir() && path != w.dir {
				return filepath.SkipDir
			}
			return nil
		}
		if sub == "." {
			return nil
		}

		switch {
		case d.IsDir():
			if ex.excluded(relPath, true) {
				result.SkipReasons[SkipExcludedDir]++
				return filepath.SkipDir
			}
		case d.Type()&fs.ModeSymlink != 0:
			l.followLink(result, schema, ex, w, path, relPath)
		case d.Type().IsRegular():
			l.visitFile(result, schema, ex, w, relPath)
		}
		return nil
	})
}

func (l *Loader) followLink(result *LoadResult, schema catalog.Schema, ex *excluder, w walkDir, path, relPath string) {
	target, err := os.Stat(path)
	if err != nil {
		result.SkipReasons[SkipBrokenLink]++
		l.diagnose(result, catalog.Diagnostic{
			Path: w.userPath(relPath),
			Err:  fmt.Errorf("%w: broken link: %w", catalog.ErrNotFound, err),
		})
		return
	}
	if target.Mode().IsRegular() {
		l.visitFile(result, schema, ex, w, relPath)
		return
	}
	if !target.IsDir() {
		return
	}

	if ex.excluded(relPath, true) {
		result.SkipReasons[SkipExcludedDir]++
		return
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		l.diagnose(result, catalog.Diagnostic{Path: w.userPath(relPath), Err: fmt.Errorf("%w: %w", catalog.ErrIO, err)})
		return
	}
	if w.active[resolved] || within(filepath.Dir(path), resolved) {
		result.SkipReasons[SkipLinkLoop]++
		l.logger.Warn("load.link.loop", "path", w.userPath(relPath), "target", resolved)
		return
	}

	w.active[resolved] = true
	defer delete(w.active, resolved)
	l.logger.Debug("load.link.follow", "path", relPath, "target", resolved)
	l.walk(result, schema, ex, walkDir{root: w.root, dir: resolved, rel: relPath, active: w.active})
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}

func (l *Loader) visitFile(result *LoadResult, schema catalog.Schema, ex *excluder, w walkDir, relPath string) {
	if !strings.HasSuffix(filepath.Base(relPath), leafSuffix) {
		return
	}
	if ex.excluded(relPath, false) {
		result.SkipReasons[SkipExcluded]++
		return
	}
	l.readLeaf(result, schema, w.userPath(relPath), relPath)
}

func (l *Loader) readLeaf(result *LoadResult, schema catalog.Schema, path, relPath string) {
	segments := dirSegments(relPath)
	hierarchy := schema.Bind(segments)
	if len(segments) != len(schema) {
		result.SkipReasons[SkipDepthMismatch]++
		l.logger.Debug("load.depth_mismatch",
			"path", relPath,
			"depth", len(segments),
			"levels", len(schema),
		)
	}

	if l.opts.OnFile != nil {
		l.opts.OnFile(relPath)
	}

	records, diags := l.reader.Read(path, hierarchy)
	ingMetrics.filesRead.Inc()

	skipped := 0
	for _, d := range diags {
		switch d.Kind() {
		case "corrupt_row":
			result.SkipReasons[SkipCorruptRow]++
			ingMetrics.rowsSkipped.Inc()
			skipped++
		case "not_found":
			result.SkipReasons[SkipMissingFile]++
		default:
			result.SkipReasons[SkipUnreadableFile]++
		}
		l.diagnose(result, d)
	}

	result.Records = append(result.Records, records...)
	result.Files = append(result.Files, FileInfo{
		Path:      relPath,
		FullPath:  path,
		Hierarchy: hierarchy,
		Records:   len(records),
		Skipped:   skipped,
	})
}

func (l *Loader) diagnose(result *LoadResult, d catalog.Diagnostic) {
	result.Diagnostics = append(result.Diagnostics, d)
	l.logger.Warn("load.diagnostic", "kind", d.Kind(), "path", d.Path, "line", d.Line, "err", d.Err)
}

// dirSegments returns the directory components of a root-relative file
// path. A file directly under the root has no segments.
func dirSegments(relPath string) []string {
	dir := filepath.Dir(relPath)
	if dir == "." {
		return nil
	}
	return strings.Split(filepath.ToSlash(dir), "/")
}
