// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mutation applies edits to a loaded collection and writes the
// affected leaf file back to disk.
//
// The collection is the source of truth: an update changes the record in
// memory first and then rewrites every record of the same leaf file. If the
// rewrite fails the in-memory change is kept and the returned error wraps
// catalog.ErrDiverged; reloading the tree restores the on-disk state.
//
// New records are appended to the leaf file of their hierarchy path and are
// not added to the collection. Reload to see them.
package mutation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kraklabs/geotree/pkg/catalog"
)

// DefaultLeafFile is the file name new records are appended to.
const DefaultLeafFile = "items.csv"

// LeafStore persists leaf files. *storage.CSV implements it.
type LeafStore interface {
	Rewrite(path string, records []*catalog.Record) error
	Append(path string, r *catalog.Record) error
}

// Coordinator keeps a collection and its leaf files in step.
type Coordinator struct {
	Collection *catalog.Collection
	Store      LeafStore

	// Root is the data root new hierarchy directories are created under.
	Root   string
	Schema catalog.Schema

	// LeafFile defaults to DefaultLeafFile.
	LeafFile string
	Logger   *slog.Logger
}

func (c *Coordinator) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *Coordinator) leafFile() string {
	if c.LeafFile == "" {
		return DefaultLeafFile
	}
	return c.LeafFile
}

// Update applies ch to r and rewrites r's leaf file. r must belong to the
// collection (resolve it with Collection.Resolve first).
func (c *Coordinator) Update(r *catalog.Record, ch catalog.Change) error {
	if !c.Collection.Contains(r) {
		return fmt.Errorf("%w: record %q is not in the collection", catalog.ErrNotFound, r.Name)
	}
	before := r.String()
	if err := ch.Apply(r); err != nil {
		return err
	}

	c.logger().Info("mutation.update", "source", r.Source, "before", before, "change", ch.String())
	return c.rewrite(r.Source)
}

// Delete removes r from the collection and rewrites its leaf file with the
// remaining records of that file.
func (c *Coordinator) Delete(r *catalog.Record) error {
	if !c.Collection.Remove(r) {
		return fmt.Errorf("%w: record %q is not in the collection", catalog.ErrNotFound, r.Name)
	}

	c.logger().Info("mutation.delete", "source", r.Source, "name", r.Name)
	return c.rewrite(r.Source)
}

func (c *Coordinator) rewrite(source string) error {
	remaining := c.Collection.BySource(source)
	if err := c.Store.Rewrite(source, remaining); err != nil {
		c.logger().Warn("mutation.rewrite.error",
			"source", source,
			"records", len(remaining),
			"err", err,
		)
		return fmt.Errorf("%w: %w", catalog.ErrDiverged, err)
	}
	return nil
}

// NewRecord describes a record to create.
type NewRecord struct {
	// Levels holds one value per schema level, in schema order. Each value
	// becomes a directory name.
	Levels []string

	Name       string
	Population int64
	Area       float64
}

// Create appends a new record to Root/<levels...>/<LeafFile>, creating the
// directories and the file (with its header) when needed. It returns the
// leaf file path. The collection is left untouched.
func (c *Coordinator) Create(nr NewRecord) (string, error) {
	levels, err := c.checkLevels(nr.Levels)
	if err != nil {
		return "", err
	}
	for _, ch := range []catalog.Change{
		catalog.SetName(nr.Name),
		catalog.SetPopulation(nr.Population),
		catalog.SetArea(nr.Area),
	} {
		if err := ch.Validate(); err != nil {
			return "", err
		}
	}

	dir := filepath.Join(append([]string{c.Root}, levels...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.logger().Error("mutation.create.mkdir_error", "dir", dir, "err", err)
		return "", fmt.Errorf("%w: create %s: %w", catalog.ErrIO, dir, err)
	}

	path := filepath.Join(dir, c.leafFile())
	rec := &catalog.Record{
		Name:       nr.Name,
		Population: nr.Population,
		Area:       nr.Area,
		Hierarchy:  c.Schema.Bind(levels),
		Source:     path,
	}
	if err := c.Store.Append(path, rec); err != nil {
		return "", err
	}

	c.logger().Info("mutation.create", "source", path, "name", rec.Name)
	return path, nil
}

// checkLevels trims the hierarchy values and rejects those that cannot be
// used as a single directory name.
func (c *Coordinator) checkLevels(levels []string) ([]string, error) {
	if len(levels) != len(c.Schema) {
		return nil, fmt.Errorf("%w: expected %d hierarchy values (%s), got %d",
			catalog.ErrInvalidValue, len(c.Schema), strings.Join(c.Schema, ", "), len(levels))
	}
	out := make([]string, len(levels))
	for i, v := range levels {
		v = strings.TrimSpace(v)
		switch {
		case v == "":
			return nil, fmt.Errorf("%w: %s must not be empty", catalog.ErrInvalidValue, c.Schema[i])
		case v == "." || v == "..":
			return nil, fmt.Errorf("%w: %s cannot be %q", catalog.ErrInvalidValue, c.Schema[i], v)
		case strings.ContainsAny(v, `/\`) || strings.ContainsRune(v, os.PathSeparator):
			return nil, fmt.Errorf("%w: %s %q contains a path separator", catalog.ErrInvalidValue, c.Schema[i], v)
		}
		out[i] = v
	}
	return out, nil
}
