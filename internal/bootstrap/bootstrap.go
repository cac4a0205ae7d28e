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

package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/kraklabs/geotree/pkg/catalog"
)

// DefaultDataDir is the data root used when none is configured.
const DefaultDataDir = "datos_paises"

// RootConfig holds configuration for initializing a data root.
type RootConfig struct {
	// DataDir is the directory holding the hierarchy of leaf CSV files.
	// Defaults to DefaultDataDir, relative to the working directory.
	DataDir string

	// Schema is the hierarchy the tree is organized by. Only used for
	// reporting; no level directories are created up front.
	Schema catalog.Schema
}

// RootInfo holds information about an initialized data root.
type RootInfo struct {
	DataDir string
	Created bool
	Levels  int
}

// InitRoot creates the data root if it doesn't exist.
// This function is idempotent: calling it on an existing root leaves its
// content untouched and reports Created=false.
func InitRoot(config RootConfig, logger *slog.Logger) (*RootInfo, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if config.DataDir == "" {
		config.DataDir = DefaultDataDir
	}
	if len(config.Schema) == 0 {
		config.Schema = catalog.DefaultSchema
	}

	logger.Info("bootstrap.root.init.start",
		"data_dir", config.DataDir,
		"levels", len(config.Schema),
	)

	created := false
	info, err := os.Stat(config.DataDir)
	switch {
	case err == nil && !info.IsDir():
		return nil, fmt.Errorf("%w: data root %s is not a directory", catalog.ErrIO, config.DataDir)
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(config.DataDir, 0o750); err != nil {
			return nil, fmt.Errorf("%w: create data root: %w", catalog.ErrIO, err)
		}
		created = true
	case err != nil:
		return nil, fmt.Errorf("%w: stat data root: %w", catalog.ErrIO, err)
	}

	logger.Info("bootstrap.root.init.success",
		"data_dir", config.DataDir,
		"created", created,
	)

	return &RootInfo{
		DataDir: config.DataDir,
		Created: created,
		Levels:  len(config.Schema),
	}, nil
}

// CheckRoot reports whether the data root exists and is a directory.
// A missing root is not an error for the loader, but commands that need
// existing data use this to suggest 'geotree init'.
func CheckRoot(dataDir string) error {
	info, err := os.Stat(dataDir)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: data root %s (run 'geotree init' first)", catalog.ErrNotFound, dataDir)
	}
	if err != nil {
		return fmt.Errorf("%w: stat data root: %w", catalog.ErrIO, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: data root %s is not a directory", catalog.ErrIO, dataDir)
	}
	return nil
}

// ListBranches returns the first-level directories under the data root,
// sorted, skipping hidden ones.
func ListBranches(dataDir string) ([]string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil // Nothing created yet
		}
		return nil, fmt.Errorf("%w: read data root: %w", catalog.ErrIO, err)
	}

	var branches []string
	for _, entry := range entries {
		if entry.IsDir() && entry.Name()[0] != '.' {
			branches = append(branches, entry.Name())
		}
	}
	sort.Strings(branches)
	return branches, nil
}

// LeafPath joins the data root, the hierarchy values and the leaf file name.
func LeafPath(dataDir, leafFile string, values ...string) string {
	parts := append([]string{dataDir}, values...)
	return filepath.Join(append(parts, leafFile)...)
}
