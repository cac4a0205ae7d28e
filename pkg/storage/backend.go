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

package storage

import "github.com/kraklabs/geotree/pkg/catalog"

// Backend is the interface that all leaf file backends must implement.
// It reads and writes one leaf file at a time; it knows nothing about the
// directory hierarchy above the file.
type Backend interface {
	// Read parses every row of the leaf file at path, merging h into each
	// record. Problems are reported as diagnostics, never as a hard failure.
	Read(path string, h catalog.Hierarchy) ([]*catalog.Record, []catalog.Diagnostic)

	// Rewrite replaces the whole file with a header followed by records.
	Rewrite(path string, records []*catalog.Record) error

	// Append adds one record at the end of the file, creating it (with a
	// header) when it does not exist.
	Append(path string, r *catalog.Record) error
}

var _ Backend = (*CSV)(nil)
