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

// Package ingestion rebuilds the in-memory record collection from a data
// tree.
//
// A data tree is a directory whose nesting encodes the hierarchy levels of
// the schema. With the default schema (continent, region, government):
//
//	datos_paises/
//	    America/
//	        Sur/
//	            Republica/
//	                items.csv
//
// every record in items.csv is tagged with continent=America, region=Sur,
// government=Republica and remembers the file it came from.
//
// # Loading
//
// The loader walks the tree depth first. Each regular file ending in ".csv"
// is a leaf file; its directory components are bound positionally to the
// schema levels. A leaf file at the wrong depth still loads, but its
// records carry an empty hierarchy (never a partial one).
//
//	loader := ingestion.NewLoader(storage.NewCSV(logger), logger, ingestion.Options{})
//	res := loader.Load("datos_paises", catalog.DefaultSchema)
//	coll := catalog.NewCollection(res.Records)
//
// # Failure Policy
//
// Load has no error return. Problems are collected as diagnostics:
//
//   - Missing root: empty result, RootMissing set, one not_found diagnostic
//   - Unreadable directory: the subtree is skipped, siblings are loaded
//   - Corrupt row: the row is skipped, the rest of the file is loaded
//
// # Exclusions
//
// Options.ExcludeGlobs skips matching directories and files. The default
// skips hidden entries such as ".git" or ".geotree". Patterns support *,
// **, ? and character classes.
package ingestion
