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

// Package bootstrap handles geotree data root initialization.
//
// The data root is the directory whose nested folders encode the hierarchy
// levels (continent / region / government by default) and whose leaves hold
// the items.csv files. Nothing else is created up front: level directories
// appear when records are added.
//
// # Initialization Workflow
//
//	info, err := bootstrap.InitRoot(bootstrap.RootConfig{
//	    DataDir: "datos_paises",
//	    Schema:  catalog.DefaultSchema,
//	}, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if info.Created {
//	    fmt.Printf("Data root created at: %s\n", info.DataDir)
//	}
//
// # Idempotency
//
// InitRoot is idempotent: calling it on an existing root is safe and never
// touches existing files. This makes 'geotree init' suitable for scripts.
//
// # Discovery
//
// ListBranches returns the first-level directories, used by 'geotree status':
//
//	branches, err := bootstrap.ListBranches("datos_paises")
//	for _, b := range branches {
//	    fmt.Println(b)
//	}
package bootstrap
