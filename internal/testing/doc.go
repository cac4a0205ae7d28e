// SPDX-License-Identifier: AGPL-3.0-or-later

// Package testing provides test helpers for geotree packages.
//
// The helpers build data trees of leaf files inside t.TempDir(), so every
// test gets its own isolated root that is removed automatically.
//
// # Quick Start
//
// Use SampleTree to get a populated root:
//
//	func TestMyFeature(t *testing.T) {
//	    root := geotest.SampleTree(t)
//
//	    res := ingestion.NewLoader(storage.NewCSV(nil), nil, ingestion.Options{}).
//	        Load(root, catalog.DefaultSchema)
//	    require.Len(t, res.Records, geotest.SampleRecordCount)
//	}
//
// Import the package under an alias to avoid shadowing the standard
// library package:
//
//	import geotest "github.com/kraklabs/geotree/internal/testing"
//
// # Building Trees
//
//   - SetupDataRoot: an empty data root
//   - WriteLeaf: a leaf file with the standard header at a hierarchy path
//   - WriteRaw: any file with arbitrary content, for corrupt input
//   - ReadLines: the lines of a file, for asserting on written output
//
// # Sample Layout
//
// SampleTree writes the layout below. Records load in lexical directory
// order, so SampleOrder lists the names in the order a loader returns them.
//
//	America/Norte/Republica/items.csv    Mexico
//	America/Sur/Republica/items.csv      Argentina, Chile, Peru
//	Europa/Oeste/Monarquia/items.csv     España, Bélgica
//	Ficcion/Norte/Monarquia/items.csv    Perú
package testing
