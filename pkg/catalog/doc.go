// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog defines the in-memory model shared by every geotree layer.
//
// A Record is one geographic entity (a country, in the default layout) with
// its leaf attributes (name, population, area) and two derived fields: the
// Hierarchy it was filed under and the Source leaf file it must be written
// back to.
//
// # Hierarchy Schema
//
// The Schema is the ordered list of classification levels, fixed at start-up:
//
//	schema := catalog.Schema{"continent", "region", "government"}
//	h := schema.Bind([]string{"America", "Sur", "Republica"})
//	// h["continent"] == "America"
//	schema.Path(h) // "America / Sur / Republica"
//
// Bind never guesses: segment lists whose length differs from the schema
// produce an empty Hierarchy.
//
// # Collection
//
// Collection is the explicitly owned container for a loaded data set. It is
// replaced wholesale by a load, mutated in place by updates and deletions and
// never extended by record creation (callers reload to see new records).
// Collection is not safe for concurrent use; geotree runs one operation at a
// time.
//
// # Text Normalization
//
// Name and level comparisons go through Normalize, which applies Unicode case
// folding and then strips a fixed set of Spanish diacritics. See Normalize for
// the exact table.
package catalog
