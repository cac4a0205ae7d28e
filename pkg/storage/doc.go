// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the leaf file codec for geotree.
//
// A leaf file is a comma-separated file whose first line is a header naming
// the columns (name, population, area). Every other line is one record:
//
//	name,population,area
//	Argentina,45000000,2780400
//	Chile,19000000,756102
//
// The hierarchy a record belongs to is never stored in the file. It comes
// from the directory path and is merged by the caller through the Hierarchy
// argument of Read. Writes only emit the leaf columns, so hierarchy keys can
// never leak into a file.
//
// # Reading
//
// Read is tolerant at row granularity. A row with the wrong number of
// columns or a value that does not parse is skipped and reported as a
// catalog.Diagnostic carrying its line number; the remaining rows are still
// returned:
//
//	recs, diags := storage.NewCSV(logger).Read(path, hierarchy)
//	for _, d := range diags {
//	    logger.Warn("codec.read.skip", "diag", d.Error())
//	}
//
// A UTF-8 byte order mark at the start of the file is ignored. Values are
// trimmed before numeric parsing; names are kept as written.
//
// # Writing
//
// Rewrite builds the complete file in memory and replaces the target
// through github.com/natefinch/atomic, so a crash mid-write leaves either
// the old content or the new one. Append opens the file in append mode and
// writes the header only when the file is new or empty. If the existing
// file does not end with a newline one is added first.
//
// Floats are written with the shortest representation that round-trips
// (strconv 'f', -1), so a value read and written back is unchanged.
//
// # Thread Safety
//
// CSV holds no mutable state and may be shared. Concurrent writers to the
// same path are not coordinated.
package storage
