// SPDX-License-Identifier: AGPL-3.0-or-later

// Package query implements the read-only operations over a loaded record
// list: filters, sorting and aggregate statistics.
//
// Every function takes a []*catalog.Record (usually Collection.Records())
// and returns new slices. The input is never reordered or modified and no
// function performs I/O.
//
// Text comparisons go through catalog.Normalize, so "AMÉRICA", "america"
// and "América" are the same value.
//
// Filter combines criteria: each one yields a bitmap of matching positions
// and the bitmaps are intersected, so the result always keeps the input
// order.
package query
