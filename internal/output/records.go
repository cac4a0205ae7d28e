// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package output

import (
	"github.com/kraklabs/geotree/pkg/catalog"
	"github.com/kraklabs/geotree/pkg/query"
)

// RecordJSON is the machine-readable form of a record. Hierarchy keys are
// the schema level names; absent levels are omitted.
type RecordJSON struct {
	Name       string            `json:"name"`
	Population int64             `json:"population"`
	Area       float64           `json:"area"`
	Hierarchy  map[string]string `json:"hierarchy"`
	Path       string            `json:"path"`
	Source     string            `json:"source"`
}

// RecordsJSON wraps a record list with its count.
type RecordsJSON struct {
	Count   int          `json:"count"`
	Records []RecordJSON `json:"records"`
}

// FromRecord converts one record.
func FromRecord(r *catalog.Record, schema catalog.Schema) RecordJSON {
	h := make(map[string]string, len(schema))
	for _, level := range schema {
		if v, ok := r.Level(level); ok {
			h[level] = v
		}
	}
	return RecordJSON{
		Name:       r.Name,
		Population: r.Population,
		Area:       r.Area,
		Hierarchy:  h,
		Path:       schema.Path(r.Hierarchy),
		Source:     r.Source,
	}
}

// FromRecords converts a record list. The Records field is never null.
func FromRecords(records []*catalog.Record, schema catalog.Schema) RecordsJSON {
	out := RecordsJSON{Count: len(records), Records: make([]RecordJSON, 0, len(records))}
	for _, r := range records {
		out.Records = append(out.Records, FromRecord(r, schema))
	}
	return out
}

// Extreme names a record holding a maximum or minimum.
type Extreme struct {
	Name       string  `json:"name"`
	Population int64   `json:"population"`
	Area       float64 `json:"area"`
}

// StatsJSON is the machine-readable form of query.Statistics.
type StatsJSON struct {
	Count           int            `json:"count"`
	TotalPopulation int64          `json:"total_population"`
	MeanPopulation  float64        `json:"mean_population"`
	TotalArea       float64        `json:"total_area"`
	MeanArea        float64        `json:"mean_area"`
	MostPopulous    Extreme        `json:"most_populous"`
	LeastPopulous   Extreme        `json:"least_populous"`
	Largest         Extreme        `json:"largest"`
	Level           string         `json:"level"`
	ByLevel         map[string]int `json:"by_level"`
}

func extreme(r *catalog.Record) Extreme {
	return Extreme{Name: r.Name, Population: r.Population, Area: r.Area}
}

// FromStats converts aggregate statistics.
func FromStats(s *query.Statistics) StatsJSON {
	return StatsJSON{
		Count:           s.Count,
		TotalPopulation: s.TotalPopulation,
		MeanPopulation:  s.MeanPopulation,
		TotalArea:       s.TotalArea,
		MeanArea:        s.MeanArea,
		MostPopulous:    extreme(s.MostPopulous),
		LeastPopulous:   extreme(s.LeastPopulous),
		Largest:         extreme(s.Largest),
		Level:           s.Level,
		ByLevel:         s.ByLevel,
	}
}

// DiagnosticJSON is one load diagnostic.
type DiagnosticJSON struct {
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// FromDiagnostics converts load diagnostics. The result is never nil.
func FromDiagnostics(diags []catalog.Diagnostic) []DiagnosticJSON {
	out := make([]DiagnosticJSON, 0, len(diags))
	for _, d := range diags {
		msg := ""
		if d.Err != nil {
			msg = d.Err.Error()
		}
		out = append(out, DiagnosticJSON{Kind: d.Kind(), Path: d.Path, Line: d.Line, Message: msg})
	}
	return out
}
