// SPDX-License-Identifier: AGPL-3.0-or-later

package query

import (
	"fmt"
	"sort"

	"github.com/kraklabs/geotree/pkg/catalog"
)

// Statistics aggregates a record list.
type Statistics struct {
	Count int

	TotalPopulation int64
	TotalArea       float64
	MeanPopulation  float64
	MeanArea        float64

	// Extremes; on ties the earliest record wins.
	MostPopulous  *catalog.Record
	LeastPopulous *catalog.Record
	Largest       *catalog.Record

	// Level is the first schema level; ByLevel counts records per value of
	// that level. Records without it are counted under catalog.Uncategorized.
	Level   string
	ByLevel map[string]int
}

// Summarize computes Statistics over records. An empty list returns an
// error wrapping catalog.ErrNoData.
func Summarize(records []*catalog.Record, schema catalog.Schema) (*Statistics, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records loaded", catalog.ErrNoData)
	}

	level := schema.First()
	s := &Statistics{
		Count:         len(records),
		MostPopulous:  records[0],
		LeastPopulous: records[0],
		Largest:       records[0],
		Level:         level,
		ByLevel:       make(map[string]int),
	}

	for _, r := range records {
		s.TotalPopulation += r.Population
		s.TotalArea += r.Area

		if r.Population > s.MostPopulous.Population {
			s.MostPopulous = r
		}
		if r.Population < s.LeastPopulous.Population {
			s.LeastPopulous = r
		}
		if r.Area > s.Largest.Area {
			s.Largest = r
		}

		v, ok := r.Level(level)
		if !ok {
			v = catalog.Uncategorized
		}
		s.ByLevel[v]++
	}

	s.MeanPopulation = float64(s.TotalPopulation) / float64(s.Count)
	s.MeanArea = s.TotalArea / float64(s.Count)
	return s, nil
}

// Categories returns the ByLevel keys in ascending order.
func (s *Statistics) Categories() []string {
	keys := make([]string, 0, len(s.ByLevel))
	for k := range s.ByLevel {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
