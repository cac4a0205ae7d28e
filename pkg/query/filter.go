// SPDX-License-Identifier: AGPL-3.0-or-later

package query

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/kraklabs/geotree/pkg/catalog"
)

// ByName returns the records whose normalized name contains the normalized
// term. An empty term matches every record.
func ByName(records []*catalog.Record, term string) []*catalog.Record {
	return collect(records, nameBitmap(records, term))
}

// ByFirstLevel returns the records whose value at the first schema level
// equals value after normalization.
func ByFirstLevel(records []*catalog.Record, schema catalog.Schema, value string) []*catalog.Record {
	return collect(records, levelBitmap(records, schema.First(), value))
}

// ByPopulation returns the records with min <= population <= max. When min
// is greater than max the result is empty and the error wraps
// catalog.ErrInvalidRange.
func ByPopulation(records []*catalog.Record, minPop, maxPop int64) ([]*catalog.Record, error) {
	if minPop > maxPop {
		return []*catalog.Record{}, rangeError(minPop, maxPop)
	}
	return collect(records, populationBitmap(records, &minPop, &maxPop)), nil
}

// Criteria selects records for Filter. Zero values mean "no constraint".
type Criteria struct {
	Name       string // normalized substring of the name
	FirstLevel string // normalized value at the first schema level

	MinPopulation *int64
	MaxPopulation *int64
}

// IsZero reports whether c selects every record.
func (c Criteria) IsZero() bool {
	return c.Name == "" && c.FirstLevel == "" && c.MinPopulation == nil && c.MaxPopulation == nil
}

// Filter returns the records matching every criterion in c, in input order.
func Filter(records []*catalog.Record, schema catalog.Schema, c Criteria) ([]*catalog.Record, error) {
	if c.MinPopulation != nil && c.MaxPopulation != nil && *c.MinPopulation > *c.MaxPopulation {
		return []*catalog.Record{}, rangeError(*c.MinPopulation, *c.MaxPopulation)
	}

	result := roaring.New()
	result.AddRange(0, uint64(len(records)))

	var parts []*roaring.Bitmap
	if c.Name != "" {
		parts = append(parts, nameBitmap(records, c.Name))
	}
	if c.FirstLevel != "" {
		parts = append(parts, levelBitmap(records, schema.First(), c.FirstLevel))
	}
	if c.MinPopulation != nil || c.MaxPopulation != nil {
		parts = append(parts, populationBitmap(records, c.MinPopulation, c.MaxPopulation))
	}

	for _, p := range parts {
		result.And(p)
		if result.IsEmpty() {
			break
		}
	}
	return collect(records, result), nil
}

func nameBitmap(records []*catalog.Record, term string) *roaring.Bitmap {
	want := catalog.Normalize(term)
	return match(records, func(r *catalog.Record) bool {
		return strings.Contains(catalog.Normalize(r.Name), want)
	})
}

func levelBitmap(records []*catalog.Record, level, value string) *roaring.Bitmap {
	want := catalog.Normalize(value)
	return match(records, func(r *catalog.Record) bool {
		return catalog.Normalize(r.Hierarchy[level]) == want
	})
}

func populationBitmap(records []*catalog.Record, minPop, maxPop *int64) *roaring.Bitmap {
	return match(records, func(r *catalog.Record) bool {
		if minPop != nil && r.Population < *minPop {
			return false
		}
		if maxPop != nil && r.Population > *maxPop {
			return false
		}
		return true
	})
}

// match returns the positions of the records accepted by keep.
func match(records []*catalog.Record, keep func(*catalog.Record) bool) *roaring.Bitmap {
	bm := roaring.New()
	for i, r := range records {
		if keep(r) {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// collect returns the records at the positions set in bm, in ascending
// position order.
func collect(records []*catalog.Record, bm *roaring.Bitmap) []*catalog.Record {
	out := make([]*catalog.Record, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, records[it.Next()])
	}
	return out
}

func rangeError(minPop, maxPop int64) error {
	return fmt.Errorf("%w (min %d, max %d)", catalog.ErrInvalidRange, minPop, maxPop)
}
