// SPDX-License-Identifier: AGPL-3.0-or-later

package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/kraklabs/geotree/pkg/catalog"
)

// Sort returns a copy of records ordered by key. The sort is stable in both
// directions: records with equal keys keep their input order even when
// descending is set. Names compare in normalized form.
func Sort(records []*catalog.Record, key catalog.Field, descending bool) ([]*catalog.Record, error) {
	compare, err := comparator(key)
	if err != nil {
		return nil, err
	}

	out := slices.Clone(records)
	if descending {
		slices.SortStableFunc(out, func(a, b *catalog.Record) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(out, compare)
	}
	return out, nil
}

func comparator(key catalog.Field) (func(a, b *catalog.Record) int, error) {
	switch key {
	case catalog.FieldName:
		return func(a, b *catalog.Record) int {
			return strings.Compare(catalog.Normalize(a.Name), catalog.Normalize(b.Name))
		}, nil
	case catalog.FieldPopulation:
		return func(a, b *catalog.Record) int { return cmp.Compare(a.Population, b.Population) }, nil
	case catalog.FieldArea:
		return func(a, b *catalog.Record) int { return cmp.Compare(a.Area, b.Area) }, nil
	default:
		return nil, fmt.Errorf("%w: cannot sort by %q", catalog.ErrInvalidValue, key)
	}
}
