// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Change is a typed edit of one leaf attribute. Build it with SetName,
// SetPopulation or SetArea.
type Change struct {
	field      Field
	name       string
	population int64
	area       float64
}

// SetName changes the record name.
func SetName(name string) Change { return Change{field: FieldName, name: name} }

// SetPopulation changes the population.
func SetPopulation(n int64) Change { return Change{field: FieldPopulation, population: n} }

// SetArea changes the area.
func SetArea(a float64) Change { return Change{field: FieldArea, area: a} }

// Field returns the attribute the change targets.
func (c Change) Field() Field { return c.field }

// Validate checks the new value: names must be non-blank, population and
// area strictly positive (and finite).
func (c Change) Validate() error {
	switch c.field {
	case FieldName:
		if strings.TrimSpace(c.name) == "" {
			return fmt.Errorf("%w: name must not be empty", ErrInvalidValue)
		}
	case FieldPopulation:
		if c.population <= 0 {
			return fmt.Errorf("%w: population must be greater than zero, got %d", ErrInvalidValue, c.population)
		}
	case FieldArea:
		if c.area <= 0 || math.IsNaN(c.area) || math.IsInf(c.area, 0) {
			return fmt.Errorf("%w: area must be a positive number, got %v", ErrInvalidValue, c.area)
		}
	default:
		return fmt.Errorf("%w: empty change", ErrInvalidValue)
	}
	return nil
}

// Apply validates the change and writes it into r.
func (c Change) Apply(r *Record) error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch c.field {
	case FieldName:
		r.Name = c.name
	case FieldPopulation:
		r.Population = c.population
	case FieldArea:
		r.Area = c.area
	}
	return nil
}

func (c Change) String() string {
	switch c.field {
	case FieldName:
		return fmt.Sprintf("name=%q", c.name)
	case FieldPopulation:
		return "population=" + strconv.FormatInt(c.population, 10)
	case FieldArea:
		return "area=" + strconv.FormatFloat(c.area, 'f', -1, 64)
	default:
		return "<empty change>"
	}
}
