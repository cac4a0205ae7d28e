// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names a leaf attribute stored in the CSV files.
type Field string

// Leaf attributes, in the order they appear in a leaf file header.
const (
	FieldName       Field = "name"
	FieldPopulation Field = "population"
	FieldArea       Field = "area"
)

// DefaultFields is the column order of every leaf file written by geotree.
var DefaultFields = []Field{FieldName, FieldPopulation, FieldArea}

// ParseField maps a user-supplied field name to a Field.
func ParseField(s string) (Field, error) {
	switch Field(strings.ToLower(strings.TrimSpace(s))) {
	case FieldName:
		return FieldName, nil
	case FieldPopulation:
		return FieldPopulation, nil
	case FieldArea:
		return FieldArea, nil
	default:
		return "", fmt.Errorf("%w: unknown field %q (want name, population or area)", ErrInvalidValue, s)
	}
}

// Uncategorized is the bucket used for records that carry no value for a
// hierarchy level (files loaded from the wrong depth).
const Uncategorized = "Uncategorized"

// missingLevel is shown in hierarchy paths for absent levels.
const missingLevel = "N/A"

// Hierarchy maps a schema level name to the value a record was filed under.
type Hierarchy map[string]string

// Clone returns an independent copy. A nil Hierarchy clones to an empty one.
func (h Hierarchy) Clone() Hierarchy {
	out := make(Hierarchy, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// Schema is the ordered list of hierarchy level names. It defines both the
// directory nesting depth and the keys merged into each loaded record.
type Schema []string

// DefaultSchema is the layout used when no configuration overrides it.
var DefaultSchema = Schema{"continent", "region", "government"}

// NewSchema validates level names and returns them as a Schema.
func NewSchema(levels ...string) (Schema, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: schema needs at least one level", ErrInvalidValue)
	}
	seen := make(map[string]bool, len(levels))
	s := make(Schema, 0, len(levels))
	for _, l := range levels {
		l = strings.TrimSpace(l)
		if l == "" {
			return nil, fmt.Errorf("%w: empty level name", ErrInvalidValue)
		}
		if seen[l] {
			return nil, fmt.Errorf("%w: duplicate level %q", ErrInvalidValue, l)
		}
		seen[l] = true
		s = append(s, l)
	}
	return s, nil
}

// First returns the name of level 0, or "" for an empty schema.
func (s Schema) First() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Bind zips path segments positionally onto level names. When the segment
// count differs from the schema length the result is empty: a partial
// mapping is never produced.
func (s Schema) Bind(segments []string) Hierarchy {
	if len(segments) != len(s) {
		return Hierarchy{}
	}
	h := make(Hierarchy, len(s))
	for i, level := range s {
		h[level] = segments[i]
	}
	return h
}

// Values returns the hierarchy values in schema order ("" for missing levels).
func (s Schema) Values(h Hierarchy) []string {
	out := make([]string, len(s))
	for i, level := range s {
		out[i] = h[level]
	}
	return out
}

// Path renders a hierarchy as "America / Sur / Republica", using N/A for
// levels the record does not carry.
func (s Schema) Path(h Hierarchy) string {
	parts := make([]string, len(s))
	for i, level := range s {
		v, ok := h[level]
		if !ok || v == "" {
			v = missingLevel
		}
		parts[i] = v
	}
	return strings.Join(parts, " / ")
}

// Record is one entity of the collection.
type Record struct {
	Name       string
	Population int64
	Area       float64

	// Hierarchy is derived from the leaf file's directory path at load time.
	Hierarchy Hierarchy

	// Source is the leaf file the record was read from and is written back to.
	// It never changes after the record is created.
	Source string
}

// Format returns the textual CSV encoding of one leaf field.
func (r *Record) Format(f Field) (string, error) {
	switch f {
	case FieldName:
		return r.Name, nil
	case FieldPopulation:
		return strconv.FormatInt(r.Population, 10), nil
	case FieldArea:
		return strconv.FormatFloat(r.Area, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: unknown field %q", ErrInvalidValue, f)
	}
}

// Level returns the record's value for a hierarchy level.
func (r *Record) Level(level string) (string, bool) {
	v, ok := r.Hierarchy[level]
	return v, ok && v != ""
}

func (r *Record) String() string {
	return fmt.Sprintf("%s (population=%d, area=%s)", r.Name, r.Population,
		strconv.FormatFloat(r.Area, 'f', -1, 64))
}
