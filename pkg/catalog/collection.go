// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import "fmt"

// Collection holds the loaded records in load order.
type Collection struct {
	records []*Record
}

// NewCollection wraps records. The slice is copied; the records are not.
func NewCollection(records []*Record) *Collection {
	c := &Collection{}
	c.Replace(records)
	return c
}

// Len returns the number of records.
func (c *Collection) Len() int { return len(c.records) }

// Records returns a snapshot of the record list. Appending to or reordering
// the returned slice does not affect the collection.
func (c *Collection) Records() []*Record {
	out := make([]*Record, len(c.records))
	copy(out, c.records)
	return out
}

// Replace swaps the whole content, as after a reload.
func (c *Collection) Replace(records []*Record) {
	c.records = make([]*Record, len(records))
	copy(c.records, records)
}

// Contains reports whether r (by identity) belongs to the collection.
func (c *Collection) Contains(r *Record) bool {
	return c.indexOf(r) >= 0
}

// Remove deletes r (by identity) and reports whether it was present.
func (c *Collection) Remove(r *Record) bool {
	i := c.indexOf(r)
	if i < 0 {
		return false
	}
	c.records = append(c.records[:i], c.records[i+1:]...)
	return true
}

// BySource returns every record that must be written to the leaf file path,
// in collection order.
func (c *Collection) BySource(path string) []*Record {
	var out []*Record
	for _, r := range c.records {
		if r.Source == path {
			out = append(out, r)
		}
	}
	return out
}

// Match returns the records whose normalized name equals the normalized term.
func (c *Collection) Match(name string) []*Record {
	want := Normalize(name)
	var out []*Record
	for _, r := range c.records {
		if Normalize(r.Name) == want {
			out = append(out, r)
		}
	}
	return out
}

// Resolve finds the single record called name. It returns ErrNotFound when
// nothing matches and an *AmbiguousMatchError when the name is shared by
// records in different hierarchy branches.
func (c *Collection) Resolve(name string) (*Record, error) {
	matches := c.Match(name)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: no record named %q", ErrNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return nil, &AmbiguousMatchError{Name: name, Candidates: matches}
	}
}

func (c *Collection) indexOf(r *Record) int {
	for i, x := range c.records {
		if x == r {
			return i
		}
	}
	return -1
}
