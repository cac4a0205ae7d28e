// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_Bind(t *testing.T) {
	schema := Schema{"continent", "region", "government"}

	tests := []struct {
		name     string
		segments []string
		want     Hierarchy
	}{
		{
			name:     "exact depth",
			segments: []string{"America", "Sur", "Republica"},
			want:     Hierarchy{"continent": "America", "region": "Sur", "government": "Republica"},
		},
		{"too shallow", []string{"America", "Sur"}, Hierarchy{}},
		{"too deep", []string{"America", "Sur", "Republica", "extra"}, Hierarchy{}},
		{"root level", nil, Hierarchy{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schema.Bind(tt.segments))
		})
	}
}

func TestSchema_Path(t *testing.T) {
	schema := DefaultSchema

	assert.Equal(t, "America / Sur / Republica",
		schema.Path(Hierarchy{"continent": "America", "region": "Sur", "government": "Republica"}))
	assert.Equal(t, "N/A / N/A / N/A", schema.Path(Hierarchy{}))
	assert.Equal(t, "Europa / N/A / N/A", schema.Path(Hierarchy{"continent": "Europa"}))
	assert.Equal(t, []string{"Europa", "", ""}, schema.Values(Hierarchy{"continent": "Europa"}))
	assert.Equal(t, "continent", schema.First())
	assert.Equal(t, "", Schema{}.First())
}

func TestNewSchema(t *testing.T) {
	s, err := NewSchema(" continent ", "region")
	require.NoError(t, err)
	assert.Equal(t, Schema{"continent", "region"}, s)

	for _, levels := range [][]string{nil, {"a", ""}, {"a", "a"}} {
		_, err := NewSchema(levels...)
		assert.ErrorIs(t, err, ErrInvalidValue, "levels %v", levels)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"América", "america"},
		{"AMÉRICA", "america"},
		{"Perú", "peru"},
		{"Güímar", "guimar"},
		{"ÓÚÍ", "oui"},
		{"España", "españa"},
		{"Ñandú", "ñandu"},
		{"Nicaragua", "nicaragua"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func newPeruCollection() (*Collection, *Record, *Record, *Record) {
	south := &Record{Name: "Peru", Population: 33000000, Area: 1285216,
		Hierarchy: Hierarchy{"continent": "America", "region": "Sur", "government": "Republica"},
		Source:    "data/America/Sur/Republica/items.csv"}
	other := &Record{Name: "Perú", Population: 10, Area: 1,
		Hierarchy: Hierarchy{"continent": "Ficcion", "region": "Norte", "government": "Monarquia"},
		Source:    "data/Ficcion/Norte/Monarquia/items.csv"}
	chile := &Record{Name: "Chile", Population: 19000000, Area: 756102,
		Hierarchy: Hierarchy{"continent": "America", "region": "Sur", "government": "Republica"},
		Source:    "data/America/Sur/Republica/items.csv"}
	return NewCollection([]*Record{south, chile, other}), south, chile, other
}

func TestCollection_Resolve(t *testing.T) {
	c, south, chile, other := newPeruCollection()

	t.Run("single match is case and accent insensitive", func(t *testing.T) {
		got, err := c.Resolve("CHILE")
		require.NoError(t, err)
		assert.Same(t, chile, got)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := c.Resolve("Bolivia")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("substring is not a match", func(t *testing.T) {
		_, err := c.Resolve("Chi")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicates across branches are exposed", func(t *testing.T) {
		_, err := c.Resolve("peru")
		var amb *AmbiguousMatchError
		require.True(t, errors.As(err, &amb))
		require.Len(t, amb.Candidates, 2)
		assert.Same(t, south, amb.Candidates[0])
		assert.Same(t, other, amb.Candidates[1])

		paths := []string{
			DefaultSchema.Path(amb.Candidates[0].Hierarchy),
			DefaultSchema.Path(amb.Candidates[1].Hierarchy),
		}
		assert.NotEqual(t, paths[0], paths[1])

		picked, err := amb.Pick(2)
		require.NoError(t, err)
		assert.Same(t, other, picked)

		_, err = amb.Pick(0)
		assert.ErrorIs(t, err, ErrInvalidSelection)
		_, err = amb.Pick(3)
		assert.ErrorIs(t, err, ErrInvalidSelection)
	})
}

func TestCollection_Mutation(t *testing.T) {
	c, south, chile, other := newPeruCollection()

	snapshot := c.Records()
	snapshot[0] = nil
	assert.Same(t, south, c.Records()[0], "Records must return a copy")

	assert.Equal(t, []*Record{south, chile}, c.BySource("data/America/Sur/Republica/items.csv"))
	assert.Empty(t, c.BySource("nowhere.csv"))

	require.True(t, c.Remove(chile))
	assert.False(t, c.Remove(chile))
	assert.False(t, c.Contains(chile))
	assert.True(t, c.Contains(other))
	assert.Equal(t, 2, c.Len())

	c.Replace(nil)
	assert.Equal(t, 0, c.Len())
}

func TestChange(t *testing.T) {
	r := &Record{Name: "Chile", Population: 1, Area: 1}

	require.NoError(t, SetPopulation(42).Apply(r))
	require.NoError(t, SetArea(2.5).Apply(r))
	require.NoError(t, SetName("Chili").Apply(r))
	assert.Equal(t, Record{Name: "Chili", Population: 42, Area: 2.5}, *r)

	invalid := []Change{
		SetName("   "),
		SetPopulation(0),
		SetPopulation(-3),
		SetArea(0),
		SetArea(math.NaN()),
		SetArea(math.Inf(1)),
		{},
	}
	for _, ch := range invalid {
		t.Run(ch.String(), func(t *testing.T) {
			before := *r
			assert.ErrorIs(t, ch.Apply(r), ErrInvalidValue)
			assert.Equal(t, before, *r, "invalid change must leave the record untouched")
		})
	}
}

func TestParseField(t *testing.T) {
	f, err := ParseField(" Population ")
	require.NoError(t, err)
	assert.Equal(t, FieldPopulation, f)

	_, err = ParseField("continent")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestRecord_Format(t *testing.T) {
	r := &Record{Name: "Uruguay", Population: 3500000, Area: 176215.5}

	for field, want := range map[Field]string{
		FieldName:       "Uruguay",
		FieldPopulation: "3500000",
		FieldArea:       "176215.5",
	} {
		got, err := r.Format(field)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := r.Format("continent")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestDiagnostic(t *testing.T) {
	d := Diagnostic{Path: "a/items.csv", Line: 3, Err: fmt.Errorf("%w: bad population", ErrCorruptRow)}
	assert.Equal(t, "corrupt_row", d.Kind())
	assert.Equal(t, "a/items.csv:3: corrupt row: bad population", d.Error())
	assert.ErrorIs(t, d, ErrCorruptRow)

	assert.Equal(t, "not_found", Diagnostic{Err: ErrNotFound}.Kind())
	assert.Equal(t, "io_failure", Diagnostic{Err: errors.New("permission denied")}.Kind())
}
