// SPDX-License-Identifier: AGPL-3.0-or-later

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/geotree/pkg/catalog"
)

func TestStrings(t *testing.T) {
	v, err := NonEmpty("  Perú 2  ")
	require.NoError(t, err)
	assert.Equal(t, "Perú 2", v)

	v, err = Alphabetic(" Costa Rica ")
	require.NoError(t, err)
	assert.Equal(t, "Costa Rica", v)

	for _, in := range []string{"", "   ", "\t"} {
		_, err := NonEmpty(in)
		assert.ErrorIs(t, err, catalog.ErrInvalidValue, "%q", in)
		_, err = Alphabetic(in)
		assert.ErrorIs(t, err, catalog.ErrInvalidValue, "%q", in)
	}

	_, err = Alphabetic("Region 9")
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "input cannot contain digits", verr.Message)
	assert.Equal(t, "Region 9", verr.Input)
}

func TestNumbers(t *testing.T) {
	n, err := PositiveInt(" 45000000 ")
	require.NoError(t, err)
	assert.Equal(t, int64(45000000), n)

	f, err := PositiveFloat("150.75")
	require.NoError(t, err)
	assert.Equal(t, 150.75, f)

	f, err = PositiveFloat("3")
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)

	n, err = Int("-7")
	require.NoError(t, err)
	assert.Equal(t, int64(-7), n)

	for _, in := range []string{"0", "-1", "abc", "1.5", ""} {
		_, err := PositiveInt(in)
		assert.ErrorIs(t, err, catalog.ErrInvalidValue, "PositiveInt(%q)", in)
	}
	for _, in := range []string{"0", "-0.5", "x", "NaN", "Inf", "-Inf", ""} {
		_, err := PositiveFloat(in)
		assert.ErrorIs(t, err, catalog.ErrInvalidValue, "PositiveFloat(%q)", in)
	}
}

func TestMenuOption(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want int
		ok   bool
	}{
		{"0", 0, true},
		{" 8 ", 8, true},
		{"9", 0, false},
		{"-1", 0, false},
		{"uno", 0, false},
	} {
		got, err := MenuOption(tt.in, 0, 8)
		if tt.ok {
			require.NoError(t, err, tt.in)
			assert.Equal(t, tt.want, got)
		} else {
			assert.Error(t, err, tt.in)
		}
	}
}

func TestYesNo(t *testing.T) {
	for in, want := range map[string]bool{"S": true, "si": true, "Sí": true, "y": true, "YES": true, "n": false, "No": false} {
		got, err := YesNo(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := YesNo("quizás")
	assert.ErrorIs(t, err, catalog.ErrInvalidValue)
}

func TestChoice(t *testing.T) {
	got, err := Choice(" p ", "N", "P", "S")
	require.NoError(t, err)
	assert.Equal(t, "P", got)

	_, err = Choice("X", "A", "D")
	assert.EqualError(t, err, "invalid option: choose one of A/D")
}
