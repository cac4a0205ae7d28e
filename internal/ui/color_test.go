// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
)

func TestInitColors(t *testing.T) {
	// Save original state
	original := color.NoColor
	defer func() { color.NoColor = original }()

	tests := []struct {
		name     string
		noColor  bool
		expected bool
	}{
		{
			name:     "colors enabled when noColor is false",
			noColor:  false,
			expected: false,
		},
		{
			name:     "colors disabled when noColor is true",
			noColor:  true,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitColors(tt.noColor)
			if color.NoColor != tt.expected {
				t.Errorf("InitColors(%v): color.NoColor = %v, expected %v",
					tt.noColor, color.NoColor, tt.expected)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	// Disable colors for predictable output
	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()

	result := Label("Data root:")
	expected := "Data root:"
	if result != expected {
		t.Errorf("Label() = %q, expected %q", result, expected)
	}
}

func TestDimText(t *testing.T) {
	// Disable colors for predictable output
	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()

	result := DimText("datos_paises/America")
	expected := "datos_paises/America"
	if result != expected {
		t.Errorf("DimText() = %q, expected %q", result, expected)
	}
}

func TestCountText(t *testing.T) {
	// Disable colors for predictable output
	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()

	result := CountText(42)
	expected := "42"
	if result != expected {
		t.Errorf("CountText() = %q, expected %q", result, expected)
	}
}

func TestTone_WritesToGivenWriter(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()

	var out, elsewhere bytes.Buffer
	restore := SetOutput(&elsewhere)
	defer restore()

	toneWarning.fprintf(&out, "%d records share that name:", 2)
	if got, want := out.String(), "⚠ 2 records share that name:\n"; got != want {
		t.Errorf("fprintf wrote %q, expected %q", got, want)
	}
	if elsewhere.Len() != 0 {
		t.Errorf("Output received %q", elsewhere.String())
	}
}

func TestCountText_Thousands(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()

	if got := CountText(1234567); got != "1,234,567" {
		t.Errorf("CountText(1234567) = %q, expected \"1,234,567\"", got)
	}
}

func TestMessageFunctions(t *testing.T) {
	// Save original state and disable colors for predictable output
	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()

	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	tests := []struct {
		name  string
		print func()
		want  string
	}{
		{"Success", func() { Success("loaded") }, "✓ loaded\n"},
		{"Successf", func() { Successf("loaded %d records", 42) }, "✓ loaded 42 records\n"},
		{"Warning", func() { Warning("skipped") }, "⚠ skipped\n"},
		{"Warningf", func() { Warningf("skipped %d rows", 3) }, "⚠ skipped 3 rows\n"},
		{"Error", func() { Error("failed") }, "✗ failed\n"},
		{"Errorf", func() { Errorf("failed %s", "write") }, "✗ failed write\n"},
		{"Info", func() { Info("nothing") }, "ℹ nothing\n"},
		{"Infof", func() { Infof("%d matches", 0) }, "ℹ 0 matches\n"},
		{"Header", func() { Header("Población") }, "Población\n=========\n"},
		{"SubHeader", func() { SubHeader("Records:") }, "Records:\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.print()
			if buf.String() != tt.want {
				t.Errorf("%s wrote %q, expected %q", tt.name, buf.String(), tt.want)
			}
		})
	}
}

func TestSetOutput_Restore(t *testing.T) {
	before := Output
	restore := SetOutput(&bytes.Buffer{})
	restore()
	if Output != before {
		t.Error("SetOutput restore did not put back the previous writer")
	}
}

func TestEdgeCases(t *testing.T) {
	// Save original state and disable colors for predictable output
	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()

	t.Run("empty string label", func(t *testing.T) {
		result := Label("")
		if result != "" {
			t.Errorf("Label(\"\") = %q, expected empty string", result)
		}
	})

	t.Run("empty string dimText", func(t *testing.T) {
		result := DimText("")
		if result != "" {
			t.Errorf("DimText(\"\") = %q, expected empty string", result)
		}
	})

	t.Run("zero countText", func(t *testing.T) {
		result := CountText(0)
		if result != "0" {
			t.Errorf("CountText(0) = %q, expected \"0\"", result)
		}
	})

	t.Run("negative countText", func(t *testing.T) {
		result := CountText(-1)
		if result != "-1" {
			t.Errorf("CountText(-1) = %q, expected \"-1\"", result)
		}
	})

	t.Run("special characters in label", func(t *testing.T) {
		result := Label("Test: <>\"'&")
		expected := "Test: <>\"'&"
		if result != expected {
			t.Errorf("Label() with special chars = %q, expected %q", result, expected)
		}
	})
}
