// SPDX-License-Identifier: AGPL-3.0-or-later

package ingestion

import (
	"testing"

	"github.com/kraklabs/geotree/pkg/catalog"
)

func mustExcluder(t *testing.T, patterns ...string) *excluder {
	t.Helper()
	ex, errs := newExcluder(patterns, catalog.DefaultSchema)
	if len(errs) > 0 {
		t.Fatalf("newExcluder(%q): %v", patterns, errs)
	}
	return ex
}

func TestExcluder_Patterns(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		isDir   bool
		want    bool
	}{
		// Single component, any depth
		{"hidden dir", ".*", ".git", true, true},
		{"hidden nested dir", ".*", "America/.cache", true, true},
		{"hidden file", ".*", "America/Sur/.items.csv", false, true},
		{"visible dir", ".*", "America/Sur", true, false},
		{"visible file", ".*", "America/Sur/items.csv", false, false},
		{"extension", "*.bak", "America/Sur/items.csv.bak", false, true},
		{"extension inside name", "*.bak", "America/Sur/items.bak.csv", false, false},
		{"literal component", "Ficcion", "Europa/Ficcion/Norte", true, true},
		{"literal prefix of name", "Ficcion", "Ficcionario/Norte", true, false},
		{"question", "Zona?", "Zona1", true, true},
		{"question too long", "Zona?", "Zona10", true, false},
		{"class", "Zona[0-9]", "Zona3", true, true},
		{"negated class", "Zona[!0-9]", "ZonaA", true, true},
		{"negated class no match", "Zona[!0-9]", "Zona3", true, false},

		// Anchored at the data root
		{"subtree", "Archivo/**", "Archivo/America/items.csv", false, true},
		{"subtree itself", "Archivo/**", "Archivo", true, true},
		{"subtree not at root", "Archivo/**", "America/Archivo", true, false},
		{"subtree sibling name", "Archivo/**", "Archivos/items.csv", false, false},
		{"exact path", "America/Sur/Republica", "America/Sur/Republica/items.csv", false, true},
		{"star level", "America/*/Monarquia", "America/Norte/Monarquia", true, true},
		{"star level other branch", "America/*/Monarquia", "Europa/Norte/Monarquia", true, false},
		{"star stops at separator", "America/*", "America", true, false},
		{"doublestar prefix", "**/tmp_*", "America/Sur/tmp_import", true, true},
		{"doublestar middle", "America/**/items.csv", "America/Sur/Republica/items.csv", false, true},

		// Hierarchy levels
		{"level dir", "region=Norte", "America/Norte", true, true},
		{"level below", "region=Norte", "America/Norte/Republica/items.csv", false, true},
		{"level other position", "region=Norte", "Norte/Sur", true, false},
		{"level glob", "government=Mon*", "Europa/Oeste/Monarquia", true, true},
		{"level shallower path", "government=Mon*", "Europa/Oeste", true, false},
		{"level ignores file name", "government=items.csv", "America/Sur/items.csv", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustExcluder(t, tt.pattern).excluded(tt.path, tt.isDir)
			if got != tt.want {
				t.Errorf("excluded(%q) with %q = %v, want %v", tt.path, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestExcluder_CommonPatterns(t *testing.T) {
	ex := mustExcluder(t, append([]string{"Borradores/**", "*.bak", "**/tmp_*", "continent=Ficcion"}, DefaultExcludeGlobs...)...)

	excluded := []struct {
		path  string
		isDir bool
	}{
		{".git", true},
		{".geotree", true},
		{"America/.cache", true},
		{"Borradores", true},
		{"Borradores/America/items.csv", false},
		{"America/Sur/items.csv.bak", false},
		{"America/tmp_import", true},
		{"Ficcion", true},
	}
	included := []struct {
		path  string
		isDir bool
	}{
		{"America", true},
		{"America/Sur/Republica/items.csv", false},
		{"America/Borradores/items.csv", false},
		{"BorradoresViejos/items.csv", false},
		{"tmp/items.csv", false},
		{"America/Ficcion", true},
	}

	for _, e := range excluded {
		if !ex.excluded(e.path, e.isDir) {
			t.Errorf("excluded(%q) = false, want true", e.path)
		}
	}
	for _, e := range included {
		if ex.excluded(e.path, e.isDir) {
			t.Errorf("excluded(%q) = true, want false", e.path)
		}
	}
}

func TestValidateExcludes(t *testing.T) {
	if errs := ValidateExcludes([]string{".*", "Ficcion/**", "region=Norte"}, catalog.DefaultSchema); len(errs) != 0 {
		t.Fatalf("valid patterns rejected: %v", errs)
	}

	invalid := []string{
		"",
		"planet=Tierra",
		"region=Norte/Sur",
		"Zona[0-9",
	}
	for _, p := range invalid {
		if errs := ValidateExcludes([]string{p}, catalog.DefaultSchema); len(errs) != 1 {
			t.Errorf("ValidateExcludes(%q) = %v, want one error", p, errs)
		}
	}
}

func TestExcluder_Nil(t *testing.T) {
	var ex *excluder
	if ex.excluded("America", true) {
		t.Error("nil excluder must not exclude")
	}
}
