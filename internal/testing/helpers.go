// SPDX-License-Identifier: AGPL-3.0-or-later

package testing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// LeafHeader is the header line every fixture leaf file starts with.
const LeafHeader = "name,population,area"

// LeafFile is the leaf file name used by the fixtures.
const LeafFile = "items.csv"

// SampleRecordCount is the number of records in SampleTree.
const SampleRecordCount = 7

// SampleOrder lists SampleTree's record names in load order.
var SampleOrder = []string{"Mexico", "Argentina", "Chile", "Peru", "España", "Bélgica", "Perú"}

// SetupDataRoot creates an empty data root that is removed when the test
// finishes.
func SetupDataRoot(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "datos")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("failed to create data root: %v", err)
	}
	return root
}

// WriteLeaf writes root/<segments...>/items.csv with the standard header and
// one line per row. Rows are written verbatim, e.g. "Chile,19000000,756102".
//
// Example:
//
//	path := testing.WriteLeaf(t, root, []string{"America", "Sur", "Republica"},
//	    "Argentina,45000000,2780400",
//	    "Chile,19000000,756102")
func WriteLeaf(t *testing.T, root string, segments []string, rows ...string) string {
	t.Helper()
	content := LeafHeader + "\n"
	for _, r := range rows {
		content += r + "\n"
	}
	rel := filepath.Join(append(append([]string{}, segments...), LeafFile)...)
	return WriteRaw(t, root, rel, content)
}

// WriteRaw writes content to root/rel, creating parent directories.
func WriteRaw(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// ReadLines returns the lines of the file at path without the trailing
// empty line.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

// SampleTree creates a data root populated with the sample layout described
// in the package documentation.
func SampleTree(t *testing.T) string {
	t.Helper()
	root := SetupDataRoot(t)
	WriteLeaf(t, root, []string{"America", "Norte", "Republica"},
		"Mexico,128000000,1964375")
	WriteLeaf(t, root, []string{"America", "Sur", "Republica"},
		"Argentina,45000000,2780400",
		"Chile,19000000,756102",
		"Peru,33000000,1285216")
	WriteLeaf(t, root, []string{"Europa", "Oeste", "Monarquia"},
		"España,47000000,505990",
		"Bélgica,11500000,30528")
	WriteLeaf(t, root, []string{"Ficcion", "Norte", "Monarquia"},
		"Perú,10,1")
	return root
}

// LeafPath returns root/<segments...>/items.csv without touching the disk.
func LeafPath(root string, segments ...string) string {
	return filepath.Join(append(append([]string{root}, segments...), LeafFile)...)
}
