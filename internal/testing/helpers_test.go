// SPDX-License-Identifier: AGPL-3.0-or-later

package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSetupDataRoot verifies the root exists and is empty.
func TestSetupDataRoot(t *testing.T) {
	root := SetupDataRoot(t)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestWriteLeaf verifies the header and rows are written at the hierarchy path.
func TestWriteLeaf(t *testing.T) {
	root := SetupDataRoot(t)

	path := WriteLeaf(t, root, []string{"America", "Sur"}, "Chile,1,2")

	assert.Equal(t, LeafPath(root, "America", "Sur"), path)
	assert.Equal(t, []string{LeafHeader, "Chile,1,2"}, ReadLines(t, path))
}

// TestSampleTree verifies the documented layout.
func TestSampleTree(t *testing.T) {
	root := SampleTree(t)

	var leaves []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		require.NoError(t, err)
		if !d.IsDir() {
			rel, _ := filepath.Rel(root, path)
			leaves = append(leaves, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"America/Norte/Republica/items.csv",
		"America/Sur/Republica/items.csv",
		"Europa/Oeste/Monarquia/items.csv",
		"Ficcion/Norte/Monarquia/items.csv",
	}, leaves)

	rows := 0
	for _, l := range leaves {
		rows += len(ReadLines(t, filepath.Join(root, l))) - 1
	}
	assert.Equal(t, SampleRecordCount, rows)
	assert.Len(t, SampleOrder, SampleRecordCount)
}
