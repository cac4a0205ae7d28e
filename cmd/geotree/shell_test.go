// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/geotree/internal/errors"
	geotest "github.com/kraklabs/geotree/internal/testing"
)

// session runs the shell over root with one answer per script line.
func session(t *testing.T, root string, script ...string) string {
	t.Helper()
	stdin := strings.Join(script, "\n") + "\n"
	code, out := execute(t, stdin, "--data-dir", root, "shell")
	require.Equal(t, errors.ExitSuccess, code, out)
	return out
}

func TestShell_RequiresLoad(t *testing.T) {
	out := session(t, geotest.SampleTree(t), "3", "0")
	assert.Contains(t, out, "Load the data first (option 1).")
	assert.Contains(t, out, "Bye!")
	assert.NotContains(t, out, "Mexico")
}

func TestShell_LoadAndShow(t *testing.T) {
	out := session(t, geotest.SampleTree(t), "1", "3", "0")
	assert.Contains(t, out, "Loaded 7 records from 4 files.")
	assert.Contains(t, out, "7 records")
	assert.Contains(t, out, "Bélgica")
}

func TestShell_InvalidMenuInput(t *testing.T) {
	out := session(t, geotest.SampleTree(t), "9", "abc", "0")
	assert.Equal(t, 2, strings.Count(out, "invalid option: choose a number between 0 and 8"))
	assert.Contains(t, out, "Bye!")
}

func TestShell_Filter(t *testing.T) {
	root := geotest.SampleTree(t)

	t.Run("by first level", func(t *testing.T) {
		out := session(t, root, "1", "4", "2", "europa", "0")
		assert.Contains(t, out, "2 result(s):")
		assert.Contains(t, out, "España")
		assert.NotContains(t, out, "| Mexico")
	})

	t.Run("no match", func(t *testing.T) {
		out := session(t, root, "1", "4", "1", "zzz", "0")
		assert.Contains(t, out, "No records match the filter.")
	})

	t.Run("inverted range is reported and the loop goes on", func(t *testing.T) {
		out := session(t, root, "1", "4", "3", "1000", "500", "0")
		assert.Contains(t, out, "invalid range")
		assert.Contains(t, out, "Bye!")
	})
}

func TestShell_ModifyAmbiguous(t *testing.T) {
	root := geotest.SampleTree(t)

	out := session(t, root, "1", "5", "peru", "2", "2", "77", "0")
	assert.Contains(t, out, "2 records share that name")
	assert.Contains(t, out, "Saved Perú")

	assert.Equal(t, []string{geotest.LeafHeader, "Perú,77,1"},
		geotest.ReadLines(t, geotest.LeafPath(root, "Ficcion", "Norte", "Monarquia")))
	assert.Contains(t, geotest.ReadLines(t, geotest.LeafPath(root, "America", "Sur", "Republica")),
		"Peru,33000000,1285216")
}

func TestShell_ModifyNotFound(t *testing.T) {
	out := session(t, geotest.SampleTree(t), "1", "5", "Bolivia", "0")
	assert.Contains(t, out, `No record named "Bolivia".`)
}

func TestShell_Delete(t *testing.T) {
	root := geotest.SampleTree(t)
	sur := geotest.LeafPath(root, "America", "Sur", "Republica")

	out := session(t, root, "1", "6", "chile", "N", "0")
	assert.Contains(t, out, "Cancelled. The record was not deleted.")
	assert.Len(t, geotest.ReadLines(t, sur), 4)

	// After a delete the data must be reloaded before it can be shown.
	out = session(t, root, "1", "6", "chile", "S", "3", "0")
	assert.Contains(t, out, "Deleted Chile")
	assert.Contains(t, out, "Load the data first (option 1).")
	assert.Equal(t, []string{geotest.LeafHeader, "Argentina,45000000,2780400", "Peru,33000000,1285216"},
		geotest.ReadLines(t, sur))
}

func TestShell_AddThenReload(t *testing.T) {
	root := geotest.SampleTree(t)

	out := session(t, root, "2", "Oceania", "Sur", "Republica", "Fiyi", "900000", "18274", "1", "0")
	assert.Contains(t, out, "Added Fiyi")
	assert.Contains(t, out, "Reload the data (option 1) to see it.")
	assert.Contains(t, out, "Loaded 8 records from 5 files.")
}

func TestShell_Sort(t *testing.T) {
	out := session(t, geotest.SampleTree(t), "1", "7", "p", "D", "0")
	assert.Contains(t, out, "Records sorted by population")

	mexico := strings.Index(out, "| Mexico")
	espana := strings.Index(out, "| España")
	peru := strings.Index(out, "| Perú ")
	require.True(t, mexico > 0 && espana > 0 && peru > 0, out)
	assert.Less(t, mexico, espana)
	assert.Less(t, espana, peru)
}

func TestShell_Stats(t *testing.T) {
	out := session(t, geotest.SampleTree(t), "1", "8", "0")
	assert.Contains(t, out, "Total population: 283,500,010")
	assert.Contains(t, out, "Most populous: Mexico")
	assert.Contains(t, out, "  - America: 4")

	out = session(t, geotest.SetupDataRoot(t), "1", "8", "0")
	assert.Contains(t, out, "no records loaded")
	assert.Contains(t, out, "Bye!")
}

func TestShell_EndOfInput(t *testing.T) {
	// Input ends in the middle of a question.
	code, out := execute(t, "1\n5\n", "--data-dir", geotest.SampleTree(t), "shell")
	assert.Equal(t, errors.ExitSuccess, code)
	assert.Contains(t, out, "Bye!")

	code, out = execute(t, "", "--data-dir", geotest.SampleTree(t), "shell")
	assert.Equal(t, errors.ExitSuccess, code)
	assert.Contains(t, out, "Bye!")
}
