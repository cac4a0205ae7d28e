// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/geotree/internal/errors"
)

func TestCompletion(t *testing.T) {
	tests := []struct {
		shell  string
		marker string
	}{
		{"bash", "complete -F _geotree_completion geotree"},
		{"zsh", "#compdef geotree"},
		{"fish", "complete -c geotree"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, runCompletion([]string{tt.shell}, &out))
			script := out.String()
			assert.Contains(t, script, tt.marker)
			for _, c := range completionCommands {
				assert.Contains(t, script, c.name)
			}
			assert.Contains(t, script, "data-dir")
		})
	}
}

func TestCompletion_InvalidArguments(t *testing.T) {
	var out bytes.Buffer

	for _, args := range [][]string{nil, {"bash", "zsh"}, {"powershell"}} {
		err := runCompletion(args, &out)
		var ue *errors.UserError
		require.ErrorAs(t, err, &ue, "args %v", args)
		assert.Equal(t, errors.ExitInput, ue.ExitCode)
	}
	assert.Empty(t, out.String())
}
