// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"os"
	"testing"
)

func TestNewProgressConfig(t *testing.T) {
	tests := []struct {
		name            string
		globals         GlobalFlags
		expectedNoColor bool
	}{
		{"default flags", GlobalFlags{}, false},
		{"quiet mode", GlobalFlags{Quiet: true}, false},
		{"JSON mode", GlobalFlags{JSON: true}, false},
		{"noColor flag propagates to config", GlobalFlags{NoColor: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewProgressConfig(tt.globals)
			// stderr is not a TTY under go test
			if cfg.Enabled {
				t.Error("NewProgressConfig().Enabled = true, want false")
			}
			if cfg.NoColor != tt.expectedNoColor {
				t.Errorf("NewProgressConfig().NoColor = %v, want %v", cfg.NoColor, tt.expectedNoColor)
			}
			if cfg.Writer != os.Stderr {
				t.Error("NewProgressConfig().Writer should be os.Stderr")
			}
		})
	}
}

func TestNewSpinner(t *testing.T) {
	t.Run("disabled config returns nil", func(t *testing.T) {
		if spinner := NewSpinner(ProgressConfig{Enabled: false}, "Loading"); spinner != nil {
			t.Error("NewSpinner() should return nil when disabled")
		}
	})

	t.Run("enabled config returns non-nil", func(t *testing.T) {
		var buf bytes.Buffer
		spinner := NewSpinner(ProgressConfig{Enabled: true, Writer: &buf, NoColor: true}, "Loading")
		if spinner == nil {
			t.Fatal("NewSpinner() should return non-nil when enabled")
		}
		_ = spinner.Add(1)
		_ = spinner.Finish()
	})
}
