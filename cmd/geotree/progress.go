// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// ProgressConfig determines if and how progress should be displayed.
type ProgressConfig struct {
	// Enabled indicates whether the spinner should be shown.
	// Disabled when --json or -q are used, or when stderr is not a TTY.
	Enabled bool

	// Writer is where progress output goes (always os.Stderr).
	Writer io.Writer

	// NoColor disables colored output in the spinner.
	NoColor bool
}

// NewProgressConfig creates a progress configuration based on global flags and TTY detection.
func NewProgressConfig(globals GlobalFlags) ProgressConfig {
	enabled := !globals.Quiet && !globals.JSON && isatty.IsTerminal(os.Stderr.Fd())

	return ProgressConfig{
		Enabled: enabled,
		Writer:  os.Stderr,
		NoColor: globals.NoColor,
	}
}

// NewSpinner creates an indeterminate progress spinner. The loader does not
// know the number of leaf files up front, so there is no bounded bar.
// Returns nil if progress is disabled.
func NewSpinner(cfg ProgressConfig, description string) *progressbar.ProgressBar {
	if !cfg.Enabled {
		return nil
	}

	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(cfg.Writer),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(!cfg.NoColor),
	)
}
