// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package errors provides structured error handling for the geotree CLI.
//
// This package defines UserError, a type that carries structured error information
// including what went wrong, why it happened, and how to fix it. It also defines
// consistent exit codes for different error categories.
//
// # Usage Example
//
// Creating and displaying errors:
//
//	err := errors.NewStorageError(
//	    "Cannot save the change",
//	    "datos_paises/America/Sur/Republica/items.csv is read-only",
//	    "Check the file permissions and run the command again",
//	    underlyingErr,
//	)
//	if err != nil {
//	    errors.FatalError(err, false)
//	}
//
// Errors coming from the record store are translated with Classify, which
// picks the category from the sentinel the error wraps:
//
//	if err := coord.Update(rec, change); err != nil {
//	    return errors.Classify("Cannot update record", err)
//	}
//
// # Formatted Output
//
// The Format() method provides colored terminal output:
//
//	fmt.Fprint(os.Stderr, err.Format(false))
//	// Output (with colors):
//	// Error: Cannot save the change
//	// Cause: datos_paises/America/Sur/Republica/items.csv is read-only
//	// Fix:   Check the file permissions and run the command again
//
// For JSON output:
//
//	jsonData := err.ToJSON()
//	json.NewEncoder(os.Stderr).Encode(jsonData)
//	// Output:
//	// {
//	//   "error": "Cannot save the change",
//	//   "cause": "datos_paises/America/Sur/Republica/items.csv is read-only",
//	//   "fix": "Check the file permissions and run the command again",
//	//   "exit_code": 2
//	// }
//
// # Exit Codes
//
// The package defines semantic exit codes following Unix conventions:
//   - ExitSuccess (0): Successful execution
//   - ExitConfig (1): Configuration errors (missing/invalid config)
//   - ExitStorage (2): Leaf file errors (unwritable, diverged from memory)
//   - ExitInput (4): Invalid user input (bad arguments, validation errors)
//   - ExitPermission (5): Permission denied (file access, etc.)
//   - ExitNotFound (6): Resource not found (record, data root, etc.)
//   - ExitInternal (10): Internal errors (bugs, panics)
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/kraklabs/geotree/pkg/catalog"
)

// Exit codes for different error categories.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitConfig indicates configuration errors (missing/invalid config files).
	ExitConfig = 1

	// ExitStorage indicates leaf file errors (write failed, memory and disk diverged).
	ExitStorage = 2

	// ExitInput indicates invalid user input (bad arguments, validation errors).
	ExitInput = 4

	// ExitPermission indicates permission denied errors (file access, etc.).
	ExitPermission = 5

	// ExitNotFound indicates resource not found errors (record, data root, etc.).
	ExitNotFound = 6

	// ExitInternal indicates internal errors (bugs, unexpected panics).
	// Exit code 10 signals "this is a bug that should be reported".
	ExitInternal = 10
)

// UserError represents an error with structured context for end users.
//
// It provides three levels of information:
//   - Message: What went wrong (user-facing error description)
//   - Cause: Why it happened (diagnostic information)
//   - Fix: How to fix it (actionable suggestion)
//
// UserError also carries an exit code for consistent CLI exit behavior
// and optionally wraps an underlying error for error chain compatibility.
type UserError struct {
	// Message describes what went wrong in user-friendly language.
	Message string

	// Cause explains why the error occurred (diagnostic information).
	Cause string

	// Fix provides an actionable suggestion on how to resolve the error.
	Fix string

	// ExitCode is the exit code that should be used when exiting due to this error.
	ExitCode int

	// Err is the underlying error that caused this error (optional).
	Err error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements error unwrapping for compatibility with errors.Is and errors.As.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a configuration error with exit code ExitConfig.
//
// Example:
//
//	return NewConfigError(
//	    "Cannot load geotree configuration",
//	    "The config file .geotree/project.yaml is missing",
//	    "Run 'geotree init' to create a new configuration",
//	    nil,
//	)
func NewConfigError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitConfig, Err: err}
}

// NewStorageError creates a leaf file error with exit code ExitStorage.
//
// Use this when a leaf file or hierarchy directory cannot be written, or when
// a change was kept in memory but could not be persisted.
func NewStorageError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitStorage, Err: err}
}

// NewInputError creates an input validation error with exit code ExitInput.
//
// Input errors typically do not wrap an underlying error.
//
// Example:
//
//	return NewInputError(
//	    "Invalid population",
//	    "Population must be a whole number greater than zero",
//	    "Use a value like 45000000",
//	)
func NewInputError(msg, cause, fix string) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitInput}
}

// NewPermissionError creates a permission denied error with exit code ExitPermission.
func NewPermissionError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitPermission, Err: err}
}

// NewNotFoundError creates a resource not found error with exit code ExitNotFound.
//
// Example:
//
//	return NewNotFoundError(
//	    "Record not found",
//	    "No record named 'Bolivia' is loaded",
//	    "Run 'geotree ls' to list the loaded records",
//	)
func NewNotFoundError(msg, cause, fix string) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitNotFound}
}

// NewInternalError creates an internal error with exit code ExitInternal.
//
// Use this for unexpected errors that indicate bugs in the program.
func NewInternalError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitInternal, Err: err}
}

// Classify wraps an error from the record store in a UserError whose
// category, cause and fix follow the catalog sentinel it carries. A
// UserError is returned unchanged.
func Classify(msg string, err error) *UserError {
	if err == nil {
		return nil
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return ue
	}

	cause := err.Error()
	switch {
	case errors.Is(err, fs.ErrPermission):
		return NewPermissionError(msg, cause,
			"Check the permissions of the data directory", err)
	case errors.Is(err, catalog.ErrDiverged):
		return NewStorageError(msg, cause,
			"The change is only in memory; reload the data to see what is on disk", err)
	case errors.Is(err, catalog.ErrIO):
		return NewStorageError(msg, cause,
			"Check that the data directory exists and is writable", err)
	case errors.Is(err, catalog.ErrNotFound):
		ue := NewNotFoundError(msg, cause, "Run 'geotree ls' to list the loaded records")
		ue.Err = err
		return ue
	case errors.Is(err, catalog.ErrInvalidRange),
		errors.Is(err, catalog.ErrInvalidValue),
		errors.Is(err, catalog.ErrInvalidSelection):
		ue := NewInputError(msg, cause, "Check the value and try again")
		ue.Err = err
		return ue
	case errors.Is(err, catalog.ErrNoData):
		ue := NewNotFoundError(msg, cause, "Add records with 'geotree add' or check --data-dir")
		ue.Err = err
		return ue
	default:
		return NewInternalError(msg, cause,
			"This is a bug. Please report it at github.com/kraklabs/geotree/issues", err)
	}
}

// Color definitions for error formatting.
var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format returns a formatted error message for terminal display.
//
// The output includes colored sections for Error (red/bold), Cause (yellow),
// and Fix (green). Color output respects the NO_COLOR environment variable
// and can be explicitly disabled with the noColor parameter.
//
// Empty Cause or Fix fields are omitted from the output.
//
// Note: This method temporarily modifies the global color.NoColor state
// and restores it after formatting.
func (e *UserError) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")

	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}

	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}

	return out.String()
}

// ErrorJSON represents error information in JSON format.
type ErrorJSON struct {
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// ToJSON converts the UserError to a JSON-serializable structure.
func (e *UserError) ToJSON() ErrorJSON {
	return ErrorJSON{
		Error:    e.Message,
		Cause:    e.Cause,
		Fix:      e.Fix,
		ExitCode: e.ExitCode,
	}
}

// FatalError prints the error and exits with the appropriate code.
//
// If the error is a UserError, it uses Format() for colored output or
// ToJSON() for JSON mode. For non-UserError types, it prints a simple
// error message and exits with ExitInternal.
//
// This function never returns - it always calls os.Exit().
func FatalError(err error, jsonOutput bool) {
	if err == nil {
		return
	}
	os.Exit(Report(err, jsonOutput))
}

// Report prints err to stderr like FatalError and returns the exit code
// instead of exiting.
func Report(err error, jsonOutput bool) int {
	if err == nil {
		return ExitSuccess
	}

	var ue *UserError
	if errors.As(err, &ue) {
		if jsonOutput {
			enc := json.NewEncoder(os.Stderr)
			enc.SetIndent("", "  ")
			// Encode error is ignored: the exit code is what matters.
			_ = enc.Encode(ue.ToJSON())
		} else {
			fmt.Fprint(os.Stderr, ue.Format(false))
		}
		return ue.ExitCode
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return ExitInternal
}
