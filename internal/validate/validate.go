// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/kraklabs/geotree/pkg/catalog"
)

// Error is a validation failure carrying a user-facing message.
type Error struct {
	Input   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return catalog.ErrInvalidValue }

func invalid(input, format string, args ...any) *Error {
	return &Error{Input: input, Message: fmt.Sprintf(format, args...)}
}

// NonEmpty accepts any text that is not blank.
func NonEmpty(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", invalid(s, "input cannot be empty")
	}
	return v, nil
}

// Alphabetic accepts non-blank text without digits. Used for record names
// and hierarchy values.
func Alphabetic(s string) (string, error) {
	v, err := NonEmpty(s)
	if err != nil {
		return "", err
	}
	if strings.IndexFunc(v, unicode.IsDigit) >= 0 {
		return "", invalid(s, "input cannot contain digits")
	}
	return v, nil
}

// Int accepts any base-10 integer.
func Int(s string) (int64, error) {
	v := strings.TrimSpace(s)
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, invalid(s, "invalid input %q: expected an integer", v)
	}
	return n, nil
}

// PositiveInt accepts an integer greater than zero.
func PositiveInt(s string) (int64, error) {
	n, err := Int(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, invalid(s, "value must be greater than zero")
	}
	return n, nil
}

// PositiveFloat accepts a finite decimal number greater than zero.
func PositiveFloat(s string) (float64, error) {
	v := strings.TrimSpace(s)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, invalid(s, "invalid input %q: expected a number (e.g. 150.75)", v)
	}
	// ParseFloat accepts "NaN" and "Inf"; NaN fails every comparison.
	if !(f > 0) || math.IsInf(f, 1) {
		return 0, invalid(s, "value must be greater than zero")
	}
	return f, nil
}

// MenuOption accepts an integer within [min, max].
func MenuOption(s string, min, max int) (int, error) {
	n, err := Int(s)
	if err != nil {
		return 0, err
	}
	if n < int64(min) || n > int64(max) {
		return 0, invalid(s, "invalid option: choose a number between %d and %d", min, max)
	}
	return int(n), nil
}

// YesNo accepts S/Si/Sí/Y/Yes as true and N/No as false, in any case.
func YesNo(s string) (bool, error) {
	switch catalog.Normalize(strings.TrimSpace(s)) {
	case "s", "si", "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, invalid(s, "answer S (yes) or N (no)")
}

// Choice accepts one of the given single-letter options, case-insensitively,
// and returns it upper-cased.
func Choice(s string, options ...string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	for _, o := range options {
		if v == strings.ToUpper(o) {
			return v, nil
		}
	}
	return "", invalid(s, "invalid option: choose one of %s", strings.Join(options, "/"))
}
