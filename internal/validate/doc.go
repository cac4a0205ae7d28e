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

// Package validate parses and checks raw user input for geotree.
//
// Every function takes the text exactly as typed (surrounding whitespace is
// trimmed) and returns either the typed value or an *Error whose Message can
// be shown to the user as is. Callers that prompt interactively loop until
// the input validates; flag parsers report the error and exit.
//
//	pop, err := validate.PositiveInt(raw)
//	if err != nil {
//	    ui.Error(err.Error())
//	    continue
//	}
//
// All errors wrap catalog.ErrInvalidValue, so the CLI classifies them as
// input errors (exit code 4).
package validate
