// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// diacriticTable is the complete list of characters Normalize strips after
// case folding. Upper-case forms (Á, É, ...) fold to these first.
var diacriticTable = strings.NewReplacer(
	"á", "a",
	"é", "e",
	"í", "i",
	"ó", "o",
	"ú", "u",
	"ü", "u",
)

// Normalize folds s for search comparisons: Unicode case folding followed by
// the fixed diacritic table (á é í ó ú ü). No other decomposition happens,
// so "ñ", "ç" and "à" are kept, and decomposed input (a + U+0301) is not
// matched against its composed form.
func Normalize(s string) string {
	return diacriticTable.Replace(cases.Fold().String(s))
}
