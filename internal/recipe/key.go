package recipe

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Key produces the canonical matching key for a display name: trimmed,
// NFC-normalized, then Unicode case-folded. Family membership and
// ingredient matching both go through Key, so "Añejo Rum", "añejo rum"
// and the decomposed "Añejo Rum" all collide.
//
// NFC before folding: composed and decomposed forms of the same text
// must yield identical keys.
func Key(name string) string {
	folder := cases.Fold()
	return folder.String(norm.NFC.String(strings.TrimSpace(name)))
}
