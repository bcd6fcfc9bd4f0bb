package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName turns a raw name cell into the identity key used to join
// events: surrounding and repeated whitespace removed, each word title-cased.
// Title casing follows Unicode word boundaries, so a letter after an
// apostrophe stays lower case: "o'brien" becomes "O'brien", not "O'Brien".
// Every event goes through the same rule, so such names still join.
func NormalizeName(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	// Casers keep state and must not be shared across goroutines.
	caser := cases.Title(language.Und)
	return caser.String(strings.Join(fields, " "))
}
