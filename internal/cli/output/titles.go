package output

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Title returns s in title case, e.g. "aggregate" -> "Aggregate".
func Title(s string) string {
	return cases.Title(language.English).String(s)
}
