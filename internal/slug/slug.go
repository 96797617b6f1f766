// Package slug derives URL-safe identifiers from company names.
package slug

import (
	"regexp"
	"strings"
)

// space matches Unicode whitespace, not just ASCII \s: NBSP, the
// U+2000 block, ideographic space, BOM and vertical tab.
const space = `\s\v\p{Z}\x{FEFF}`

var (
	disallowed = regexp.MustCompile(`[^\w` + space + `-]`)
	separators = regexp.MustCompile(`[` + space + `_-]+`)
)

// Make lowercases and trims name, drops everything except word characters,
// whitespace and hyphens, folds separator runs into one hyphen and strips
// hyphens from both ends. Distinct names may share a slug.
func Make(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	s = disallowed.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
