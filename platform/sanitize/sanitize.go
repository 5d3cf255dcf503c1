// Package sanitize cleans free text supplied by upstream services before it
// is stored or echoed into outbound messages. Content is never removed, only
// control characters and layout whitespace.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"
)

var spacePattern = regexp.MustCompile(`[ \t]+`)

// Line cleans a single-line field: control characters are removed and runs
// of whitespace, newlines included, collapse to one space.
func Line(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

// Block cleans a multi-line field. Line breaks survive, other control
// characters are dropped, and blank lines at either end are trimmed.
func Block(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if unicode.IsSpace(r) {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(spacePattern.ReplaceAllString(l, " "))
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}
