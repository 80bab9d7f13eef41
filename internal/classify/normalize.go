package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold maps every Unicode space to ' ' and every decimal digit to its
// ASCII form, since regexp's \s and \d are ASCII only.
var asciiFold = runes.Map(func(r rune) rune {
	switch {
	case r < 0x80:
		return r
	case unicode.IsSpace(r):
		return ' '
	case unicode.IsDigit(r):
		return '0' + digitValue(r)
	}
	return r
})

// digitValue relies on Nd digits coming in runs of ten starting at zero.
func digitValue(r rune) rune {
	var k rune
	for unicode.IsDigit(r - k - 1) {
		k++
	}
	return k % 10
}

// Normalize prepares raw posting text for substring and pattern matching.
func Normalize(text string) string {
	s, _, err := transform.String(transform.Chain(norm.NFC, asciiFold), text)
	if err != nil {
		s = norm.NFC.String(text)
	}
	return strings.ToLower(s)
}
