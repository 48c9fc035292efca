package text

import (
	"strings"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
)

// CaseTransform selects the case mapping applied to text before shaping.
type CaseTransform uint8

const (
	CaseNone CaseTransform = iota
	CaseUpper
	CaseLower
	CaseTitle
)

var (
	upperCaser = cases.Upper(xlanguage.Und)
	lowerCaser = cases.Lower(xlanguage.Und)
	titleCaser = cases.Title(xlanguage.Und, cases.NoLower)
)

// ApplyCase applies a case mapping to text. CaseTitle capitalizes the first
// letter of each word and leaves the rest of the word untouched.
func ApplyCase(s string, t CaseTransform) string {
	switch t {
	case CaseUpper:
		return upperCaser.String(s)
	case CaseLower:
		return lowerCaser.String(s)
	case CaseTitle:
		return titleCaser.String(s)
	default:
		return s
	}
}

// CollapseWhiteSpace replaces every run of whitespace, including newlines,
// with a single space, matching CSS white-space collapsing.
func CollapseWhiteSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if isCollapsible(r) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

func isCollapsible(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
