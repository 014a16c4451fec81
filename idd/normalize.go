package idd

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// spacesRe matches any run of whitespace, including tabs and newlines
// a sloppy dictionary author may have left in a field.
var spacesRe = regexp.MustCompile(`\s+`)

// maxFieldLen is the hard ceiling on a field value, measured after
// normalization.
const maxFieldLen = 100

// CollapseSpaces trims leading/trailing whitespace and replaces every
// interior whitespace run with a single ASCII space.
func CollapseSpaces(s string) string {
	return spacesRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// ToASCII transliterates s to its nearest ASCII representation: diacritics
// are stripped and non-Latin scripts are approximated.
func ToASCII(s string) string {
	return unidecode.Unidecode(s)
}

// FoldCase lower-cases s. Split out so descriptor normalization and tests
// name the same operation.
func FoldCase(s string) string {
	return strings.ToLower(s)
}
