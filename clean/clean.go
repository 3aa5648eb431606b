// Package clean normalizes raw text extracted from receipt PDFs into a
// canonical form suitable for regex matching.
//
// Receipt text, especially when it originates from a scan, is noisy:
// decimal commas, mis-recognized middle dots, stray spaces inside dates and
// amounts. The default pipeline folds all of that into a stable shape so
// that a single set of patterns can match it. The pipeline is exposed as a
// plain function value, so callers with a different OCR source can swap in
// their own.
package clean

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Func normalizes a raw extracted text fragment. Implementations must be
// pure and idempotent: Func(Func(s)) == Func(s).
type Func func(string) string

var (
	// OCR engines frequently emit U+00B7 (middle dot) for decimal points,
	// commas for periods, and apostrophes for specks of dirt on the scan.
	punct = strings.NewReplacer(
		",", ".",
		"·", ".",
		"-", ".",
		"'", " ",
	)

	reNewlines = regexp.MustCompile(`[\r\n]+`)
	reSpaces   = regexp.MustCompile(` {2,}`)
	reSepGap   = regexp.MustCompile(`\s*([/:])\s*`)

	// "12 . 34" -> "12.34". Limited to short numeric runs so prose with a
	// trailing period is left alone.
	reNumGap = regexp.MustCompile(`(\d{1,2}) *([./:]) *(\d{2})`)
)

// Receipt is the default cleanup pipeline. Transformations are applied in
// order:
//
//  1. Unicode NFKC normalization (folds ligatures such as ﬁ emitted by OCR).
//  2. Replace OCR-ambiguous punctuation: comma, middle dot, and hyphen
//     become periods; apostrophes become spaces.
//  3. Collapse newlines to spaces and runs of spaces to one space.
//  4. Remove spaces around "/" and ":" separators.
//  5. Collapse stray spaces inside numeric date/time patterns
//     ("12 . 34" -> "12.34").
//  6. Trim surrounding whitespace.
//
// Empty input yields empty output.
func Receipt(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFKC.String(text)
	text = punct.Replace(text)
	text = reNewlines.ReplaceAllString(text, " ")
	text = reSpaces.ReplaceAllString(text, " ")
	text = reSepGap.ReplaceAllString(text, "$1")
	text = reNumGap.ReplaceAllString(text, "$1$2$3")

	return strings.TrimSpace(text)
}
