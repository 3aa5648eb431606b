// Package rules resolves named fields out of band text.
//
// A Rule pairs a field name with a trigger pattern and an optional
// extractor. Rules are evaluated in declaration order against each band a
// page scan yields; the first rule that matches wins that band, and a rule
// stays in play across bands until it produces a non-empty value. The
// extractor receives an explicit Context carrying the band geometry and the
// page handle, so it can re-query the page at adjacent coordinates. That is
// the mechanism behind the rightward sweep used for tabular tax values.
package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/antonyoni/textfrompdf/band"
	"github.com/antonyoni/textfrompdf/clean"
)

// Context is handed to a rule's extractor when its pattern matches a band.
// All data dependencies are explicit: there is no shared scan state.
type Context struct {
	// Page is the page the band was cut from, for supplementary queries.
	Page band.Page

	// Text is the cleaned band text and Match the substring Trigger matched.
	Text  string
	Match string

	// Geometry of the current band.
	X, Y          float64
	Width, Height float64

	// BandHeight is the scan's band height; the band immediately above this
	// one sits at Y+BandHeight.
	BandHeight float64

	// TraverseWidth is the column width for horizontal sweeps.
	TraverseWidth float64

	// Trigger is the rule's own compiled pattern.
	Trigger *regexp.Regexp

	// Clean normalizes re-extracted text the same way band text was.
	Clean clean.Func
}

// TextAt re-extracts and cleans the text inside the given page rectangle.
func (c Context) TextAt(x, y, width, height float64) (string, error) {
	raw, err := c.Page.TextIn(x, y, width, height)
	if err != nil {
		return "", err
	}
	if c.Clean == nil {
		return strings.TrimSpace(raw), nil
	}
	return c.Clean(raw), nil
}

// Extractor computes a rule's value from a matched band. Returning "" does
// not resolve the rule: it stays eligible for later bands.
type Extractor func(Context) (string, error)

// Rule pulls a single field's value out of band text.
type Rule struct {
	// Name is the field name; unique within a Set.
	Name string

	// Pattern is the trigger regular expression.
	Pattern string

	// Fuzzy, when non-empty, is a lowercase label accepted as an alternate
	// trigger when it appears in the band within Levenshtein distance 1,
	// tolerating OCR slips like "T0TAL".
	Fuzzy string

	// Extract computes the value. When nil the value is the raw substring
	// Pattern matched.
	Extract Extractor
}

type compiledRule struct {
	Rule
	re *regexp.Regexp
}

// match reports the triggering substring of text, if any.
func (r *compiledRule) match(text string) (string, bool) {
	if loc := r.re.FindStringIndex(text); loc != nil {
		return text[loc[0]:loc[1]], true
	}
	if r.Fuzzy != "" {
		for _, tok := range strings.Fields(text) {
			if fuzzy.LevenshteinDistance(strings.ToLower(tok), r.Fuzzy) <= 1 {
				return tok, true
			}
		}
	}
	return "", false
}

// Set is an ordered collection of rules with unique names. Construct one
// with NewSet; a Set is immutable afterwards and safe for concurrent use.
type Set struct {
	rules []compiledRule
	names []string
}

// NewSet validates and compiles rules. Errors name the offending rule, and
// surface before any document is opened: an invalid pattern is a
// configuration mistake, not a per-document condition.
func NewSet(rs ...Rule) (*Set, error) {
	if len(rs) == 0 {
		return nil, fmt.Errorf("rule set is empty")
	}

	set := &Set{
		rules: make([]compiledRule, 0, len(rs)),
		names: make([]string, 0, len(rs)),
	}
	seen := make(map[string]bool, len(rs))

	for i, r := range rs {
		if r.Name == "" {
			return nil, fmt.Errorf("rule %d has no name", i)
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("duplicate rule name %q", r.Name)
		}
		seen[r.Name] = true

		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %q: invalid pattern: %w", r.Name, err)
		}

		set.rules = append(set.rules, compiledRule{Rule: r, re: re})
		set.names = append(set.names, r.Name)
	}

	return set, nil
}

// Names returns the rule names in declaration order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of rules in the set.
func (s *Set) Len() int {
	return len(s.rules)
}
