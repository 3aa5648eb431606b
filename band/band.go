// Package band slices a page into fixed-height horizontal bands and yields
// the cleaned text of each one, top to bottom.
//
// The band is the unit of extraction and rule evaluation: receipt fields
// are almost always confined to one printed line, so scanning narrow
// full-width strips keeps labels and their values together while keeping
// unrelated lines apart. The package knows nothing about PDFs; it talks to
// a Page, which is whatever the caller's document library can dress up as
// "text within a rectangle".
package band

import (
	"fmt"
	"strings"

	"github.com/antonyoni/textfrompdf/clean"
)

// Page is the collaborator surface the scanner needs from a document
// library. Coordinates follow the PDF convention: origin at the bottom-left
// corner, y increasing upward, units in points.
type Page interface {
	// Width returns the page width in points.
	Width() float64

	// Height returns the page height in points.
	Height() float64

	// TextIn returns the raw text contained in the given rectangle. The
	// rectangle may extend past the page edges; implementations return
	// whatever text falls inside, or "" when nothing does.
	TextIn(x, y, width, height float64) (string, error)
}

// Config controls band geometry.
type Config struct {
	// Height is an explicit band height in points. When zero, the height is
	// derived per page as HeightRatio * pageHeight / pageWidth.
	Height float64

	// HeightRatio is the base for the derived band height. Taller, narrower
	// pages (typical till receipts) get proportionally taller bands.
	HeightRatio float64

	// TraverseWidth is the column width used by rule extractors that sweep
	// horizontally within a band.
	TraverseWidth float64
}

// DefaultConfig returns the geometry used when the caller overrides
// nothing: bands roughly one text line tall on common page sizes, with a
// one-inch sweep column.
func DefaultConfig() Config {
	return Config{
		HeightRatio:   10,
		TraverseWidth: 72,
	}
}

// BandHeight returns the effective band height for a page of the given
// dimensions. Height is recomputed for every page rather than frozen from
// the first page scanned, so documents with mixed page sizes band
// correctly.
func (c Config) BandHeight(pageWidth, pageHeight float64) (float64, error) {
	if c.Height > 0 {
		return c.Height, nil
	}
	if pageWidth <= 0 || pageHeight <= 0 {
		return 0, fmt.Errorf("cannot derive band height from %gx%g page", pageWidth, pageHeight)
	}
	h := c.HeightRatio * pageHeight / pageWidth
	if h <= 0 {
		return 0, fmt.Errorf("band height %g is not positive (height ratio %g)", h, c.HeightRatio)
	}
	return h, nil
}

// Band is one horizontal slice of a page after extraction and cleanup. It
// is ephemeral: valid for a single scan iteration.
type Band struct {
	Page          Page
	X, Y          float64
	Width, Height float64

	// Text is the cleaned band text. Bands whose raw text is empty or
	// all-whitespace are never yielded.
	Text string
}

// Scanner yields the non-empty bands of a single page, top to bottom. A
// Scanner is bound to one page/config pair; create a fresh one per page.
type Scanner struct {
	page      Page
	cleaner   clean.Func
	width     float64
	height    float64 // band height
	y         float64
	exhausted bool
}

// NewScanner prepares a band scan of page. The band height comes from cfg
// (explicit or derived from this page's dimensions); cleaner normalizes
// each band's raw text before it is yielded.
func NewScanner(page Page, cfg Config, cleaner clean.Func) (*Scanner, error) {
	if cleaner == nil {
		cleaner = clean.Receipt
	}

	h, err := cfg.BandHeight(page.Width(), page.Height())
	if err != nil {
		return nil, err
	}

	return &Scanner{
		page:    page,
		cleaner: cleaner,
		width:   page.Width(),
		height:  h,
		y:       page.Height() - h,
	}, nil
}

// BandHeight returns the band height used for this page.
func (s *Scanner) BandHeight() float64 { return s.height }

// Width returns the band width (the full page width).
func (s *Scanner) Width() float64 { return s.width }

// Clean normalizes text with the scanner's cleanup function. Rule
// extractors use it when re-querying the page at adjacent coordinates.
func (s *Scanner) Clean(text string) string { return s.cleaner(text) }

// Next returns the next band containing text. The second result is false
// once the page is exhausted. Band rectangles are not clipped to the page:
// the final band's y goes below zero when the page height is not an exact
// multiple of the band height, and the extractor is trusted to return
// partial or empty text for it.
func (s *Scanner) Next() (Band, bool, error) {
	if s.exhausted {
		return Band{}, false, nil
	}

	for ; s.y > -s.height; s.y -= s.height {
		raw, err := s.page.TextIn(0, s.y, s.width, s.height)
		if err != nil {
			s.exhausted = true
			return Band{}, false, fmt.Errorf("extracting band at y=%g: %w", s.y, err)
		}
		if strings.TrimSpace(raw) == "" {
			continue
		}

		b := Band{
			Page:   s.page,
			X:      0,
			Y:      s.y,
			Width:  s.width,
			Height: s.height,
			Text:   s.cleaner(raw),
		}
		s.y -= s.height
		return b, true, nil
	}

	s.exhausted = true
	return Band{}, false, nil
}
