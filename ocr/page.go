package ocr

import (
	"sort"
	"strings"
)

// Line is one recognized text line with its position, in page coordinates
// (origin bottom-left, y increasing upward, the same convention the band
// scanner uses).
type Line struct {
	Text          string
	X, Y          float64
	Width, Height float64
}

// ImagePage is a receipt image dressed up as a scannable page: OCR'd text
// lines positioned on a canvas the size of the image, in pixels.
type ImagePage struct {
	width  float64
	height float64
	lines  []Line
}

// NewImagePage builds a page from recognized lines. Most callers want
// OpenImage instead, which runs OCR on an image file and ends up here.
func NewImagePage(width, height float64, lines []Line) *ImagePage {
	return &ImagePage{width: width, height: height, lines: lines}
}

// Width returns the page width in pixels.
func (p *ImagePage) Width() float64 { return p.width }

// Height returns the page height in pixels.
func (p *ImagePage) Height() float64 { return p.height }

// TextIn returns the text of the lines whose origin falls inside the given
// rectangle, top to bottom, joined with newlines.
func (p *ImagePage) TextIn(x, y, width, height float64) (string, error) {
	var hits []Line
	for _, l := range p.lines {
		if l.X >= x && l.X < x+width && l.Y >= y && l.Y < y+height {
			hits = append(hits, l)
		}
	}
	if len(hits) == 0 {
		return "", nil
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Y != hits[j].Y {
			return hits[i].Y > hits[j].Y
		}
		return hits[i].X < hits[j].X
	})

	parts := make([]string, len(hits))
	for i, l := range hits {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n"), nil
}
