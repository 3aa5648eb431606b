// Package pdftext adapts github.com/ledongthuc/pdf to the band.Page
// collaborator surface: positioned text fragments filtered by rectangle.
//
// The underlying library does simple positional extraction, where each fragment
// carries the x/y anchor of its baseline. That is exactly what
// predictable band slicing wants. No layout reconstruction happens here.
package pdftext

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// rowTolerance groups fragments whose baselines differ by less than this
// many points onto one output line.
const rowTolerance = 2.0

// Default page size (US Letter) when a page carries no usable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Document is an open PDF file.
type Document struct {
	path string
	file *os.File
	r    *pdf.Reader
}

// Open opens the PDF at path.
func Open(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &Document{path: path, file: f, r: r}, nil
}

// Close releases the underlying file. Safe to call more than once.
func (d *Document) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.r.NumPage()
}

// Page loads page n (1-based) with its text content and dimensions.
func (d *Document) Page(n int) (*Page, error) {
	if n < 1 || n > d.r.NumPage() {
		return nil, fmt.Errorf("page %d out of range 1..%d", n, d.r.NumPage())
	}

	p := d.r.Page(n)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d is null", n)
	}

	width, height := pageSize(p)

	texts, err := pageContent(p)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", n, err)
	}

	return &Page{width: width, height: height, texts: texts}, nil
}

// pageContent extracts the positioned fragments of a page. The library
// panics on some malformed content streams, so the call is fenced.
func pageContent(p pdf.Page) (texts []pdf.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoding content: %v", r)
		}
	}()
	return p.Content().Text, nil
}

// pageSize reads the MediaBox, falling back to US Letter when it is absent
// or unusable (scanner output sometimes omits it).
func pageSize(p pdf.Page) (width, height float64) {
	defer func() {
		if r := recover(); r != nil {
			width, height = defaultPageWidth, defaultPageHeight
		}
	}()

	box := p.V.Key("MediaBox")
	if box.IsNull() || box.Kind() != pdf.Array || box.Len() != 4 {
		return defaultPageWidth, defaultPageHeight
	}

	coords := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v := box.Index(i)
		switch v.Kind() {
		case pdf.Integer:
			coords[i] = float64(v.Int64())
		case pdf.Real:
			coords[i] = v.Float64()
		default:
			return defaultPageWidth, defaultPageHeight
		}
	}

	w := coords[2] - coords[0]
	h := coords[3] - coords[1]
	if w <= 0 || h <= 0 {
		return defaultPageWidth, defaultPageHeight
	}
	return w, h
}

// Page is one PDF page, implementing the band scanner's collaborator
// surface.
type Page struct {
	width  float64
	height float64
	texts  []pdf.Text
}

// Width returns the page width in points.
func (p *Page) Width() float64 { return p.width }

// Height returns the page height in points.
func (p *Page) Height() float64 { return p.height }

// TextIn returns the text whose anchor falls inside the given rectangle.
// Fragments are ordered top-to-bottom then left-to-right; fragments on the
// same line are joined with spaces, distinct lines with newlines. An empty
// or out-of-bounds rectangle yields "".
func (p *Page) TextIn(x, y, width, height float64) (string, error) {
	var hits []pdf.Text
	for _, t := range p.texts {
		if t.X >= x && t.X < x+width && t.Y >= y && t.Y < y+height {
			hits = append(hits, t)
		}
	}
	if len(hits) == 0 {
		return "", nil
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if diff := hits[i].Y - hits[j].Y; diff > rowTolerance || diff < -rowTolerance {
			return hits[i].Y > hits[j].Y // higher on the page first
		}
		return hits[i].X < hits[j].X
	})

	var b strings.Builder
	prevY := hits[0].Y
	for i, t := range hits {
		if i > 0 {
			if prevY-t.Y > rowTolerance {
				b.WriteString("\n")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString(t.S)
		prevY = t.Y
	}
	return b.String(), nil
}
