package band

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

// fakePage serves text from a map keyed by the band's y coordinate and
// records every rectangle requested of it.
type fakePage struct {
	width, height float64
	rows          map[float64]string // y -> raw text
	requests      []rect
	err           error
}

type rect struct{ x, y, w, h float64 }

func (p *fakePage) Width() float64  { return p.width }
func (p *fakePage) Height() float64 { return p.height }

func (p *fakePage) TextIn(x, y, w, h float64) (string, error) {
	p.requests = append(p.requests, rect{x, y, w, h})
	if p.err != nil {
		return "", p.err
	}
	return p.rows[y], nil
}

func collect(t *testing.T, s *Scanner) []Band {
	t.Helper()
	var bands []Band
	for {
		b, ok, err := s.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			return bands
		}
		bands = append(bands, b)
	}
}

func TestBandHeightDerived(t *testing.T) {
	cfg := Config{HeightRatio: 10}

	h, err := cfg.BandHeight(595, 842)
	if err != nil {
		t.Fatalf("BandHeight: %v", err)
	}
	want := 10 * 842.0 / 595.0
	if math.Abs(h-want) > 1e-9 {
		t.Errorf("derived height = %g, want %g", h, want)
	}
}

func TestBandHeightExplicitOverride(t *testing.T) {
	cfg := Config{Height: 15, HeightRatio: 10}

	h, err := cfg.BandHeight(595, 842)
	if err != nil {
		t.Fatalf("BandHeight: %v", err)
	}
	if h != 15 {
		t.Errorf("explicit height = %g, want 15", h)
	}
}

func TestBandHeightInvalid(t *testing.T) {
	if _, err := (Config{HeightRatio: 10}).BandHeight(0, 842); err == nil {
		t.Error("expected error for zero page width")
	}
	if _, err := (Config{}).BandHeight(595, 842); err == nil {
		t.Error("expected error for zero height ratio and no override")
	}
}

// The y sequence starts at pageHeight-bandHeight, never increases, and the
// band count is ceil(pageHeight/bandHeight); the final band may extend
// below y=0.
func TestScanCoverage(t *testing.T) {
	cases := []struct {
		pageHeight, bandHeight float64
	}{
		{90, 30},  // exact multiple
		{100, 30}, // final band overshoots
		{20, 30},  // band taller than page
		{842, 14.15},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("H=%g_Bh=%g", tc.pageHeight, tc.bandHeight), func(t *testing.T) {
			page := &fakePage{width: 595, height: tc.pageHeight}
			s, err := NewScanner(page, Config{Height: tc.bandHeight}, nil)
			if err != nil {
				t.Fatalf("NewScanner: %v", err)
			}
			collect(t, s)

			wantCount := int(math.Ceil(tc.pageHeight / tc.bandHeight))
			if len(page.requests) != wantCount {
				t.Errorf("requested %d bands, want %d", len(page.requests), wantCount)
			}

			wantY := tc.pageHeight - tc.bandHeight
			prev := math.Inf(1)
			for i, r := range page.requests {
				if i == 0 && math.Abs(r.y-wantY) > 1e-9 {
					t.Errorf("first band y = %g, want %g", r.y, wantY)
				}
				if r.y >= prev {
					t.Errorf("band y sequence increased: %g after %g", r.y, prev)
				}
				if r.x != 0 || r.w != page.width || math.Abs(r.h-tc.bandHeight) > 1e-9 {
					t.Errorf("band rect = %+v, want x=0 w=%g h=%g", r, page.width, tc.bandHeight)
				}
				prev = r.y
			}
		})
	}
}

func TestScanSkipsEmptyBands(t *testing.T) {
	page := &fakePage{
		width:  100,
		height: 90,
		rows: map[float64]string{
			60: "TOTAL  12,50",
			30: "   \n ", // whitespace only: skipped before cleanup
			0:  "thanks for visiting",
		},
	}

	s, err := NewScanner(page, Config{Height: 30}, nil)
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}
	bands := collect(t, s)

	if len(bands) != 2 {
		t.Fatalf("got %d bands, want 2", len(bands))
	}
	if bands[0].Text != "TOTAL 12.50" {
		t.Errorf("band 0 text = %q, want cleaned %q", bands[0].Text, "TOTAL 12.50")
	}
	if bands[1].Text != "thanks for visiting" {
		t.Errorf("band 1 text = %q", bands[1].Text)
	}
}

func TestScanCustomCleaner(t *testing.T) {
	page := &fakePage{
		width:  100,
		height: 30,
		rows:   map[float64]string{0: "total"},
	}

	s, err := NewScanner(page, Config{Height: 30}, strings.ToUpper)
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}
	bands := collect(t, s)

	if len(bands) != 1 || bands[0].Text != "TOTAL" {
		t.Errorf("bands = %+v, want one band with text TOTAL", bands)
	}
}

func TestScanPropagatesExtractionError(t *testing.T) {
	wantErr := errors.New("boom")
	page := &fakePage{width: 100, height: 90, err: wantErr}

	s, err := NewScanner(page, Config{Height: 30}, nil)
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}

	_, _, err = s.Next()
	if !errors.Is(err, wantErr) {
		t.Fatalf("Next error = %v, want wrapped %v", err, wantErr)
	}

	// A failed scanner stays exhausted.
	if _, ok, _ := s.Next(); ok {
		t.Error("scanner yielded a band after an extraction error")
	}
}

func TestScannerNotRestartable(t *testing.T) {
	page := &fakePage{
		width:  100,
		height: 30,
		rows:   map[float64]string{0: "once"},
	}

	s, err := NewScanner(page, Config{Height: 30}, nil)
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}

	if got := len(collect(t, s)); got != 1 {
		t.Fatalf("first pass yielded %d bands, want 1", got)
	}
	if got := len(collect(t, s)); got != 0 {
		t.Errorf("exhausted scanner yielded %d bands, want 0", got)
	}
}
