package textfrompdf

import (
	"fmt"
	"log/slog"

	"github.com/antonyoni/textfrompdf/band"
	"github.com/antonyoni/textfrompdf/clean"
	"github.com/antonyoni/textfrompdf/pdftext"
	"github.com/antonyoni/textfrompdf/rules"
)

// Document is a page-addressable source of positioned text. The built-in
// implementation wraps a PDF file; OCR output and test fakes implement it
// as well.
type Document interface {
	// PageCount reports the number of pages.
	PageCount() int
	// Page returns the n-th page, 1-indexed.
	Page(n int) (band.Page, error)
	// Close releases resources. Safe to call more than once.
	Close() error
}

// pdfDocument adapts pdftext.Document to the Document interface.
type pdfDocument struct {
	doc *pdftext.Document
}

func (d pdfDocument) PageCount() int { return d.doc.PageCount() }

func (d pdfDocument) Page(n int) (band.Page, error) { return d.doc.Page(n) }

func (d pdfDocument) Close() error { return d.doc.Close() }

// OpenError reports a document that could not be opened. ProcessAll converts
// these into warnings so a batch keeps going past broken files.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Scanner provides a fluent interface for extracting receipt fields.
// Each configuration method returns a new Scanner instance, making it
// safe for concurrent use and allowing method chaining.
type Scanner struct {
	// Source
	path string

	// Lifecycle
	doc       Document
	ownsDoc   bool // true if we opened the document and should close it
	docOpened bool

	// Configuration
	options scanOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Scanner with a copy of its options.
// This ensures immutability: each chain method returns a new instance.
func (s *Scanner) clone() *Scanner {
	return &Scanner{
		path:      s.path,
		doc:       s.doc,
		ownsDoc:   s.ownsDoc,
		docOpened: s.docOpened,
		options:   s.options.clone(),
		err:       s.err,
		warnings:  append([]Warning(nil), s.warnings...),
	}
}

// ensureDoc opens the document if not already open.
func (s *Scanner) ensureDoc() error {
	if s.docOpened {
		return nil
	}
	if s.path == "" {
		return fmt.Errorf("no document specified")
	}
	doc, err := pdftext.Open(s.path)
	if err != nil {
		return &OpenError{Path: s.path, Err: err}
	}
	s.doc = pdfDocument{doc: doc}
	s.ownsDoc = true
	s.docOpened = true
	return nil
}

// Close releases resources associated with the Scanner.
// It is safe to call Close multiple times.
func (s *Scanner) Close() error {
	if s.ownsDoc && s.doc != nil {
		err := s.doc.Close()
		s.doc = nil
		s.ownsDoc = false
		s.docOpened = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Scanner instance)
// ============================================================================

// Rules replaces the rule set used for extraction. The default set resolves
// Date, Time, Total, and Vat.
//
// Example:
//
//	set, err := rules.LoadJSONFile("rules.json")
//	record, _, err := textfrompdf.Open("receipt.pdf").Rules(set).Fields()
func (s *Scanner) Rules(set *rules.Set) *Scanner {
	newScan := s.clone()
	if set == nil {
		newScan.err = fmt.Errorf("nil rule set")
		return newScan
	}
	newScan.options.rules = set
	return newScan
}

// BandHeight fixes the scanning band height in page units, overriding the
// ratio-derived default. Height must be positive.
//
// Example:
//
//	record, _, err := textfrompdf.Open("receipt.pdf").BandHeight(14).Fields()
func (s *Scanner) BandHeight(height float64) *Scanner {
	newScan := s.clone()
	if height <= 0 {
		newScan.err = fmt.Errorf("band height must be positive, got %g", height)
		return newScan
	}
	newScan.options.bandHeight = height
	return newScan
}

// HeightRatio sets the divisor used to derive the band height from each
// page's dimensions when no explicit band height is set. A larger ratio
// yields thinner bands.
//
// Example:
//
//	record, _, err := textfrompdf.Open("receipt.pdf").HeightRatio(12).Fields()
func (s *Scanner) HeightRatio(ratio float64) *Scanner {
	newScan := s.clone()
	if ratio <= 0 {
		newScan.err = fmt.Errorf("height ratio must be positive, got %g", ratio)
		return newScan
	}
	newScan.options.heightRatio = ratio
	return newScan
}

// TraverseWidth sets the column width, in page units, used when sweeping
// rightward for tabular amounts.
//
// Example:
//
//	record, _, err := textfrompdf.Open("receipt.pdf").TraverseWidth(90).Fields()
func (s *Scanner) TraverseWidth(width float64) *Scanner {
	newScan := s.clone()
	if width <= 0 {
		newScan.err = fmt.Errorf("traverse width must be positive, got %g", width)
		return newScan
	}
	newScan.options.traverseWidth = width
	return newScan
}

// CleanFunc replaces the text cleanup applied to every band before rule
// matching. The default is clean.Receipt.
//
// Example:
//
//	record, _, err := textfrompdf.Open("receipt.pdf").CleanFunc(strings.ToUpper).Fields()
func (s *Scanner) CleanFunc(fn clean.Func) *Scanner {
	newScan := s.clone()
	if fn == nil {
		newScan.err = fmt.Errorf("nil clean func")
		return newScan
	}
	newScan.options.cleaner = fn
	return newScan
}

// Logger attaches a slog logger for band-level debug tracing. Pass nil to
// disable tracing (the default).
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	record, _, err := textfrompdf.Open("receipt.pdf").Logger(logger).Fields()
func (s *Scanner) Logger(logger *slog.Logger) *Scanner {
	newScan := s.clone()
	newScan.options.logger = logger
	return newScan
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Fields scans the document and resolves the configured rules against it.
// Pages are scanned front to back, each page in top-to-bottom bands, and
// the scan stops early once every rule has resolved. The returned Record
// always carries an entry for every rule name; unresolved rules map to the
// empty string.
//
// Example:
//
//	record, warnings, err := textfrompdf.Open("receipt.pdf").Fields()
func (s *Scanner) Fields() (Record, []Warning, error) {
	if s.err != nil {
		return Record{}, s.warnings, s.err
	}
	if err := s.ensureDoc(); err != nil {
		return Record{}, s.warnings, err
	}
	if s.ownsDoc {
		defer s.Close()
	}

	rec := NewRecord(s.path, s.options.rules.Names())
	engine := rules.NewEngine(s.options.rules, s.options.cleaner, s.options.logger)
	cfg := s.options.bandConfig()

	for n := 1; n <= s.doc.PageCount(); n++ {
		page, err := s.doc.Page(n)
		if err != nil {
			s.warn("page %d: %v", n, err)
			continue
		}
		bands, err := band.NewScanner(page, cfg, s.options.cleaner)
		if err != nil {
			return rec, s.warnings, fmt.Errorf("page %d: %w", n, err)
		}
		done, err := engine.Resolve(bands, s.options.traverseWidth, rec.Fields)
		if err != nil {
			return rec, s.warnings, fmt.Errorf("page %d: %w", n, err)
		}
		if done {
			break
		}
	}
	return rec, s.warnings, nil
}

// ProcessAll runs Fields over each path using this Scanner's configuration
// and collects one Record per document that could be processed. Documents
// that fail to open or scan are reported as warnings and skipped; the batch
// continues.
//
// Example:
//
//	records, warnings, err := textfrompdf.New().ProcessAll("a.pdf", "b.pdf")
func (s *Scanner) ProcessAll(paths ...string) ([]Record, []Warning, error) {
	if s.err != nil {
		return nil, s.warnings, s.err
	}
	if len(paths) == 0 {
		return nil, s.warnings, fmt.Errorf("no documents specified")
	}

	records := make([]Record, 0, len(paths))
	warnings := append([]Warning(nil), s.warnings...)
	for _, path := range paths {
		scan := s.clone()
		scan.path = path
		scan.doc = nil
		scan.ownsDoc = false
		scan.docOpened = false

		rec, warns, err := scan.Fields()
		warnings = append(warnings, warns...)
		if err != nil {
			warnings = append(warnings, Warning{Path: path, Message: err.Error()})
			continue
		}
		records = append(records, rec)
	}
	return records, warnings, nil
}

// warn records a formatted warning.
func (s *Scanner) warn(format string, args ...any) {
	s.warnings = append(s.warnings, Warning{Path: s.path, Message: fmt.Sprintf(format, args...)})
}
