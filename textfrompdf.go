// Package textfrompdf extracts structured fields (date, time, total, tax)
// from receipt PDFs by scanning each page in horizontal bands and matching
// the cleaned band text against a configurable set of regex rules.
//
// Basic usage:
//
//	record, warnings, err := textfrompdf.Open("receipt.pdf").Fields()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(record.Get("Total"))
//
// With options:
//
//	record, _, err := textfrompdf.Open("receipt.pdf").
//	    BandHeight(14).
//	    TraverseWidth(90).
//	    Fields()
//
// Batches keep going past documents that fail to open:
//
//	records, warnings, err := textfrompdf.New().ProcessAll("a.pdf", "b.pdf")
//
// For custom rule sets and cleanup pipelines, see the rules and clean
// packages.
package textfrompdf

// Open prepares a scan of the PDF at path and returns a Scanner for fluent
// configuration. The underlying document is opened lazily by the terminal
// operation, which also closes it.
//
// Example:
//
//	record, warnings, err := textfrompdf.Open("receipt.pdf").Fields()
func Open(path string) *Scanner {
	return &Scanner{
		path:    path,
		options: defaultOptions(),
	}
}

// New returns a Scanner with no document bound, useful as a configuration
// prototype for ProcessAll.
//
// Example:
//
//	records, _, err := textfrompdf.New().BandHeight(14).ProcessAll(paths...)
func New() *Scanner {
	return &Scanner{options: defaultOptions()}
}

// FromDocument creates a Scanner over an already-open Document, such as an
// OCR-backed page set or a fake in tests. The caller remains responsible for
// closing the document.
func FromDocument(doc Document) *Scanner {
	return &Scanner{
		doc:       doc,
		docOpened: true,
		options:   defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	set := textfrompdf.Must(rules.LoadJSONFile("rules.json"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustFields wraps a call to Fields() and panics if the error is non-nil,
// discarding warnings. It is intended for scripts and tests.
//
// Example:
//
//	record := textfrompdf.MustFields(textfrompdf.Open("receipt.pdf").Fields())
func MustFields(rec Record, _ []Warning, err error) Record {
	if err != nil {
		panic(err)
	}
	return rec
}
