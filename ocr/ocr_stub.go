//go:build !ocr

// Package ocr recognizes text in scanned receipt images so they can be
// band-scanned like native PDFs.
//
// This is the stub implementation used when the "ocr" build tag is not set.
// All entry points return ErrOCRNotEnabled.
//
// To enable OCR, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import "errors"

// ErrOCRNotEnabled is returned when OCR functions are called but OCR
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client wraps Tesseract for OCR operations. In this stub build every
// operation fails with ErrOCRNotEnabled.
type Client struct{}

// New returns ErrOCRNotEnabled in the stub build.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op in the stub build.
func (c *Client) Close() error {
	return nil
}

// SetLanguage returns ErrOCRNotEnabled in the stub build.
func (c *Client) SetLanguage(string) error {
	return ErrOCRNotEnabled
}

// RecognizeImage returns ErrOCRNotEnabled in the stub build.
func (c *Client) RecognizeImage([]byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// Lines returns ErrOCRNotEnabled in the stub build.
func (c *Client) Lines([]byte) ([]Line, error) {
	return nil, ErrOCRNotEnabled
}

// OpenImage returns ErrOCRNotEnabled in the stub build.
func OpenImage(string) (*ImagePage, error) {
	return nil, ErrOCRNotEnabled
}
