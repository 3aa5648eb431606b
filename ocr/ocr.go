//go:build ocr

// Package ocr recognizes text in scanned receipt images so they can be
// band-scanned like native PDFs.
//
// This package wraps the Tesseract OCR engine via gosseract and requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Build with the "ocr" tag to enable it; without the tag a stub is compiled
// whose entry points return ErrOCRNotEnabled.
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"

	// Receipt scans arrive as PNG, JPEG, TIFF, or BMP.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string
// (e.g., "eng+fra"). Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// RecognizeImage performs OCR on image data (PNG, TIFF, JPEG, etc.).
// Returns the recognized text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// Lines recognizes image data and returns the text lines with their
// bounding boxes in image coordinates (origin top-left, y increasing
// downward).
func (c *Client) Lines(imageData []byte) ([]Line, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	lines := make([]Line, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		lines = append(lines, Line{
			Text:   text,
			X:      float64(b.Box.Min.X),
			Y:      float64(b.Box.Min.Y),
			Width:  float64(b.Box.Dx()),
			Height: float64(b.Box.Dy()),
		})
	}
	return lines, nil
}

// OpenImage runs OCR on the receipt image at path and returns it as a page
// the band scanner can traverse. Line coordinates are flipped to the
// bottom-left origin the scanner expects.
func OpenImage(path string) (*ImagePage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	client, err := New()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	lines, err := client.Lines(data)
	if err != nil {
		return nil, fmt.Errorf("recognizing %s: %w", path, err)
	}

	height := float64(cfg.Height)
	for i := range lines {
		// Image y grows downward; page y grows upward from the bottom.
		lines[i].Y = height - (lines[i].Y + lines[i].Height)
	}

	return NewImagePage(float64(cfg.Width), height, lines), nil
}
