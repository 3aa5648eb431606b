package textfrompdf

import (
	"log/slog"

	"github.com/antonyoni/textfrompdf/band"
	"github.com/antonyoni/textfrompdf/clean"
	"github.com/antonyoni/textfrompdf/rules"
)

// scanOptions holds configuration for a scan.
type scanOptions struct {
	// Geometry. bandHeight of zero means "derive per page from heightRatio".
	bandHeight    float64
	heightRatio   float64
	traverseWidth float64

	// Pipeline.
	cleaner clean.Func
	rules   *rules.Set

	// Diagnostics. nil means no tracing.
	logger *slog.Logger
}

// defaultOptions returns the default scan options: derived band height,
// the standard receipt cleanup, and the default rule set.
func defaultOptions() scanOptions {
	cfg := band.DefaultConfig()
	return scanOptions{
		heightRatio:   cfg.HeightRatio,
		traverseWidth: cfg.TraverseWidth,
		cleaner:       clean.Receipt,
		rules:         rules.DefaultSet(),
	}
}

// clone creates a copy of scanOptions. Rule sets and cleaners are immutable,
// so a shallow copy is a deep one.
func (o scanOptions) clone() scanOptions {
	return o
}

// bandConfig converts the options to the band scanner's geometry config.
func (o scanOptions) bandConfig() band.Config {
	return band.Config{
		Height:        o.bandHeight,
		HeightRatio:   o.heightRatio,
		TraverseWidth: o.traverseWidth,
	}
}
