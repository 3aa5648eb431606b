package rules

import (
	"fmt"
	"log/slog"

	"github.com/antonyoni/textfrompdf/band"
	"github.com/antonyoni/textfrompdf/clean"
)

// Engine resolves a rule set against the bands of one or more pages.
// Engines are stateless between calls and safe for concurrent use.
type Engine struct {
	set     *Set
	cleaner clean.Func
	logger  *slog.Logger
}

// NewEngine creates an engine for set. cleaner is used when extractors
// re-query the page; logger, when non-nil, traces band evaluation at debug
// level.
func NewEngine(set *Set, cleaner clean.Func, logger *slog.Logger) *Engine {
	return &Engine{set: set, cleaner: cleaner, logger: logger}
}

// Resolve drains bands, filling fields with rule values. Only a non-empty
// value resolves a rule: an extractor returning "" leaves its rule eligible
// for later bands (and later pages: pass the same map back in). Within a
// band the first matching rule wins; unresolved rules get a fresh chance on
// every band. Resolve reports true as soon as every rule has a non-empty
// value, without consuming the remaining bands.
func (e *Engine) Resolve(bands *band.Scanner, traverseWidth float64, fields map[string]string) (bool, error) {
	if e.resolved(fields) {
		return true, nil
	}

	for {
		b, ok, err := bands.Next()
		if err != nil {
			return false, err
		}
		if !ok {
			return e.resolved(fields), nil
		}

		if e.logger != nil {
			e.logger.Debug("scanning band", "y", b.Y, "text", b.Text)
		}

		if err := e.evaluate(b, bands.BandHeight(), traverseWidth, fields); err != nil {
			return false, err
		}

		if e.resolved(fields) {
			return true, nil
		}
	}
}

// evaluate runs the band against every unresolved rule in declaration
// order, stopping at the first match.
func (e *Engine) evaluate(b band.Band, bandHeight, traverseWidth float64, fields map[string]string) error {
	for i := range e.set.rules {
		r := &e.set.rules[i]
		if fields[r.Name] != "" {
			continue
		}

		m, ok := r.match(b.Text)
		if !ok {
			continue
		}

		value := m
		if r.Extract != nil {
			ctx := Context{
				Page:          b.Page,
				Text:          b.Text,
				Match:         m,
				X:             b.X,
				Y:             b.Y,
				Width:         b.Width,
				Height:        b.Height,
				BandHeight:    bandHeight,
				TraverseWidth: traverseWidth,
				Trigger:       r.re,
				Clean:         e.cleaner,
			}
			v, err := r.Extract(ctx)
			if err != nil {
				return fmt.Errorf("rule %q: %w", r.Name, err)
			}
			value = v
		}

		if value != "" {
			fields[r.Name] = value
			if e.logger != nil {
				e.logger.Debug("rule resolved", "rule", r.Name, "value", value)
			}
		}

		// First matching rule wins the band, resolved or not.
		return nil
	}
	return nil
}

func (e *Engine) resolved(fields map[string]string) bool {
	for _, name := range e.set.names {
		if fields[name] == "" {
			return false
		}
	}
	return true
}
