package rules

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var amountRe = regexp.MustCompile(`\d+\.\d{2}\b`)

// NormalizeAmount canonicalizes a monetary string to two decimal places
// ("012.5" -> "12.50"). It reports false when s is not a number.
func NormalizeAmount(s string) (string, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", false
	}
	return d.StringFixed(2), true
}

// amountIn returns the first monetary amount in text, canonicalized.
func amountIn(text string) string {
	m := amountRe.FindString(text)
	if m == "" {
		return ""
	}
	if v, ok := NormalizeAmount(m); ok {
		return v
	}
	return m
}

// AmountNear returns an extractor for labelled monetary fields. It takes
// the first amount following the label within the band; when the band has
// none and sweep is true, it sweeps rightward across the band in
// TraverseWidth columns looking for the label again, and reads the amount
// from the band immediately above the column where it reappears, matching the
// layout of receipts that stack a value on top of its label in a separate
// column.
//
// The extractor returns "" (rule stays unresolved) when no amount is found.
func AmountNear(sweep bool) Extractor {
	return func(ctx Context) (string, error) {
		rest := ctx.Text
		if i := strings.Index(ctx.Text, ctx.Match); i >= 0 {
			rest = ctx.Text[i+len(ctx.Match):]
		}
		if v := amountIn(rest); v != "" {
			return v, nil
		}
		if !sweep {
			return "", nil
		}
		return sweepRight(ctx)
	}
}

// sweepRight performs the secondary horizontal traversal. Sweep position is
// local to this call: every primary match starts a fresh sweep from the
// band's left edge, and no position carries over to later bands.
func sweepRight(ctx Context) (string, error) {
	w := ctx.TraverseWidth
	if w <= 0 || ctx.Trigger == nil {
		return "", nil
	}

	for x := 0.0; x+w <= ctx.Width; x += w {
		cell, err := ctx.TextAt(x, ctx.Y, w, ctx.Height)
		if err != nil {
			return "", err
		}
		if cell == "" || !ctx.Trigger.MatchString(cell) {
			continue
		}

		above, err := ctx.TextAt(x, ctx.Y+ctx.BandHeight, w, ctx.Height)
		if err != nil {
			return "", err
		}
		if v := amountIn(above); v != "" {
			return v, nil
		}
	}
	return "", nil
}
