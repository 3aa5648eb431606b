package rules

// Default rule patterns. Band text has already been through cleanup, so
// dates arrive dotted or slashed (commas and hyphens become periods) and
// decimal separators are always periods.
const (
	datePattern  = `\b\d{1,2}\.\d{1,2}\.(?:\d{4}|\d{2})\b|\b\d{1,2}/\d{1,2}/(?:\d{4}|\d{2})\b`
	timePattern  = `\b\d{1,2}:\d{2}(?::\d{2})?\b`
	totalPattern = `(?i)\btotal\b`
	vatPattern   = `(?i)\b(?:vat|tax|mwst|tva|btw)\b`
)

// DefaultSet returns the receipt rule set: Date, Time, Total, and Vat.
// Date and Time take their matched substring verbatim; Total takes the
// amount following its label within the band; Vat additionally sweeps
// rightward for tabular receipts that stack the value above the label in a
// separate column.
func DefaultSet() *Set {
	set, err := NewSet(
		Rule{Name: "Date", Pattern: datePattern},
		Rule{Name: "Time", Pattern: timePattern},
		Rule{Name: "Total", Pattern: totalPattern, Fuzzy: "total", Extract: AmountNear(false)},
		Rule{Name: "Vat", Pattern: vatPattern, Extract: AmountNear(true)},
	)
	if err != nil {
		// The default patterns are constants; failing to compile them is a
		// programming error.
		panic(err)
	}
	return set
}
