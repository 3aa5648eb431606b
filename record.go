package textfrompdf

import (
	"encoding/csv"
	"io"
	"sort"
)

// Record holds the fields extracted from a single document. Fields always
// contains an entry per rule name; rules that never matched map to "".
type Record struct {
	Path   string
	Fields map[string]string
}

// NewRecord returns a Record with every named field present and empty.
func NewRecord(path string, names []string) Record {
	fields := make(map[string]string, len(names))
	for _, name := range names {
		fields[name] = ""
	}
	return Record{Path: path, Fields: fields}
}

// Get returns the value extracted for the named rule, or "" if the rule
// did not resolve or does not exist.
func (r Record) Get(name string) string {
	return r.Fields[name]
}

// Resolved reports whether every field carries a non-empty value.
func (r Record) Resolved() bool {
	for _, v := range r.Fields {
		if v == "" {
			return false
		}
	}
	return true
}

// names returns the record's field names in sorted order so output columns
// are stable across runs.
func (r Record) names() []string {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteCSV writes the records as CSV with a header row. The first column is
// the document path, followed by one column per field name in sorted order.
// Column order is taken from the first record; records missing a column
// write an empty cell.
func WriteCSV(w io.Writer, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)

	names := records[0].names()
	header := append([]string{"path"}, names...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		row := make([]string, 0, len(header))
		row = append(row, rec.Path)
		for _, name := range names {
			row = append(row, rec.Fields[name])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
