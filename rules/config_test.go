package rules

import (
	"strings"
	"testing"
)

func TestLoadJSON(t *testing.T) {
	src := `{
		"rules": [
			{"name": "Date", "pattern": "\\b\\d{1,2}/\\d{1,2}/\\d{4}\\b"},
			{"name": "Total", "pattern": "(?i)\\btotal\\b", "fuzzy": "total", "amount": true},
			{"name": "Vat", "pattern": "(?i)\\bvat\\b", "amount": true, "sweep": true},
			{"name": "Card", "pattern": "(?i)card", "script": "(band.text.match(/x\\d+/) || [\"\"])[0]"}
		]
	}`

	set, err := LoadJSON(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}

	wantNames := []string{"Date", "Total", "Vat", "Card"}
	names := set.Names()
	if len(names) != len(wantNames) {
		t.Fatalf("got %d rules, want %d", len(names), len(wantNames))
	}
	for i, want := range wantNames {
		if names[i] != want {
			t.Errorf("rule %d = %q, want %q (file order must be kept)", i, names[i], want)
		}
	}

	// Exercise the loaded set end to end: amount extractor and script both
	// resolve from band text.
	page := &fakePage{
		width:  200,
		height: 90,
		texts: []placed{
			{x: 10, y: 70, s: "TOTAL 12.50"},
			{x: 10, y: 40, s: "card x4242"},
		},
	}
	fields := resolveAll(t, page, set, 30, 60)
	if fields["Total"] != "12.50" {
		t.Errorf("Total = %q, want 12.50", fields["Total"])
	}
	if fields["Card"] != "x4242" {
		t.Errorf("Card = %q, want x4242", fields["Card"])
	}
}

func TestLoadJSONErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "malformed json",
			src:     `{"rules": [`,
			wantErr: "decoding rule file",
		},
		{
			name:    "unknown field",
			src:     `{"rules": [{"name": "X", "pattern": "x", "bogus": true}]}`,
			wantErr: "decoding rule file",
		},
		{
			name:    "bad pattern names rule",
			src:     `{"rules": [{"name": "Broken", "pattern": "("}]}`,
			wantErr: `rule "Broken"`,
		},
		{
			name:    "bad script names rule",
			src:     `{"rules": [{"name": "Scripted", "pattern": "x", "script": "((("}]}`,
			wantErr: `rule "Scripted"`,
		},
		{
			name:    "duplicate names",
			src:     `{"rules": [{"name": "A", "pattern": "x"}, {"name": "A", "pattern": "y"}]}`,
			wantErr: "duplicate rule name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadJSON(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}
