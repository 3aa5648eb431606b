package rules

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Rule sets are versioned configuration data: pattern tweaks should ship as
// config changes, not code changes. The JSON shape is
//
//	{
//	  "rules": [
//	    {"name": "Date", "pattern": "\\b\\d{1,2}/\\d{1,2}/\\d{4}\\b"},
//	    {"name": "Total", "pattern": "(?i)\\btotal\\b", "amount": true},
//	    {"name": "Vat", "pattern": "(?i)\\bvat\\b", "amount": true, "sweep": true},
//	    {"name": "Card", "pattern": "(?i)card", "script": "(band.text.match(/\\*{4}\\d{4}/) || [\"\"])[0]"}
//	  ]
//	}
//
// Rules keep their file order. "amount" selects the labelled-amount
// extractor, "sweep" enables its rightward sweep, and "script" supplies a
// JavaScript extractor body (see ScriptExtractor); "script" wins when both
// are present.
type ruleFile struct {
	Rules []ruleConfig `json:"rules"`
}

type ruleConfig struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
	Fuzzy   string `json:"fuzzy,omitempty"`
	Amount  bool   `json:"amount,omitempty"`
	Sweep   bool   `json:"sweep,omitempty"`
	Script  string `json:"script,omitempty"`
}

// LoadJSON reads a rule set from JSON configuration.
func LoadJSON(r io.Reader) (*Set, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var f ruleFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding rule file: %w", err)
	}

	rs := make([]Rule, 0, len(f.Rules))
	for _, rc := range f.Rules {
		rule := Rule{Name: rc.Name, Pattern: rc.Pattern, Fuzzy: rc.Fuzzy}
		switch {
		case rc.Script != "":
			ex, err := ScriptExtractor(rc.Script)
			if err != nil {
				return nil, fmt.Errorf("rule %q: %w", rc.Name, err)
			}
			rule.Extract = ex
		case rc.Amount:
			rule.Extract = AmountNear(rc.Sweep)
		}
		rs = append(rs, rule)
	}

	return NewSet(rs...)
}

// LoadJSONFile reads a rule set from a JSON file on disk.
func LoadJSONFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rule file: %w", err)
	}
	defer f.Close()
	return LoadJSON(f)
}
