package rules

import (
	"strings"
	"testing"

	"github.com/antonyoni/textfrompdf/clean"
)

func TestScriptExtractor(t *testing.T) {
	ex, err := ScriptExtractor(`(band.text.match(/\d+\.\d{2}/) || [""])[0]`)
	if err != nil {
		t.Fatalf("ScriptExtractor: %v", err)
	}

	got, err := ex(Context{Text: "TOTAL 12.50"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "12.50" {
		t.Errorf("got %q, want 12.50", got)
	}

	// No match: the script yields "" and the rule stays unresolved.
	got, err = ex(Context{Text: "no amounts here"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestScriptExtractorNullMeansUnresolved(t *testing.T) {
	ex, err := ScriptExtractor(`null`)
	if err != nil {
		t.Fatalf("ScriptExtractor: %v", err)
	}

	got, err := ex(Context{Text: "anything"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty for null completion value", got)
	}
}

func TestScriptExtractorTextAt(t *testing.T) {
	page := &fakePage{
		width:  200,
		height: 90,
		texts:  []placed{{x: 10, y: 75, s: "9,99"}},
	}

	// Read the band above the current one; cleanup applies to re-extracted
	// text just like band text.
	ex, err := ScriptExtractor(`textAt(band.x, band.y + band.bandHeight, band.width, band.height)`)
	if err != nil {
		t.Fatalf("ScriptExtractor: %v", err)
	}

	got, err := ex(Context{
		Page:       page,
		X:          0,
		Y:          30,
		Width:      200,
		Height:     30,
		BandHeight: 30,
		Clean:      clean.Receipt,
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "9.99" {
		t.Errorf("got %q, want cleaned 9.99", got)
	}
}

func TestScriptExtractorCompileError(t *testing.T) {
	_, err := ScriptExtractor(`this is not javascript ((`)
	if err == nil {
		t.Fatal("expected compile error")
	}
	if !strings.Contains(err.Error(), "compiling") {
		t.Errorf("error %q should mention compilation", err)
	}
}
