package textfrompdf

import (
	"fmt"
	"strings"
)

// Warning reports a non-fatal problem encountered while processing a
// document, such as an unreadable page or a batch member that failed to
// open. Warnings never abort a scan.
type Warning struct {
	Path    string
	Message string
}

func (w Warning) String() string {
	if w.Path == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Path, w.Message)
}

// FormatWarnings joins warnings into a single newline-separated string,
// suitable for logging.
//
// Example:
//
//	if len(warnings) > 0 {
//	    log.Println(textfrompdf.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
