// Command textfrompdf extracts receipt fields from one or more PDF files
// and prints them as JSON (the default) or CSV.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/antonyoni/textfrompdf"
	"github.com/antonyoni/textfrompdf/rules"
)

type options struct {
	paths         []string
	rulesPath     string
	bandHeight    float64
	heightRatio   float64
	traverseWidth float64
	csv           bool
	verbose       bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "textfrompdf: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "textfrompdf: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: textfrompdf [flags] <pdf> [<pdf>...]\n")
		flag.PrintDefaults()
	}
	rulesPath := flag.String("rules", "", "JSON file with extraction rules (default: built-in Date/Time/Total/Vat)")
	bandHeight := flag.Float64("band-height", 0, "Fixed band height in page units (default: derived per page)")
	heightRatio := flag.Float64("height-ratio", 0, "Divisor used to derive band height from page dimensions")
	traverseWidth := flag.Float64("traverse-width", 0, "Column width in page units for tabular amount sweeps")
	csvOut := flag.Bool("csv", false, "Emit CSV instead of JSON")
	verbose := flag.Bool("v", false, "Trace band scanning to stderr")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return options{}, fmt.Errorf("missing pdf path")
	}
	opts.paths = flag.Args()
	opts.rulesPath = *rulesPath
	opts.bandHeight = *bandHeight
	opts.heightRatio = *heightRatio
	opts.traverseWidth = *traverseWidth
	opts.csv = *csvOut
	opts.verbose = *verbose
	return opts, nil
}

func run(opts options) error {
	scan := textfrompdf.New()

	if opts.rulesPath != "" {
		set, err := rules.LoadJSONFile(opts.rulesPath)
		if err != nil {
			return fmt.Errorf("load rules: %w", err)
		}
		scan = scan.Rules(set)
	}
	if opts.bandHeight > 0 {
		scan = scan.BandHeight(opts.bandHeight)
	}
	if opts.heightRatio > 0 {
		scan = scan.HeightRatio(opts.heightRatio)
	}
	if opts.traverseWidth > 0 {
		scan = scan.TraverseWidth(opts.traverseWidth)
	}
	if opts.verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		scan = scan.Logger(logger)
	}

	records, warnings, err := scan.ProcessAll(opts.paths...)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "textfrompdf: warning: %s\n", w)
	}

	if opts.csv {
		return textfrompdf.WriteCSV(os.Stdout, records)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
