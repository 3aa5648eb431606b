package rules

import (
	"fmt"

	"github.com/dop251/goja"
)

// ScriptExtractor compiles a JavaScript snippet into an Extractor, so rule
// sets loaded from configuration can carry custom extraction logic without
// recompiling the host program.
//
// The script's completion value (its last evaluated expression) becomes the
// rule's value; undefined or null means "unresolved, keep trying". Inside
// the script:
//
//	band: {text, match, x, y, width, height, bandHeight, traverseWidth}
//	textAt(x, y, width, height): re-extracts and cleans page text
//
// For example, a rule that grabs the first amount after its label:
//
//	(band.text.match(/\d+\.\d{2}/) || [""])[0]
//
// The snippet is compiled once; each invocation runs in a fresh VM, so
// scripted rules are safe for concurrent use like any other rule.
func ScriptExtractor(src string) (Extractor, error) {
	prog, err := goja.Compile("extractor", src, true)
	if err != nil {
		return nil, fmt.Errorf("compiling extractor script: %w", err)
	}

	return func(ctx Context) (string, error) {
		vm := goja.New()
		if err := vm.Set("band", map[string]interface{}{
			"text":          ctx.Text,
			"match":         ctx.Match,
			"x":             ctx.X,
			"y":             ctx.Y,
			"width":         ctx.Width,
			"height":        ctx.Height,
			"bandHeight":    ctx.BandHeight,
			"traverseWidth": ctx.TraverseWidth,
		}); err != nil {
			return "", fmt.Errorf("binding band context: %w", err)
		}
		if err := vm.Set("textAt", func(x, y, width, height float64) (string, error) {
			return ctx.TextAt(x, y, width, height)
		}); err != nil {
			return "", fmt.Errorf("binding textAt: %w", err)
		}

		v, err := vm.RunProgram(prog)
		if err != nil {
			return "", fmt.Errorf("running extractor script: %w", err)
		}
		if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
			return "", nil
		}
		return v.String(), nil
	}, nil
}
