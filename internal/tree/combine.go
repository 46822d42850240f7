package tree

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/famtree/internal/family"
)

// Section dividers inserted between roots.
const (
	TextDivider = "================================================================"
	HTMLDivider = `<hr class="divider">`
)

// CombineOptions controls a multi-root render.
type CombineOptions struct {
	Options
	// AlignRoots indents each root by four spaces per generation it starts
	// after the earliest root, keeping generation columns aligned.
	AlignRoots bool
}

// Combine renders each line independently and concatenates the results,
// separated by dividers. All roots share the batch's earliest generation,
// from which each root's color offset and indentation are derived.
func Combine(lines []family.Line, opts CombineOptions) (Output, error) {
	var out Output
	if len(lines) == 0 {
		return out, nil
	}
	for _, l := range lines {
		if l.Generation <= 0 {
			return Output{}, fmt.Errorf("rendering line %q: %w", l.Label, family.ErrMissingGeneration)
		}
	}
	earliest := family.EarliestGeneration(lines)

	for i, l := range lines {
		o := opts.Options
		o.ColorOffset = opts.ColorOffset + l.Generation - earliest
		o.Generation = l.Generation
		o.Label = l.Label
		if opts.AlignRoots {
			o.Indent = opts.Indent + 4*(l.Generation-earliest)
		}
		out.Append(Render(l.Root, o))

		if i < len(lines)-1 {
			out.Text = append(out.Text, TextDivider)
			out.HTML = append(out.HTML, HTMLDivider)
			out.Colors = append(out.Colors, "")
		}
	}
	return out, nil
}

// TextBody joins text lines the way they are written to disk.
func TextBody(lines []string) string {
	return strings.Join(lines, "\n")
}
