package tree

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/ziadkadry99/famtree/internal/family"
)

// Glyphs used for connectors and indentation guides.
const (
	Tee    = "├── "
	Corner = "└── "
	Bar    = "│   "
	Blank  = "    "
)

// DefaultPalette is the per-generation color cycle.
var DefaultPalette = []string{
	"red", "green", "blue", "orange", "purple",
	"teal", "brown", "#C71585", "navy", "darkmagenta",
}

// fontSizes holds the name font size per language; Devanagari needs a
// slightly larger size to stay legible next to the box-drawing glyphs.
var fontSizes = map[string]string{
	family.LangEnglish: "19px",
	family.LangNepali:  "21px",
}

// Options controls a single render.
type Options struct {
	Language string   // "en" or "np".
	Palette  []string // Empty means DefaultPalette.

	// ColorOffset shifts the palette index so that a root starting at a
	// later generation continues the color sequence of earlier roots.
	ColorOffset int
	// Indent is the number of leading spaces before the root.
	Indent int

	// Generation is the root's absolute generation; when positive every row
	// carries a data-gen attribute used by the generation ruler.
	Generation int
	// Label names the line the rows belong to (data-line attribute).
	Label string

	Icons   bool   // Prefix names with a gender icon.
	IconDir string // Directory or URL prefix of male.svg / female.svg.
}

// Output holds the synchronized text and HTML lines of a render. Colors
// holds the node color of each line, empty for dividers.
type Output struct {
	Text   []string
	HTML   []string
	Colors []string
}

// Append adds o2's lines after o's.
func (o *Output) Append(o2 Output) {
	o.Text = append(o.Text, o2.Text...)
	o.HTML = append(o.HTML, o2.HTML...)
	o.Colors = append(o.Colors, o2.Colors...)
}

// frame is the render context of one visited node.
type frame struct {
	depth       int
	prefix      string
	last        bool
	parentColor string
	guides      guides
}

type renderer struct {
	opts    Options
	palette []string
	out     Output
}

// Render walks root depth-first and returns one text line and one HTML line
// per person, in preorder.
func Render(root *family.Person, opts Options) Output {
	r := &renderer{opts: opts, palette: opts.Palette}
	if len(r.palette) == 0 {
		r.palette = DefaultPalette
	}
	if r.opts.Language == "" {
		r.opts.Language = family.LangEnglish
	}
	if root == nil {
		return r.out
	}
	r.visit(root, frame{
		prefix: strings.Repeat(" ", max(opts.Indent, 0)),
		last:   true,
	})
	return r.out
}

// ColorFor returns the palette color of a node at depth below a root whose
// color offset is offset.
func ColorFor(palette []string, depth, offset int) string {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	n := len(palette)
	return palette[((depth+offset)%n+n)%n]
}

func (r *renderer) visit(p *family.Person, f frame) {
	color := ColorFor(r.palette, f.depth, r.opts.ColorOffset)
	inherited := f.parentColor
	if inherited == "" {
		inherited = color
	}

	connector := ""
	if f.depth > 0 {
		connector = Tee
		if f.last {
			connector = Corner
		}
	}

	words := p.DisplayName(r.opts.Language) + Annotation(p)
	r.out.Text = append(r.out.Text, f.prefix+connector+words)
	r.out.HTML = append(r.out.HTML, r.htmlLine(p, f, connector, words, color, inherited))
	r.out.Colors = append(r.out.Colors, color)

	childPrefix := f.prefix
	childGuides := f.guides
	if f.depth > 0 {
		col := utf8.RuneCountInString(f.prefix)
		if f.last {
			childPrefix += Blank
			childGuides = childGuides.without(col)
		} else {
			childPrefix += Bar
			childGuides = childGuides.with(col, color)
		}
	}

	for i, c := range p.Children {
		r.visit(c, frame{
			depth:       f.depth + 1,
			prefix:      childPrefix,
			last:        i == len(p.Children)-1,
			parentColor: color,
			guides:      childGuides,
		})
	}
}

// Annotation returns the place/birth-year suffix. Both share one
// parenthetical: "(Kathmandu, 1700)".
func Annotation(p *family.Person) string {
	switch {
	case p.Place != "" && p.BirthYear != 0:
		return fmt.Sprintf("(%s, %d)", p.Place, p.BirthYear)
	case p.Place != "":
		return "(" + p.Place + ")"
	case p.BirthYear != 0:
		return fmt.Sprintf("(%d)", p.BirthYear)
	}
	return ""
}

func (r *renderer) htmlLine(p *family.Person, f frame, connector, words, color, inherited string) string {
	var b strings.Builder

	b.WriteString(`<div class="row"`)
	if r.opts.Generation > 0 {
		fmt.Fprintf(&b, ` data-gen="%d"`, r.opts.Generation+f.depth)
	}
	if r.opts.Label != "" {
		fmt.Fprintf(&b, ` data-line="%s"`, EscapeAttr(r.opts.Label))
	}
	b.WriteString(">")

	col := 0
	for _, ch := range f.prefix {
		if isGuide(ch) {
			c, ok := f.guides.color(col)
			if !ok {
				c = inherited
			}
			fmt.Fprintf(&b, `<span class="g" style="color:%s">%c</span>`, c, ch)
		} else {
			b.WriteRune(ch)
		}
		col++
	}

	if connector != "" {
		fmt.Fprintf(&b, `<span class="conn" style="color:%s">%s</span>`, inherited, connector)
	}

	if r.opts.Icons {
		if icon := genderIcon(p.Gender, r.opts.IconDir); icon != "" {
			b.WriteString(icon)
		}
	}

	fatherName, grandfatherName := "", ""
	if p.Father != nil {
		fatherName = p.Father.Name
	}
	if p.Grandfather != nil {
		grandfatherName = p.Grandfather.Name
	}
	fmt.Fprintf(&b, `<span class="name" style="color:%s; font-size: %s" data-name="%s" data-father="%s" data-grandfather="%s">%s</span>`,
		color, fontSize(r.opts.Language),
		EscapeAttr(p.Name), EscapeAttr(fatherName), EscapeAttr(grandfatherName),
		html.EscapeString(words))

	b.WriteString(markers(p))
	b.WriteString("</div>")
	return b.String()
}

// markers renders the addition/correction flags and the comment asterisk.
func markers(p *family.Person) string {
	var b strings.Builder
	note := ""
	if p.Comment != "" {
		note = fmt.Sprintf(` data-note="%s"`, EscapeAttr(p.Comment))
	}
	if p.IsAddition() {
		b.WriteString(marker("add", "+", note))
	}
	if p.IsCorrection() {
		b.WriteString(marker("fix", "#", note))
	}
	if p.Comment != "" {
		fmt.Fprintf(&b, `<a href="#" class="tip note"%s>*</a>`, note)
	}
	return b.String()
}

func marker(kind, glyph, note string) string {
	class := "mark " + kind
	if note != "" {
		class += " tip"
	}
	return fmt.Sprintf(`<b class="%s"%s>%s</b>`, class, note, glyph)
}

func genderIcon(gender, dir string) string {
	switch gender {
	case family.GenderMale, family.GenderFemale:
	default:
		return ""
	}
	src := gender + ".svg"
	if dir != "" {
		src = strings.TrimRight(dir, "/") + "/" + src
	}
	return fmt.Sprintf(`<img class="icon" src="%s" alt="%s">`, EscapeAttr(src), gender)
}

func fontSize(lang string) string {
	if s, ok := fontSizes[lang]; ok {
		return s
	}
	return fontSizes[family.LangEnglish]
}

func isGuide(ch rune) bool {
	switch ch {
	case '│', '├', '└', '─':
		return true
	}
	return false
}

// EscapeAttr escapes s for use inside a double-quoted HTML attribute.
// Newlines become character references so multi-line notes survive.
func EscapeAttr(s string) string {
	s = html.EscapeString(s)
	s = strings.ReplaceAll(s, "\r\n", "&#10;")
	return strings.ReplaceAll(s, "\n", "&#10;")
}
