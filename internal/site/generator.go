package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/ziadkadry99/famtree/internal/family"
	"github.com/ziadkadry99/famtree/internal/tree"
)

// TimelineEntry is one row of the ancestor timeline shown above the tree.
type TimelineEntry struct {
	Era  string `yaml:"era" koanf:"era"`
	Name string `yaml:"name" koanf:"name"`
}

// Document is a rendered tree plus everything needed to wrap it in a file.
type Document struct {
	Title    string
	Language string
	Lines    tree.Output

	// StartGen..EndGen is the generation range covered by Lines.
	StartGen, EndGen int
	Palette          []string

	Ruler     bool   // Add the fixed generation ruler.
	RulerLine string // Label of the line whose columns the ruler follows.
	FontURL   string
	Intro     template.HTML
	Timeline  []TimelineEntry
}

// pageData holds the values passed to pageTemplate.
type pageData struct {
	Title         string
	HTMLLang      string
	FontURL       string
	GenerationCSS template.CSS
	Ruler         bool
	RulerLine     string
	StartGen      int
	EndGen        int
	Generations   []int
	Intro         template.HTML
	Timeline      []TimelineEntry
	Rows          []template.HTML
}

var page = template.Must(template.New("page").Parse(pageTemplate))

// Text returns the plain-text file content for doc.
func (d Document) Text() string {
	var lines []string
	for _, e := range d.Timeline {
		lines = append(lines, e.Era+"  "+e.Name)
	}
	if len(lines) > 0 {
		lines = append(lines, tree.TextDivider)
	}
	lines = append(lines, d.Lines.Text...)
	return tree.TextBody(lines) + "\n"
}

// HTML returns the complete HTML document for doc.
func (d Document) HTML() (string, error) {
	data := pageData{
		Title:         d.Title,
		HTMLLang:      htmlLang(d.Language),
		FontURL:       d.FontURL,
		GenerationCSS: template.CSS(GenerationCSS(d.StartGen, d.EndGen, d.Palette)),
		Ruler:         d.Ruler && d.StartGen > 0 && d.EndGen >= d.StartGen,
		RulerLine:     d.RulerLine,
		StartGen:      d.StartGen,
		EndGen:        d.EndGen,
		Intro:         d.Intro,
		Timeline:      d.Timeline,
	}
	for g := d.StartGen; g > 0 && g <= d.EndGen; g++ {
		data.Generations = append(data.Generations, g)
	}
	for _, l := range d.Lines.HTML {
		// Rows are assembled by the tree renderer, which escapes all text.
		data.Rows = append(data.Rows, template.HTML(l))
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing page template: %w", err)
	}
	return buf.String(), nil
}

// GenerationCSS returns one color rule per generation for the ruler ticks
// and the .gen-cN helper classes. Generation start takes the first palette
// color, matching the renderer's offset scheme.
func GenerationCSS(start, end int, palette []string) string {
	if start <= 0 || end < start {
		return ""
	}
	var b strings.Builder
	for g := start; g <= end; g++ {
		c := tree.ColorFor(palette, g-start, 0)
		fmt.Fprintf(&b, "    .tick.c%d, .gen-c%d { color: %s; }\n", g, g, c)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderIntro converts markdown into HTML for the document introduction.
// Raw HTML in the source is dropped.
func RenderIntro(source []byte) (template.HTML, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("converting introduction: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func htmlLang(lang string) string {
	if lang == family.LangNepali {
		return "ne"
	}
	return "en"
}

// Generator writes documents to OutputDir as <BaseName>_<lang>.txt/.html.
type Generator struct {
	OutputDir string
	BaseName  string
}

// NewGenerator creates a Generator for the given directory and file stem.
func NewGenerator(outputDir, baseName string) *Generator {
	return &Generator{OutputDir: outputDir, BaseName: baseName}
}

// Paths returns the text and HTML paths used for lang.
func (g *Generator) Paths(lang string) (string, string) {
	stem := filepath.Join(g.OutputDir, fmt.Sprintf("%s_%s", g.BaseName, lang))
	return stem + ".txt", stem + ".html"
}

// Write renders doc to both files and returns their paths.
func (g *Generator) Write(doc Document) (string, string, error) {
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating output dir: %w", err)
	}
	textPath, htmlPath := g.Paths(doc.Language)

	if err := os.WriteFile(textPath, []byte(doc.Text()), 0o644); err != nil {
		return "", "", fmt.Errorf("writing %s: %w", textPath, err)
	}
	html, err := doc.HTML()
	if err != nil {
		return "", "", err
	}
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return "", "", fmt.Errorf("writing %s: %w", htmlPath, err)
	}
	return textPath, htmlPath, nil
}

// WriteFile writes data under OutputDir and returns the full path.
func (g *Generator) WriteFile(name string, data []byte) (string, error) {
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(g.OutputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
