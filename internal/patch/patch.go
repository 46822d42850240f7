// Package patch rewrites the generated regions of an existing static site
// page: the embedded genealogy data, the generation tick colors and the
// generation range constants.
//
// Regions written by this package are wrapped in marker comments and are
// found by those markers on later runs. Files that predate the markers are
// handled with structural regular expressions, which is text surgery and
// only as reliable as the page's markup is regular.
package patch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ziadkadry99/famtree/internal/flatten"
	"github.com/ziadkadry99/famtree/internal/tree"
)

const (
	dataBegin  = "/* famtree:data:begin */"
	dataEnd    = "/* famtree:data:end */"
	ticksBegin = "/* famtree:ticks:begin */"
	ticksEnd   = "/* famtree:ticks:end */"

	// DefaultTickAnchor is the generation whose tick rule identifies the
	// legacy color block when a page has several.
	DefaultTickAnchor = 32
)

var (
	dataRegion  = regexp.MustCompile(`\n?` + regexp.QuoteMeta(dataBegin) + `(?s:.*?)` + regexp.QuoteMeta(dataEnd))
	legacyData  = regexp.MustCompile(`(?m)^[ \t]*const genealogyData(?:_\w+)?\s*=\s*\[(?s:.*?)\][ \t]*;[ \t]*(?:\r?\n|$)`)
	ticksRegion = regexp.MustCompile(regexp.QuoteMeta(ticksBegin) + `(?s:.*?)` + regexp.QuoteMeta(ticksEnd) + `[ \t]*\n?`)
	legacyTicks = regexp.MustCompile(`(?m)(?:^[ \t]*\.tick\.c\d+[ \t]*\{[^}\n]*\}[ \t]*\r?\n)+`)
	genRange    = regexp.MustCompile(`const START_GEN\s*=\s*-?\d+\s*,\s*END_GEN\s*=\s*-?\d+\s*;`)
	colorsDecl  = regexp.MustCompile(`const COLORS\s*=\s*\{[^{}]*\}\s*;`)
	scriptOpen  = regexp.MustCompile(`<script(?:\s+type="(?:text/javascript|module)")?\s*>`)
	blankRuns   = regexp.MustCompile(`\n(?:[ \t]*\r?\n){2,}`)
	identUnsafe = regexp.MustCompile(`\W`)
)

// Input is everything the patcher writes into a page.
type Input struct {
	// Labels orders the per-line data blocks; ByLabel holds their records.
	Labels  []string
	ByLabel map[string][]flatten.Record
	// Merged is written as the unsuffixed genealogyData declaration.
	Merged []flatten.Record

	StartGen, EndGen int
	Palette          []string
	// TickAnchor selects the legacy tick block; zero means DefaultTickAnchor.
	TickAnchor int
}

// Apply returns doc with every generated region replaced. Applying the same
// input to its own output returns the output unchanged.
func Apply(doc string, in Input) (string, error) {
	if in.EndGen < in.StartGen {
		return "", fmt.Errorf("patch: invalid generation range %d..%d", in.StartGen, in.EndGen)
	}
	block, err := dataBlock(in)
	if err != nil {
		return "", err
	}

	doc = normalize(doc)
	doc = replaceData(doc, block)
	doc = replaceTicks(doc, in)
	doc = replaceConstants(doc, in)
	return normalize(doc), nil
}

// File patches the page at path in place. It reports whether the file
// content changed; an unchanged file is not rewritten.
func File(path string, in Input) (bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading site file %s: %w", path, err)
	}
	out, err := Apply(string(src), in)
	if err != nil {
		return false, err
	}
	if out == string(src) {
		return false, nil
	}
	if err := writeAtomic(path, []byte(out)); err != nil {
		return false, err
	}
	return true, nil
}

func dataBlock(in Input) (string, error) {
	var b strings.Builder
	b.WriteString(dataBegin + "\n")
	for _, label := range in.Labels {
		if err := writeDecl(&b, "genealogyData_"+identUnsafe.ReplaceAllString(label, "_"), in.ByLabel[label]); err != nil {
			return "", err
		}
	}
	if err := writeDecl(&b, "genealogyData", in.Merged); err != nil {
		return "", err
	}
	b.WriteString(dataEnd)
	return b.String(), nil
}

func writeDecl(b *strings.Builder, name string, records []flatten.Record) error {
	if records == nil {
		records = []flatten.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("patch: encoding %s: %w", name, err)
	}
	fmt.Fprintf(b, "const %s = %s;\n", name, data)
	return nil
}

// replaceData drops every previous data declaration and inserts block right
// after the first inline script tag, or in a new script before </body>.
func replaceData(doc, block string) string {
	doc = dataRegion.ReplaceAllLiteralString(doc, "")
	doc = legacyData.ReplaceAllLiteralString(doc, "")

	if loc := scriptOpen.FindStringIndex(doc); loc != nil {
		return doc[:loc[1]] + "\n" + block + doc[loc[1]:]
	}
	script := "<script>\n" + block + "\n</script>\n"
	if i := strings.LastIndex(doc, "</body>"); i >= 0 {
		return doc[:i] + script + doc[i:]
	}
	return doc + "\n" + script
}

func tickRules(in Input, indent string) string {
	var b strings.Builder
	b.WriteString(indent + ticksBegin + "\n")
	for g := in.StartGen; g <= in.EndGen; g++ {
		fmt.Fprintf(&b, "%s.tick.c%d { color: %s; }\n", indent, g, tree.ColorFor(in.Palette, g-in.StartGen, 0))
	}
	b.WriteString(indent + ticksEnd + "\n")
	return b.String()
}

// replaceTicks regenerates the .tick.c<N> rules: inside the marker region if
// present, otherwise over the legacy block holding the anchor generation (or
// the first block), otherwise at the end of the first style element.
func replaceTicks(doc string, in Input) string {
	if loc := ticksRegion.FindStringIndex(doc); loc != nil {
		indent := lineIndent(doc, loc[0])
		return doc[:loc[0]-len(indent)] + tickRules(in, indent) + doc[loc[1]:]
	}

	if loc := anchoredTickBlock(doc, in.TickAnchor); loc != nil {
		indent := leadingSpace(doc[loc[0]:loc[1]])
		return doc[:loc[0]] + tickRules(in, indent) + doc[loc[1]:]
	}

	if i := strings.Index(doc, "</style>"); i >= 0 {
		rules := tickRules(in, "    ")
		lineStart := strings.LastIndexByte(doc[:i], '\n') + 1
		if strings.TrimLeft(doc[lineStart:i], " \t") == "" {
			i = lineStart
		} else {
			rules = "\n" + rules
		}
		return doc[:i] + rules + doc[i:]
	}
	style := "<style>\n" + tickRules(in, "    ") + "</style>\n"
	if i := strings.Index(doc, "</head>"); i >= 0 {
		return doc[:i] + style + doc[i:]
	}
	return style + doc
}

func anchoredTickBlock(doc string, anchor int) []int {
	if anchor == 0 {
		anchor = DefaultTickAnchor
	}
	blocks := legacyTicks.FindAllStringIndex(doc, -1)
	if len(blocks) == 0 {
		return nil
	}
	anchorRule := regexp.MustCompile(fmt.Sprintf(`\.tick\.c%d\b`, anchor))
	for _, loc := range blocks {
		if anchorRule.MatchString(doc[loc[0]:loc[1]]) {
			return loc
		}
	}
	return blocks[0]
}

// replaceConstants rewrites START_GEN/END_GEN and COLORS, injecting them
// after the data block when absent.
func replaceConstants(doc string, in Input) string {
	rangeDecl := fmt.Sprintf("const START_GEN = %d, END_GEN = %d;", in.StartGen, in.EndGen)

	var pairs []string
	for g := in.StartGen; g <= in.EndGen; g++ {
		pairs = append(pairs, fmt.Sprintf(`%d: "c%d"`, g, g))
	}
	colors := "const COLORS = {" + strings.Join(pairs, ", ") + "};"

	if genRange.MatchString(doc) {
		doc = genRange.ReplaceAllLiteralString(doc, rangeDecl)
	} else {
		doc = insertAfter(doc, dataEnd, "\n"+rangeDecl)
	}
	if colorsDecl.MatchString(doc) {
		doc = colorsDecl.ReplaceAllLiteralString(doc, colors)
	} else {
		doc = insertAfter(doc, rangeDecl, "\n"+colors)
	}
	return doc
}

func insertAfter(doc, anchor, text string) string {
	i := strings.Index(doc, anchor)
	if i < 0 {
		return doc
	}
	i += len(anchor)
	return doc[:i] + text + doc[i:]
}

// lineIndent returns the spaces and tabs between the start of the line
// containing pos and pos itself.
func lineIndent(doc string, pos int) string {
	start := strings.LastIndexByte(doc[:pos], '\n') + 1
	if strings.TrimLeft(doc[start:pos], " \t") != "" {
		return ""
	}
	return doc[start:pos]
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

func normalize(doc string) string {
	return blankRuns.ReplaceAllLiteralString(doc, "\n\n")
}

// writeAtomic writes data to a temp file next to path and renames it over
// path, keeping the original permissions.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".famtree-patch-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	if info, err := os.Stat(path); err == nil {
		_ = os.Chmod(tmpName, info.Mode())
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename temp to %s: %w", path, err)
	}
	return nil
}
