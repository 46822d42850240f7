package family

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/famtree/internal/walker"
)

// Line is one root ancestor together with the metadata needed to align it
// with other roots: a short label and its absolute generation number.
type Line struct {
	Label      string
	Generation int
	Root       *Person
}

// dataset is the on-disk shape of a YAML dataset file.
type dataset struct {
	Lines []struct {
		Label      string   `yaml:"label"`
		Generation int      `yaml:"generation"`
		Root       Snapshot `yaml:"root"`
	} `yaml:"lines"`
}

// NewLine builds a Line and checks that the root carries a generation number.
func NewLine(label string, generation int, root *Person) (Line, error) {
	if root == nil {
		return Line{}, ErrNilPerson
	}
	if generation <= 0 {
		generation = root.Generation
	}
	if generation <= 0 {
		return Line{}, fmt.Errorf("line %q (root %q): %w", label, root.Name, ErrMissingGeneration)
	}
	root.Generation = generation
	return Line{Label: label, Generation: generation, Root: root}, nil
}

// LoadFile decodes a YAML dataset file into lines, in declaration order.
func LoadFile(path string) ([]Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	return decode(data, path)
}

func decode(data []byte, source string) ([]Line, error) {
	var ds dataset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", source, err)
	}

	lines := make([]Line, 0, len(ds.Lines))
	for i, l := range ds.Lines {
		if l.Root.Name == "" {
			return nil, fmt.Errorf("dataset %s: line %d has no root name", source, i+1)
		}
		label := l.Label
		if label == "" {
			label = fmt.Sprintf("line%d", i+1)
		}
		line, err := NewLine(label, l.Generation, Deserialize(l.Root))
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", source, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// LoadDir loads every dataset file discovered by the walker, in path order.
// Labels must be unique across files.
func LoadDir(cfg walker.Config) ([]Line, error) {
	files, err := walker.Walk(cfg)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no dataset files found in %s", cfg.RootDir)
	}

	var all []Line
	seen := make(map[string]string)
	for _, f := range files {
		lines, err := LoadFile(f.Path)
		if err != nil {
			return nil, err
		}
		for _, l := range lines {
			if prev, ok := seen[l.Label]; ok {
				return nil, fmt.Errorf("duplicate line label %q in %s (first seen in %s)", l.Label, f.RelPath, prev)
			}
			seen[l.Label] = f.RelPath
		}
		all = append(all, lines...)
	}
	return all, nil
}

// EarliestGeneration returns the smallest generation number among lines.
func EarliestGeneration(lines []Line) int {
	earliest := 0
	for i, l := range lines {
		if i == 0 || l.Generation < earliest {
			earliest = l.Generation
		}
	}
	return earliest
}

// GenerationRange returns the first and last absolute generation covered
// by lines, counting every descendant.
func GenerationRange(lines []Line) (start, end int) {
	for i, l := range lines {
		last := l.Generation + l.Root.MaxDepth()
		if i == 0 || l.Generation < start {
			start = l.Generation
		}
		if i == 0 || last > end {
			end = last
		}
	}
	return start, end
}
