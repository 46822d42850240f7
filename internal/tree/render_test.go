package tree

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ziadkadry99/famtree/internal/family"
)

// build attaches children described as parent -> names.
func build(t *testing.T, root string, edges map[string][]string) (*family.Person, map[string]*family.Person) {
	t.Helper()
	nodes := map[string]*family.Person{root: family.NewPerson(root, 0)}
	var attach func(name string)
	attach = func(name string) {
		for _, c := range edges[name] {
			child := family.NewPerson(c, 0)
			nodes[c] = child
			if err := family.AttachChild(nodes[name], child); err != nil {
				t.Fatal(err)
			}
			attach(c)
		}
	}
	attach(root)
	return nodes[root], nodes
}

func TestRenderEndToEnd(t *testing.T) {
	root, _ := build(t, "A", map[string][]string{
		"A": {"B", "C"},
		"C": {"D"},
	})
	out := Render(root, Options{})

	want := []string{"A", "├── B", "└── C", "    └── D"}
	if len(out.Text) != len(want) {
		t.Fatalf("text lines = %q, want %q", out.Text, want)
	}
	for i := range want {
		if out.Text[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, out.Text[i], want[i])
		}
	}
	if len(out.HTML) != len(out.Text) {
		t.Errorf("html lines = %d, text lines = %d", len(out.HTML), len(out.Text))
	}
}

func TestRenderOneLinePerPersonInPreorder(t *testing.T) {
	root, _ := build(t, "R", map[string][]string{
		"R":  {"A", "B", "C"},
		"A":  {"A1", "A2"},
		"A2": {"A2a"},
		"C":  {"C1"},
	})
	out := Render(root, Options{})
	if len(out.Text) != root.Count() {
		t.Fatalf("lines = %d, want %d", len(out.Text), root.Count())
	}
	want := []string{"R", "A", "A1", "A2", "A2a", "B", "C", "C1"}
	for i, line := range out.Text {
		name := strings.TrimLeft(line, " │├└─")
		if name != want[i] {
			t.Errorf("line %d name = %q, want %q", i, name, want[i])
		}
	}
}

func TestRenderConnectorsAndIndentation(t *testing.T) {
	root, _ := build(t, "R", map[string][]string{
		"R":  {"A", "B"},
		"A":  {"A1", "A2"},
		"A1": {"A1a"},
		"B":  {"B1"},
	})
	out := Render(root, Options{})

	i := 0
	root.Walk(func(p *family.Person, d int) {
		line := out.Text[i]
		i++
		lead := utf8.RuneCountInString(line) - utf8.RuneCountInString(p.Name)
		if lead != 4*d {
			t.Errorf("%s: leading width = %d, want %d", p.Name, lead, 4*d)
		}
		switch {
		case d == 0:
			if line != p.Name {
				t.Errorf("root line = %q, want no connector", line)
			}
		case p == p.Father.Children[len(p.Father.Children)-1]:
			if !strings.HasSuffix(line, Corner+p.Name) {
				t.Errorf("%s: last child should use corner: %q", p.Name, line)
			}
		default:
			if !strings.HasSuffix(line, Tee+p.Name) {
				t.Errorf("%s: non-last child should use tee: %q", p.Name, line)
			}
		}
	})

	if out.Text[3] != "│   │   └── A1a" {
		t.Errorf("A1a line = %q", out.Text[3])
	}
}

func TestRenderGuideColorFromColumnMap(t *testing.T) {
	// X is not the last child of R, so the guide in column 0 below X is
	// drawn in X's color rather than in the row's parent color.
	root, _ := build(t, "R", map[string][]string{
		"R": {"X", "Y"},
		"X": {"A"},
		"A": {"A1"},
	})
	out := Render(root, Options{})
	a1 := out.HTML[3]
	if !strings.Contains(out.Text[3], "│       └── A1") {
		t.Fatalf("A1 text = %q", out.Text[3])
	}
	xColor := ColorFor(DefaultPalette, 1, 0)
	aColor := ColorFor(DefaultPalette, 2, 0)
	if !strings.Contains(a1, `<span class="g" style="color:`+xColor+`">│</span>`) {
		t.Errorf("A1 guide should be %s: %s", xColor, a1)
	}
	if !strings.Contains(a1, `<span class="conn" style="color:`+aColor+`">└── </span>`) {
		t.Errorf("A1 connector should be parent color %s: %s", aColor, a1)
	}
}

func TestRenderColorMapIsolation(t *testing.T) {
	// A has a deep non-last chain; B is a leaf sibling at the same column.
	// B's row must look the same whatever A's subtree contains.
	deep, _ := build(t, "R", map[string][]string{
		"R":  {"P", "Q"},
		"P":  {"A", "B"},
		"A":  {"A1", "A2"},
		"A1": {"A1a", "A1b"},
		"A1a": {"A1a1"},
	})
	shallow, _ := build(t, "R", map[string][]string{
		"R": {"P", "Q"},
		"P": {"A", "B"},
	})
	deepOut := Render(deep, Options{})
	shallowOut := Render(shallow, Options{})

	find := func(o Output, name string) string {
		for i, l := range o.Text {
			if strings.HasSuffix(l, " "+name) {
				return o.HTML[i]
			}
		}
		t.Fatalf("no line for %s", name)
		return ""
	}
	b1, b2 := find(deepOut, "B"), find(shallowOut, "B")
	if b1 != b2 {
		t.Errorf("B row depends on sibling subtree:\n deep:    %s\n shallow: %s", b1, b2)
	}
	want := `style="color:` + ColorFor(DefaultPalette, 2, 0) + `; font-size`
	if !strings.Contains(b1, want) {
		t.Errorf("B name should use the palette color for depth 2: %s", b1)
	}
}

func TestGuidesAreImmutable(t *testing.T) {
	var g guides
	g1 := g.with(0, "red")
	g2 := g1.with(4, "blue")
	g3 := g2.without(0)

	if g.len() != 0 {
		t.Errorf("zero guides mutated: %v", g.cols)
	}
	if g1.len() != 1 {
		t.Errorf("g1 mutated: %v", g1.cols)
	}
	if c, ok := g2.color(0); !ok || c != "red" {
		t.Errorf("g2 lost column 0 after without on derived value: %v", g2.cols)
	}
	if _, ok := g3.color(0); ok {
		t.Errorf("g3 should not have column 0: %v", g3.cols)
	}
	if same := g3.without(12); same.len() != g3.len() {
		t.Errorf("without on missing column changed size")
	}
}

func TestAnnotation(t *testing.T) {
	tests := []struct {
		place string
		year  int
		want  string
	}{
		{"X", 1700, "(X, 1700)"},
		{"Kathmandu", 0, "(Kathmandu)"},
		{"", 1700, "(1700)"},
		{"", 0, ""},
	}
	for _, tt := range tests {
		got := Annotation(&family.Person{Place: tt.place, BirthYear: tt.year})
		if got != tt.want {
			t.Errorf("Annotation(%q, %d) = %q, want %q", tt.place, tt.year, got, tt.want)
		}
		if strings.Count(got, "(") != strings.Count(got, ")") || strings.Count(got, "(") > 1 {
			t.Errorf("Annotation(%q, %d) = %q is not a single balanced group", tt.place, tt.year, got)
		}
	}
}

func TestRenderLanguageAndAttributes(t *testing.T) {
	root := &family.Person{Name: "Gopal", NameNP: "गोपाल", BirthYear: 1940}
	ram := &family.Person{Name: "Ram", NameNP: "राम"}
	gov := &family.Person{Name: `Go"vi<nda>`}
	if err := family.AttachChild(root, ram); err != nil {
		t.Fatal(err)
	}
	if err := family.AttachChild(ram, gov); err != nil {
		t.Fatal(err)
	}

	out := Render(root, Options{Language: family.LangNepali, Generation: 31, Label: "poudel"})
	if out.Text[0] != "गोपाल(1940)" {
		t.Errorf("root text = %q", out.Text[0])
	}
	if out.Text[2] != "    └── Go\"vi<nda>" {
		t.Errorf("fallback to primary name failed: %q", out.Text[2])
	}
	line := out.HTML[2]
	for _, want := range []string{
		`data-gen="33"`,
		`data-line="poudel"`,
		`data-name="Go&#34;vi&lt;nda&gt;"`,
		`data-father="Ram"`,
		`data-grandfather="Gopal"`,
		`font-size: 21px`,
		`>Go&#34;vi&lt;nda&gt;</span>`,
	} {
		if !strings.Contains(line, want) {
			t.Errorf("html missing %q: %s", want, line)
		}
	}
}

func TestRenderMarkersAndIcons(t *testing.T) {
	root := &family.Person{Name: "A"}
	added := &family.Person{Name: "B", EditMarker: "added", Comment: "from \"survey\"\nline 2", Gender: family.GenderMale}
	fixed := &family.Person{Name: "C", EditMarker: "corrected", Gender: family.GenderFemale}
	if err := family.AttachChildren(root, added, fixed); err != nil {
		t.Fatal(err)
	}
	out := Render(root, Options{Icons: true, IconDir: "icons/"})

	b := out.HTML[1]
	note := `data-note="from &#34;survey&#34;&#10;line 2"`
	if !strings.Contains(b, `<b class="mark add tip" `+note+`>+</b>`) {
		t.Errorf("addition marker missing: %s", b)
	}
	if !strings.Contains(b, `<a href="#" class="tip note" `+note+`>*</a>`) {
		t.Errorf("comment asterisk missing: %s", b)
	}
	if !strings.Contains(b, `<img class="icon" src="icons/male.svg" alt="male">`) {
		t.Errorf("male icon missing: %s", b)
	}

	c := out.HTML[2]
	if !strings.Contains(c, `<b class="mark fix">#</b>`) {
		t.Errorf("correction marker missing: %s", c)
	}
	if strings.Contains(c, "class=\"tip note\"") {
		t.Errorf("no comment means no asterisk: %s", c)
	}
	if !strings.Contains(c, `src="icons/female.svg"`) {
		t.Errorf("female icon missing: %s", c)
	}

	plain := Render(root, Options{})
	if strings.Contains(plain.HTML[1], "<img") {
		t.Errorf("icons rendered while disabled: %s", plain.HTML[1])
	}
}

func TestRenderEmptyName(t *testing.T) {
	root := &family.Person{}
	if err := family.AttachChild(root, &family.Person{}); err != nil {
		t.Fatal(err)
	}
	out := Render(root, Options{})
	if out.Text[0] != "" || out.Text[1] != Corner {
		t.Errorf("empty names rendered as %q", out.Text)
	}
}

func TestColorFor(t *testing.T) {
	p := []string{"a", "b", "c"}
	tests := []struct {
		depth, offset int
		want          string
	}{
		{0, 0, "a"}, {1, 0, "b"}, {3, 0, "a"}, {0, 2, "c"}, {2, 2, "b"}, {0, -1, "c"},
	}
	for _, tt := range tests {
		if got := ColorFor(p, tt.depth, tt.offset); got != tt.want {
			t.Errorf("ColorFor(%d, %d) = %q, want %q", tt.depth, tt.offset, got, tt.want)
		}
	}
}
