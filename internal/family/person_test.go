package family

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestAttachChildSetsBackReferences(t *testing.T) {
	gopal := NewPerson("Gopal", 1940)
	ram := NewPerson("Ram Bhadra", 0)
	govinda := NewPerson("Govinda", 0)

	if err := AttachChild(gopal, ram); err != nil {
		t.Fatalf("AttachChild: %v", err)
	}
	if err := AttachChild(ram, govinda); err != nil {
		t.Fatalf("AttachChild: %v", err)
	}

	if ram.Father != gopal {
		t.Errorf("ram.Father = %v, want gopal", ram.Father)
	}
	if ram.Grandfather != nil {
		t.Errorf("ram.Grandfather = %v, want nil", ram.Grandfather)
	}
	if govinda.Father != ram {
		t.Errorf("govinda.Father = %v, want ram", govinda.Father)
	}
	if govinda.Grandfather != gopal {
		t.Errorf("govinda.Grandfather = %v, want gopal", govinda.Grandfather)
	}
	if len(gopal.Children) != 1 || gopal.Children[0] != ram {
		t.Errorf("gopal.Children = %v, want [ram]", gopal.Children)
	}
}

func TestAttachChildOrderMatters(t *testing.T) {
	// The child is attached before its parent has a father, so the cached
	// grandfather stays unset even after the parent is attached.
	root := NewPerson("Root", 0)
	parent := NewPerson("Parent", 0)
	child := NewPerson("Child", 0)

	if err := AttachChild(parent, child); err != nil {
		t.Fatal(err)
	}
	if err := AttachChild(root, parent); err != nil {
		t.Fatal(err)
	}
	if child.Grandfather != nil {
		t.Errorf("child.Grandfather = %v, want nil", child.Grandfather)
	}
	if child.Father != parent {
		t.Errorf("child.Father = %v, want parent", child.Father)
	}
}

func TestAttachChildNil(t *testing.T) {
	p := NewPerson("P", 0)
	if err := AttachChild(nil, p); !errors.Is(err, ErrNilPerson) {
		t.Errorf("AttachChild(nil, p) = %v, want ErrNilPerson", err)
	}
	if err := AttachChild(p, nil); !errors.Is(err, ErrNilPerson) {
		t.Errorf("AttachChild(p, nil) = %v, want ErrNilPerson", err)
	}
	if len(p.Children) != 0 {
		t.Errorf("children = %d, want 0", len(p.Children))
	}
}

func TestAttachChildrenPreservesOrder(t *testing.T) {
	gautam := NewPerson("Gautam", 0)
	names := []string{"Laxmidhar", "RamChandra", "DevHari"}
	var kids []*Person
	for _, n := range names {
		kids = append(kids, NewPerson(n, 0))
	}
	if err := AttachChildren(gautam, kids...); err != nil {
		t.Fatalf("AttachChildren: %v", err)
	}
	for i, c := range gautam.Children {
		if c.Name != names[i] {
			t.Errorf("child[%d] = %q, want %q", i, c.Name, names[i])
		}
		if c.Father != gautam {
			t.Errorf("child[%d].Father not set", i)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		p    *Person
		lang string
		want string
	}{
		{&Person{Name: "Gopal", NameNP: "गोपाल"}, LangEnglish, "Gopal"},
		{&Person{Name: "Gopal", NameNP: "गोपाल"}, LangNepali, "गोपाल"},
		{&Person{Name: "Gopal"}, LangNepali, "Gopal"},
		{&Person{}, LangNepali, ""},
		{nil, LangEnglish, ""},
	}
	for _, tt := range tests {
		if got := tt.p.DisplayName(tt.lang); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.lang, got, tt.want)
		}
	}
}

func TestEditMarkers(t *testing.T) {
	tests := []struct {
		marker       string
		add, correct bool
	}{
		{"added", true, false},
		{"Addition 2024", true, false},
		{"corrected", false, true},
		{"correction: birth year", false, true},
		{"", false, false},
		{"reviewed", false, false},
	}
	for _, tt := range tests {
		p := &Person{EditMarker: tt.marker}
		if got := p.IsAddition(); got != tt.add {
			t.Errorf("IsAddition(%q) = %v, want %v", tt.marker, got, tt.add)
		}
		if got := p.IsCorrection(); got != tt.correct {
			t.Errorf("IsCorrection(%q) = %v, want %v", tt.marker, got, tt.correct)
		}
	}
}

func sampleTree(t *testing.T) *Person {
	t.Helper()
	a := &Person{Name: "A", NameNP: "अ", BirthYear: 1700, Place: "Kathmandu", Comment: "line \"one\"\n<two> & three"}
	b := NewPerson("B", 1730)
	c := NewPerson("C", 0)
	d := &Person{Name: "D", Gender: GenderFemale, EditMarker: "added"}
	if err := AttachChildren(a, b, c); err != nil {
		t.Fatal(err)
	}
	if err := AttachChild(c, d); err != nil {
		t.Fatal(err)
	}
	return a
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	root := sampleTree(t)

	data, err := json.MarshalIndent(Serialize(root), "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := Deserialize(snap)

	var compare func(a, b *Person)
	compare = func(a, b *Person) {
		if a.Name != b.Name || a.NameNP != b.NameNP || a.BirthYear != b.BirthYear ||
			a.Place != b.Place || a.Comment != b.Comment || a.Gender != b.Gender || a.EditMarker != b.EditMarker {
			t.Errorf("person mismatch: got %+v, want %+v", b, a)
		}
		if len(a.Children) != len(b.Children) {
			t.Fatalf("%s: children = %d, want %d", a.Name, len(b.Children), len(a.Children))
		}
		for i := range a.Children {
			compare(a.Children[i], b.Children[i])
		}
	}
	compare(root, got)

	d := got.Children[1].Children[0]
	if d.Father != got.Children[1] {
		t.Errorf("D.Father = %v, want C", d.Father)
	}
	if d.Grandfather != got {
		t.Errorf("D.Grandfather = %v, want A", d.Grandfather)
	}
	if got.Father != nil {
		t.Errorf("root father should be nil")
	}
}

func TestSerializeRecordsParentNames(t *testing.T) {
	s := Serialize(sampleTree(t))
	d := s.Children[1].Children[0]
	if d.Father != "C" || d.Grandfather != "A" {
		t.Errorf("D father/grandfather = %q/%q, want C/A", d.Father, d.Grandfather)
	}
	if s.Children[0].Children == nil {
		t.Error("leaf children should serialize as an empty list, not null")
	}
}

func TestCountAndDepth(t *testing.T) {
	root := sampleTree(t)
	if got := root.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
	if got := root.MaxDepth(); got != 2 {
		t.Errorf("MaxDepth() = %d, want 2", got)
	}

	var order []string
	root.Walk(func(p *Person, depth int) {
		order = append(order, p.Name)
	})
	want := []string{"A", "B", "C", "D"}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("preorder[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}
