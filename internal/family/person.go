package family

import (
	"errors"
	"strings"
)

// Gender tags used to pick an icon in HTML output.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

var (
	// ErrNilPerson is returned when an attach operation receives a nil node.
	ErrNilPerson = errors.New("family: nil person")
	// ErrMissingGeneration is returned when a root has no usable generation number.
	ErrMissingGeneration = errors.New("family: root has no generation number")
)

// Person is one individual in a family tree. A person owns its children;
// Father and Grandfather are back-references set by AttachChild.
type Person struct {
	Name       string
	NameNP     string // Localized (Nepali) display name.
	BirthYear  int    // 0 when unknown.
	DeathYear  int    // 0 when unknown.
	Place      string
	Comment    string
	Gender     string // GenderMale, GenderFemale or empty.
	EditMarker string // Free-form flag for additions/corrections, e.g. "added" or "corrected".

	// Generation is the absolute generation number. Only roots are required
	// to carry one; descendants derive theirs from depth.
	Generation int

	Children    []*Person
	Father      *Person
	Grandfather *Person
}

// NewPerson returns a person with the given primary name and birth year.
func NewPerson(name string, birthYear int) *Person {
	return &Person{Name: name, BirthYear: birthYear}
}

// AttachChild appends child to parent's children and records the
// back-references. The grandfather is taken from parent.Father as it is at
// this moment, so attachment order matters.
func AttachChild(parent, child *Person) error {
	if parent == nil || child == nil {
		return ErrNilPerson
	}
	parent.Children = append(parent.Children, child)
	child.Father = parent
	if parent.Father != nil {
		child.Grandfather = parent.Father
	}
	return nil
}

// AttachChildren attaches each child to parent in order.
func AttachChildren(parent *Person, children ...*Person) error {
	for _, c := range children {
		if err := AttachChild(parent, c); err != nil {
			return err
		}
	}
	return nil
}

// DisplayName returns the name to print for lang ("en" or "np"). The
// localized name falls back to the primary one.
func (p *Person) DisplayName(lang string) string {
	if p == nil {
		return ""
	}
	if lang == LangNepali && p.NameNP != "" {
		return p.NameNP
	}
	return p.Name
}

// IsAddition reports whether the edit marker flags a newly added person.
func (p *Person) IsAddition() bool {
	m := strings.ToLower(strings.TrimSpace(p.EditMarker))
	return strings.HasPrefix(m, "add") || m == "+" || m == "new"
}

// IsCorrection reports whether the edit marker flags a corrected person.
func (p *Person) IsCorrection() bool {
	m := strings.ToLower(strings.TrimSpace(p.EditMarker))
	return strings.HasPrefix(m, "correct") || strings.HasPrefix(m, "fix") || m == "#"
}

// Count returns the number of people in the tree rooted at p.
func (p *Person) Count() int {
	if p == nil {
		return 0
	}
	n := 1
	for _, c := range p.Children {
		n += c.Count()
	}
	return n
}

// MaxDepth returns the depth of the deepest descendant (0 for a leaf).
func (p *Person) MaxDepth() int {
	d := 0
	for _, c := range p.Children {
		if cd := c.MaxDepth() + 1; cd > d {
			d = cd
		}
	}
	return d
}

// Walk visits every person in preorder together with its depth below p.
func (p *Person) Walk(fn func(person *Person, depth int)) {
	p.walk(0, fn)
}

func (p *Person) walk(depth int, fn func(*Person, int)) {
	fn(p, depth)
	for _, c := range p.Children {
		c.walk(depth+1, fn)
	}
}

// Supported display languages.
const (
	LangEnglish = "en"
	LangNepali  = "np"
)

// ValidLanguage reports whether lang is a supported display language.
func ValidLanguage(lang string) bool {
	return lang == LangEnglish || lang == LangNepali
}
