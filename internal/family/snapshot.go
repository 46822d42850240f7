package family

// Snapshot is the nested, serializable form of a person and its
// descendants. It is the shape of both the JSON backup and dataset files.
type Snapshot struct {
	Name        string     `json:"name" yaml:"name"`
	NameNP      string     `json:"name_np,omitempty" yaml:"name_np,omitempty"`
	BirthYear   int        `json:"birth_year,omitempty" yaml:"birth_year,omitempty"`
	DeathYear   int        `json:"death_year,omitempty" yaml:"death_year,omitempty"`
	Place       string     `json:"place,omitempty" yaml:"place,omitempty"`
	Comment     string     `json:"comment,omitempty" yaml:"comment,omitempty"`
	Gender      string     `json:"gender,omitempty" yaml:"gender,omitempty"`
	EditMarker  string     `json:"edit,omitempty" yaml:"edit,omitempty"`
	Generation  int        `json:"generation,omitempty" yaml:"generation,omitempty"`
	Father      string     `json:"father,omitempty" yaml:"-"`
	Grandfather string     `json:"grandfather,omitempty" yaml:"-"`
	Children    []Snapshot `json:"children" yaml:"children,omitempty"`
}

// Serialize converts the tree rooted at p into a Snapshot. Father and
// grandfather names are informational; Deserialize ignores them.
func Serialize(p *Person) Snapshot {
	s := Snapshot{
		Name:       p.Name,
		NameNP:     p.NameNP,
		BirthYear:  p.BirthYear,
		DeathYear:  p.DeathYear,
		Place:      p.Place,
		Comment:    p.Comment,
		Gender:     p.Gender,
		EditMarker: p.EditMarker,
		Generation: p.Generation,
		Children:   make([]Snapshot, 0, len(p.Children)),
	}
	if p.Father != nil {
		s.Father = p.Father.Name
	}
	if p.Grandfather != nil {
		s.Grandfather = p.Grandfather.Name
	}
	for _, c := range p.Children {
		s.Children = append(s.Children, Serialize(c))
	}
	return s
}

// Deserialize rebuilds a tree from s. Each child is attached to its parent
// before its own children are built, so the back-references are derived by
// AttachChild rather than copied from the snapshot.
func Deserialize(s Snapshot) *Person {
	p := fromSnapshot(s)
	attachSnapshots(p, s.Children)
	return p
}

func attachSnapshots(parent *Person, children []Snapshot) {
	for _, cs := range children {
		child := fromSnapshot(cs)
		_ = AttachChild(parent, child)
		attachSnapshots(child, cs.Children)
	}
}

func fromSnapshot(s Snapshot) *Person {
	return &Person{
		Name:       s.Name,
		NameNP:     s.NameNP,
		BirthYear:  s.BirthYear,
		DeathYear:  s.DeathYear,
		Place:      s.Place,
		Comment:    s.Comment,
		Gender:     s.Gender,
		EditMarker: s.EditMarker,
		Generation: s.Generation,
	}
}
