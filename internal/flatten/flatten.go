package flatten

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ziadkadry99/famtree/internal/family"
)

// namespace seeds the deterministic record IDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/ziadkadry99/famtree/person"))

// Record is one person flattened for embedding in a web page.
type Record struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	NameNP        string `json:"name_np"`
	BirthYear     int    `json:"birth_year,omitempty"`
	DeathYear     int    `json:"death_year,omitempty"`
	Place         string `json:"place,omitempty"`
	Comment       string `json:"comment,omitempty"`
	Gender        string `json:"gender,omitempty"`
	Father        string `json:"father"`
	FatherNP      string `json:"father_np"`
	Grandfather   string `json:"grandfather"`
	GrandfatherNP string `json:"grandfather_np"`
	GGFather      string `json:"ggfather"`
	GGFatherNP    string `json:"ggfather_np"`
	Generation    int    `json:"generation,omitempty"`
}

// Options selects the flattening mode.
type Options struct {
	// WithGeneration tags every record with root generation + depth.
	WithGeneration bool
}

// Flatten returns one record per person of line, in preorder. Ancestor
// names come from the back-references set when the tree was attached.
func Flatten(line family.Line, opts Options) ([]Record, error) {
	if line.Root == nil {
		return nil, family.ErrNilPerson
	}
	if opts.WithGeneration && line.Generation <= 0 {
		return nil, fmt.Errorf("flattening line %q: %w", line.Label, family.ErrMissingGeneration)
	}

	var records []Record
	var path []string
	var visit func(p *family.Person, depth int)
	visit = func(p *family.Person, depth int) {
		path = append(path, p.Name)
		r := newRecord(p, recordID(line.Label, path))
		if opts.WithGeneration {
			r.Generation = line.Generation + depth
		}
		records = append(records, r)
		for _, c := range p.Children {
			visit(c, depth+1)
		}
		path = path[:len(path)-1]
	}
	visit(line.Root, 0)
	return records, nil
}

// FlattenAll flattens every line and returns the records per label plus
// the merged list in line order.
func FlattenAll(lines []family.Line, opts Options) (map[string][]Record, []Record, error) {
	byLabel := make(map[string][]Record, len(lines))
	var merged []Record
	for _, l := range lines {
		records, err := Flatten(l, opts)
		if err != nil {
			return nil, nil, err
		}
		byLabel[l.Label] = records
		merged = append(merged, records...)
	}
	return byLabel, merged, nil
}

func newRecord(p *family.Person, id string) Record {
	r := Record{
		ID:        id,
		Name:      p.Name,
		NameNP:    p.NameNP,
		BirthYear: p.BirthYear,
		DeathYear: p.DeathYear,
		Place:     p.Place,
		Comment:   p.Comment,
		Gender:    p.Gender,
	}
	if f := p.Father; f != nil {
		r.Father, r.FatherNP = f.Name, f.NameNP
	}
	if g := p.Grandfather; g != nil {
		r.Grandfather, r.GrandfatherNP = g.Name, g.NameNP
		if gg := g.Father; gg != nil {
			r.GGFather, r.GGFatherNP = gg.Name, gg.NameNP
		}
	}
	return r
}

// recordID is stable across runs for the same label and ancestry path, so
// repeated site patches produce identical output.
func recordID(label string, path []string) string {
	key := label + "/" + strings.Join(path, "/")
	return uuid.NewSHA1(namespace, []byte(key)).String()
}
