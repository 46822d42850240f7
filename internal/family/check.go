package family

import "fmt"

// Finding describes a likely data-entry mistake in a tree.
type Finding struct {
	Person  string
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Person, f.Message)
}

// CheckDuplicates looks for children attached twice: the same name under
// one parent, or the same name appearing under different parents. Names
// are compared together with birth year so that namesakes with known,
// different years are not reported.
func CheckDuplicates(lines []Line) []Finding {
	var findings []Finding
	parentOf := make(map[string]string)

	for _, l := range lines {
		l.Root.Walk(func(p *Person, _ int) {
			siblings := make(map[string]int)
			for _, c := range p.Children {
				siblings[identity(c)]++
			}
			for _, c := range p.Children {
				key := identity(c)
				if siblings[key] > 1 {
					findings = append(findings, Finding{
						Person:  c.Name,
						Message: fmt.Sprintf("attached %d times under %s", siblings[key], p.Name),
					})
					siblings[key] = 0
				}
				if prev, ok := parentOf[key]; ok && prev != qualified(l, p) {
					findings = append(findings, Finding{
						Person:  c.Name,
						Message: fmt.Sprintf("appears under both %s and %s", prev, qualified(l, p)),
					})
				}
				parentOf[key] = qualified(l, p)
			}
		})
	}
	return findings
}

func identity(p *Person) string {
	if p.BirthYear == 0 {
		return p.Name + "|" + parentName(p)
	}
	return fmt.Sprintf("%s|%d", p.Name, p.BirthYear)
}

func parentName(p *Person) string {
	if p.Father == nil {
		return ""
	}
	return p.Father.Name
}

func qualified(l Line, p *Person) string {
	return l.Label + "/" + p.Name
}
