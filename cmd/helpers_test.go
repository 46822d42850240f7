package cmd

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ziadkadry99/famtree/internal/config"
	"github.com/ziadkadry99/famtree/internal/family"
	"github.com/ziadkadry99/famtree/internal/site"
)

func testLines(t *testing.T) []family.Line {
	t.Helper()
	var lines []family.Line
	for i, label := range []string{"poudel", "sisneri", "ghimire"} {
		root := family.NewPerson(strings.ToUpper(label[:1])+label[1:], 0)
		l, err := family.NewLine(label, 31+i, root)
		if err != nil {
			t.Fatal(err)
		}
		lines = append(lines, l)
	}
	return lines
}

func TestSelectLines(t *testing.T) {
	lines := testLines(t)

	all, err := selectLines(lines, nil)
	if err != nil || len(all) != 3 {
		t.Fatalf("selectLines(nil) = %d lines, %v", len(all), err)
	}

	got, err := selectLines(lines, []string{"ghimire", "poudel"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Label != "ghimire" || got[1].Label != "poudel" {
		t.Errorf("selection order not kept: %+v", got)
	}

	if _, err := selectLines(lines, []string{"missing"}); err == nil {
		t.Error("expected error for unknown label")
	}
}

func TestBuildDocument(t *testing.T) {
	lines := testLines(t)
	if err := family.AttachChild(lines[0].Root, family.NewPerson("Ram", 0)); err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.Timeline = map[string][]site.TimelineEntry{
		family.LangNepali: {{Era: "ई.पू ६००", Name: "आत्रेय"}},
	}

	doc, err := buildDocument(cfg, lines, family.LangEnglish, "")
	if err != nil {
		t.Fatal(err)
	}
	if doc.StartGen != 31 || doc.EndGen != 33 {
		t.Errorf("generation range = %d..%d, want 31..33", doc.StartGen, doc.EndGen)
	}
	if doc.RulerLine != "poudel" {
		t.Errorf("ruler line = %q, want first label", doc.RulerLine)
	}
	if len(doc.Timeline) != 0 {
		t.Errorf("English document got the Nepali timeline")
	}
	// Three roots, one child, two dividers.
	if len(doc.Lines.Text) != 6 {
		t.Errorf("text lines = %q", doc.Lines.Text)
	}

	np, err := buildDocument(cfg, lines, family.LangNepali, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(np.Timeline) != 1 {
		t.Errorf("Nepali timeline = %+v", np.Timeline)
	}
}

func TestBuildDocumentMissingGeneration(t *testing.T) {
	lines := testLines(t)
	lines[1].Generation = 0
	_, err := buildDocument(config.DefaultConfig(), lines, family.LangEnglish, "")
	if !errors.Is(err, family.ErrMissingGeneration) {
		t.Errorf("err = %v, want ErrMissingGeneration", err)
	}
}

func TestBackupJSON(t *testing.T) {
	lines := testLines(t)
	if err := family.AttachChild(lines[0].Root, family.NewPerson("Ram", 1970)); err != nil {
		t.Fatal(err)
	}
	data, err := backupJSON(lines[0])
	if err != nil {
		t.Fatal(err)
	}
	var snap family.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("backup is not valid JSON: %v", err)
	}
	if snap.Name != "Poudel" || len(snap.Children) != 1 || snap.Children[0].BirthYear != 1970 {
		t.Errorf("backup = %+v", snap)
	}
	if !strings.HasSuffix(string(data), "}\n") {
		t.Error("backup should end with a newline")
	}
}
