package config

import (
	"github.com/ziadkadry99/famtree/internal/family"
	"github.com/ziadkadry99/famtree/internal/patch"
	"github.com/ziadkadry99/famtree/internal/tree"
	"github.com/ziadkadry99/famtree/internal/walker"
)

// DefaultExcludes are glob patterns skipped when collecting dataset files.
var DefaultExcludes = []string{
	"**/_*.yaml",
	"**/_*.yml",
	"**/*.bak.yaml",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:   "data",
		Include:   append([]string(nil), walker.DefaultInclude...),
		Exclude:   append([]string(nil), DefaultExcludes...),
		Languages: []string{family.LangEnglish, family.LangNepali},
		OutputDir: "out",
		BaseName:  "family_tree",
		Title:     "Family Tree",
		Palette:   append([]string(nil), tree.DefaultPalette...),
		IconDir:   "icons",
		Site: SiteConfig{
			MergedLabel: "merged",
			TickAnchor:  patch.DefaultTickAnchor,
		},
	}
}
