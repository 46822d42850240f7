package config

import "github.com/ziadkadry99/famtree/internal/site"

// Config is the top-level famtree configuration, corresponding to .famtree.yml.
type Config struct {
	DataDir   string   `yaml:"data_dir" koanf:"data_dir"`
	Include   []string `yaml:"include" koanf:"include"`
	Exclude   []string `yaml:"exclude" koanf:"exclude"`
	Languages []string `yaml:"languages" koanf:"languages"`

	OutputDir string `yaml:"output_dir" koanf:"output_dir"`
	BaseName  string `yaml:"base_name" koanf:"base_name"`
	Title     string `yaml:"title" koanf:"title"`

	Palette    []string `yaml:"palette" koanf:"palette"`
	AlignRoots bool     `yaml:"align_roots" koanf:"align_roots"`
	Icons      bool     `yaml:"icons" koanf:"icons"`
	IconDir    string   `yaml:"icon_dir" koanf:"icon_dir"`
	Ruler      bool     `yaml:"ruler" koanf:"ruler"`
	RulerLine  string   `yaml:"ruler_line" koanf:"ruler_line"`
	FontURL    string   `yaml:"font_url" koanf:"font_url"`
	IntroFile  string   `yaml:"intro_file" koanf:"intro_file"`

	// Timeline is keyed by language code.
	Timeline map[string][]site.TimelineEntry `yaml:"timeline,omitempty" koanf:"timeline"`

	Site SiteConfig `yaml:"site" koanf:"site"`
}

// SiteConfig holds the settings of the patch command.
type SiteConfig struct {
	File        string `yaml:"file" koanf:"file"`
	MergedLabel string `yaml:"merged_label" koanf:"merged_label"`
	TickAnchor  int    `yaml:"tick_anchor" koanf:"tick_anchor"`
}
