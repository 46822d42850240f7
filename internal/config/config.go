package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/famtree/internal/family"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nested keys: FAMTREE_SITE__FILE sets site.file.
const EnvPrefix = "FAMTREE_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FAMTREE_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// envKey maps FAMTREE_OUTPUT_DIR to output_dir and FAMTREE_SITE__FILE to
// site.file.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.BaseName == "" {
		return fmt.Errorf("base_name is required")
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("palette must list at least one color")
	}
	for i, color := range c.Palette {
		if strings.TrimSpace(color) == "" {
			return fmt.Errorf("palette[%d] is empty", i)
		}
	}

	if len(c.Languages) == 0 {
		return fmt.Errorf("languages must list at least one of en, np")
	}
	for _, lang := range c.Languages {
		if !family.ValidLanguage(lang) {
			return fmt.Errorf("invalid language %q: must be one of en, np", lang)
		}
	}
	for lang := range c.Timeline {
		if !family.ValidLanguage(lang) {
			return fmt.Errorf("invalid timeline language %q", lang)
		}
	}

	if c.Site.TickAnchor < 0 {
		return fmt.Errorf("site.tick_anchor must be non-negative")
	}
	return nil
}
