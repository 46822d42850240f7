package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/famtree/internal/family"
)

// DefaultPath is where init writes the configuration.
const DefaultPath = ".famtree.yml"

// detectDataDir returns the first common dataset directory that exists.
func detectDataDir() string {
	for _, dir := range []string{"data", "lines", "vamshavali"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "data"
}

// detectSiteFile returns the first HTML page found in the current
// directory, or "".
func detectSiteFile() string {
	matches, _ := filepath.Glob("*.html")
	if len(matches) > 0 {
		return matches[0]
	}
	return ""
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .famtree.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to famtree! Let's configure your family tree.")
	fmt.Println()

	cfg := DefaultConfig()

	dataPrompt := promptui.Prompt{
		Label:   "Directory holding the dataset YAML files",
		Default: detectDataDir(),
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	langPrompt := promptui.Select{
		Label: "Languages to render",
		Items: []string{
			"en, np  (English and Nepali)",
			"en      (English only)",
			"np      (Nepali only)",
		},
	}
	langIdx, _, err := langPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("language selection: %w", err)
	}
	cfg.Languages = [][]string{
		{family.LangEnglish, family.LangNepali},
		{family.LangEnglish},
		{family.LangNepali},
	}[langIdx]

	outputPrompt := promptui.Prompt{
		Label:   "Output directory for rendered trees",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	titlePrompt := promptui.Prompt{
		Label:   "Document title",
		Default: cfg.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	cfg.Title = title

	palettePrompt := promptui.Prompt{
		Label:   "Generation colors (comma-separated)",
		Default: strings.Join(cfg.Palette, ", "),
	}
	paletteStr, err := palettePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	if palette := splitAndTrim(paletteStr); len(palette) > 0 {
		cfg.Palette = palette
	}

	rulerPrompt := promptui.Prompt{
		Label:     "Add the fixed generation ruler to HTML output",
		IsConfirm: true,
	}
	if _, err := rulerPrompt.Run(); err == nil {
		cfg.Ruler = true
	} else if err != promptui.ErrAbort {
		return nil, fmt.Errorf("ruler: %w", err)
	}

	sitePrompt := promptui.Prompt{
		Label:   "Site page to patch with flattened data (blank for none)",
		Default: detectSiteFile(),
	}
	siteFile, err := sitePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site file: %w", err)
	}
	cfg.Site.File = strings.TrimSpace(siteFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(DefaultPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultPath)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and drops empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
