package cmd

import (
	"fmt"
	"os"

	"github.com/ziadkadry99/famtree/internal/config"
	"github.com/ziadkadry99/famtree/internal/family"
	"github.com/ziadkadry99/famtree/internal/walker"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `famtree init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// loadLines reads every dataset file under the configured data directory.
func loadLines(cfg *config.Config) ([]family.Line, error) {
	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning datasets in %s...\n", cfg.DataDir)
	}
	lines, err := family.LoadDir(walker.Config{
		RootDir: cfg.DataDir,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("loading datasets: %w", err)
	}
	if verbose {
		for _, l := range lines {
			fmt.Fprintf(os.Stderr, "  %s: generation %d, %d people\n", l.Label, l.Generation, l.Root.Count())
		}
	}
	return lines, nil
}

// selectLines keeps the lines whose label is in labels, preserving order.
// An empty selection keeps every line.
func selectLines(lines []family.Line, labels []string) ([]family.Line, error) {
	if len(labels) == 0 {
		return lines, nil
	}
	byLabel := make(map[string]family.Line, len(lines))
	for _, l := range lines {
		byLabel[l.Label] = l
	}
	var out []family.Line
	for _, label := range labels {
		l, ok := byLabel[label]
		if !ok {
			return nil, fmt.Errorf("unknown line %q", label)
		}
		out = append(out, l)
	}
	return out, nil
}

// logWrite reports a written file in verbose mode.
func logWrite(path string) {
	if verbose {
		fmt.Fprintf(os.Stderr, "  wrote %s\n", path)
	}
}
