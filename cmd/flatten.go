package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/famtree/internal/flatten"
	"github.com/ziadkadry99/famtree/internal/site"
)

var flattenCmd = &cobra.Command{
	Use:   "flatten",
	Short: "Write flat per-person records for every line",
	Long: `Flattens each line in preorder into records carrying the father,
grandfather and great-grandfather names, and writes
<base_name>_<label>_flat.json plus a merged file for all lines.`,
	RunE: runFlatten,
}

func init() {
	flattenCmd.Flags().Bool("generation", false, "include the absolute generation number in each record")
	rootCmd.AddCommand(flattenCmd)
}

func runFlatten(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lines, err := loadLines(cfg)
	if err != nil {
		return err
	}
	withGen, _ := cmd.Flags().GetBool("generation")

	byLabel, merged, err := flatten.FlattenAll(lines, flatten.Options{WithGeneration: withGen})
	if err != nil {
		return err
	}

	gen := site.NewGenerator(cfg.OutputDir, cfg.BaseName)
	write := func(label string, records []flatten.Record) error {
		if records == nil {
			records = []flatten.Record{}
		}
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding %s records: %w", label, err)
		}
		path, err := gen.WriteFile(fmt.Sprintf("%s_%s_flat.json", cfg.BaseName, label), append(data, '\n'))
		if err != nil {
			return err
		}
		logWrite(path)
		return nil
	}

	for _, l := range lines {
		if err := write(l.Label, byLabel[l.Label]); err != nil {
			return err
		}
	}
	mergedLabel := cfg.Site.MergedLabel
	if mergedLabel == "" {
		mergedLabel = "merged"
	}
	if err := write(mergedLabel, merged); err != nil {
		return err
	}
	fmt.Printf("Flattened %d people from %d lines to %s\n", len(merged), len(lines), cfg.OutputDir)
	return nil
}
