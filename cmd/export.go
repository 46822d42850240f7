package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/famtree/internal/family"
	"github.com/ziadkadry99/famtree/internal/site"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a nested JSON backup of every line",
	Long:  `Serializes each line's tree and writes it as <base_name>_<label>.json in the output directory.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringSlice("line", nil, "export only these line labels")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lines, err := loadLines(cfg)
	if err != nil {
		return err
	}
	labels, _ := cmd.Flags().GetStringSlice("line")
	if lines, err = selectLines(lines, labels); err != nil {
		return err
	}

	gen := site.NewGenerator(cfg.OutputDir, cfg.BaseName)
	for _, l := range lines {
		data, err := backupJSON(l)
		if err != nil {
			return err
		}
		path, err := gen.WriteFile(fmt.Sprintf("%s_%s.json", cfg.BaseName, l.Label), data)
		if err != nil {
			return err
		}
		logWrite(path)
	}
	fmt.Printf("Exported %d lines to %s\n", len(lines), cfg.OutputDir)
	return nil
}

func backupJSON(l family.Line) ([]byte, error) {
	data, err := json.MarshalIndent(family.Serialize(l.Root), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding line %q: %w", l.Label, err)
	}
	return append(data, '\n'), nil
}
