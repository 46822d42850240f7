package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/famtree/internal/family"
	"github.com/ziadkadry99/famtree/internal/flatten"
	"github.com/ziadkadry99/famtree/internal/patch"
)

var patchCmd = &cobra.Command{
	Use:   "patch [site-file]",
	Short: "Update the genealogy data, ticks and generation range of a site page",
	Long: `Rewrites the embedded genealogyData declarations, the .tick.c<N> color
rules and the START_GEN/END_GEN and COLORS constants of an existing HTML
page. Running it twice with the same data leaves the page unchanged.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPatch,
}

func init() {
	patchCmd.Flags().Int("tick-anchor", 0, "generation identifying the tick block to replace (overrides config)")
	rootCmd.AddCommand(patchCmd)
}

func runPatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.Site.File
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no site file: pass one as an argument or set site.file in %s", cfgFile)
	}
	anchor := cfg.Site.TickAnchor
	if a, _ := cmd.Flags().GetInt("tick-anchor"); a > 0 {
		anchor = a
	}

	lines, err := loadLines(cfg)
	if err != nil {
		return err
	}
	byLabel, merged, err := flatten.FlattenAll(lines, flatten.Options{WithGeneration: true})
	if err != nil {
		return err
	}
	start, end := family.GenerationRange(lines)

	in := patch.Input{
		ByLabel:    byLabel,
		Merged:     merged,
		StartGen:   start,
		EndGen:     end,
		Palette:    cfg.Palette,
		TickAnchor: anchor,
	}
	for _, l := range lines {
		in.Labels = append(in.Labels, l.Label)
	}

	changed, err := patch.File(path, in)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Printf("%s is up to date\n", path)
		return nil
	}
	fmt.Printf("Patched %s: %d people, generations %d-%d\n", path, len(merged), start, end)
	return nil
}
