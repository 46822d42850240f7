package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/famtree/internal/family"
	"github.com/ziadkadry99/famtree/internal/tree"
)

var showCmd = &cobra.Command{
	Use:   "show [label...]",
	Short: "Print the tree to the terminal in generation colors",
	RunE:  runShow,
}

func init() {
	showCmd.Flags().String("lang", family.LangEnglish, "language of the names")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lang, _ := cmd.Flags().GetString("lang")
	if !family.ValidLanguage(lang) {
		return fmt.Errorf("invalid language %q: must be one of en, np", lang)
	}

	lines, err := loadLines(cfg)
	if err != nil {
		return err
	}
	if lines, err = selectLines(lines, args); err != nil {
		return err
	}

	out, err := tree.Combine(lines, tree.CombineOptions{
		Options:    tree.Options{Language: lang, Palette: cfg.Palette},
		AlignRoots: cfg.AlignRoots,
	})
	if err != nil {
		return err
	}
	for _, l := range tree.NewStyler(os.Stdout).Lines(out) {
		fmt.Println(l)
	}
	return nil
}
