package cmd

import "github.com/spf13/cobra"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "famtree",
	Short: "Render genealogy (vamshavali) trees as text and HTML",
	Long: `famtree reads family lines from YAML dataset files and renders each
lineage as a box-drawing tree, colored by generation, in English and
Nepali. It can also flatten the tree into per-person records and patch
them into an existing static site page.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".famtree.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
