package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/famtree/internal/family"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report people that look attached twice",
	Long: `Scans every line for a parent holding the same child twice and for a
person that appears under more than one parent. Exits non-zero when
anything is found.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lines, err := loadLines(cfg)
	if err != nil {
		return err
	}

	findings := family.CheckDuplicates(lines)
	for _, f := range findings {
		fmt.Println(f)
	}
	if len(findings) > 0 {
		return fmt.Errorf("%d possible duplicate attachments", len(findings))
	}
	fmt.Printf("No duplicate attachments in %d lines\n", len(lines))
	return nil
}
