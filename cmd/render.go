package cmd

import (
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/famtree/internal/config"
	"github.com/ziadkadry99/famtree/internal/family"
	"github.com/ziadkadry99/famtree/internal/progress"
	"github.com/ziadkadry99/famtree/internal/site"
	"github.com/ziadkadry99/famtree/internal/tree"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the family tree as text and HTML for each language",
	Long: `Loads every dataset line, renders the roots one after another with
generation-colored guides, and writes <base_name>_<lang>.txt and
<base_name>_<lang>.html to the output directory.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringSlice("lang", nil, "languages to render (overrides config)")
	renderCmd.Flags().StringSlice("line", nil, "render only these line labels, in this order")
	renderCmd.Flags().Bool("ruler", false, "add the generation ruler to HTML output")
	renderCmd.Flags().String("output", "", "output directory (overrides config)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if langs, _ := cmd.Flags().GetStringSlice("lang"); len(langs) > 0 {
		for _, l := range langs {
			if !family.ValidLanguage(l) {
				return fmt.Errorf("invalid language %q: must be one of en, np", l)
			}
		}
		cfg.Languages = langs
	}
	if ruler, _ := cmd.Flags().GetBool("ruler"); ruler {
		cfg.Ruler = true
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}

	lines, err := loadLines(cfg)
	if err != nil {
		return err
	}
	labels, _ := cmd.Flags().GetStringSlice("line")
	if lines, err = selectLines(lines, labels); err != nil {
		return err
	}
	if len(lines) == 0 {
		return fmt.Errorf("no lines found in %s", cfg.DataDir)
	}

	intro, err := loadIntro(cfg)
	if err != nil {
		return err
	}

	gen := site.NewGenerator(cfg.OutputDir, cfg.BaseName)
	reporter := progress.NewReporter("Rendering trees")
	reporter.Start(len(cfg.Languages))

	var written []string
	for i, lang := range cfg.Languages {
		reporter.Update(i, "Rendering "+lang)
		doc, err := buildDocument(cfg, lines, lang, intro)
		if err != nil {
			reporter.Finish()
			return err
		}
		textPath, htmlPath, err := gen.Write(doc)
		if err != nil {
			reporter.Finish()
			return err
		}
		written = append(written, textPath, htmlPath)
		reporter.Update(i+1, "Rendered "+lang)
	}
	reporter.Finish()

	for _, p := range written {
		logWrite(p)
	}
	people := 0
	for _, l := range lines {
		people += l.Root.Count()
	}
	fmt.Printf("Rendered %d lines (%d people) in %d languages to %s (%s)\n",
		len(lines), people, len(cfg.Languages), cfg.OutputDir, time.Since(start).Round(time.Millisecond))
	return nil
}

// buildDocument renders lines in lang and wraps them with the configured
// page furniture.
func buildDocument(cfg *config.Config, lines []family.Line, lang string, intro template.HTML) (site.Document, error) {
	out, err := tree.Combine(lines, tree.CombineOptions{
		Options: tree.Options{
			Language: lang,
			Palette:  cfg.Palette,
			Icons:    cfg.Icons,
			IconDir:  cfg.IconDir,
		},
		AlignRoots: cfg.AlignRoots,
	})
	if err != nil {
		return site.Document{}, err
	}

	startGen, endGen := family.GenerationRange(lines)
	rulerLine := cfg.RulerLine
	if rulerLine == "" {
		rulerLine = lines[0].Label
	}
	return site.Document{
		Title:     cfg.Title,
		Language:  lang,
		Lines:     out,
		StartGen:  startGen,
		EndGen:    endGen,
		Palette:   cfg.Palette,
		Ruler:     cfg.Ruler,
		RulerLine: rulerLine,
		FontURL:   cfg.FontURL,
		Intro:     intro,
		Timeline:  cfg.Timeline[lang],
	}, nil
}

func loadIntro(cfg *config.Config) (template.HTML, error) {
	if cfg.IntroFile == "" {
		return "", nil
	}
	src, err := os.ReadFile(cfg.IntroFile)
	if err != nil {
		return "", fmt.Errorf("reading intro file: %w", err)
	}
	return site.RenderIntro(src)
}
