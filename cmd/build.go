package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iconicfonts/iconic/internal/progress"
	"github.com/iconicfonts/iconic/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the site as static files",
	Long: `Renders every page together with if.csv, fonts.json, glyphs.json, the
highlighted snippets and the static assets into the output directory. The
built icons page filters glyphs.json in the browser, so it can be hosted
without the iconic server.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory (defaults to output_dir)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	logger := newLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	holder, closeSource, err := loadHolder(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	opts, err := siteOptions(cfg)
	if err != nil {
		return err
	}
	c := holder.Current()
	generator, err := site.NewGenerator(c, opts, progress.NewReporter("Building site"), logger)
	if err != nil {
		return fmt.Errorf("preparing site: %w", err)
	}

	n, err := generator.Build(ctx, outputDir)
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d files, %s glyphs, %d fonts)\n",
		outputDir, n, humanizeCount(len(c.Glyphs)), len(c.Fonts))
	return nil
}
