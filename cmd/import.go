package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iconicfonts/iconic/internal/catalog"
	"github.com/iconicfonts/iconic/internal/config"
	"github.com/iconicfonts/iconic/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Snapshot the catalog into the SQLite database",
	Long: `Reads the glyph table and font list from the file or HTTP source and
stores them as a new snapshot in db_path. Set source: sqlite to serve the
latest snapshot without reaching the original data.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("from", "", "source to read: file or http (defaults to the configured source)")
	importCmd.Flags().Int("keep", 5, "number of snapshots to keep (0 keeps all)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()
	ctx := cmd.Context()

	from, _ := cmd.Flags().GetString("from")
	kind := config.SourceType(from)
	if kind == "" {
		kind = cfg.Source
	}
	if kind == config.SourceSQLite {
		kind = config.SourceFile
	}
	if kind != config.SourceFile && kind != config.SourceHTTP {
		return fmt.Errorf("invalid --from %q: must be file or http", from)
	}

	src, closeSource, err := openSource(cfg, kind)
	if err != nil {
		return err
	}
	defer closeSource()

	holder := catalog.NewHolder(src, logger)
	c, err := holder.Load(ctx)
	if err != nil {
		return err
	}

	database, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	snap, err := database.Import(ctx, c, string(kind))
	if err != nil {
		return err
	}
	fmt.Printf("Imported snapshot %s: %s glyphs in %d packs, %d fonts\n",
		snap.ID, humanizeCount(snap.GlyphCount), len(c.Packs), snap.FontCount)

	if keep, _ := cmd.Flags().GetInt("keep"); keep > 0 {
		removed, err := database.Prune(ctx, keep)
		if err != nil {
			return err
		}
		if removed > 0 {
			logger.Info("pruned old snapshots", "removed", removed)
		}
	}
	return nil
}
