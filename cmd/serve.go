package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iconicfonts/iconic/internal/assets"
	"github.com/iconicfonts/iconic/internal/config"
	"github.com/iconicfonts/iconic/internal/livereload"
	"github.com/iconicfonts/iconic/internal/server"
	"github.com/iconicfonts/iconic/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the icon browser, font showcase and JSON API",
	Long: `Starts an HTTP server rendering the catalog pages and the /api endpoints
the page script calls. With --watch, edits to the local data files reload
the catalog and connected pages refresh their results.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides server.port)")
	serveCmd.Flags().Bool("watch", false, "reload when the local data files change")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}
	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		cfg.Server.Watch = true
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
	pages, err := site.NewPages(opts)
	if err != nil {
		return fmt.Errorf("preparing pages: %w", err)
	}

	var local *assets.LocalPacks
	if cfg.PacksDir != "" {
		local, err = assets.NewLocalPacks(cfg.PacksDir)
		if err != nil {
			return err
		}
	}

	hub := livereload.NewHub(logger)
	holder.OnLoad(hub.Notify)

	srv := server.New(server.Config{
		Port:     cfg.Server.Port,
		AllowAll: cfg.Server.AllowAll,
	}, server.Deps{
		Holder:   holder,
		Pages:    pages,
		Snippets: opts.Snippets,
		URLs:     opts.URLs,
		Local:    local,
		Fetcher:  &assets.Fetcher{URLs: opts.URLs, Timeout: cfg.Server.Timeout()},
		Hub:      hub,
		Filter:   opts.Filter,
		Pager:    opts.Pager,
		Logger:   logger,
	})

	if cfg.Server.Watch {
		if cfg.Source != config.SourceFile {
			logger.Warn("--watch only applies to the file source", "source", cfg.Source)
		} else {
			w := &livereload.Watcher{
				Files:  []string{cfg.GlyphsPath, cfg.FontsPath},
				Logger: logger,
				Reload: func(ctx context.Context) error {
					_, err := holder.Load(ctx)
					return err
				},
			}
			go func() {
				if err := w.Run(ctx); err != nil {
					logger.Error("file watcher stopped", "err", err)
				}
			}()
		}
	}

	// Graceful shutdown.
	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		srv.Shutdown(context.Background())
	}()

	c := holder.Current()
	fmt.Fprintf(os.Stderr, "iconic %s serving http://localhost:%d\n", Version, cfg.Server.Port)
	fmt.Fprintf(os.Stderr, "  Source: %s\n", cfg.Source)
	fmt.Fprintf(os.Stderr, "  Catalog: %s glyphs in %d packs, %d fonts\n", humanizeCount(len(c.Glyphs)), len(c.Packs), len(c.Fonts))

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
