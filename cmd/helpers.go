package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/iconicfonts/iconic/internal/assets"
	"github.com/iconicfonts/iconic/internal/catalog"
	"github.com/iconicfonts/iconic/internal/config"
	"github.com/iconicfonts/iconic/internal/markup"
	"github.com/iconicfonts/iconic/internal/search"
	"github.com/iconicfonts/iconic/internal/site"
	"github.com/iconicfonts/iconic/internal/snippets"
	"github.com/iconicfonts/iconic/internal/store"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `iconic init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger writes text logs to stderr; stdout stays free for command
// output and the MCP protocol.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// openSource returns the configured catalog source and a cleanup func.
func openSource(cfg *config.Config, kind config.SourceType) (catalog.Source, func(), error) {
	switch kind {
	case config.SourceHTTP:
		return catalog.HTTPSource{
			GlyphsURL: cfg.GlyphsURL,
			FontsURL:  cfg.FontsURL,
			Client:    &http.Client{Timeout: cfg.Server.Timeout()},
		}, func() {}, nil
	case config.SourceSQLite:
		database, err := store.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return database, func() { database.Close() }, nil
	default:
		return catalog.FileSource{GlyphsPath: cfg.GlyphsPath, FontsPath: cfg.FontsPath}, func() {}, nil
	}
}

// loadHolder opens the configured source and performs the first load.
func loadHolder(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*catalog.Holder, func(), error) {
	src, closeFn, err := openSource(cfg, cfg.Source)
	if err != nil {
		return nil, nil, err
	}
	holder := catalog.NewHolder(src, logger)
	if _, err := holder.Load(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}
	return holder, closeFn, nil
}

func newFilter(cfg *config.Config) search.Filter {
	return search.Filter{Threshold: cfg.Search.Threshold}
}

func newPager(cfg *config.Config) search.Pager {
	return search.Pager{Initial: cfg.Search.InitialLoad, Step: cfg.Search.PageSize}
}

// siteOptions gathers everything page rendering needs from the config.
func siteOptions(cfg *config.Config) (site.Options, error) {
	renderer := markup.New("")
	lib, err := snippets.New(cfg.Snippets, renderer)
	if err != nil {
		return site.Options{}, err
	}

	var license []byte
	if cfg.License != "" {
		license, err = os.ReadFile(cfg.License)
		if err != nil {
			return site.Options{}, fmt.Errorf("reading license: %w", err)
		}
	}

	return site.Options{
		Snippets: lib,
		Markup:   renderer,
		License:  license,
		URLs:     assets.URLs{Base: cfg.PackBase},
		Filter:   newFilter(cfg),
		Pager:    newPager(cfg),
	}, nil
}

func humanizeCount(n int) string {
	return humanize.Comma(int64(n))
}
